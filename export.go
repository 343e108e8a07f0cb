package finplan

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', CapitalDigits, 64) }

// WriteProjectionCSV writes a compounding projection as "period,capital" rows.
func WriteProjectionCSV(w io.Writer, points []ProjectionPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "capital"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := cw.Write([]string{strconv.Itoa(p.Period), p.Capital.Decimal().StringFixed(CapitalDigits)}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write projection: %w", err)
	}
	return nil
}

// WriteBandsCSV writes Monte Carlo percentile bands as "period,p10,p50,p90" rows.
func WriteBandsCSV(w io.Writer, bands []Band) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "p10", "p50", "p90"}); err != nil {
		return err
	}
	for _, b := range bands {
		row := []string{strconv.Itoa(b.Period), formatFloat(b.P10), formatFloat(b.P50), formatFloat(b.P90)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write bands: %w", err)
	}
	return nil
}

// WriteHoldingsCSV writes session holdings, one row per holding.
func WriteHoldingsCSV(w io.Writer, holdings []Holding) error {
	cw := csv.NewWriter(w)
	header := []string{"symbol", "class", "quantity", "currency", "purchase_price", "current_price", "value", "gain", "added_on"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, h := range holdings {
		row := []string{
			h.Symbol,
			h.Class.String(),
			h.Quantity.String(),
			h.CurrentPrice.Currency(),
			h.PurchasePrice.Decimal().StringFixed(CapitalDigits),
			h.CurrentPrice.Decimal().StringFixed(CapitalDigits),
			h.Value().Decimal().StringFixed(CapitalDigits),
			h.Gain().Decimal().StringFixed(CapitalDigits),
			h.AddedOn.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write holdings: %w", err)
	}
	return nil
}
