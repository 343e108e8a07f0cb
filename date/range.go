package date

import (
	"fmt"
	"strconv"
	"strings"
)

// Range represents a range of dates.
type Range struct{ From, To Date }

// String returns "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// Window is a lookback duration ending on a given day, like "1mo" or "5y".
type Window struct {
	n    int
	unit string // "d", "mo" or "y"
}

// Common windows.
var (
	OneDay    = Window{1, "d"}
	FiveDays  = Window{5, "d"}
	OneMonth  = Window{1, "mo"}
	SixMonths = Window{6, "mo"}
	OneYear   = Window{1, "y"}
	FiveYears = Window{5, "y"}
	TenYears  = Window{10, "y"}
)

// ParseWindow parses a window like "1d", "5d", "1mo", "6mo", "1y" or "5y".
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil || n <= 0 {
		return Window{}, fmt.Errorf("invalid window %q: want a positive count followed by d, mo or y", s)
	}
	switch unit := s[i:]; unit {
	case "d", "mo", "y":
		return Window{n, unit}, nil
	default:
		return Window{}, fmt.Errorf("invalid window %q: unknown unit %q", s, unit)
	}
}

// String returns the window in its parseable form.
func (w Window) String() string { return fmt.Sprintf("%d%s", w.n, w.unit) }

// Range returns the range of dates covered by the window, ending on 'on'.
func (w Window) Range(on Date) Range {
	var from Date
	switch w.unit {
	case "y":
		from = on.AddDate(-w.n, 0, 0)
	case "mo":
		from = on.AddDate(0, -w.n, 0)
	default:
		from = on.Add(-w.n)
	}
	return Range{From: from, To: on}
}
