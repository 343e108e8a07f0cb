package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/finplan/date"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Symbol returns the symbol to use with the other commands: US symbols have no exchange suffix.
func (r SearchResult) Symbol() string {
	if r.Exchange == "US" || r.Exchange == "" {
		return r.Code
	}
	return r.Code + "." + r.Exchange
}

// Search searches for securities by name, ticker or ISIN.
func (c *Client) Search(ctx context.Context, searchTerm string) ([]SearchResult, error) {
	// https://eodhd.com/api/search/apple?api_token=demo&fmt=json
	query := url.Values{}
	query.Set("limit", "15")
	results := make([]SearchResult, 0)
	if err := jwget(ctx, c.cached, c.url("search", searchTerm, query), &results); err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", searchTerm, err)
	}
	return results, nil
}
