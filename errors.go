package finplan

import "errors"

var (
	// ErrInvalidInput reports a numeric input out of its domain, detected before any computation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoData reports an unknown symbol or an empty answer from a market data provider.
	ErrNoData = errors.New("no data available")
	// ErrTransport reports a network or protocol failure while talking to a market data provider.
	ErrTransport = errors.New("market data transport failure")
)
