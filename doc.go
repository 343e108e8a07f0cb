// Package finplan provides a small personal financial planning engine and the
// collaborators around it.
//
// The engine is made of three independent, stateless calculations:
//   - Compounding Projector: year-by-year capital accumulation from periodic
//     contributions at a rate adjusted by an asset-class multiplier.
//   - Risk Estimator: annualized volatility and historical Value-at-Risk from
//     the simple returns of a price series.
//   - Monte Carlo Projector: many independent capital trajectories drawn from
//     a normal distribution of yearly returns.
//
// Around it, the package defines the market data contract (Quote, Provider
// and the explicit Lookup result), the Session record holding a portfolio and
// a watchlist, a profile advisor, symbol comparison, and CSV export.
//
// This package serves as the foundational logic for the `fpl` command-line
// tool. Nothing in it keeps state between calls: a Session is loaded, passed
// explicitly, and saved by the caller.
package finplan
