package models

import "github.com/shopspring/decimal"

// Assumptions are the model parameters the backend used for a valuation.
// They are passed through untouched.
type Assumptions struct {
	ProjectedGrowthRate decimal.Decimal `json:"projected_growth_rate"`
	WACC                decimal.Decimal `json:"wacc"`
	PerpetualGrowth     decimal.Decimal `json:"perpetual_growth"`
}

// ValuationResult is the body of GET /valuation/{ticker}.
//
// Numbers are decoded as decimals so that what is rendered is exactly what the
// backend sent; both JSON numbers and numeric strings are accepted.
type ValuationResult struct {
	Ticker         string          `json:"ticker" example:"AAPL"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	IntrinsicValue decimal.Decimal `json:"intrinsic_value"`
	Assumptions    Assumptions     `json:"assumptions"`
}

// IsUndervalued reports whether the intrinsic value strictly exceeds the price.
// Equality is not undervalued.
func (v ValuationResult) IsUndervalued() bool {
	return v.IntrinsicValue.GreaterThan(v.CurrentPrice)
}
