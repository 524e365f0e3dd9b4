package valuation

import (
	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Verdict is the binary buy/sell call shown on the dashboard.
type Verdict struct {
	Undervalued bool
	Label       string
	Color       string
}

var (
	VerdictBuy  = Verdict{Undervalued: true, Label: "UNDERVALUED (BUY)", Color: "#4caf50"}
	VerdictSell = Verdict{Undervalued: false, Label: "OVERVALUED (SELL)", Color: "#f44336"}
)

// VerdictFor returns VerdictBuy iff the intrinsic value is strictly above the price.
func VerdictFor(v models.ValuationResult) Verdict {
	if v.IsUndervalued() {
		return VerdictBuy
	}
	return VerdictSell
}

// Dashboard is everything a view needs to draw one successful lookup.
type Dashboard struct {
	Ticker         string
	CurrentPrice   decimal.Decimal
	IntrinsicValue decimal.Decimal
	// Upside is (intrinsic - price) / price * 100; nil when the price is zero.
	Upside      *decimal.Decimal
	Verdict     Verdict
	Assumptions models.Assumptions
	CashFlow    []models.CashFlowPoint
}

// NewDashboard merges the two backend responses. requested is used when the
// valuation body carries no ticker.
func NewDashboard(requested string, series models.CashFlowSeries, val models.ValuationResult) Dashboard {
	ticker := val.Ticker
	if ticker == "" {
		ticker = requested
	}
	d := Dashboard{
		Ticker:         ticker,
		CurrentPrice:   val.CurrentPrice,
		IntrinsicValue: val.IntrinsicValue,
		Verdict:        VerdictFor(val),
		Assumptions:    val.Assumptions,
		CashFlow:       series.FreeCashFlow,
	}
	if !val.CurrentPrice.IsZero() {
		up := val.IntrinsicValue.Sub(val.CurrentPrice).Div(val.CurrentPrice).Mul(decimal.NewFromInt(100))
		d.Upside = &up
	}
	return d
}
