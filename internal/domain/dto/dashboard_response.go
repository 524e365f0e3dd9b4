package dto

import (
	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/guttosm/valuelens/internal/valuation"
)

// DashboardResponse represents the JSON structure returned by
// GET /api/v1/valuation.
//
// Prices are sent as strings so no precision is lost on the way to the client.
type DashboardResponse struct {
	Ticker         string              `json:"ticker" example:"AAPL"`
	CurrentPrice   string              `json:"current_price" example:"150"`
	IntrinsicValue string              `json:"intrinsic_value" example:"200"`
	UpsidePercent  *string             `json:"upside_percent,omitempty" example:"33.33"`
	Verdict        VerdictResponse     `json:"verdict"`
	Assumptions    AssumptionsResponse `json:"assumptions"`
	FreeCashFlow   []CashFlowEntry     `json:"free_cash_flow"`
}

// VerdictResponse is the buy/sell call with its display colour.
type VerdictResponse struct {
	Undervalued bool   `json:"undervalued" example:"true"`
	Label       string `json:"label" example:"UNDERVALUED (BUY)"`
	Color       string `json:"color" example:"#4caf50"`
}

// AssumptionsResponse echoes the backend's model parameters.
type AssumptionsResponse struct {
	ProjectedGrowthRate string `json:"projected_growth_rate" example:"0.08"`
	WACC                string `json:"wacc" example:"0.09"`
	PerpetualGrowth     string `json:"perpetual_growth" example:"0.025"`
}

// CashFlowEntry is one period of free cash flow. The list keeps backend order.
type CashFlowEntry struct {
	Period string `json:"period" example:"2023-09-30"`
	Amount string `json:"amount" example:"99584000000"`
}

// NewDashboardResponse maps a dashboard onto the API contract.
func NewDashboardResponse(d valuation.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Ticker:         d.Ticker,
		CurrentPrice:   d.CurrentPrice.String(),
		IntrinsicValue: d.IntrinsicValue.String(),
		Verdict: VerdictResponse{
			Undervalued: d.Verdict.Undervalued,
			Label:       d.Verdict.Label,
			Color:       d.Verdict.Color,
		},
		Assumptions: AssumptionsResponse{
			ProjectedGrowthRate: d.Assumptions.ProjectedGrowthRate.String(),
			WACC:                d.Assumptions.WACC.String(),
			PerpetualGrowth:     d.Assumptions.PerpetualGrowth.String(),
		},
		FreeCashFlow: make([]CashFlowEntry, 0, len(d.CashFlow)),
	}
	if d.Upside != nil {
		up := d.Upside.StringFixed(2)
		resp.UpsidePercent = &up
	}
	for _, p := range d.CashFlow {
		resp.FreeCashFlow = append(resp.FreeCashFlow, CashFlowEntry{Period: p.Period, Amount: p.Amount.String()})
	}
	return resp
}

// SearchResponse is returned by GET /api/v1/search.
type SearchResponse struct {
	Query   string                  `json:"query" example:"AP"`
	Results []models.SuggestionItem `json:"results"`
}
