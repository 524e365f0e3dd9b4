package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/guttosm/valuelens/internal/domain/models"
)

// FCFChart writes a standalone bar-chart page of the series. Bars follow the
// series order; values are shown in millions.
func FCFChart(w io.Writer, s models.CashFlowSeries) error {
	periods := make([]string, 0, len(s.FreeCashFlow))
	bars := make([]opts.BarData, 0, len(s.FreeCashFlow))
	for _, p := range s.FreeCashFlow {
		periods = append(periods, p.Period)
		millions, _ := p.Amount.Shift(-6).Round(2).Float64()
		bars = append(bars, opts.BarData{Name: p.Period, Value: millions})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s free cash flow", s.Ticker),
			Width:     "880px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s - Free Cash Flow", s.Ticker),
			Subtitle: "in Millions",
		}),
	)
	bar.SetXAxis(periods).AddSeries("Free Cash Flow", bars)
	return bar.Render(w)
}
