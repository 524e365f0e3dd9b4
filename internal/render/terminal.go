package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/valuelens/internal/suggest"
	"github.com/guttosm/valuelens/internal/valuation"
)

// Colors for terminal output
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorGreen = "\033[32m"
	ColorCyan  = "\033[36m"
	ColorBold  = "\033[1m"
)

// Terminal prints lookups and suggestions to a writer. It implements
// valuation.View, suggest.View and suggest.Input for the CLI modes.
type Terminal struct {
	Out    io.Writer
	Colors bool

	// Rows holds the suggestions currently listed, in display order.
	Rows []suggest.Row
	// Value is the last symbol written back by a selection.
	Value string
}

var (
	_ valuation.View = (*Terminal)(nil)
	_ suggest.View   = (*Terminal)(nil)
	_ suggest.Input  = (*Terminal)(nil)
)

func (t *Terminal) paint(color, s string) string {
	if !t.Colors {
		return s
	}
	return color + s + ColorReset
}

// SetLoading prints a progress line when a lookup starts.
func (t *Terminal) SetLoading(visible bool) {
	if visible {
		fmt.Fprintln(t.Out, "Loading...")
	}
}

func (t *Terminal) Alert(msg string) {
	fmt.Fprintln(t.Out, t.paint(ColorBold, "! "+msg))
}

func (t *Terminal) ShowError(msg string) {
	fmt.Fprintln(t.Out, t.paint(ColorRed, msg))
}

// ShowDashboard prints the summary block followed by the cash-flow list.
func (t *Terminal) ShowDashboard(d valuation.Dashboard) {
	sep := strings.Repeat("=", 48)
	fmt.Fprintln(t.Out, t.paint(ColorCyan, sep))
	fmt.Fprintln(t.Out, t.paint(ColorBold, d.Ticker))
	fmt.Fprintln(t.Out, t.paint(ColorCyan, sep))
	fmt.Fprintf(t.Out, "Current Price:    %s\n", Money(d.CurrentPrice))
	fmt.Fprintf(t.Out, "Intrinsic Value:  %s\n", Money(d.IntrinsicValue))
	if d.Upside != nil {
		fmt.Fprintf(t.Out, "Margin of Safety: %s\n", Percent(*d.Upside))
	}
	color := ColorRed
	if d.Verdict.Undervalued {
		color = ColorGreen
	}
	fmt.Fprintf(t.Out, "Verdict:          %s\n", t.paint(color, d.Verdict.Label))
	fmt.Fprintln(t.Out, "Assumptions:")
	fmt.Fprintf(t.Out, "  Projected Growth Rate: %s\n", Verbatim(d.Assumptions.ProjectedGrowthRate))
	fmt.Fprintf(t.Out, "  WACC:                  %s\n", Verbatim(d.Assumptions.WACC))
	fmt.Fprintf(t.Out, "  Perpetual Growth:      %s\n", Verbatim(d.Assumptions.PerpetualGrowth))
	fmt.Fprintln(t.Out, "Historical Free Cash Flow:")
	for _, p := range d.CashFlow {
		fmt.Fprintf(t.Out, "  %s: %s\n", p.Period, Amount(p.Amount))
	}
}

// Show lists the suggestions, numbered from 1.
func (t *Terminal) Show(rows []suggest.Row) {
	t.Rows = rows
	for i, r := range rows {
		fmt.Fprintf(t.Out, "%2d. %-8s %s\n", i+1, t.paint(ColorBold, r.Item.Symbol), r.Item.Name)
	}
}

func (t *Terminal) Hide() { t.Rows = nil }

func (t *Terminal) SetValue(v string) {
	t.Value = v
	fmt.Fprintf(t.Out, "selected %s\n", v)
}
