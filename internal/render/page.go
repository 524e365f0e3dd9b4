package render

import (
	"github.com/guttosm/valuelens/internal/valuation"
)

// PageView records what a lookup showed so it can be rendered after the fact
// as a page or a JSON body. It implements valuation.View.
type PageView struct {
	Loading      bool
	LoadingTrail []bool
	AlertMsg     string
	ErrorMsg     string
	Dashboard    *valuation.Dashboard
}

var _ valuation.View = (*PageView)(nil)

func (p *PageView) SetLoading(visible bool) {
	p.Loading = visible
	p.LoadingTrail = append(p.LoadingTrail, visible)
}

func (p *PageView) Alert(msg string) { p.AlertMsg = msg }

// ShowError replaces the results region with msg.
func (p *PageView) ShowError(msg string) {
	p.ErrorMsg = msg
	p.Dashboard = nil
}

// ShowDashboard replaces the results region with d.
func (p *PageView) ShowDashboard(d valuation.Dashboard) {
	p.Dashboard = &d
	p.ErrorMsg = ""
}

// TextInput is a fixed-value valuation.Input.
type TextInput string

func (t TextInput) Value() string { return string(t) }
