package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/guttosm/valuelens/internal/valuation"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is the model of the index page.
type PageData struct {
	Title    string
	Ticker   string
	MinChars int
	View     *PageView
}

// HTML renders the index page and dashboard fragments.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the embedded templates.
func NewHTML() (*HTML, error) {
	tmpl, err := template.New("valuelens").Funcs(template.FuncMap{
		"money":    Money,
		"amount":   Amount,
		"percent":  Percent,
		"verbatim": Verbatim,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &HTML{tmpl: tmpl}, nil
}

// Page writes the full index page.
func (h *HTML) Page(w io.Writer, data PageData) error {
	if data.View == nil {
		data.View = &PageView{}
	}
	if data.Title == "" {
		data.Title = "Intrinsic Value Dashboard"
	}
	return h.tmpl.ExecuteTemplate(w, "index", data)
}

// Dashboard writes only the results fragment for d.
func (h *HTML) Dashboard(w io.Writer, d valuation.Dashboard) error {
	return h.tmpl.ExecuteTemplate(w, "dashboard", d)
}
