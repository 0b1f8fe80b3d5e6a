// Package render turns report value objects into HTML. Tables render
// server-side; charts render client-side through plotly.js, fed with
// JSON marshalled into the page.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/Masterminds/sprig/v3"
	"github.com/google/uuid"

	"github.com/benchlab/benchreport/internal/report"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// PlotlyVersion pins the plotly.js build loaded from the CDN.
const PlotlyVersion = "2.35.2"

// Renderer holds the parsed template set.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates with the sprig function map plus
// the renderer's own helpers.
func New() (*Renderer, error) {
	tmpl := template.New("").Funcs(sprig.FuncMap()).Funcs(template.FuncMap{
		"json":     marshalJS,
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	})
	tmpl, err := tmpl.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func marshalJS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// ReportPage is the view model of the main report.
type ReportPage struct {
	PlotlyVersion string
	Entries       []Entry
}

// Entry is one titled report query with its rendered artifacts. Setup
// queries never become entries.
type Entry struct {
	Title   string
	Slug    string
	Desc    string
	FileURL string
	CSVFile string
	Figures []Figure
}

// Figure pairs a table with its chart view; either may be nil.
type Figure struct {
	Table *report.Table
	Chart *ChartView
}

// ChartView wraps a chart with its plotly wire payloads and a unique
// element id for the target div.
type ChartView struct {
	DivID  string
	Data   []map[string]any
	Layout map[string]any
}

// NewFigure adapts an engine figure for rendering.
func NewFigure(fig report.Figure) Figure {
	view := Figure{Table: fig.Table}
	if fig.Chart != nil {
		view.Chart = &ChartView{
			DivID:  "chart-" + uuid.NewString(),
			Data:   plotlyData(fig.Chart),
			Layout: plotlyLayout(fig.Chart),
		}
	}
	return view
}

func plotlyData(chart *report.Chart) []map[string]any {
	data := make([]map[string]any, 0, len(chart.Series))
	for _, s := range chart.Series {
		trace := map[string]any{
			"type":      "bar",
			"name":      s.Name,
			"x":         s.X,
			"y":         s.Y,
			"hovertext": s.HoverText,
		}
		if s.ErrorY != nil {
			trace["error_y"] = map[string]any{"type": "data", "array": s.ErrorY}
		}
		data = append(data, trace)
	}
	return data
}

func plotlyLayout(chart *report.Chart) map[string]any {
	return map[string]any{
		"barmode": chart.BarMode,
		"title":   map[string]any{"text": chart.Title},
		"yaxis":   map[string]any{"tickformat": chart.YAxisFormat},
	}
}

// DetailSection is one query's worth of tables on a detail page.
type DetailSection struct {
	Title  string
	Desc   string
	Tables []*report.Table
}

// DetailPage is the view model of an environment or run detail page.
type DetailPage struct {
	Title    string
	Sections []DetailSection
}

// Report writes the main report page.
func (r *Renderer) Report(w io.Writer, page ReportPage) error {
	return r.tmpl.ExecuteTemplate(w, "report.html.tmpl", page)
}

// EnvPage writes an environment detail page.
func (r *Renderer) EnvPage(w io.Writer, page DetailPage) error {
	return r.tmpl.ExecuteTemplate(w, "env.html.tmpl", page)
}

// RunPage writes a run detail page.
func (r *Renderer) RunPage(w io.Writer, page DetailPage) error {
	return r.tmpl.ExecuteTemplate(w, "run.html.tmpl", page)
}
