package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchlab/benchreport/internal/report"
)

func TestReportPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	columns := report.ClassifyAll([]string{"config", "latency_num", "latency_err"})
	rows := []report.Row{
		{"config": "a", "latency_num": 10.0, "latency_err": 1.0},
		{"config": "b", "latency_num": 20.0, "latency_err": 2.0},
	}
	figures := report.BuildFigures(columns, rows)
	require.Len(t, figures, 1)

	page := ReportPage{
		PlotlyVersion: PlotlyVersion,
		Entries: []Entry{{
			Title:   "Latency per Config",
			Slug:    "latency-per-config",
			Desc:    "Median latency.",
			FileURL: "https://example.com/blob/abc/sql/01-latency.sql",
			CSVFile: "latency-per-config.csv",
			Figures: []Figure{NewFigure(figures[0])},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Report(&buf, page))
	html := buf.String()

	assert.Contains(t, html, "plotly-"+PlotlyVersion+".min.js")
	assert.Contains(t, html, `<a href="#latency-per-config">Latency per Config</a>`)
	assert.Contains(t, html, "Median latency.")
	assert.Contains(t, html, `href="https://example.com/blob/abc/sql/01-latency.sql"`)
	assert.Contains(t, html, `href="latency-per-config.csv"`)
	assert.Contains(t, html, "Plotly.newPlot(")
	assert.Contains(t, html, `"error_y":{"array":[1,2],"type":"data"}`)
	assert.Contains(t, html, `"tickformat":".2f"`)
	assert.Contains(t, html, "<th class=\"align-left\">Config</th>")
	assert.Contains(t, html, "<th class=\"align-right\">Latency</th>")
}

func TestReportPageLongTextCollapses(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	columns := report.ClassifyAll([]string{"config", "output_label"})
	rows := []report.Row{{"config": "a", "output_label": "first\nsecond\nthird\nfourth\nfifth\nsixth"}}
	figures := report.BuildFigures(columns, rows)
	require.Len(t, figures, 1)

	var buf bytes.Buffer
	require.NoError(t, r.Report(&buf, ReportPage{
		PlotlyVersion: PlotlyVersion,
		Entries:       []Entry{{Title: "T", Slug: "t", Figures: []Figure{NewFigure(figures[0])}}},
	}))
	html := buf.String()

	assert.Contains(t, html, "<details><summary>first</summary>")
	assert.Contains(t, html, "sixth")
}

func TestReportPageEscapesCellText(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	columns := report.ClassifyAll([]string{"config", "note_label"})
	rows := []report.Row{{"config": "<script>", "note_label": "x"}}
	figures := report.BuildFigures(columns, rows)

	var buf bytes.Buffer
	require.NoError(t, r.Report(&buf, ReportPage{
		Entries: []Entry{{Title: "T", Slug: "t", Figures: []Figure{NewFigure(figures[0])}}},
	}))

	assert.NotContains(t, buf.String(), "<td class=\"align-left\"><script></td>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestNewFigureWithoutChart(t *testing.T) {
	fig := NewFigure(report.Figure{Table: &report.Table{}})
	assert.NotNil(t, fig.Table)
	assert.Nil(t, fig.Chart)
}

func TestNewFigureDivIDsAreUnique(t *testing.T) {
	chart := &report.Chart{Series: []report.Series{{Name: "s"}}}
	a := NewFigure(report.Figure{Chart: chart})
	b := NewFigure(report.Figure{Chart: chart})

	require.NotNil(t, a.Chart)
	require.NotNil(t, b.Chart)
	assert.NotEqual(t, a.Chart.DivID, b.Chart.DivID)
}

func TestEnvAndRunPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	page := DetailPage{
		Title: "Environment prod",
		Sections: []DetailSection{{
			Title: "Settings",
			Desc:  "Key attributes.",
			Tables: []*report.Table{{
				Headers: []report.Header{{Name: "name", Label: "Name", Align: report.AlignLeft}},
				Rows: [][]report.Cell{{
					{Kind: report.CellText, Text: "cpu", Align: report.AlignLeft},
				}},
			}},
		}},
	}

	var env bytes.Buffer
	require.NoError(t, r.EnvPage(&env, page))
	assert.Contains(t, env.String(), "Environment prod")
	assert.Contains(t, env.String(), "Key attributes.")
	assert.Contains(t, env.String(), "cpu")

	var run bytes.Buffer
	require.NoError(t, r.RunPage(&run, page))
	assert.Contains(t, run.String(), "Environment prod")
	// Run pages render per-query section headings.
	assert.Contains(t, run.String(), "<h2>Settings</h2>")
}
