// Package generator orchestrates one report run: it resolves
// environments, executes the annotated queries on a single database
// session, feeds the results through the report-synthesis engine and
// hands the value objects to the renderer. A failed fetch is scoped to
// its own entry; the rest of the report still renders.
package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/benchlab/benchreport/internal/render"
	"github.com/benchlab/benchreport/internal/report"
	"github.com/benchlab/benchreport/internal/source"
	"github.com/benchlab/benchreport/internal/store"
	"github.com/benchlab/benchreport/pkg/version"
)

// Generator generates one report.
type Generator struct {
	Store    *store.Store
	Renderer *render.Renderer
	Log      zerolog.Logger

	// SQLPath is a directory of query files, or a single file.
	SQLPath string
	// RepoURL is the base URL for query-file permalinks.
	RepoURL string
}

// Output says where the report goes. BaseDir is empty when writing to
// stdout; CSV side files and detail pages need a directory.
type Output struct {
	Writer  io.Writer
	BaseDir string
}

// Run generates the report for environments matching the given name
// patterns.
func (g *Generator) Run(ctx context.Context, envPatterns []string, out Output) error {
	envs, err := g.Store.Environments(ctx, envPatterns)
	if err != nil {
		return fmt.Errorf("resolve environments: %w", err)
	}
	envIDs := make([]int64, len(envs))
	names := make([]string, len(envs))
	for i, env := range envs {
		envIDs[i] = env.ID
		names[i] = env.Name
	}
	g.Log.Info().Strs("environments", names).Msg("generating report")

	queries, err := source.LoadReports(g.SQLPath)
	if err != nil {
		return fmt.Errorf("load queries: %w", err)
	}

	entries := g.buildEntries(ctx, queries, envIDs, out.BaseDir)
	page := render.ReportPage{PlotlyVersion: render.PlotlyVersion, Entries: entries}
	if err := g.Renderer.Report(out.Writer, page); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if out.BaseDir == "" {
		return nil
	}
	sqlDir := g.sqlDir()
	if err := g.dumpEnvDetails(ctx, sqlDir, envIDs, out.BaseDir); err != nil {
		return err
	}
	return g.dumpRunDetails(ctx, sqlDir, envIDs, out.BaseDir)
}

// buildEntries executes every query in file order. Setup queries run for
// side effects only and never become entries.
func (g *Generator) buildEntries(ctx context.Context, queries []source.Query, envIDs []int64, baseDir string) []render.Entry {
	params := map[string]any{"env_ids": envIDs}

	var entries []render.Entry
	for _, q := range queries {
		log := g.Log.With().Str("file", q.File).Logger()
		body := store.Expand(q.Body, params)

		if q.IsSetup() {
			log.Debug().Msg("executing setup query")
			if err := g.Store.Exec(ctx, body); err != nil {
				log.Warn().Err(err).Msg("setup query failed")
			}
			continue
		}

		entry := render.Entry{
			Title:   q.Title,
			Slug:    q.Slug,
			Desc:    q.Desc,
			FileURL: g.fileURL(q.File),
		}

		columns, rows, err := g.Store.Query(ctx, body)
		if err != nil {
			// The failure is scoped to this entry; keep going.
			log.Warn().Err(err).Msg("query failed, entry left empty")
			entries = append(entries, entry)
			continue
		}

		if baseDir != "" {
			name := q.Slug + ".csv"
			if err := writeCSV(filepath.Join(baseDir, name), columns, rows); err != nil {
				log.Warn().Err(err).Msg("writing csv results failed")
			} else {
				entry.CSVFile = name
			}
		}

		for _, fig := range report.BuildFigures(report.ClassifyAll(columns), rows) {
			entry.Figures = append(entry.Figures, render.NewFigure(fig))
		}
		entries = append(entries, entry)
	}
	return entries
}

// dumpEnvDetails writes one detail page per environment from the
// env_details.sql query, when that file exists.
func (g *Generator) dumpEnvDetails(ctx context.Context, sqlDir string, envIDs []int64, baseDir string) error {
	q, ok, err := source.LoadEnvDetails(sqlDir)
	if err != nil {
		return err
	}
	if !ok {
		g.Log.Warn().Str("dir", sqlDir).Msg("no env_details.sql, not dumping env details")
		return nil
	}

	for _, id := range envIDs {
		body := store.Expand(q.Body, map[string]any{"id": id})
		columns, rows, err := g.Store.Query(ctx, body)
		if err != nil {
			g.Log.Warn().Err(err).Int64("env", id).Msg("env details query failed")
			continue
		}
		table := report.BuildTable(report.ClassifyAll(columns), rows, nil)
		page := render.DetailPage{
			Title:    q.Title,
			Sections: []render.DetailSection{{Desc: q.Desc, Tables: []*report.Table{table}}},
		}

		dir := filepath.Join(baseDir, "envs", strconv.FormatInt(id, 10))
		if err := writePage(dir, q.Slug+".html", g.Renderer.EnvPage, page); err != nil {
			return err
		}
	}
	return nil
}

// dumpRunDetails writes one page per finished run, assembled from all
// run-*.sql queries, extracting JSON attachments alongside.
func (g *Generator) dumpRunDetails(ctx context.Context, sqlDir string, envIDs []int64, baseDir string) error {
	details, err := source.LoadRunDetails(sqlDir)
	if err != nil {
		return err
	}
	if len(details) == 0 {
		g.Log.Warn().Str("dir", sqlDir).Msg("no run detail queries, not dumping run details")
		return nil
	}

	runIDs, err := g.Store.RunIDs(ctx, envIDs)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	for i, runID := range runIDs {
		g.Log.Debug().Int64("run", runID).Msgf("dumping run details %d/%d", i+1, len(runIDs))
		dir := filepath.Join(baseDir, "runs", strconv.FormatInt(runID, 10))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create run dir: %w", err)
		}

		var sections []render.DetailSection
		for _, q := range details {
			body := store.Expand(q.Body, map[string]any{"id": runID})
			columns, rows, err := g.Store.Query(ctx, body)
			if err != nil {
				g.Log.Warn().Err(err).Int64("run", runID).Str("file", q.File).Msg("run details query failed")
				continue
			}
			rows = g.saveAttachments(dir, columns, rows)
			table := report.BuildTable(report.ClassifyAll(columns), rows, nil)
			sections = append(sections, render.DetailSection{
				Title:  q.Title,
				Desc:   q.Desc,
				Tables: []*report.Table{table},
			})
		}

		page := render.DetailPage{Title: "Run " + strconv.FormatInt(runID, 10), Sections: sections}
		if err := writePage(dir, "index.html", g.Renderer.RunPage, page); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) fileURL(file string) string {
	return g.RepoURL + "/blob/" + version.CommitSHA() + "/" + filepath.ToSlash(file)
}

func (g *Generator) sqlDir() string {
	if info, err := os.Stat(g.SQLPath); err == nil && !info.IsDir() {
		return filepath.Dir(g.SQLPath)
	}
	return g.SQLPath
}

func writePage(dir, name string, render func(io.Writer, render.DetailPage) error, page render.DetailPage) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := render(f, page); err != nil {
		_ = f.Close()
		return fmt.Errorf("render %s: %w", name, err)
	}
	return f.Close()
}
