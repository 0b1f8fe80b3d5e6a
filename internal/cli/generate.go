package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benchlab/benchreport/internal/config"
	berrors "github.com/benchlab/benchreport/internal/errors"
	"github.com/benchlab/benchreport/internal/generator"
	"github.com/benchlab/benchreport/internal/logging"
	"github.com/benchlab/benchreport/internal/render"
	"github.com/benchlab/benchreport/internal/store"
)

func newGenerateCmd() *cobra.Command {
	var (
		dbURL        string
		sqlPath      string
		environments string
		output       string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a performance test report",
		Long: `Generate an HTML report from the query files in the sql directory.

Report queries are files matching ??-*.sql, executed in name order.
When the report is written to a file, raw results are dumped alongside
as CSV, env_details.sql produces one detail page per environment, and
run-*.sql queries produce one detail page per finished benchmark run.

Examples:
  benchreport generate -s sql -o report/index.html
  benchreport generate -e 'prod-%,staging-%' -d postgres://postgres@db:5432/benchto
  benchreport generate -d duckdb:results.db -s sql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dbURL != "" {
				cfg.DBURL = dbURL
			}
			if sqlPath != "" {
				cfg.SQLDir = sqlPath
			}
			if environments != "" {
				cfg.Environments = strings.Split(environments, ",")
			}
			if output != "" {
				cfg.Output = output
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			return generate(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&dbURL, "db-url", "d", "", "database URL (no password; the driver reads it from the environment)")
	cmd.Flags().StringVarP(&sqlPath, "sql", "s", "", "directory with sql files to execute, or a single sql file")
	cmd.Flags().StringVarP(&environments, "environments", "e", "", "comma-separated environment name patterns")
	cmd.Flags().StringVarP(&output, "output", "o", "", "filename to write the report to, - for stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print debug level logs")
	return cmd
}

func generate(ctx context.Context, cfg *config.Config) error {
	log := logging.New(logging.Config{Level: cfg.LogLevel, Pretty: true})

	db, err := store.Open(cfg.DBURL)
	if err != nil {
		return err
	}
	defer berrors.DeferClose(log, db, "closing database failed")

	st, err := store.New(ctx, db, logging.NewWithComponent(logging.Config{Level: cfg.LogLevel, Pretty: true}, "store"))
	if err != nil {
		return err
	}
	defer berrors.DeferClose(log, st, "closing session failed")

	renderer, err := render.New()
	if err != nil {
		return err
	}

	out := generator.Output{Writer: os.Stdout}
	if cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer berrors.DeferClose(log, f, "closing output failed")
		out = generator.Output{Writer: f, BaseDir: filepath.Dir(cfg.Output)}
	}

	gen := &generator.Generator{
		Store:    st,
		Renderer: renderer,
		Log:      log,
		SQLPath:  cfg.SQLDir,
		RepoURL:  cfg.RepoURL,
	}
	return gen.Run(ctx, cfg.Environments, out)
}
