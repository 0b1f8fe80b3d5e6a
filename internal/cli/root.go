// Package cli wires the benchreport commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/benchlab/benchreport/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "benchreport",
	Short: "Generate performance benchmark reports",
	Long: `Read annotated SQL query files, execute them against a benchmark
results database and generate a navigable HTML report.

Result columns are classified by naming convention: a trailing suffix
selects whether a column is plotted as a bar value (_num, _num2f, _pct,
_unit, _err), shown as hover text (_label), splits a chart into named
series (_pivot) or splits the row set into separate panels (_group).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("benchreport version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
