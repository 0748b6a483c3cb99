package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autodomd/autodomd/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that TODO.md is up to date",
	Long: `Regenerate the report in memory and compare it with the existing one.
The provenance header is not compared. Exits with status 1 when the report is
missing, was written by an incompatible format version, or is out of date.

Examples:
  autodomd check
  autodomd check --output docs/TODO.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		result, err := pipeline.Check(cfg.ScanConfig(), cfg.GeneratorConfig(regenerationCommand(cfg)), logger)
		out := cmd.OutOrStdout()
		if errors.Is(err, pipeline.ErrStale) {
			fmt.Fprintf(out, "%s %s is out of date (%d tasks recorded, %d found)\n",
				red("✗"), cyan(result.OutputPath), result.Header.Tasks, result.Scan.TasksFound)
			fmt.Fprintf(out, "Run '%s' to update it\n", result.Header.Command)
			return err
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s is up to date (%s tasks, generated %s)\n",
			green("✓"), cyan(result.OutputPath), cyan(result.Scan.TasksFound),
			result.Header.Generated.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	addScanFlags(checkCmd)
	addOutputFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
