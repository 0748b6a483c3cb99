package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autodomd/autodomd/internal/pipeline"
	"github.com/autodomd/autodomd/internal/report"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the project and count tasks",
	Long: `Scan the project for TODO comments and todo/ task files without writing
a report.

Examples:
  autodomd scan
  autodomd scan --root ../service --max-depth 4
  autodomd scan --summary     # Show tasks per category`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		summary, _ := cmd.Flags().GetBool("summary")

		result, err := pipeline.Scan(cfg.ScanConfig(), logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Scan complete: %s tasks in %s files\n",
			green("✓"), cyan(result.TasksFound), cyan(result.FilesScanned()))

		if cfg.Verbose {
			fmt.Fprintf(out, "  Markdown files: %d\n", result.MarkdownFilesScanned)
			fmt.Fprintf(out, "  Source files: %d\n", result.SourceFilesScanned)
			if result.Skipped > 0 {
				fmt.Fprintf(out, "  Skipped: %d\n", result.Skipped)
			}
			fmt.Fprint(out, renderCategoryCounts(report.Summarize(result.Tasks)))
		}

		if summary {
			rendered, err := renderMarkdown(report.RenderSummary(result.Tasks), 0)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

func init() {
	addScanFlags(scanCmd)
	scanCmd.Flags().Bool("summary", false, "Render a per-category task summary")
	rootCmd.AddCommand(scanCmd)
}
