package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/autodomd/autodomd/internal/config"
	"github.com/autodomd/autodomd/internal/pipeline"
	"github.com/autodomd/autodomd/internal/report"
	"github.com/autodomd/autodomd/internal/storage"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Scan the project and write TODO.md",
	Long: `Scan the project and write the task report, replacing any previous
report in full.

Examples:
  autodomd generate
  autodomd generate --output docs/TODO.md
  autodomd generate --no-header`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if noHeader, _ := cmd.Flags().GetBool("no-header"); noHeader {
			cfg.Header = false
		}

		command := regenerationCommand(cfg)
		result, err := pipeline.Generate(cfg.ScanConfig(), cfg.GeneratorConfig(command), logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Generated %s\n", green("✓"), cyan(result.OutputPath))
		fmt.Fprintf(out, "  Tasks written: %s\n", cyan(result.TasksWritten))
		if cfg.Verbose {
			fmt.Fprintf(out, "  Files scanned: %d\n", result.Scan.FilesScanned())
			fmt.Fprint(out, renderCategoryCounts(report.Summarize(result.Scan.Tasks)))
		}

		if cfg.History.Enabled {
			if err := recordRun(cmd.Context(), cfg, command, result, logger); err != nil {
				return err
			}
			fmt.Fprintf(out, "  %s\n", gray("Run recorded in "+cfg.History.Path))
		}
		return nil
	},
}

func init() {
	addScanFlags(generateCmd)
	addOutputFlags(generateCmd)
	generateCmd.Flags().Bool("no-header", false, "Omit the provenance header")
	rootCmd.AddCommand(generateCmd)
}

func recordRun(ctx context.Context, cfg *config.Config, command string, result *pipeline.GenerateResult, logger *log.Logger) error {
	store, err := storage.Open(ctx, cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = store.Close() }()

	categories := make(map[string]int)
	for _, c := range report.Summarize(result.Scan.Tasks) {
		categories[c.Category] = c.Count
	}
	run := &storage.Run{
		Root:          cfg.Root,
		OutputPath:    result.OutputPath,
		Command:       command,
		MarkdownFiles: result.Scan.MarkdownFilesScanned,
		SourceFiles:   result.Scan.SourceFilesScanned,
		TasksFound:    result.TasksWritten,
		Skipped:       result.Scan.Skipped,
		Categories:    categories,
	}
	if err := store.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	logger.Debug("recorded run", "id", run.ID)
	return nil
}
