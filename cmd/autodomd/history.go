package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autodomd/autodomd/internal/config"
	"github.com/autodomd/autodomd/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded generate runs",
	Long: `List the most recent generate runs recorded in the history database.
Runs are only recorded when history.enabled is set in the configuration.

Examples:
  autodomd history
  autodomd history --limit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		out := cmd.OutOrStdout()

		if _, err := os.Stat(cfg.History.Path); os.IsNotExist(err) {
			fmt.Fprintf(out, "No runs recorded yet\n")
			if !cfg.History.Enabled {
				fmt.Fprintf(out, "%s\n", gray("Set history.enabled: true in "+cfgFileOrDefault()+" to record runs"))
			}
			return nil
		}

		store, err := storage.Open(cmd.Context(), cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer func() { _ = store.Close() }()

		runs, err := store.RecentRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintf(out, "No runs recorded yet\n")
			return nil
		}
		for _, run := range runs {
			printRun(out, run)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", storage.DefaultRecentLimit, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func printRun(w io.Writer, run storage.Run) {
	id := run.ID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(w, "%s  %s  %s tasks  %s\n",
		cyan(id), run.StartedAt.Local().Format("2006-01-02 15:04:05"), cyan(run.TasksFound), run.OutputPath)

	parts := make([]string, 0, len(run.Categories))
	for _, name := range run.CategoryNames() {
		parts = append(parts, fmt.Sprintf("%s=%d", name, run.Categories[name]))
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "  %s\n", gray(strings.Join(parts, " ")))
	}
}

func cfgFileOrDefault() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.FileName
}
