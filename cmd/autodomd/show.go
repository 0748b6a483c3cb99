package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autodomd/autodomd/internal/types"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render TODO.md in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		width, _ := cmd.Flags().GetInt("width")

		data, err := os.ReadFile(cfg.Output)
		if err != nil {
			return types.IOError(cfg.Output, err)
		}
		rendered, err := renderMarkdown(string(data), width)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", cfg.Output, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	addOutputFlags(showCmd)
	showCmd.Flags().Int("width", 100, "Wrap width (0 = renderer default)")
	rootCmd.AddCommand(showCmd)
}
