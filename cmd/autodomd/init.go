package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autodomd/autodomd/internal/bootstrap"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create todo/ with sample tasks and a default config",
	Long: `Initialize autodomd in a project by creating:
  - todo/ directory
  - todo/sample-task.md and todo/sample.py (unless --no-samples)
  - .autodomd.yaml with the default configuration

Existing files are never overwritten. The project directory defaults to
the current directory. Commands read .autodomd.yaml from the current
directory, or from the --root directory when the current one has none.

Example:
  cd ~/myproject
  autodomd init
  autodomd init --no-samples`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		_, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		noSamples, _ := cmd.Flags().GetBool("no-samples")

		result, err := bootstrap.Init(dir, !noSamples)
		if err != nil {
			return fmt.Errorf("initializing %s: %w", dir, err)
		}
		logger.Debug("init complete", "dir", dir, "samples", len(result.SampleFilesCreated))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n%s Initialized autodomd\n\n", green("✓"))
		if result.TodoDirCreated {
			fmt.Fprintf(out, "  Created: %s\n", cyan(result.TodoDir))
		} else {
			fmt.Fprintf(out, "  Exists: %s\n", cyan(result.TodoDir))
		}
		for _, path := range result.SampleFilesCreated {
			fmt.Fprintf(out, "  Created: %s\n", cyan(path))
		}
		if result.ConfigCreated {
			fmt.Fprintf(out, "  Created: %s\n", cyan(result.ConfigFile))
		}
		fmt.Fprintln(out)

		fmt.Fprintf(out, "%s Next steps:\n", gray("→"))
		fmt.Fprintf(out, "  %s\n", gray("autodomd scan       # Count tasks"))
		fmt.Fprintf(out, "  %s\n", gray("autodomd generate   # Write TODO.md"))
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("no-samples", false, "Do not create sample task files")
	rootCmd.AddCommand(initCmd)
}
