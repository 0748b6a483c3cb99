package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/autodomd/autodomd/internal/config"
	"github.com/autodomd/autodomd/internal/logging"
)

var (
	// Version is the release version (set via -ldflags)
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags)
	Commit = "unknown"

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "autodomd",
	Short: "Collect TODO comments and task files into TODO.md",
	Long: `autodomd scans a project for TODO comments in source files and for task
files under todo/, and writes them to a single generated TODO.md.

Examples:
  autodomd init               # Create todo/ with sample tasks
  autodomd scan               # Count tasks without writing anything
  autodomd generate           # Write TODO.md
  autodomd check              # Fail if TODO.md is out of date`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output, including skipped files")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is ./"+config.FileName+")")
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// addScanFlags registers the discovery flags shared by scan, generate and check
func addScanFlags(cmd *cobra.Command) {
	defaults := config.Defaults()
	cmd.Flags().String("root", defaults.Root, "Project root to scan")
	cmd.Flags().Bool("follow-links", defaults.FollowLinks, "Follow symbolic links")
	cmd.Flags().Int("max-depth", defaults.MaxDepth, "Maximum directory depth (0 = unlimited)")
}

// addOutputFlags registers the report location flags
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("output", config.Defaults().Output, "Report path")
}

// loadConfig merges the config file, environment and the command's flags
// and builds the logger for the command
func loadConfig(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, path, err := config.Load(config.LoadOptions{
		ConfigFile: cfgFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return cfg, logger, nil
}

// regenerationCommand returns the generate invocation that reproduces cfg,
// listing only the settings that differ from the defaults
func regenerationCommand(cfg *config.Config) string {
	defaults := config.Defaults()
	parts := []string{"autodomd", "generate"}
	if cfg.Root != defaults.Root {
		parts = append(parts, "--root", shellQuote(cfg.Root))
	}
	if cfg.FollowLinks {
		parts = append(parts, "--follow-links")
	}
	if cfg.MaxDepth != defaults.MaxDepth {
		parts = append(parts, "--max-depth", strconv.Itoa(cfg.MaxDepth))
	}
	if cfg.Output != defaults.Output {
		parts = append(parts, "--output", shellQuote(cfg.Output))
	}
	if cfgFile != "" {
		parts = append(parts, "--config", shellQuote(cfgFile))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'$`\\") {
		return strconv.Quote(s)
	}
	return s
}
