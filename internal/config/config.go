package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/autodomd/autodomd/internal/discovery"
	"github.com/autodomd/autodomd/internal/report"
)

const (
	// FileName is the project configuration file looked up in the working directory
	FileName = ".autodomd.yaml"
	// EnvPrefix prefixes environment overrides, e.g. AUTODOMD_MAX_DEPTH
	EnvPrefix = "AUTODOMD"
	// DefaultHistoryPath is where run history is stored when enabled
	DefaultHistoryPath = ".autodomd/history.db"
)

// ReportOptions toggles the optional parts of the generated report
type ReportOptions struct {
	// Descriptions adds the first sentence of each task's Overview section
	Descriptions bool `mapstructure:"descriptions" yaml:"descriptions"`
	// Metadata adds dependencies, blocked tasks, effort and foundation
	Metadata bool `mapstructure:"metadata" yaml:"metadata"`
	// Timestamps adds file creation and modification times
	Timestamps bool `mapstructure:"timestamps" yaml:"timestamps"`
	// LevelHeadings separates foundation levels with "### Level N" headings
	LevelHeadings bool `mapstructure:"level_headings" yaml:"level_headings"`
}

// HistoryOptions configures the run history database
type HistoryOptions struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Config is the merged configuration for one invocation
type Config struct {
	Root        string `mapstructure:"root" yaml:"root"`
	FollowLinks bool   `mapstructure:"follow_links" yaml:"follow_links"`
	// MaxDepth limits recursion; 0 means unlimited
	MaxDepth int    `mapstructure:"max_depth" yaml:"max_depth"`
	Output   string `mapstructure:"output" yaml:"output"`
	Header   bool   `mapstructure:"header" yaml:"header"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`

	Report ReportOptions `mapstructure:"report" yaml:"report"`
	// Foundations maps todo/ folders to foundation task titles
	Foundations map[string]string `mapstructure:"foundations" yaml:"foundations,omitempty"`
	History     HistoryOptions    `mapstructure:"history" yaml:"history"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Root:        ".",
		FollowLinks: false,
		MaxDepth:    discovery.DefaultMaxDepth,
		Output:      report.DefaultOutputPath,
		Header:      true,
		Verbose:     false,
		Report: ReportOptions{
			Descriptions: true,
			Metadata:     true,
			Timestamps:   true,
		},
		History: HistoryOptions{
			Path: DefaultHistoryPath,
		},
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth cannot be negative (got %d)", c.MaxDepth)
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history.path cannot be empty when history is enabled")
	}
	return nil
}

// ScanConfig returns the discovery settings
func (c Config) ScanConfig() discovery.Config {
	return discovery.Config{
		RootPath:    c.Root,
		FollowLinks: c.FollowLinks,
		MaxDepth:    c.MaxDepth,
	}
}

// GeneratorConfig returns the report settings; command is recorded in the header
func (c Config) GeneratorConfig(command string) report.Config {
	return report.Config{
		OutputPath:    c.Output,
		RootPath:      c.Root,
		IncludeHeader: c.Header,
		Command:       command,
		Descriptions:  c.Report.Descriptions,
		Metadata:      c.Report.Metadata,
		Timestamps:    c.Report.Timestamps,
		LevelHeadings: c.Report.LevelHeadings,
		Foundations:   c.Foundations,
	}
}

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"root":         "root",
	"follow-links": "follow_links",
	"max-depth":    "max_depth",
	"output":       "output",
	"verbose":      "verbose",
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist
	ConfigFile string
	// Dir is searched for FileName when ConfigFile is empty. Default: "."
	// When Dir has none, the root named by the --root flag or AUTODOMD_ROOT
	// is searched next.
	Dir string
	// Flags are bound to their configuration keys; only changed flags override
	Flags *pflag.FlagSet
}

// Load merges defaults, the config file, AUTODOMD_* environment variables and
// flags, in increasing order of precedence. It returns the config and the path
// of the file that was read, if any.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("follow_links", defaults.FollowLinks)
	v.SetDefault("max_depth", defaults.MaxDepth)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("header", defaults.Header)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("report.descriptions", defaults.Report.Descriptions)
	v.SetDefault("report.metadata", defaults.Report.Metadata)
	v.SetDefault("report.timestamps", defaults.Report.Timestamps)
	v.SetDefault("report.level_headings", defaults.Report.LevelHeadings)
	v.SetDefault("foundations", map[string]string{})
	v.SetDefault("history.enabled", defaults.History.Enabled)
	v.SetDefault("history.path", defaults.History.Path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFile)
		}
		resolvedPath = opts.ConfigFile
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		if local := filepath.Join(dir, FileName); fileExists(local) {
			resolvedPath = local
		} else if root := requestedRoot(opts.Flags); root != "" {
			if atRoot := filepath.Join(root, FileName); fileExists(atRoot) {
				resolvedPath = atRoot
			}
		}
	}
	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", resolvedPath, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, resolvedPath, nil
}

// requestedRoot returns the root given on the command line or in the
// environment, before any config file is read
func requestedRoot(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup("root"); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	return os.Getenv(EnvPrefix + "_ROOT")
}

const fileComment = `# autodomd configuration
# Every value can be overridden with an AUTODOMD_<KEY> environment variable
# (nested keys use "_", e.g. AUTODOMD_REPORT_TIMESTAMPS) or a command-line flag.
`

// WriteDefaultFile writes the default configuration to path unless a file
// already exists there. It reports whether the file was created.
func WriteDefaultFile(path string) (bool, error) {
	var buf bytes.Buffer
	buf.WriteString(fileComment)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Defaults()); err != nil {
		return false, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return false, fmt.Errorf("failed to encode config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return false, err
	}
	return true, f.Close()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
