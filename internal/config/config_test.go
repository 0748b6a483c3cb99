package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("root", ".", "")
	fs.Bool("follow-links", false, "")
	fs.Int("max-depth", 10, "")
	fs.String("output", "TODO.md", "")
	fs.Bool("verbose", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, path, err := Load(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Defaults().Root, cfg.Root)
	assert.Equal(t, 10, cfg.MaxDepth)
	assert.Equal(t, "TODO.md", cfg.Output)
	assert.True(t, cfg.Header)
	assert.True(t, cfg.Report.Descriptions)
	assert.False(t, cfg.Report.LevelHeadings)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, DefaultHistoryPath, cfg.History.Path)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	content := `root: src
max_depth: 4
output: docs/TODO.md
report:
  timestamps: false
  level_headings: true
foundations:
  billing: Payments Core
history:
  enabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, path, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
	assert.Equal(t, "src", cfg.Root)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.Equal(t, "docs/TODO.md", cfg.Output)
	assert.False(t, cfg.Report.Timestamps)
	assert.True(t, cfg.Report.Descriptions, "unset keys keep their defaults")
	assert.True(t, cfg.Report.LevelHeadings)
	assert.Equal(t, map[string]string{"billing": "Payments Core"}, cfg.Foundations)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, DefaultHistoryPath, cfg.History.Path)

	t.Setenv("AUTODOMD_MAX_DEPTH", "6")
	t.Setenv("AUTODOMD_REPORT_TIMESTAMPS", "true")
	cfg, _, err = Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.MaxDepth, "environment overrides the file")
	assert.True(t, cfg.Report.Timestamps)

	cfg, _, err = Load(LoadOptions{Dir: dir, Flags: testFlags(t, "--max-depth=2")})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxDepth, "changed flags override everything")
	assert.Equal(t, "docs/TODO.md", cfg.Output, "unchanged flags do not override the file")
}

func TestLoad_FileUnderRequestedRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("max_depth: 3\n"), 0644))
	workDir := t.TempDir()

	cfg, path, err := Load(LoadOptions{Dir: workDir, Flags: testFlags(t, "--root="+root)})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, root, cfg.Root, "the flag still wins over the file")

	t.Setenv("AUTODOMD_ROOT", root)
	cfg, path, err = Load(LoadOptions{Dir: workDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
	assert.Equal(t, 3, cfg.MaxDepth)

	// A file in the working directory takes precedence
	require.NoError(t, os.WriteFile(filepath.Join(workDir, FileName), []byte("max_depth: 7\n"), 0644))
	cfg, path, err = Load(LoadOptions{Dir: workDir, Flags: testFlags(t, "--root="+root)})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, FileName), path)
	assert.Equal(t, 7, cfg.MaxDepth)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("output: OUT.md\n"), 0644))

	cfg, path, err := Load(LoadOptions{ConfigFile: custom})
	require.NoError(t, err)
	assert.Equal(t, custom, path)
	assert.Equal(t, "OUT.md", cfg.Output)

	_, _, err = Load(LoadOptions{ConfigFile: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("max_depth: [1, 2\n"), 0644))

	_, _, err := Load(LoadOptions{Dir: dir})
	assert.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, _, err := Load(LoadOptions{Dir: t.TempDir(), Flags: testFlags(t, "--max-depth=-1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unlimited depth", func(c *Config) { c.MaxDepth = 0 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -3 }, true},
		{"empty output", func(c *Config) { c.Output = " " }, true},
		{"history without path", func(c *Config) { c.History = HistoryOptions{Enabled: true} }, true},
		{"disabled history without path", func(c *Config) { c.History = HistoryOptions{} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Defaults()
	cfg.Root = "proj"
	cfg.FollowLinks = true
	cfg.Report.LevelHeadings = true
	cfg.Foundations = map[string]string{"core": "Kernel"}

	scan := cfg.ScanConfig()
	assert.Equal(t, "proj", scan.RootPath)
	assert.True(t, scan.FollowLinks)
	assert.Equal(t, 10, scan.MaxDepth)

	rep := cfg.GeneratorConfig("autodomd generate --root proj")
	assert.Equal(t, "TODO.md", rep.OutputPath)
	assert.Equal(t, "proj", rep.RootPath)
	assert.True(t, rep.IncludeHeader)
	assert.True(t, rep.LevelHeadings)
	assert.Equal(t, "autodomd generate --root proj", rep.Command)
	assert.Equal(t, "Kernel", rep.Foundations["core"])
}

func TestWriteDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	created, err := WriteDefaultFile(path)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# autodomd configuration")

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, Defaults(), decoded)

	// Existing files are left alone
	require.NoError(t, os.WriteFile(path, []byte("output: mine.md\n"), 0644))
	created, err = WriteDefaultFile(path)
	require.NoError(t, err)
	assert.False(t, created)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output: mine.md\n", string(data))

	// The written file loads back to the defaults
	dir := t.TempDir()
	_, err = WriteDefaultFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	cfg, _, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, Defaults().Output, cfg.Output)
}
