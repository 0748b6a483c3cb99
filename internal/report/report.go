// Package report assembles discovered tasks into the generated TODO document.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/autodomd/autodomd/internal/parser"
	"github.com/autodomd/autodomd/internal/types"
)

const (
	// DefaultOutputPath is where the report is written unless configured otherwise
	DefaultOutputPath = "TODO.md"

	noTasksNotice = "*No tasks found.*\n"
)

// Config controls how the report is rendered and where it is written
type Config struct {
	OutputPath string
	// RootPath is the scan root; task paths are shown relative to it
	RootPath      string
	IncludeHeader bool
	// Command is the regeneration command recorded in the header
	Command string

	Descriptions  bool
	Metadata      bool
	Timestamps    bool
	LevelHeadings bool

	// Foundations maps todo/ folder names to foundation task titles.
	// Entries are merged over DefaultFoundations.
	Foundations map[string]string

	// Now returns the generation time; defaults to time.Now
	Now func() time.Time
}

// DefaultConfig returns the configuration used by "autodomd generate"
func DefaultConfig() Config {
	return Config{
		OutputPath:    DefaultOutputPath,
		RootPath:      ".",
		IncludeHeader: true,
		Command:       "autodomd generate",
		Descriptions:  true,
		Metadata:      true,
		Timestamps:    true,
	}
}

// Generator renders and writes reports
type Generator struct {
	cfg         Config
	foundations map[string]string
	logger      *log.Logger
}

// New creates a generator. A nil logger discards output.
func New(cfg Config, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.RootPath == "" {
		cfg.RootPath = "."
	}
	return &Generator{
		cfg:         cfg,
		foundations: MergeFoundations(cfg.Foundations),
		logger:      logger,
	}
}

// Render returns the full report text, including the header when enabled
func (g *Generator) Render(tasks []types.Task) string {
	body := g.RenderBody(tasks)
	if !g.cfg.IncludeHeader {
		return body
	}
	h := Header{
		Format:    FormatVersion,
		Generator: GeneratorName,
		Generated: g.cfg.Now().UTC().Truncate(time.Second),
		Tasks:     len(tasks),
		Command:   g.cfg.Command,
	}
	return h.Render() + body
}

// RenderBody returns the category sections without the header
func (g *Generator) RenderBody(tasks []types.Task) string {
	if len(tasks) == 0 {
		return noTasksNotice
	}

	entries := g.prepare(tasks)
	groups := make(map[string][]*entry)
	for _, e := range entries {
		name := e.task.Category.DisplayName()
		groups[name] = append(groups[name], e)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		group := groups[name]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].level != group[j].level {
				return group[i].level < group[j].level
			}
			return group[i].task.Priority > group[j].task.Priority
		})

		fmt.Fprintf(&b, "## %s\n\n", name)
		level := -1
		for _, e := range group {
			if g.cfg.LevelHeadings && e.level != level {
				if level >= 0 {
					b.WriteString("\n")
				}
				level = e.level
				fmt.Fprintf(&b, "### Level %d\n\n", level)
			}
			g.writeEntry(&b, e)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ComparableBody renders the body without file timestamps, so it only
// changes when task content changes. Pair it with StripTimestamps on the
// stored report.
func (g *Generator) ComparableBody(tasks []types.Task) string {
	stable := *g
	stable.cfg.Timestamps = false
	return stable.RenderBody(tasks)
}

// Write renders the report and replaces the output file with it
func (g *Generator) Write(tasks []types.Task) error {
	path := g.cfg.OutputPath
	if path == "" {
		path = DefaultOutputPath
	}
	content := g.Render(tasks)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return types.IOError(dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return types.IOError(path, err)
	}
	g.logger.Debug("wrote report", "path", path, "tasks", len(tasks))
	return nil
}

// entry is a task plus everything the renderer derives for it
type entry struct {
	task       types.Task
	display    string
	content    string
	hasContent bool
	meta       *parser.Metadata
	level      int
	foundation string
}

// prepare orders tasks by category then location and resolves their
// enrichment data and foundation levels
func (g *Generator) prepare(tasks []types.Task) []*entry {
	c := types.NewCollection(tasks...)
	c.Sort()
	sorted := c.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Category.DisplayName() < sorted[j].Category.DisplayName()
	})

	cache := make(map[string]fileContent)
	entries := make([]*entry, 0, len(sorted))
	for _, task := range sorted {
		e := &entry{task: task, display: relSlash(g.cfg.RootPath, task.Location.FilePath)}
		if task.Source == types.SourceMarkdown {
			fc, ok := cache[task.Location.FilePath]
			if !ok {
				fc = g.readContent(task.Location.FilePath)
				cache[task.Location.FilePath] = fc
			}
			e.content, e.hasContent = fc.text, fc.ok
			if fc.ok {
				e.meta = extractMetadata(fc.text)
			}
		}
		entries = append(entries, e)
	}
	g.assignLevels(entries)
	return entries
}

func (g *Generator) writeEntry(b *strings.Builder, e *entry) {
	shown := e.task
	shown.Location.FilePath = e.display
	b.WriteString(shown.String())
	b.WriteString("\n")

	if e.task.Source != types.SourceMarkdown {
		return
	}
	if g.cfg.Descriptions && e.hasContent {
		if desc, ok := BriefDescription(e.content); ok {
			fmt.Fprintf(b, "  *%s*\n", desc)
		}
	}
	if g.cfg.Metadata {
		if line := metadataLine(e.meta, e.foundation); line != "" {
			fmt.Fprintf(b, "  %s\n", line)
		}
	}
	if g.cfg.Timestamps {
		if line, ok := timestampLine(e.task.Location.FilePath); ok {
			fmt.Fprintf(b, "  %s\n", line)
		}
	}
}

// relSlash returns path relative to root with forward slashes, or path
// itself (slash-separated) when it is not below root
func relSlash(root, path string) string {
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(r)
		}
	}
	return filepath.ToSlash(path)
}
