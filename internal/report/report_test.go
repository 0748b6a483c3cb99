package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autodomd/autodomd/internal/parser"
	"github.com/autodomd/autodomd/internal/types"
)

var fixedNow = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

func testConfig(root string) Config {
	cfg := DefaultConfig()
	cfg.RootPath = root
	cfg.Timestamps = false
	cfg.Now = fixedNow
	return cfg
}

func writeFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func headings(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			out = append(out, strings.TrimPrefix(line, "## "))
		}
	}
	return out
}

func TestRender_Empty(t *testing.T) {
	g := New(testConfig("."), nil)
	content := g.Render(nil)

	assert.Equal(t, `<!-- autodomd format=v1.0.0 generator=autodomd generated=2025-01-02T03:04:05Z tasks=0 command="autodomd generate" -->
# Project Tasks
*Auto-generated by autodomd. Do not edit. Regenerate with `+"`autodomd generate`"+`.*

---

*No tasks found.*
`, content)
	assert.Empty(t, headings(content))

	cfg := testConfig(".")
	cfg.IncludeHeader = false
	assert.Equal(t, "*No tasks found.*\n", New(cfg, nil).Render([]types.Task{}))
}

func TestRender_OneSectionPerCategory(t *testing.T) {
	root := t.TempDir()
	tasks := []types.Task{
		types.NewCodeTask("style button", types.NewCategory("UI"), filepath.Join(root, "web", "b.ts"), 4),
		types.NewCodeTask("generic fix", types.General, filepath.Join(root, "main.go"), 9),
		types.NewCodeTask("fix login bug", types.NewCategory("Auth"), filepath.Join(root, "a.rs"), 12),
		types.NewCodeTask("cleanup", types.General, filepath.Join(root, "lib.rs"), 1),
		types.NewCodeTask("theme", types.NewCategory("UI"), filepath.Join(root, "web", "a.ts"), 2),
	}

	cfg := testConfig(root)
	cfg.IncludeHeader = false
	body := New(cfg, nil).Render(tasks)

	assert.Equal(t, []string{"Auth", "General", "UI"}, headings(body))
	assert.Equal(t, `## Auth

- [ ] fix login bug (a.rs:12)

## General

- [ ] cleanup (lib.rs:1)
- [ ] generic fix (main.go:9)

## UI

- [ ] theme (web/a.ts:2)
- [ ] style button (web/b.ts:4)

`, body)
}

func TestRender_Deterministic(t *testing.T) {
	root := t.TempDir()
	tasks := []types.Task{
		types.NewCodeTask("b", types.General, filepath.Join(root, "b.go"), 1),
		types.NewCodeTask("a", types.NewCategory("Core"), filepath.Join(root, "a.go"), 1),
	}
	reversed := []types.Task{tasks[1], tasks[0]}

	g := New(testConfig(root), nil)
	first := g.Render(tasks)
	assert.Equal(t, first, g.Render(tasks))
	assert.Equal(t, first, g.Render(reversed), "input order is insignificant")
}

func TestRender_PriorityWithinCategory(t *testing.T) {
	root := t.TempDir()
	files := []string{
		writeFile(t, root, "todo/a-low.md", "# Low task\n```yaml\npriority: low\n```\n"),
		writeFile(t, root, "todo/b-high.md", "# High task\n```yaml\npriority: high\n```\n"),
		writeFile(t, root, "todo/c-medium.md", "# Medium task\n"),
		writeFile(t, root, "todo/d-high.md", "# Second high\n**Priority:** High\n"),
	}
	tasks := parser.New(root, nil).ParseMarkdownFiles(files)
	require.Len(t, tasks, 4)

	cfg := testConfig(root)
	cfg.IncludeHeader = false
	body := New(cfg, nil).Render(tasks)

	assert.Equal(t, `## General

- [ ] High task (todo/b-high.md)
- [ ] Second high (todo/d-high.md)
- [ ] Medium task (todo/c-medium.md)
- [ ] Low task (todo/a-low.md)

`, body)
}

func levelFixture(t *testing.T) (string, []types.Task) {
	root := t.TempDir()
	files := []string{
		writeFile(t, root, "todo/auth/login.md",
			"# Login flow\n\n```yaml\npriority: high\nestimated_effort: 2d\n```\n\n## Overview\nBuild the login flow. More text.\n\n## Notes\nx\n"),
		writeFile(t, root, "todo/auth/oauth/google.md",
			"# Google sign-in\n```yaml\npriority: low\ndependencies: [login-flow, nonexistent]\n```\n"),
		writeFile(t, root, "todo/auth/session.md",
			"# Session store\n```yaml\npriority: low\ndependencies:\n  - Login\n```\n"),
	}
	tasks := parser.New(root, nil).ParseMarkdownFiles(files)
	tasks = append(tasks, types.NewCodeTask("wire tokens", types.NewCategory("Auth"), filepath.Join(root, "src", "a.go"), 3))
	return root, tasks
}

func TestRender_FoundationLevels(t *testing.T) {
	root, tasks := levelFixture(t)
	cfg := testConfig(root)
	cfg.IncludeHeader = false

	body := New(cfg, nil).Render(tasks)
	assert.Equal(t, `## Auth

- [ ] Login flow (todo/auth/login.md)
  *Build the login flow.*
  Effort: 2d
- [ ] wire tokens (src/a.go:3)
- [ ] Session store (todo/auth/session.md)
  Depends on: Login
- [ ] Google sign-in (todo/auth/oauth/google.md)
  Depends on: login-flow, nonexistent | Foundation: Authentication System

`, body)

	cfg.LevelHeadings = true
	cfg.Descriptions = false
	cfg.Metadata = false
	body = New(cfg, nil).Render(tasks)
	assert.Equal(t, `## Auth

### Level 0

- [ ] Login flow (todo/auth/login.md)
- [ ] wire tokens (src/a.go:3)

### Level 1

- [ ] Session store (todo/auth/session.md)

### Level 2

- [ ] Google sign-in (todo/auth/oauth/google.md)

`, body)
}

func TestRender_FoundationOverrides(t *testing.T) {
	root, tasks := levelFixture(t)
	cfg := testConfig(root)
	cfg.IncludeHeader = false
	cfg.Descriptions = false
	cfg.Foundations = map[string]string{"AUTH": "Identity Platform"}

	body := New(cfg, nil).Render(tasks)
	assert.Contains(t, body, "Foundation: Identity Platform")

	cfg.Foundations = map[string]string{"auth": ""}
	body = New(cfg, nil).Render(tasks)
	assert.NotContains(t, body, "Foundation:")
}

func TestRender_UnreadableMarkdownDegrades(t *testing.T) {
	root := t.TempDir()
	task := types.NewMarkdownTask("Gone", types.General, types.PriorityMedium, filepath.Join(root, "todo", "gone.md"))

	cfg := testConfig(root)
	cfg.IncludeHeader = false
	cfg.Timestamps = true
	assert.Equal(t, "## General\n\n- [ ] Gone (todo/gone.md)\n\n", New(cfg, nil).Render([]types.Task{task}))
}

func TestRender_Timestamps(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "todo/task.md", "# Task\n")
	mod := time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mod, mod))

	cfg := testConfig(root)
	cfg.IncludeHeader = false
	cfg.Timestamps = true
	body := New(cfg, nil).Render(parser.New(root, nil).ParseMarkdownFiles([]string{path}))

	assert.Contains(t, body, "Modified: 2024-06-01 14:30\n")
}

func TestComparableBody_IgnoresFileTimes(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "todo/task.md", "# Task\n\n## Overview\nShip it.\n")
	tasks := parser.New(root, nil).ParseMarkdownFiles([]string{path})

	cfg := testConfig(root)
	cfg.Timestamps = true
	g := New(cfg, nil)

	before := time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, before, before))
	written := g.RenderBody(tasks)
	require.Contains(t, written, "Modified: 2024-06-01 14:30\n")

	after := before.Add(2 * time.Hour)
	require.NoError(t, os.Chtimes(path, after, after))
	assert.NotEqual(t, written, g.RenderBody(tasks))

	stable := g.ComparableBody(tasks)
	assert.NotContains(t, stable, "Modified:")
	assert.Contains(t, stable, "  *Ship it.*\n")
	assert.Equal(t, stable, StripTimestamps(written))
}

func TestStripTimestamps(t *testing.T) {
	body := "## General\n\n" +
		"- [ ] Task (todo/task.md)\n" +
		"  *Ship it.*\n" +
		"  Created: 2024-06-01 10:00 | Modified: 2024-06-01 14:30\n" +
		"- [ ] Other (todo/other.md)\n" +
		"  Modified: 2024-06-02 09:00\n" +
		"\n"

	assert.Equal(t, "## General\n\n- [ ] Task (todo/task.md)\n  *Ship it.*\n- [ ] Other (todo/other.md)\n\n", StripTimestamps(body))
	assert.Equal(t, "*No tasks found.*\n", StripTimestamps("*No tasks found.*\n"))
}

func TestWrite(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "docs", "generated", "TODO.md")

	cfg := testConfig(root)
	cfg.OutputPath = out
	g := New(cfg, nil)

	tasks := []types.Task{
		types.NewCodeTask("one", types.General, filepath.Join(root, "a.go"), 1),
		types.NewCodeTask("two", types.General, filepath.Join(root, "b.go"), 1),
	}
	require.NoError(t, g.Write(tasks))
	require.NoError(t, g.Write(tasks[:1]))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, g.Render(tasks[:1]), string(data), "the file is overwritten in full")
	assert.NotContains(t, string(data), "two")
}

func TestWrite_Unwritable(t *testing.T) {
	root := t.TempDir()
	blocker := writeFile(t, root, "file", "x")

	cfg := testConfig(root)
	cfg.OutputPath = filepath.Join(blocker, "TODO.md")
	err := New(cfg, nil).Write(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
}

func TestBriefDescription(t *testing.T) {
	long := strings.Repeat("a", 150)
	lateDot := strings.Repeat("word ", 30) + "end."

	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"first sentence", "# T\n## Overview\nFirst sentence. Second one.\n## Next\n", "First sentence.", true},
		{"no overview", "# T\n## Details\nText.\n", "", false},
		{"last section", "## Overview\nNo period here\n", "No period here", true},
		{"collapses whitespace", "## Overview\n\n  Multi\n  line   text\n\n## Next\n", "Multi line text", true},
		{"keeps subsections", "## Overview\nIntro\n### Detail\nMore.\n", "Intro ### Detail More.", true},
		{"long without dot", "## Overview\n" + long + "\n", strings.Repeat("a", 100) + "...", true},
		{"dot after limit", "## Overview\n" + lateDot + "\n", lateDot[:100] + "...", true},
		{"empty section", "## Overview\n\n## Next\nText.\n", "", false},
		{"crlf", "## Overview\r\nWindows text.\r\n", "Windows text.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BriefDescription(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataLine(t *testing.T) {
	assert.Equal(t, "", metadataLine(nil, ""))
	assert.Equal(t, "Foundation: API Foundation", metadataLine(nil, "API Foundation"))
	meta := &parser.Metadata{
		Dependencies:    []string{"a", "b"},
		Blocks:          []string{"c"},
		EstimatedEffort: "2d",
	}
	assert.Equal(t, "Depends on: a, b | Blocks: c | Effort: 2d | Foundation: Core Infrastructure", metadataLine(meta, "Core Infrastructure"))
}

func TestSummarize(t *testing.T) {
	tasks := []types.Task{
		types.NewCodeTask("a", types.NewCategory("UI"), "a.go", 1),
		types.NewCodeTask("b", types.General, "b.go", 1),
		types.NewCodeTask("c", types.NewCategory("UI"), "c.go", 1),
	}

	assert.Equal(t, []CategoryCount{
		{Category: "General", Count: 1},
		{Category: "UI", Count: 2},
	}, Summarize(tasks))
	assert.Empty(t, Summarize(nil))
}

func TestRenderSummary(t *testing.T) {
	got := RenderSummary([]types.Task{
		types.NewCodeTask("a", types.NewCategory("Auth"), "a.go", 1),
		types.NewCodeTask("b", types.NewCategory("Auth"), "b.go", 2),
	})
	assert.Equal(t, "## Task Summary\n\n- **Auth**: 2 tasks\n", got)

	assert.Equal(t, "## Task Summary\n\n*No tasks found.*\n", RenderSummary(nil))
}
