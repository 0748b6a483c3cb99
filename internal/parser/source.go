package parser

import (
	"regexp"
	"strings"

	"github.com/autodomd/autodomd/internal/types"
)

// defaultCommentPatterns applies to extensions without an entry in commentPatterns
var defaultCommentPatterns = []string{"//", "#", "/*"}

// commentPatterns maps a file extension to its comment markers, in priority order
var commentPatterns = map[string][]string{
	"rs":    {"//", "/*"},
	"js":    {"//", "/*"},
	"ts":    {"//", "/*"},
	"jsx":   {"//", "/*"},
	"tsx":   {"//", "/*"},
	"py":    {"#"},
	"java":  {"//", "/*"},
	"c":     {"//", "/*"},
	"cpp":   {"//", "/*"},
	"cc":    {"//", "/*"},
	"cxx":   {"//", "/*"},
	"h":     {"//", "/*"},
	"hpp":   {"//", "/*"},
	"go":    {"//"},
	"rb":    {"#"},
	"php":   {"//", "#", "/*"},
	"swift": {"//", "/*"},
	"kt":    {"//", "/*"},
	"scala": {"//", "/*"},
}

// todoPattern matches `TODO`, an optional `(Category)`, a colon and the title
var todoPattern = regexp.MustCompile(`TODO(?:\((\w+)\))?\s*:\s*(.+)`)

// CommentPatterns returns the comment markers for a file extension (without
// the dot). Unknown extensions get the default set. The returned slice is a copy.
func CommentPatterns(ext string) []string {
	patterns, ok := commentPatterns[ext]
	if !ok {
		patterns = defaultCommentPatterns
	}
	return append([]string(nil), patterns...)
}

// ParseTodoLine extracts a TODO annotation from a single line. The line must
// start with one of the comment markers once surrounding whitespace is
// removed; the first marker it starts with is the one used.
func ParseTodoLine(line string, patterns []string) (title string, category types.Category, ok bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range patterns {
		if !strings.HasPrefix(trimmed, marker) {
			continue
		}
		comment := strings.TrimSpace(trimmed[len(marker):])
		m := todoPattern.FindStringSubmatch(comment)
		if m == nil {
			return "", types.General, false
		}
		title = strings.TrimSpace(m[2])
		if title == "" {
			return "", types.General, false
		}
		return title, types.NewCategory(m[1]), true
	}
	return "", types.General, false
}

// ParseSourceContent returns the tasks found in the content of a source file.
// ext selects the comment markers; line numbers are 1-indexed.
func ParseSourceContent(path, ext, content string) []types.Task {
	patterns := CommentPatterns(ext)
	var tasks []types.Task
	for i, line := range splitLines(content) {
		title, category, ok := ParseTodoLine(line, patterns)
		if !ok {
			continue
		}
		tasks = append(tasks, types.NewCodeTask(title, category, path, i+1))
	}
	return tasks
}
