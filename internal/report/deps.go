package report

import (
	"strings"
	"unicode"

	"github.com/autodomd/autodomd/internal/discovery"
	"github.com/autodomd/autodomd/internal/types"
)

// DefaultFoundations maps well-known todo/ folders to the task every nested
// task in that folder builds on
var DefaultFoundations = map[string]string{
	"core":     "Core Infrastructure",
	"auth":     "Authentication System",
	"api":      "API Foundation",
	"database": "Database Schema",
	"ui":       "UI Framework",
	"testing":  "Test Infrastructure",
}

// MergeFoundations returns DefaultFoundations with overrides applied.
// Folder names are matched case-insensitively; an empty title removes an entry.
func MergeFoundations(overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(DefaultFoundations)+len(overrides))
	for folder, title := range DefaultFoundations {
		merged[folder] = title
	}
	for folder, title := range overrides {
		folder = strings.ToLower(strings.TrimSpace(folder))
		if title = strings.TrimSpace(title); title == "" {
			delete(merged, folder)
			continue
		}
		merged[folder] = title
	}
	return merged
}

// Slug lowercases s and collapses every run of non-alphanumeric characters to "-"
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// MatchesTitle reports whether a dependency reference names the task title,
// either as a case-insensitive substring or by slug
func MatchesTitle(ref, title string) bool {
	r := strings.ToLower(strings.TrimSpace(ref))
	if r == "" {
		return false
	}
	if strings.Contains(strings.ToLower(title), r) {
		return true
	}
	s := Slug(ref)
	return s != "" && s == Slug(title)
}

// foundationFolder returns the todo/ subfolder a nested markdown task lives
// in. Only tasks at least two directories below todo/ qualify.
func foundationFolder(display string) (string, bool) {
	parts := strings.Split(display, "/")
	for i, part := range parts {
		if part != discovery.TodoDirName {
			continue
		}
		// todo/<folder>/<sub>/<file>
		if len(parts)-i >= 4 {
			return strings.ToLower(parts[i+1]), true
		}
		return "", false
	}
	return "", false
}

// assignLevels sets each entry's foundation level to the number of distinct
// dependencies inferred for it. Code tasks stay at level 0.
func (g *Generator) assignLevels(entries []*entry) {
	for _, e := range entries {
		if e.task.Source != types.SourceMarkdown {
			continue
		}
		deps := make(map[string]bool)

		if folder, ok := foundationFolder(e.display); ok {
			if parent, known := g.foundations[folder]; known && !MatchesTitle(parent, e.task.Title) {
				e.foundation = parent
				deps[strings.ToLower(parent)] = true
			}
		}

		if e.meta != nil {
			for _, ref := range e.meta.Dependencies {
				if title, ok := resolveDependency(ref, e, entries); ok {
					deps[strings.ToLower(title)] = true
				}
			}
		}
		e.level = len(deps)
	}
}

// resolveDependency finds the first other task whose title matches ref
func resolveDependency(ref string, self *entry, entries []*entry) (string, bool) {
	for _, other := range entries {
		if other == self {
			continue
		}
		if MatchesTitle(ref, other.task.Title) {
			return other.task.Title, true
		}
	}
	return "", false
}
