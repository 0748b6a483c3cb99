package parser

import (
	"path/filepath"
	"strings"

	"github.com/autodomd/autodomd/internal/discovery"
	"github.com/autodomd/autodomd/internal/types"
)

const legacyPriorityMarker = "**Priority:**"

// ExtractTitle returns the text of the first level-1 heading ("# ")
func ExtractTitle(content string) (string, bool) {
	for _, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)
		if title, ok := strings.CutPrefix(trimmed, "# "); ok {
			if title = strings.TrimSpace(title); title != "" {
				return title, true
			}
		}
	}
	return "", false
}

// ExtractPriority reads the priority from the fenced metadata block, falling
// back to a legacy "**Priority:** value" line, then to Medium.
func ExtractPriority(content string) types.Priority {
	if block, ok := ExtractMetadataBlock(content); ok {
		if value, found := priorityLine(block); found {
			return types.ParsePriority(value)
		}
	}
	for _, line := range splitLines(content) {
		if value, ok := strings.CutPrefix(strings.TrimSpace(line), legacyPriorityMarker); ok {
			return types.ParsePriority(value)
		}
	}
	return types.PriorityMedium
}

// CategoryForPath derives a category from the first directory below the
// todo/ segment of path. root is used to make path relative first so a
// "todo" directory above the project does not count. Files directly in
// todo/ (or outside it) are General.
func CategoryForPath(root, path string) types.Category {
	relPath := path
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			relPath = r
		}
	}
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	for i, part := range parts {
		if part != discovery.TodoDirName {
			continue
		}
		// Need a directory and a file after todo/
		if len(parts)-i >= 3 && parts[i+1] != "" {
			return types.CategoryFromDir(parts[i+1])
		}
		return types.General
	}
	return types.General
}

// TitleFromFileName returns the file's base name without extension
func TitleFromFileName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "Unknown Task"
	}
	return stem
}

// ParseMarkdownContent builds the task for a markdown file with the given content
func ParseMarkdownContent(root, path, content string) types.Task {
	title, ok := ExtractTitle(content)
	if !ok {
		title = TitleFromFileName(path)
	}
	return types.NewMarkdownTask(title, CategoryForPath(root, path), ExtractPriority(content), path)
}
