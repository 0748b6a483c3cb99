package discovery

import (
	"path"
	"path/filepath"
	"strings"
)

// SourceExtensions lists the file extensions scanned for TODO comments
var SourceExtensions = map[string]bool{
	"rs":    true, // Rust
	"js":    true, // JavaScript
	"ts":    true, // TypeScript
	"jsx":   true,
	"tsx":   true,
	"py":    true, // Python
	"java":  true,
	"c":     true,
	"cpp":   true,
	"cc":    true,
	"cxx":   true,
	"h":     true,
	"hpp":   true,
	"go":    true,
	"rb":    true, // Ruby
	"php":   true,
	"swift": true,
	"kt":    true, // Kotlin
	"scala": true,
}

// ExcludedDirs are directory names never descended into during the source scan.
// Any other name starting with "." is excluded as well.
var ExcludedDirs = map[string]bool{
	"target":       true, // Rust build output
	"node_modules": true,
	"__pycache__":  true,
	".git":         true,
	".svn":         true,
	".hg":          true,
	".DS_Store":    true,
	"Thumbs.db":    true,
}

// ShouldExcludeDir reports whether a directory name excludes everything below it
func ShouldExcludeDir(name string) bool {
	return ExcludedDirs[name] || strings.HasPrefix(name, ".")
}

// Extension returns the file extension without the leading dot
func Extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// IsSupportedSourceFile reports whether the file's extension is scanned for TODOs.
// Matching is case-sensitive, so "main.RS" is not a Rust file.
func IsSupportedSourceFile(path string) bool {
	return SourceExtensions[Extension(path)]
}

// IsMarkdownFile reports whether the file is a markdown task candidate
func IsMarkdownFile(path string) bool {
	return Extension(path) == "md"
}

// HasExcludedAncestor reports whether any directory component of relPath
// (the path relative to the scan root, file name excluded) is excluded.
func HasExcludedAncestor(relPath string) bool {
	dir := path.Dir(filepath.ToSlash(relPath))
	if dir == "." || dir == "/" {
		return false
	}
	for _, part := range strings.Split(dir, "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if ShouldExcludeDir(part) {
			return true
		}
	}
	return false
}
