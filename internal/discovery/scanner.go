package discovery

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/autodomd/autodomd/internal/types"
)

// SkippedEntry is a path the scan could not read
type SkippedEntry struct {
	Path string
	Err  error
}

// Scanner discovers markdown task files and source files below a root.
type Scanner struct {
	cfg     Config
	logger  *log.Logger
	skipped []SkippedEntry
}

// NewScanner creates a scanner. A nil logger discards output.
func NewScanner(cfg Config, logger *log.Logger) *Scanner {
	if cfg.RootPath == "" {
		cfg.RootPath = "."
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scanner{cfg: cfg, logger: logger}
}

// Skipped returns the entries skipped so far, in the order they were met
func (s *Scanner) Skipped() []SkippedEntry {
	return append([]SkippedEntry(nil), s.skipped...)
}

func (s *Scanner) recordSkip(path string, err error) {
	s.skipped = append(s.skipped, SkippedEntry{Path: path, Err: err})
	s.logger.Debug("skipping unreadable entry", "path", path, "err", err)
}

// checkRoot validates that the root is an existing directory
func (s *Scanner) checkRoot() error {
	if s.cfg.MaxDepth < 0 {
		return types.PathError(s.cfg.RootPath, fmt.Errorf("max depth cannot be negative (got %d)", s.cfg.MaxDepth))
	}
	info, err := os.Stat(s.cfg.RootPath)
	if err != nil {
		return types.PathError(s.cfg.RootPath, err)
	}
	if !info.IsDir() {
		return types.PathError(s.cfg.RootPath, fmt.Errorf("not a directory"))
	}
	return nil
}

// MarkdownFiles returns every .md file under <root>/todo/, sorted.
// A missing todo/ directory is not an error.
func (s *Scanner) MarkdownFiles() ([]string, error) {
	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	todoDir := filepath.Join(s.cfg.RootPath, TodoDirName)
	info, err := os.Stat(todoDir)
	if err != nil || !info.IsDir() {
		return []string{}, nil
	}

	files := []string{}
	w := newWalker(s.cfg, nil, s.recordSkip)
	w.walk(todoDir, func(path, _ string) {
		if IsMarkdownFile(path) {
			files = append(files, path)
		}
	})

	sort.Strings(files)
	return files, nil
}

// SourceFiles returns every supported source file under the root that has
// no excluded directory among its ancestors, sorted.
func (s *Scanner) SourceFiles() ([]string, error) {
	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	files := []string{}
	w := newWalker(s.cfg, ShouldExcludeDir, s.recordSkip)
	w.walk(s.cfg.RootPath, func(path, rel string) {
		if !IsSupportedSourceFile(path) {
			return
		}
		if HasExcludedAncestor(rel) {
			return
		}
		files = append(files, path)
	})

	sort.Strings(files)
	return files, nil
}

// Result holds both discovery lists
type Result struct {
	MarkdownFiles []string
	SourceFiles   []string
	Skipped       []SkippedEntry
}

// All runs both scans
func (s *Scanner) All() (*Result, error) {
	markdown, err := s.MarkdownFiles()
	if err != nil {
		return nil, fmt.Errorf("scanning markdown files: %w", err)
	}
	source, err := s.SourceFiles()
	if err != nil {
		return nil, fmt.Errorf("scanning source files: %w", err)
	}
	return &Result{
		MarkdownFiles: markdown,
		SourceFiles:   source,
		Skipped:       s.Skipped(),
	}, nil
}

// ScanMarkdownFiles is a convenience wrapper that discards log output
func ScanMarkdownFiles(cfg Config) ([]string, error) {
	return NewScanner(cfg, nil).MarkdownFiles()
}

// ScanSourceFiles is a convenience wrapper that discards log output
func ScanSourceFiles(cfg Config) ([]string, error) {
	return NewScanner(cfg, nil).SourceFiles()
}

// ScanAll is a convenience wrapper that discards log output
func ScanAll(cfg Config) (*Result, error) {
	return NewScanner(cfg, nil).All()
}
