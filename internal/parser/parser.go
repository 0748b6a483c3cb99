package parser

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/autodomd/autodomd/internal/discovery"
	"github.com/autodomd/autodomd/internal/types"
)

// SkippedFile is a file the parser could not read
type SkippedFile struct {
	Path string
	Err  error
}

// Parser turns discovered files into tasks, skipping unreadable files
type Parser struct {
	// Root is the scan root; markdown categories are computed relative to it
	Root string

	logger  *log.Logger
	skipped []SkippedFile
}

// New creates a parser. A nil logger discards output.
func New(root string, logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Parser{Root: root, logger: logger}
}

// Skipped returns the files skipped so far
func (p *Parser) Skipped() []SkippedFile {
	return append([]SkippedFile(nil), p.skipped...)
}

func (p *Parser) skip(kind, path string, err error) {
	p.skipped = append(p.skipped, SkippedFile{Path: path, Err: err})
	p.logger.Debug("skipping "+kind+" file", "path", path, "err", err)
}

// ParseMarkdownFile returns the single task described by a markdown file
func (p *Parser) ParseMarkdownFile(path string) (types.Task, error) {
	content, err := ReadText(path)
	if err != nil {
		return types.Task{}, err
	}
	return ParseMarkdownContent(p.Root, path, content), nil
}

// ParseSourceFile returns the TODO tasks of a source file
func (p *Parser) ParseSourceFile(path string) ([]types.Task, error) {
	content, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return ParseSourceContent(path, discovery.Extension(path), content), nil
}

// ParseMarkdownFiles parses every file, skipping the ones that fail
func (p *Parser) ParseMarkdownFiles(files []string) []types.Task {
	tasks := make([]types.Task, 0, len(files))
	for _, path := range files {
		task, err := p.ParseMarkdownFile(path)
		if err != nil {
			p.skip("markdown", path, err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// ParseSourceFiles parses every file, skipping the ones that fail
func (p *Parser) ParseSourceFiles(files []string) []types.Task {
	var tasks []types.Task
	for _, path := range files {
		fileTasks, err := p.ParseSourceFile(path)
		if err != nil {
			p.skip("source", path, err)
			continue
		}
		tasks = append(tasks, fileTasks...)
	}
	return tasks
}
