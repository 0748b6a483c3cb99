// Package pipeline runs discovery, parsing and report assembly for the
// scan, generate and check commands.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/autodomd/autodomd/internal/discovery"
	"github.com/autodomd/autodomd/internal/parser"
	"github.com/autodomd/autodomd/internal/report"
	"github.com/autodomd/autodomd/internal/types"
)

// ErrStale is returned by Check when the report no longer matches the tree
var ErrStale = errors.New("report is out of date")

// ScanResult summarizes one pass over the project tree
type ScanResult struct {
	Tasks                []types.Task
	MarkdownFilesScanned int
	SourceFilesScanned   int
	TasksFound           int
	// Skipped counts entries and files that could not be read
	Skipped int
}

// FilesScanned returns the number of markdown and source files parsed
func (r *ScanResult) FilesScanned() int {
	return r.MarkdownFilesScanned + r.SourceFilesScanned
}

// GenerateResult describes a written report
type GenerateResult struct {
	OutputPath   string
	TasksWritten int
	Scan         *ScanResult
}

// CheckResult describes how an existing report compares to a fresh scan
type CheckResult struct {
	OutputPath string
	Header     report.Header
	Scan       *ScanResult
	Stale      bool
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// Scan discovers task files below cfg.RootPath and parses them into tasks.
// Unreadable entries and files are skipped and counted.
func Scan(cfg discovery.Config, logger *log.Logger) (*ScanResult, error) {
	logger = orDiscard(logger)

	found, err := discovery.NewScanner(cfg, logger).All()
	if err != nil {
		return nil, err
	}
	logger.Debug("discovery complete",
		"root", cfg.RootPath,
		"markdown", len(found.MarkdownFiles),
		"source", len(found.SourceFiles))

	p := parser.New(cfg.RootPath, logger)
	tasks := types.NewCollection()
	tasks.Extend(p.ParseMarkdownFiles(found.MarkdownFiles))
	tasks.Extend(p.ParseSourceFiles(found.SourceFiles))
	tasks.Sort()

	skipped := len(found.Skipped) + len(p.Skipped())
	if skipped > 0 {
		logger.Debug("some files were skipped", "count", skipped)
	}

	return &ScanResult{
		Tasks:                tasks.All(),
		MarkdownFilesScanned: len(found.MarkdownFiles),
		SourceFilesScanned:   len(found.SourceFiles),
		TasksFound:           tasks.Len(),
		Skipped:              skipped,
	}, nil
}

// Generate scans the tree and writes the report
func Generate(scanCfg discovery.Config, reportCfg report.Config, logger *log.Logger) (*GenerateResult, error) {
	logger = orDiscard(logger)

	scan, err := Scan(scanCfg, logger)
	if err != nil {
		return nil, err
	}
	reportCfg.RootPath = scanCfg.RootPath
	if err := report.New(reportCfg, logger).Write(scan.Tasks); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	return &GenerateResult{
		OutputPath:   outputPath(reportCfg),
		TasksWritten: scan.TasksFound,
		Scan:         scan,
	}, nil
}

// Check compares the existing report with one rendered from a fresh scan.
// The header and file timestamp lines are excluded from the comparison. It
// returns ErrStale together with the result when the bodies differ.
func Check(scanCfg discovery.Config, reportCfg report.Config, logger *log.Logger) (*CheckResult, error) {
	logger = orDiscard(logger)
	path := outputPath(reportCfg)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.IOError(path, err)
	}
	existing := string(data)

	header, err := report.ParseHeader(existing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !header.Compatible() {
		return nil, types.InvalidFormatError(path,
			fmt.Errorf("format %s is not compatible with %s", header.Format, report.FormatVersion))
	}

	scan, err := Scan(scanCfg, logger)
	if err != nil {
		return nil, err
	}
	reportCfg.RootPath = scanCfg.RootPath
	body := report.New(reportCfg, logger).ComparableBody(scan.Tasks)

	result := &CheckResult{
		OutputPath: path,
		Header:     header,
		Scan:       scan,
		Stale:      body != report.StripTimestamps(report.StripHeader(existing)),
	}
	if result.Stale {
		logger.Debug("report differs from tree", "path", path, "recorded_tasks", header.Tasks, "tasks", scan.TasksFound)
		return result, ErrStale
	}
	return result, nil
}

func outputPath(cfg report.Config) string {
	if cfg.OutputPath == "" {
		return report.DefaultOutputPath
	}
	return cfg.OutputPath
}
