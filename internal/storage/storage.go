// Package storage records generate runs in a SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/autodomd/autodomd/internal/storage/migrations"
)

// DefaultRecentLimit is used by RecentRuns when no positive limit is given
const DefaultRecentLimit = 10

// timeLayout is fixed width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one recorded report generation
type Run struct {
	ID            string
	StartedAt     time.Time
	Root          string
	OutputPath    string
	Command       string
	MarkdownFiles int
	SourceFiles   int
	TasksFound    int
	Skipped       int
	// Categories maps category display names to task counts
	Categories map[string]int
}

// CategoryNames returns the run's categories in sorted order
func (r Run) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store is the run history database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and brings
// its schema up to date
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := "file:" + filepath.ToSlash(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := migrations.NewManager(schemaMigrations...).Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores a run and its category counts. A missing ID is filled
// with a new UUID and a zero StartedAt with the current time.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, root, output_path, command,
		                  markdown_files, source_files, tasks_found, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.Root,
		run.OutputPath,
		run.Command,
		run.MarkdownFiles,
		run.SourceFiles,
		run.TasksFound,
		run.Skipped,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, name := range run.CategoryNames() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_categories (run_id, category, task_count) VALUES (?, ?, ?)",
			run.ID, name, run.Categories[name],
		); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, root, output_path, command,
		       markdown_files, source_files, tasks_found, skipped
		FROM runs
		ORDER BY started_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(
			&run.ID,
			&startedAt,
			&run.Root,
			&run.OutputPath,
			&run.Command,
			&run.MarkdownFiles,
			&run.SourceFiles,
			&run.TasksFound,
			&run.Skipped,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for i := range runs {
		categories, err := s.categories(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Categories = categories
	}
	return runs, nil
}

func (s *Store) categories(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, task_count FROM run_categories WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}
