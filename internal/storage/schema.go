package storage

import "github.com/autodomd/autodomd/internal/storage/migrations"

var schemaMigrations = []migrations.Migration{
	{
		Version:     1,
		Description: "Create runs table",
		Up: `
			CREATE TABLE runs (
				id TEXT PRIMARY KEY,
				started_at TEXT NOT NULL,
				root TEXT NOT NULL,
				output_path TEXT NOT NULL DEFAULT '',
				command TEXT NOT NULL,
				markdown_files INTEGER NOT NULL DEFAULT 0,
				source_files INTEGER NOT NULL DEFAULT 0,
				tasks_found INTEGER NOT NULL DEFAULT 0,
				skipped INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX idx_runs_started_at ON runs(started_at);
		`,
		Down: `DROP TABLE runs`,
	},
	{
		Version:     2,
		Description: "Create run_categories table",
		Up: `
			CREATE TABLE run_categories (
				run_id TEXT NOT NULL,
				category TEXT NOT NULL,
				task_count INTEGER NOT NULL,
				PRIMARY KEY (run_id, category),
				FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
			)
		`,
		Down: `DROP TABLE run_categories`,
	},
}
