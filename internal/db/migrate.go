package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate creates the schema if absent and adds columns introduced after
// the first release. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ... ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','completed','archived')),
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		plan_id      TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		priority     TEXT NOT NULL DEFAULT 'Medium'
		             CHECK(priority IN ('High','Medium','Low')),
		status       TEXT NOT NULL DEFAULT 'todo'
		             CHECK(status IN ('todo','in_progress','done','blocked')),
		source       TEXT NOT NULL DEFAULT 'manual'
		             CHECK(source IN ('manual','jira')),
		jira_key     TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_plan ON tasks(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	// Legacy tracker tables.
	`CREATE TABLE IF NOT EXISTS sprints (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id          TEXT PRIMARY KEY,
		jira_key    TEXT NOT NULL UNIQUE,
		summary     TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL DEFAULT '',
		sprint_id   TEXT REFERENCES sprints(id) ON DELETE SET NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_logs (
		id               TEXT PRIMARY KEY,
		date             TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
		description      TEXT NOT NULL DEFAULT '',
		ticket_id        TEXT REFERENCES tickets(id) ON DELETE CASCADE,
		task_id          TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		created_at       TEXT NOT NULL,
		CHECK ((ticket_id IS NULL) <> (task_id IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_logs_date ON work_logs(date)`,

	`CREATE TABLE IF NOT EXISTS standups (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		date        TEXT NOT NULL UNIQUE,
		content     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	// Jira import columns, added after the first release.
	`ALTER TABLE tasks ADD COLUMN jira_url TEXT`,
	`ALTER TABLE tasks ADD COLUMN estimate REAL`,
	`ALTER TABLE tasks ADD COLUMN assignee TEXT`,
}
