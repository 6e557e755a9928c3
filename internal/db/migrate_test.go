package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func columnNames(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	require.NoError(t, err)
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"plans", "tasks", "work_logs", "standups", "tickets", "sprints"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_tasks_plan", "idx_tasks_status", "idx_work_logs_date"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeyCascade(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, name, start_date, end_date, created_at) VALUES ('p1','P','2024-01-01','2024-01-14','x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (id, plan_id, title, created_at, updated_at) VALUES ('t1','p1','T','x','x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, plan_id, title, created_at, updated_at) VALUES ('t2','missing','T','x','x')`)
	require.Error(t, err, "task must reference an existing plan")

	_, err = db.Exec(`DELETE FROM plans WHERE id = 'p1'`)
	require.NoError(t, err)
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_WorkLogReferenceCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO work_logs (id, date, duration_minutes, created_at) VALUES ('w1','2024-01-02',30,'x')`)
	require.Error(t, err, "a work log without a reference must be rejected")
	assert.Contains(t, err.Error(), "CHECK")
}

func TestMigrate_StandupDateUnique(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO standups (date, content, created_at) VALUES ('2024-01-02','a','x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO standups (date, content, created_at) VALUES ('2024-01-02','b','x')`)
	require.Error(t, err)
}

// A database created before the Jira import columns existed gains them
// without losing rows.
func TestMigrate_UpgradeAddsJiraColumns(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE plans (
			id TEXT PRIMARY KEY, name TEXT NOT NULL, start_date TEXT NOT NULL,
			end_date TEXT NOT NULL, status TEXT NOT NULL DEFAULT 'active', created_at TEXT NOT NULL
		)`,
		`CREATE TABLE tasks (
			id TEXT PRIMARY KEY, plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
			title TEXT NOT NULL, description TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT 'Medium', status TEXT NOT NULL DEFAULT 'todo',
			source TEXT NOT NULL DEFAULT 'manual', jira_key TEXT,
			created_at TEXT NOT NULL, updated_at TEXT NOT NULL
		)`,
		`INSERT INTO plans (id, name, start_date, end_date, created_at) VALUES ('p1','Old','2023-01-01','2023-01-14','x')`,
		`INSERT INTO tasks (id, plan_id, title, created_at, updated_at) VALUES ('t1','p1','Legacy task','x','x')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	cols := columnNames(t, db, "tasks")
	assert.Contains(t, cols, "jira_url")
	assert.Contains(t, cols, "estimate")
	assert.Contains(t, cols, "assignee")

	var title string
	var estimate sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT title, estimate FROM tasks WHERE id = 't1'`).Scan(&title, &estimate))
	assert.Equal(t, "Legacy task", title)
	assert.False(t, estimate.Valid)
}

func TestOpenDB_PragmasApplyToEveryConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dayplan.db")
	database, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	first, err := database.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := database.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for i, conn := range []*sql.Conn{first, second} {
		var fk, timeout int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout))
		assert.Equal(t, 1, fk, "conn %d foreign_keys", i)
		assert.Equal(t, 5000, timeout, "conn %d busy_timeout", i)
	}

	_, err = second.ExecContext(ctx,
		`INSERT INTO tasks (id, plan_id, title, created_at, updated_at) VALUES ('t1', 'no-such-plan', 'orphan', 'x', 'x')`)
	assert.Error(t, err, "a task must reference an existing plan")
}
