package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

const taskColumns = `id, plan_id, title, description, priority, status, source,
		jira_key, jira_url, estimate, assignee, created_at, updated_at`

// taskColumnsAliased is taskColumns prefixed with "t." for join queries.
const taskColumnsAliased = `t.id, t.plan_id, t.title, t.description, t.priority, t.status, t.source,
		t.jira_key, t.jira_url, t.estimate, t.assignee, t.created_at, t.updated_at`

type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.PlanID,
		t.Title,
		t.Description,
		string(t.Priority),
		string(t.Status),
		string(t.Source),
		nullableString(t.JiraKey),
		nullableString(t.JiraURL),
		nullableFloat(t.Estimate),
		nullableString(t.Assignee),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task %q: %w", t.Title, err)
	}
	return nil
}

// CreateMany inserts tasks in order. Run it inside a UnitOfWork when the
// batch must be all-or-nothing.
func (r *SQLiteTaskRepo) CreateMany(ctx context.Context, tasks []*domain.Task) error {
	for _, t := range tasks {
		if err := r.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound("task", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE plan_id = ? ORDER BY created_at, rowid`
	return r.query(ctx, query, planID)
}

func (r *SQLiteTaskRepo) ListOpenInActivePlans(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumnsAliased + `
		FROM tasks t
		JOIN plans p ON p.id = t.plan_id
		WHERE p.status = 'active' AND t.status IN ('todo', 'in_progress', 'blocked')
		ORDER BY CASE t.status WHEN 'in_progress' THEN 0 WHEN 'blocked' THEN 1 ELSE 2 END,
		         CASE t.priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END,
		         t.created_at, t.rowid`
	return r.query(ctx, query)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Priority),
		string(t.Status),
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) DeleteByPlan(ctx context.Context, planID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE plan_id = ?`, planID)
	if err != nil {
		return 0, fmt.Errorf("deleting tasks of plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting tasks of plan: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(s rowScanner) (*domain.Task, error) {
	var t domain.Task
	var priority, status, source, createdStr, updatedStr string
	var jiraKey, jiraURL, assignee sql.NullString
	var estimate sql.NullFloat64

	err := s.Scan(
		&t.ID, &t.PlanID, &t.Title, &t.Description,
		&priority, &status, &source,
		&jiraKey, &jiraURL, &estimate, &assignee,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return nil, err
	}

	t.Priority = domain.TaskPriority(priority)
	t.Status = domain.TaskStatus(status)
	t.Source = domain.TaskSource(source)
	t.JiraKey = jiraKey.String
	t.JiraURL = jiraURL.String
	t.Assignee = assignee.String
	t.Estimate = floatPtrFromNull(estimate)

	if t.CreatedAt, err = parseTimestamp("created_at", createdStr); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedStr); err != nil {
		return nil, err
	}
	return &t, nil
}
