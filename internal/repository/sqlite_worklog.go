package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

const workLogColumns = `id, date, duration_minutes, description, ticket_id, task_id, created_at`

type SQLiteWorkLogRepo struct {
	db db.DBTX
}

func NewSQLiteWorkLogRepo(conn db.DBTX) *SQLiteWorkLogRepo {
	return &SQLiteWorkLogRepo{db: conn}
}

func (r *SQLiteWorkLogRepo) Create(ctx context.Context, w *domain.WorkLog) error {
	query := `INSERT INTO work_logs (` + workLogColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		formatDate(w.Date),
		w.DurationMinutes,
		w.Description,
		nullableStringPtr(w.TicketID),
		nullableStringPtr(w.TaskID),
		formatTimestamp(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work log: %w", err)
	}
	return nil
}

func (r *SQLiteWorkLogRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.WorkLog, error) {
	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE date = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, formatDate(date))
	if err != nil {
		return nil, fmt.Errorf("listing work logs: %w", err)
	}
	defer rows.Close()

	logs := []*domain.WorkLog{}
	for rows.Next() {
		w, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work log row: %w", err)
		}
		logs = append(logs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work logs: %w", err)
	}
	return logs, nil
}

func (r *SQLiteWorkLogRepo) ListLinesByDate(ctx context.Context, date time.Time) ([]domain.LogLine, error) {
	query := `SELECT COALESCE(k.jira_key, t.jira_key, ''), w.description, COALESCE(t.title, k.summary, ''), w.duration_minutes
		FROM work_logs w
		LEFT JOIN tickets k ON k.id = w.ticket_id
		LEFT JOIN tasks t ON t.id = w.task_id
		WHERE w.date = ?
		ORDER BY w.created_at, w.rowid`
	rows, err := r.db.QueryContext(ctx, query, formatDate(date))
	if err != nil {
		return nil, fmt.Errorf("listing work log lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.LogLine{}
	for rows.Next() {
		var l domain.LogLine
		var subject string
		if err := rows.Scan(&l.Ticket, &l.Description, &subject, &l.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scanning work log line: %w", err)
		}
		l.Description = domain.CoalesceStr(l.Description, subject, "No description")
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work log lines: %w", err)
	}
	return lines, nil
}

func scanWorkLog(s rowScanner) (*domain.WorkLog, error) {
	var w domain.WorkLog
	var dateStr, createdStr string
	var ticketID, taskID sql.NullString
	err := s.Scan(&w.ID, &dateStr, &w.DurationMinutes, &w.Description, &ticketID, &taskID, &createdStr)
	if err != nil {
		return nil, err
	}
	w.TicketID = stringPtrFromNull(ticketID)
	w.TaskID = stringPtrFromNull(taskID)
	if w.Date, err = parseDate("date", dateStr); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = parseTimestamp("created_at", createdStr); err != nil {
		return nil, err
	}
	return &w, nil
}
