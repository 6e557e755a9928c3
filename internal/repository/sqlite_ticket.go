package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

const ticketColumns = `id, jira_key, summary, status, priority, sprint_id, created_at`

type SQLiteTicketRepo struct {
	db db.DBTX
}

func NewSQLiteTicketRepo(conn db.DBTX) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{db: conn}
}

func (r *SQLiteTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	query := `INSERT INTO tickets (` + ticketColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.JiraKey, t.Summary, t.Status, t.Priority,
		nullableStringPtr(t.SprintID),
		formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}
	return nil
}

func (r *SQLiteTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id))
	if err != nil {
		return nil, notFound("ticket", err)
	}
	return t, nil
}

func (r *SQLiteTicketRepo) GetByKey(ctx context.Context, key string) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE jira_key = ?`, key))
	if err != nil {
		return nil, notFound("ticket", err)
	}
	return t, nil
}

func scanTicket(s rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	var sprintID sql.NullString
	var createdStr string
	err := s.Scan(&t.ID, &t.JiraKey, &t.Summary, &t.Status, &t.Priority, &sprintID, &createdStr)
	if err != nil {
		return nil, err
	}
	t.SprintID = stringPtrFromNull(sprintID)
	if t.CreatedAt, err = parseTimestamp("created_at", createdStr); err != nil {
		return nil, err
	}
	return &t, nil
}
