package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

type SQLiteStandupRepo struct {
	db db.DBTX
}

func NewSQLiteStandupRepo(conn db.DBTX) *SQLiteStandupRepo {
	return &SQLiteStandupRepo{db: conn}
}

func (r *SQLiteStandupRepo) Upsert(ctx context.Context, s *domain.Standup) error {
	query := `INSERT INTO standups (date, content, created_at) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET content = excluded.content, created_at = excluded.created_at`
	_, err := r.db.ExecContext(ctx, query, formatDate(s.Date), s.Content, formatTimestamp(s.CreatedAt))
	if err != nil {
		return fmt.Errorf("upserting standup: %w", err)
	}
	return nil
}

func (r *SQLiteStandupRepo) GetByDate(ctx context.Context, date time.Time) (*domain.Standup, error) {
	var s domain.Standup
	var dateStr, createdStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT date, content, created_at FROM standups WHERE date = ?`, formatDate(date),
	).Scan(&dateStr, &s.Content, &createdStr)
	if err != nil {
		return nil, notFound("standup", err)
	}
	if s.Date, err = parseDate("date", dateStr); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTimestamp("created_at", createdStr); err != nil {
		return nil, err
	}
	return &s, nil
}
