package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

const planColumns = `id, name, start_date, end_date, status, created_at`

type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		formatDate(p.StartDate),
		formatDate(p.EndDate),
		string(p.Status),
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound("plan", err)
	}
	return p, nil
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at DESC, rowid DESC`
	return r.query(ctx, query)
}

func (r *SQLitePlanRepo) UpdateStatus(ctx context.Context, id string, status domain.PlanStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE plans SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating plan status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating plan status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	plans := []*domain.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func scanPlan(s rowScanner) (*domain.Plan, error) {
	var p domain.Plan
	var startStr, endStr, statusStr, createdStr string
	if err := s.Scan(&p.ID, &p.Name, &startStr, &endStr, &statusStr, &createdStr); err != nil {
		return nil, err
	}
	p.Status = domain.PlanStatus(statusStr)

	var err error
	if p.StartDate, err = parseDate("start_date", startStr); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseDate("end_date", endStr); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTimestamp("created_at", createdStr); err != nil {
		return nil, err
	}
	return &p, nil
}
