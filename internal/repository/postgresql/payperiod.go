package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lodgetrack/timeclock-backend/internal/domain/payperiod"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/database"
)

type payPeriodRepository struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) payperiod.PayPeriodRepository {
	return &payPeriodRepository{db: db}
}

// Create implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) Create(ctx context.Context, p payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_periods (start_date, end_date, period_type, is_locked, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.StartDate,
		p.EndDate,
		p.PeriodType,
		p.IsLocked,
		p.OwnerID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return payperiod.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return p, nil
}

// GetByID implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) GetByID(ctx context.Context, id string, ownerID string) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_date, end_date, period_type, is_locked, owner_id, created_at, updated_at
		FROM pay_periods
		WHERE id = $1
		  AND owner_id = $2
	`

	var p payperiod.PayPeriod
	err := q.QueryRow(ctx, query, id, ownerID).Scan(
		&p.ID, &p.StartDate, &p.EndDate, &p.PeriodType, &p.IsLocked,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return payperiod.PayPeriod{}, payperiod.ErrPayPeriodNotFound
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to get pay period: %w", err)
	}

	return p, nil
}

// List implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) List(ctx context.Context, ownerID string) ([]payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_date, end_date, period_type, is_locked, owner_id, created_at, updated_at
		FROM pay_periods
		WHERE owner_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	return scanPayPeriods(rows)
}

// SetLocked implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) SetLocked(ctx context.Context, id string, locked bool, ownerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_periods
		SET is_locked = $1, updated_at = NOW()
		WHERE id = $2
		  AND owner_id = $3
	`

	tag, err := q.Exec(ctx, query, locked, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to set pay period lock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payperiod.ErrPayPeriodNotFound
	}

	return nil
}

// ListRecent implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) ListRecent(ctx context.Context, endsOnOrAfter time.Time) ([]payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_date, end_date, period_type, is_locked, owner_id, created_at, updated_at
		FROM pay_periods
		WHERE end_date >= $1
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, endsOnOrAfter)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent pay periods: %w", err)
	}
	defer rows.Close()

	return scanPayPeriods(rows)
}

func scanPayPeriods(rows pgx.Rows) ([]payperiod.PayPeriod, error) {
	var periods []payperiod.PayPeriod
	for rows.Next() {
		var p payperiod.PayPeriod
		err := rows.Scan(
			&p.ID, &p.StartDate, &p.EndDate, &p.PeriodType, &p.IsLocked,
			&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pay periods: %w", err)
	}
	return periods, nil
}
