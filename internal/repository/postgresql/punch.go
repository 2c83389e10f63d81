package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepository{db: db}
}

const punchColumns = `
	p.id, p.employee_id, p.property_id, p.clock_in, p.clock_out,
	p.status, p.approved_by, p.approved_at, p.pay_period_id,
	p.created_at, p.updated_at,
	e.name AS employee_name, pr.name AS property_name
`

const punchJoins = `
	FROM punches p
	LEFT JOIN employees e ON e.id = p.employee_id
	LEFT JOIN properties pr ON pr.id = p.property_id
`

func scanPunch(row pgx.Row) (punch.Punch, error) {
	var p punch.Punch
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PropertyID, &p.ClockIn, &p.ClockOut,
		&p.Status, &p.ApprovedBy, &p.ApprovedAt, &p.PayPeriodID,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.PropertyName,
	)
	return p, err
}

// Create implements punch.PunchRepository.
func (r *punchRepository) Create(ctx context.Context, newPunch punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punches (id, employee_id, property_id, clock_in, clock_out, status, pay_period_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newPunch.ID,
		newPunch.EmployeeID,
		newPunch.PropertyID,
		newPunch.ClockIn,
		newPunch.ClockOut,
		newPunch.Status,
		newPunch.PayPeriodID,
	).Scan(&newPunch.CreatedAt, &newPunch.UpdatedAt)

	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return newPunch, nil
}

// GetByID implements punch.PunchRepository.
func (r *punchRepository) GetByID(ctx context.Context, id string, ownerID string) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + punchJoins + `
		WHERE p.id = $1
		  AND pr.owner_id = $2
	`

	p, err := scanPunch(q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get punch: %w", err)
	}

	return p, nil
}

// List implements punch.PunchRepository.
func (r *punchRepository) List(ctx context.Context, filter punch.Filter, ownerID string) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE pr.owner_id = $1"
	args := []interface{}{ownerID}
	argIdx := 2

	if len(filter.PropertyIDs) > 0 {
		where += fmt.Sprintf(" AND p.property_id = ANY($%d)", argIdx)
		args = append(args, filter.PropertyIDs)
		argIdx++
	}
	if filter.PayPeriodID != nil && *filter.PayPeriodID != "" {
		where += fmt.Sprintf(" AND p.pay_period_id = $%d", argIdx)
		args = append(args, *filter.PayPeriodID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where += fmt.Sprintf(" AND (p.clock_in AT TIME ZONE 'UTC')::date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where += fmt.Sprintf(" AND (p.clock_in AT TIME ZONE 'UTC')::date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (e.name ILIKE $%d OR pr.name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.OpenOnly {
		where += " AND p.clock_out IS NULL"
	}

	query := `SELECT ` + punchColumns + punchJoins + where + `
		ORDER BY p.clock_in ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punches: %w", err)
	}

	return punches, nil
}

// GetOpenByEmployee implements punch.PunchRepository.
func (r *punchRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + punchJoins + `
		WHERE p.employee_id = $1
		  AND p.clock_out IS NULL
		ORDER BY p.clock_in DESC
		LIMIT 1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open punch: %w", err)
	}

	return &p, nil
}

// UpdateTimes implements punch.PunchRepository. The corrected times and
// the approval reset land in one UPDATE: a corrected punch is always
// pending with no approver.
func (r *punchRepository) UpdateTimes(ctx context.Context, id string, clockIn time.Time, clockOut *time.Time, ownerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches p
		SET clock_in = $1,
			clock_out = $2,
			status = $3,
			approved_by = NULL,
			approved_at = NULL,
			updated_at = NOW()
		FROM properties pr
		WHERE p.id = $4
		  AND pr.id = p.property_id
		  AND pr.owner_id = $5
	`

	tag, err := q.Exec(ctx, query, clockIn, clockOut, punch.StatusPending, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update punch times: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}

	return nil
}

// Close implements punch.PunchRepository.
func (r *punchRepository) Close(ctx context.Context, id string, clockOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches
		SET clock_out = $1, updated_at = NOW()
		WHERE id = $2
		  AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query, clockOut, id)
	if err != nil {
		return fmt.Errorf("failed to close punch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}

	return nil
}

// SetApproval implements punch.PunchRepository. Status, approver and
// approval timestamp move in a single UPDATE so a record can never hold
// a half-applied approval.
func (r *punchRepository) SetApproval(ctx context.Context, upd punch.ApprovalUpdate, ownerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches p
		SET status = $1,
			approved_by = $2,
			approved_at = $3,
			updated_at = NOW()
		FROM properties pr
		WHERE p.id = $4
		  AND pr.id = p.property_id
		  AND pr.owner_id = $5
	`

	tag, err := q.Exec(ctx, query, upd.Status, upd.ApprovedBy, upd.ApprovedAt, upd.ID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to set punch approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}

	return nil
}

// SetApprovalBatch implements punch.PunchRepository.
func (r *punchRepository) SetApprovalBatch(ctx context.Context, updates []punch.ApprovalUpdate, ownerID string) error {
	if len(updates) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, txKey, tx)
		for _, upd := range updates {
			if err := r.SetApproval(txCtx, upd, ownerID); err != nil {
				return err
			}
		}
		return nil
	})
}

// AssignPayPeriod implements punch.PunchRepository.
func (r *punchRepository) AssignPayPeriod(ctx context.Context, periodID string, start, end time.Time, ownerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches p
		SET pay_period_id = $1, updated_at = NOW()
		FROM properties pr
		WHERE pr.id = p.property_id
		  AND pr.owner_id = $2
		  AND p.pay_period_id IS NULL
		  AND (p.clock_in AT TIME ZONE 'UTC')::date BETWEEN $3::date AND $4::date
	`

	tag, err := q.Exec(ctx, query, periodID, ownerID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to assign pay period: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete implements punch.PunchRepository.
func (r *punchRepository) Delete(ctx context.Context, id string, ownerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM punches p
		USING properties pr
		WHERE p.id = $1
		  AND pr.id = p.property_id
		  AND pr.owner_id = $2
	`

	tag, err := q.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete punch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}

	return nil
}
