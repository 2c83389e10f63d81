package punch

import (
	"context"
	"time"
)

// PunchRepository is the punch store adapter. Joined employee/property
// names arrive resolved; every write is a single-record, all-or-nothing
// update against the backing store.
type PunchRepository interface {
	// Create inserts a new punch (clock-in).
	Create(ctx context.Context, p Punch) (Punch, error)

	// GetByID retrieves one punch scoped to an owner's properties.
	GetByID(ctx context.Context, id string, ownerID string) (Punch, error)

	// List retrieves punches matching the filter, scoped to the owner,
	// ordered by clock-in ascending.
	List(ctx context.Context, filter Filter, ownerID string) ([]Punch, error)

	// GetOpenByEmployee returns the employee's open punch, if any.
	GetOpenByEmployee(ctx context.Context, employeeID string) (*Punch, error)

	// UpdateTimes persists a corrected clock-in/clock-out pair together
	// with the reset approval fields.
	UpdateTimes(ctx context.Context, id string, clockIn time.Time, clockOut *time.Time, ownerID string) error

	// Close sets the clock-out timestamp on an open punch.
	Close(ctx context.Context, id string, clockOut time.Time) error

	// SetApproval applies one approval update atomically.
	SetApproval(ctx context.Context, upd ApprovalUpdate, ownerID string) error

	// SetApprovalBatch applies each update atomically per record inside
	// one transaction.
	SetApprovalBatch(ctx context.Context, updates []ApprovalUpdate, ownerID string) error

	// AssignPayPeriod stamps the pay period onto punches inside the
	// period's date range that have none yet. Returns rows affected.
	AssignPayPeriod(ctx context.Context, periodID string, start, end time.Time, ownerID string) (int64, error)

	// Delete removes a punch (external collaborators only; the core never
	// deletes as part of aggregation or approval).
	Delete(ctx context.Context, id string, ownerID string) error
}
