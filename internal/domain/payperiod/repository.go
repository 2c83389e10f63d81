package payperiod

import (
	"context"
	"time"
)

// PayPeriodRepository defines data access for pay periods. All methods
// take ownerID to keep owners inside their own payroll data.
type PayPeriodRepository interface {
	Create(ctx context.Context, p PayPeriod) (PayPeriod, error)

	GetByID(ctx context.Context, id string, ownerID string) (PayPeriod, error)

	// List returns periods ordered by start date descending, so the
	// first element is the current period.
	List(ctx context.Context, ownerID string) ([]PayPeriod, error)

	SetLocked(ctx context.Context, id string, locked bool, ownerID string) error

	// ListRecent returns every owner's periods ending on or after the
	// cutoff. Only the pay-period assignment sweep uses this.
	ListRecent(ctx context.Context, endsOnOrAfter time.Time) ([]PayPeriod, error)
}
