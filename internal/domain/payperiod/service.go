package payperiod

import "context"

// PayPeriodService manages periods and the lock gate. The admin
// override lives here as session state: enabling it lets an admin edit
// through a lock, and locking any period revokes every active override.
type PayPeriodService interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)

	List(ctx context.Context) ([]Response, error)

	Get(ctx context.Context, id string) (Response, error)

	// Lock freezes the period and clears all active overrides.
	Lock(ctx context.Context, id string) (Response, error)

	// Unlock releases the period.
	Unlock(ctx context.Context, id string) (Response, error)

	// SetOverride turns the calling admin's session override on or off.
	SetOverride(ctx context.Context, active bool) error

	// OverrideActive reports whether the calling session holds an
	// active override.
	OverrideActive(ctx context.Context) bool

	// AuthorizeEdit refuses with ErrPeriodLocked when the punch's owning
	// period is locked and the caller has no effective override. A punch
	// outside any period is never gated.
	AuthorizeEdit(ctx context.Context, periodID *string) error
}
