package punch

import (
	"context"
)

// PunchService covers punch corrections and the approval state machine.
// Every mutation re-checks the pay-period lock gate at this boundary,
// regardless of what the caller's UI disabled.
type PunchService interface {
	// List retrieves punches for the authenticated owner.
	List(ctx context.Context, filter Filter) ([]Response, error)

	// Get retrieves a single punch.
	Get(ctx context.Context, id string) (Response, error)

	// EditTimes corrects a punch's times, resets it to pending and
	// signals a recompute for the affected employee/day.
	EditTimes(ctx context.Context, req EditTimesRequest) (Response, error)

	// Approve moves a pending punch to approved.
	Approve(ctx context.Context, id string) (Response, error)

	// Unapprove moves an approved punch back to pending.
	Unapprove(ctx context.Context, id string) (Response, error)

	// Toggle approves a pending punch or unapproves an approved one.
	Toggle(ctx context.Context, id string) (Response, error)

	// ApprovePayroll approves every currently-pending punch in the
	// filtered set. Re-invoking after completion is a no-op.
	ApprovePayroll(ctx context.Context, filter Filter) (int, error)

	// ApproveEmployee approves the pending punches of one employee
	// within the filtered set.
	ApproveEmployee(ctx context.Context, filter Filter, employeeID string) (int, error)

	// ApproveEmployeeDay approves the pending punches of one employee on
	// one calendar day within the filtered set.
	ApproveEmployeeDay(ctx context.Context, filter Filter, employeeID string, date string) (int, error)

	// Delete removes a punch on behalf of an external collaborator.
	Delete(ctx context.Context, id string) error
}
