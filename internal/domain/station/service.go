package station

import (
	"context"

	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
)

// StationService backs the on-site PIN pad: verify a PIN against the
// property roster, then clock the employee in or out.
type StationService interface {
	VerifyPIN(ctx context.Context, req VerifyPINRequest) (VerifyPINResponse, error)

	// ClockIn opens a new punch. Fails if the employee already has one
	// open.
	ClockIn(ctx context.Context, req ClockRequest) (punch.Response, error)

	// ClockOut closes the employee's open punch.
	ClockOut(ctx context.Context, req ClockRequest) (punch.Response, error)
}
