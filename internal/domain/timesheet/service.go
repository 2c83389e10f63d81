package timesheet

import (
	"context"

	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
)

// TimesheetService loads punches through the store adapter, runs the
// daily overtime allocation and builds the pay-period grid. It never
// mutates punch records.
type TimesheetService interface {
	// Grid builds the employee x date matrix for the filter. The date
	// columns come from the explicit filter range when set, else the pay
	// period's range, else the min/max dates present in the punches.
	Grid(ctx context.Context, filter punch.Filter) (Grid, error)

	// Allocated returns the flat allocated punch list for the filter,
	// sorted by employee name then clock-in.
	Allocated(ctx context.Context, filter punch.Filter) ([]AllocatedPunch, error)

	// Export returns the tabular rows export collaborators consume.
	Export(ctx context.Context, filter punch.Filter) ([]FlatRow, error)

	// Active lists currently-open punches (employees clocked in now).
	Active(ctx context.Context, filter punch.Filter) ([]punch.Response, error)
}
