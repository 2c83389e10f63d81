package payroll

import "context"

// PayrollService builds the current-week dashboard over the same daily
// overtime allocation the timesheet grid uses.
type PayrollService interface {
	// Dashboard summarizes the current week per employee. Search
	// filters by employee or property name, case-insensitively.
	Dashboard(ctx context.Context, search string) (DashboardResponse, error)
}
