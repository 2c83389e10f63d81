package timesheet

import (
	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
)

// AllocatedPunch is a punch with its daily regular/overtime split
// attached. Derived, never persisted.
type AllocatedPunch struct {
	punch.Punch
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
}

// Totals is a regular/overtime/total hour triple, each value rounded to
// two decimals.
type Totals struct {
	Regular  float64 `json:"regular"`
	Overtime float64 `json:"overtime"`
	Total    float64 `json:"total"`
}

// AggregatedDay holds one employee's punches for one calendar day, in
// clock-in order, with day-level sums.
type AggregatedDay struct {
	Date    string           `json:"date"`
	Punches []AllocatedPunch `json:"punches"`
	Totals  Totals           `json:"totals"`
}

// GridRow is one employee's row across the date range: day key to
// AggregatedDay plus row totals.
type GridRow struct {
	EmployeeID   string                   `json:"employee_id"`
	EmployeeName string                   `json:"employee_name"`
	Days         map[string]AggregatedDay `json:"days"`
	Totals       Totals                   `json:"totals"`
}

// Grid is the full employee x date matrix with column and grand totals.
// Recomputed from the store on every load; identical input always
// yields identical totals.
type Grid struct {
	DateColumns  []string          `json:"date_columns"`
	Rows         []GridRow         `json:"rows"`
	ColumnTotals map[string]Totals `json:"column_totals"`
	GrandTotals  Totals            `json:"grand_totals"`
}

// FlatRow is the tabular shape handed to export collaborators.
type FlatRow struct {
	EmployeeName  string  `json:"employee_name"`
	PropertyName  string  `json:"property_name"`
	Date          string  `json:"date"`
	ClockIn       string  `json:"clock_in"`
	ClockOut      string  `json:"clock_out"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	TotalHours    float64 `json:"total_hours"`
	Status        string  `json:"status"`
}
