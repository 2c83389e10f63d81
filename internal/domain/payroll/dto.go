package payroll

import "github.com/shopspring/decimal"

// SummaryRow is one employee's current-week payroll line. Gross pay is
// regular·rate + overtime·rate·1.5; money stays decimal end to end.
type SummaryRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	PropertyName string          `json:"property_name"`
	Rate         decimal.Decimal `json:"rate"`
	Regular      float64         `json:"regular"`
	Overtime     float64         `json:"overtime"`
	GrossHours   float64         `json:"gross_hours"`
	GrossPay     decimal.Decimal `json:"gross_pay"`
	Status       string          `json:"status"`
}

// KPITotals summarize the filtered dashboard set.
type KPITotals struct {
	Payroll    decimal.Decimal `json:"payroll"`
	GrossHours float64         `json:"gross_hours"`
	Pending    int             `json:"pending"`
	Employees  int             `json:"employees"`
}

type DashboardResponse struct {
	WeekStart string       `json:"week_start"`
	WeekEnd   string       `json:"week_end"`
	Rows      []SummaryRow `json:"rows"`
	Totals    KPITotals    `json:"totals"`
}
