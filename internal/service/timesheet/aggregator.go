package timesheet

import (
	"sort"
	"time"

	"github.com/lodgetrack/timeclock-backend/internal/domain/timesheet"
)

// DateRange picks the grid's column span: the explicit filter range
// wins, then the pay period's range, then the min/max clock-in dates
// present in the allocated punches.
func DateRange(filterStart, filterEnd *string, periodStart, periodEnd *time.Time, punches []timesheet.AllocatedPunch) []string {
	const layout = "2006-01-02"

	if filterStart != nil && filterEnd != nil && *filterStart != "" && *filterEnd != "" {
		s, errS := time.Parse(layout, *filterStart)
		e, errE := time.Parse(layout, *filterEnd)
		if errS == nil && errE == nil {
			return spanDays(s, e)
		}
	}

	if periodStart != nil && periodEnd != nil {
		return spanDays(*periodStart, *periodEnd)
	}

	if len(punches) == 0 {
		return []string{}
	}

	minDay := punches[0].DayKey()
	maxDay := minDay
	for _, p := range punches[1:] {
		d := p.DayKey()
		if d < minDay {
			minDay = d
		}
		if d > maxDay {
			maxDay = d
		}
	}
	s, _ := time.Parse(layout, minDay)
	e, _ := time.Parse(layout, maxDay)
	return spanDays(s, e)
}

func spanDays(start, end time.Time) []string {
	days := []string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format("2006-01-02"))
	}
	return days
}

func addTotals(t timesheet.Totals, reg, ot, total float64) timesheet.Totals {
	return timesheet.Totals{
		Regular:  round2(t.Regular + reg),
		Overtime: round2(t.Overtime + ot),
		Total:    round2(t.Total + total),
	}
}

// BuildGrid assembles the employee x date matrix from allocated
// punches. Rows sort by employee display name ascending, punches within
// a day by clock-in ascending. The input is never mutated; identical
// input produces identical totals.
func BuildGrid(punches []timesheet.AllocatedPunch, dateColumns []string) timesheet.Grid {
	rowIndex := make(map[string]*timesheet.GridRow)

	for _, p := range punches {
		row, ok := rowIndex[p.EmployeeID]
		if !ok {
			var name string
			if p.EmployeeName != nil {
				name = *p.EmployeeName
			}
			row = &timesheet.GridRow{
				EmployeeID:   p.EmployeeID,
				EmployeeName: name,
				Days:         make(map[string]timesheet.AggregatedDay),
			}
			rowIndex[p.EmployeeID] = row
		}

		day := p.DayKey()
		agg := row.Days[day]
		agg.Date = day
		agg.Punches = append(agg.Punches, p)
		agg.Totals = addTotals(agg.Totals, p.RegularHours, p.OvertimeHours, p.TotalHours)
		row.Days[day] = agg

		row.Totals = addTotals(row.Totals, p.RegularHours, p.OvertimeHours, p.TotalHours)
	}

	rows := make([]timesheet.GridRow, 0, len(rowIndex))
	for _, row := range rowIndex {
		for day, agg := range row.Days {
			sort.SliceStable(agg.Punches, func(i, j int) bool {
				return agg.Punches[i].ClockIn.Before(agg.Punches[j].ClockIn)
			})
			row.Days[day] = agg
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EmployeeName != rows[j].EmployeeName {
			return rows[i].EmployeeName < rows[j].EmployeeName
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	columnTotals := make(map[string]timesheet.Totals, len(dateColumns))
	for _, day := range dateColumns {
		columnTotals[day] = timesheet.Totals{}
	}
	var grand timesheet.Totals
	for _, row := range rows {
		for day, agg := range row.Days {
			columnTotals[day] = addTotals(columnTotals[day], agg.Totals.Regular, agg.Totals.Overtime, agg.Totals.Total)
		}
		grand = addTotals(grand, row.Totals.Regular, row.Totals.Overtime, row.Totals.Total)
	}

	return timesheet.Grid{
		DateColumns:  dateColumns,
		Rows:         rows,
		ColumnTotals: columnTotals,
		GrandTotals:  grand,
	}
}
