package timesheet

import (
	"math"
	"sort"

	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/domain/timesheet"
)

// DailyThresholdHours is the daily regular-hour budget. Overtime starts
// only after the 8th cumulative hour in a single calendar day, however
// many separate punches produced those hours.
const DailyThresholdHours = 8.0

// round2 rounds to 2 decimal places. Applied after every arithmetic
// step so float drift cannot accumulate across a day's punches.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AllocateDay splits one employee's punches for one calendar day into
// regular and overtime hours. Punches are walked in clock-in order,
// earlier punches consuming the regular budget first. Zero-duration
// punches (open, or clock-out equal to clock-in) pass through as 0/0
// without touching the budget. Pure: the input slice is not modified.
func AllocateDay(punches []punch.Punch) []timesheet.AllocatedPunch {
	ordered := make([]punch.Punch, len(punches))
	copy(ordered, punches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ClockIn.Before(ordered[j].ClockIn)
	})

	remaining := DailyThresholdHours
	allocated := make([]timesheet.AllocatedPunch, 0, len(ordered))

	for _, p := range ordered {
		dur := round2(p.Duration())
		if dur == 0 {
			allocated = append(allocated, timesheet.AllocatedPunch{Punch: p})
			continue
		}

		reg := round2(math.Min(remaining, dur))
		ot := round2(math.Max(0, dur-reg))
		remaining = round2(remaining - reg)

		allocated = append(allocated, timesheet.AllocatedPunch{
			Punch:         p,
			TotalHours:    dur,
			RegularHours:  reg,
			OvertimeHours: ot,
		})
	}

	return allocated
}

// Allocate groups punches by (employee, clock-in calendar day) and runs
// the daily split on each group. Safe to re-run any number of times on
// the same snapshot; results depend only on the input.
func Allocate(punches []punch.Punch) []timesheet.AllocatedPunch {
	type dayKey struct {
		employeeID string
		day        string
	}

	buckets := make(map[dayKey][]punch.Punch)
	order := make([]dayKey, 0)
	for _, p := range punches {
		k := dayKey{employeeID: p.EmployeeID, day: p.DayKey()}
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], p)
	}

	allocated := make([]timesheet.AllocatedPunch, 0, len(punches))
	for _, k := range order {
		allocated = append(allocated, AllocateDay(buckets[k])...)
	}

	return allocated
}
