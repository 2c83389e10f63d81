package timesheet

import (
	"testing"
	"time"

	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkPunch(id, employeeID string, in, out string) punch.Punch {
	clockIn, err := time.Parse(time.RFC3339, in)
	if err != nil {
		panic(err)
	}
	p := punch.Punch{
		ID:         id,
		EmployeeID: employeeID,
		PropertyID: "prop-1",
		ClockIn:    clockIn,
		Status:     punch.StatusPending,
	}
	if out != "" {
		clockOut, err := time.Parse(time.RFC3339, out)
		if err != nil {
			panic(err)
		}
		p.ClockOut = &clockOut
	}
	return p
}

func TestAllocateDay_SinglePunchUnderThreshold(t *testing.T) {
	punches := []punch.Punch{
		mkPunch("p1", "emp-1", "2025-03-03T09:00:00Z", "2025-03-03T15:30:00Z"),
	}

	got := AllocateDay(punches)

	require.Len(t, got, 1)
	assert.Equal(t, 6.5, got[0].TotalHours)
	assert.Equal(t, 6.5, got[0].RegularHours)
	assert.Equal(t, 0.0, got[0].OvertimeHours)
}

func TestAllocateDay_SinglePunchOverThreshold(t *testing.T) {
	// 08:00-17:30 = 9.5h -> 8 regular, 1.5 overtime
	punches := []punch.Punch{
		mkPunch("p1", "emp-1", "2025-03-03T08:00:00Z", "2025-03-03T17:30:00Z"),
	}

	got := AllocateDay(punches)

	require.Len(t, got, 1)
	assert.Equal(t, 9.5, got[0].TotalHours)
	assert.Equal(t, 8.0, got[0].RegularHours)
	assert.Equal(t, 1.5, got[0].OvertimeHours)
}

func TestAllocateDay_SplitShiftConsumesBudgetInOrder(t *testing.T) {
	// 09:00-13:00 (4h) then 14:00-19:00 (5h): the first punch is all
	// regular, the second gets the remaining 4h regular plus 1h overtime.
	punches := []punch.Punch{
		mkPunch("p2", "emp-1", "2025-03-03T14:00:00Z", "2025-03-03T19:00:00Z"),
		mkPunch("p1", "emp-1", "2025-03-03T09:00:00Z", "2025-03-03T13:00:00Z"),
	}

	got := AllocateDay(punches)

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID, "earlier clock-in must come first")
	assert.Equal(t, 4.0, got[0].RegularHours)
	assert.Equal(t, 0.0, got[0].OvertimeHours)
	assert.Equal(t, "p2", got[1].ID)
	assert.Equal(t, 4.0, got[1].RegularHours)
	assert.Equal(t, 1.0, got[1].OvertimeHours)

	var reg, ot, total float64
	for _, p := range got {
		reg += p.RegularHours
		ot += p.OvertimeHours
		total += p.TotalHours
	}
	assert.Equal(t, 8.0, reg)
	assert.Equal(t, 1.0, ot)
	assert.Equal(t, 9.0, total)
}

func TestAllocateDay_RegularNeverExceedsThreshold(t *testing.T) {
	punches := []punch.Punch{
		mkPunch("p1", "emp-1", "2025-03-03T06:00:00Z", "2025-03-03T09:15:00Z"),
		mkPunch("p2", "emp-1", "2025-03-03T10:00:00Z", "2025-03-03T13:45:00Z"),
		mkPunch("p3", "emp-1", "2025-03-03T14:30:00Z", "2025-03-03T18:00:00Z"),
		mkPunch("p4", "emp-1", "2025-03-03T19:00:00Z", "2025-03-03T21:00:00Z"),
	}

	got := AllocateDay(punches)

	var reg float64
	for _, p := range got {
		reg += p.RegularHours
	}
	assert.LessOrEqual(t, reg, 8.0)

	// Overtime appears only once the budget is gone.
	budgetLeft := 8.0
	for _, p := range got {
		if p.OvertimeHours > 0 {
			assert.Equal(t, p.RegularHours, budgetLeft,
				"punch %s took overtime before exhausting the budget", p.ID)
		}
		budgetLeft -= p.RegularHours
	}
}

func TestAllocateDay_OpenPunchContributesNothing(t *testing.T) {
	punches := []punch.Punch{
		mkPunch("p1", "emp-1", "2025-03-03T09:00:00Z", ""),
		mkPunch("p2", "emp-1", "2025-03-03T10:00:00Z", "2025-03-03T19:00:00Z"),
	}

	got := AllocateDay(punches)

	require.Len(t, got, 2)
	assert.Equal(t, 0.0, got[0].TotalHours)
	assert.Equal(t, 0.0, got[0].RegularHours)
	assert.Equal(t, 0.0, got[0].OvertimeHours)
	// The open punch must not consume regular budget.
	assert.Equal(t, 8.0, got[1].RegularHours)
	assert.Equal(t, 1.0, got[1].OvertimeHours)
}

func TestAllocateDay_ZeroDurationAndNegativeClamped(t *testing.T) {
	punches := []punch.Punch{
		mkPunch("p1", "emp-1", "2025-03-03T09:00:00Z", "2025-03-03T09:00:00Z"),
		// clock-out before clock-in: clamped to zero, not rejected
		mkPunch("p2", "emp-1", "2025-03-03T10:00:00Z", "2025-03-03T09:30:00Z"),
	}

	got := AllocateDay(punches)

	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, 0.0, p.TotalHours)
		assert.Equal(t, 0.0, p.RegularHours)
		assert.Equal(t, 0.0, p.OvertimeHours)
	}
}

func TestAllocateDay_RoundsEachStep(t *testing.T) {
	// 7h59m36s = 7.993...h rounds to 7.99; the second punch then has
	// 0.01h of budget left.
	punches := []punch.Punch{
		mkPunch("p1", "emp-1", "2025-03-03T08:00:00Z", "2025-03-03T15:59:36Z"),
		mkPunch("p2", "emp-1", "2025-03-03T17:00:00Z", "2025-03-03T19:00:00Z"),
	}

	got := AllocateDay(punches)

	require.Len(t, got, 2)
	assert.Equal(t, 7.99, got[0].RegularHours)
	assert.Equal(t, 0.01, got[1].RegularHours)
	assert.Equal(t, 1.99, got[1].OvertimeHours)
}

func TestAllocate_GroupsByEmployeeAndDay(t *testing.T) {
	punches := []punch.Punch{
		// emp-1 works 9h on the 3rd and 5h on the 4th; emp-2 works 9h on
		// the 3rd. Budgets must not bleed across employees or days.
		mkPunch("a1", "emp-1", "2025-03-03T08:00:00Z", "2025-03-03T17:00:00Z"),
		mkPunch("a2", "emp-1", "2025-03-04T08:00:00Z", "2025-03-04T13:00:00Z"),
		mkPunch("b1", "emp-2", "2025-03-03T08:00:00Z", "2025-03-03T17:00:00Z"),
	}

	got := Allocate(punches)

	byID := make(map[string]float64)
	for _, p := range got {
		byID[p.ID] = p.OvertimeHours
	}
	assert.Equal(t, 1.0, byID["a1"])
	assert.Equal(t, 0.0, byID["a2"])
	assert.Equal(t, 1.0, byID["b1"])
}

func TestAllocate_MidnightSpannerStaysOnStartDay(t *testing.T) {
	// 22:00 to 04:00 next day: all 6 hours attributed to the start day.
	punches := []punch.Punch{
		mkPunch("p1", "emp-1", "2025-03-03T22:00:00Z", "2025-03-04T04:00:00Z"),
		mkPunch("p2", "emp-1", "2025-03-04T08:00:00Z", "2025-03-04T16:00:00Z"),
	}

	got := Allocate(punches)

	var p1, p2 float64
	for _, p := range got {
		switch p.ID {
		case "p1":
			p1 = p.RegularHours
		case "p2":
			p2 = p.RegularHours
		}
	}
	// p1's six hours do not eat into the 4th's budget.
	assert.Equal(t, 6.0, p1)
	assert.Equal(t, 8.0, p2)
}

func TestAllocate_Idempotent(t *testing.T) {
	punches := []punch.Punch{
		mkPunch("p1", "emp-1", "2025-03-03T09:00:00Z", "2025-03-03T13:00:00Z"),
		mkPunch("p2", "emp-1", "2025-03-03T14:00:00Z", "2025-03-03T19:00:00Z"),
		mkPunch("p3", "emp-2", "2025-03-03T07:00:00Z", "2025-03-03T18:30:00Z"),
	}

	first := Allocate(punches)
	second := Allocate(punches)

	assert.Equal(t, first, second)
}
