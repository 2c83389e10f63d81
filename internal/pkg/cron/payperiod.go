package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lodgetrack/timeclock-backend/internal/domain/payperiod"
	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
)

// PayPeriodJobs sweeps punches created before their pay period existed
// and stamps the covering period onto them. Punches may predate period
// assignment; the timesheet core tolerates a nil pay_period_id, so the
// sweep is purely catch-up work.
type PayPeriodJobs struct {
	punchRepo     punch.PunchRepository
	payPeriodRepo payperiod.PayPeriodRepository
}

func NewPayPeriodJobs(
	punchRepo punch.PunchRepository,
	payPeriodRepo payperiod.PayPeriodRepository,
) *PayPeriodJobs {
	return &PayPeriodJobs{
		punchRepo:     punchRepo,
		payPeriodRepo: payPeriodRepo,
	}
}

func (j *PayPeriodJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("assign_pay_periods", 1*time.Hour, j.AssignPayPeriods)
}

// AssignPayPeriods stamps unassigned punches with the period covering
// their clock-in date. Periods older than 60 days are left alone.
func (j *PayPeriodJobs) AssignPayPeriods(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -60)

	periods, err := j.payPeriodRepo.ListRecent(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list recent pay periods: %w", err)
	}

	for _, p := range periods {
		affected, err := j.punchRepo.AssignPayPeriod(ctx, p.ID, p.StartDate, p.EndDate, p.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to assign punches to period %s: %w", p.ID, err)
		}
		if affected > 0 {
			slog.Info("Assigned punches to pay period", "period_id", p.ID, "count", affected)
		}
	}

	return nil
}
