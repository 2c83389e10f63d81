package punch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lodgetrack/timeclock-backend/internal/domain/payperiod"
	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/jwt"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/sse"
)

type PunchServiceImpl struct {
	punchRepo        punch.PunchRepository
	payPeriodService payperiod.PayPeriodService
	jwtService       jwt.Service
	hub              *sse.Hub
}

func NewPunchService(
	punchRepo punch.PunchRepository,
	payPeriodService payperiod.PayPeriodService,
	jwtService jwt.Service,
	hub *sse.Hub,
) punch.PunchService {
	return &PunchServiceImpl{
		punchRepo:        punchRepo,
		payPeriodService: payPeriodService,
		jwtService:       jwtService,
		hub:              hub,
	}
}

// List implements punch.PunchService.
func (s *PunchServiceImpl) List(ctx context.Context, filter punch.Filter) ([]punch.Response, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	punches, err := s.punchRepo.List(ctx, filter, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}

	responses := make([]punch.Response, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, punch.ToResponse(p))
	}
	return responses, nil
}

// Get implements punch.PunchService.
func (s *PunchServiceImpl) Get(ctx context.Context, id string) (punch.Response, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return punch.Response{}, err
	}

	p, err := s.punchRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return punch.Response{}, err
	}
	return punch.ToResponse(p), nil
}

// EditTimes implements punch.PunchService. A corrected punch always
// drops back to pending with its approver cleared, and a change event
// is published so dashboards recompute the affected employee's day.
func (s *PunchServiceImpl) EditTimes(ctx context.Context, req punch.EditTimesRequest) (punch.Response, error) {
	clockIn, clockOut, err := req.Validate()
	if err != nil {
		return punch.Response{}, err
	}

	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return punch.Response{}, err
	}

	p, err := s.punchRepo.GetByID(ctx, req.ID, actor.UserID)
	if err != nil {
		return punch.Response{}, err
	}

	if err := s.payPeriodService.AuthorizeEdit(ctx, p.PayPeriodID); err != nil {
		return punch.Response{}, err
	}

	// The existing pay period assignment is kept even if the new clock-in
	// leaves the period's date range; the hourly sweep only fills missing
	// assignments, so a moved punch holds its stale period id until
	// reassigned manually.
	if err := s.punchRepo.UpdateTimes(ctx, p.ID, clockIn, clockOut, actor.UserID); err != nil {
		return punch.Response{}, fmt.Errorf("failed to update punch times: %w", err)
	}

	updated, err := s.punchRepo.GetByID(ctx, p.ID, actor.UserID)
	if err != nil {
		return punch.Response{}, fmt.Errorf("failed to reload punch: %w", err)
	}

	slog.Info("Punch times corrected", "punch_id", p.ID, "employee_id", p.EmployeeID, "user_id", actor.UserID)
	s.publishChanged(actor.UserID, updated)

	return punch.ToResponse(updated), nil
}

// Approve implements punch.PunchService.
func (s *PunchServiceImpl) Approve(ctx context.Context, id string) (punch.Response, error) {
	return s.setStatus(ctx, id, punch.StatusApproved)
}

// Unapprove implements punch.PunchService.
func (s *PunchServiceImpl) Unapprove(ctx context.Context, id string) (punch.Response, error) {
	return s.setStatus(ctx, id, punch.StatusPending)
}

// Toggle implements punch.PunchService.
func (s *PunchServiceImpl) Toggle(ctx context.Context, id string) (punch.Response, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return punch.Response{}, err
	}

	p, err := s.punchRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return punch.Response{}, err
	}

	if p.Status == punch.StatusApproved {
		return s.setStatus(ctx, id, punch.StatusPending)
	}
	return s.setStatus(ctx, id, punch.StatusApproved)
}

func (s *PunchServiceImpl) setStatus(ctx context.Context, id string, status string) (punch.Response, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return punch.Response{}, err
	}

	p, err := s.punchRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return punch.Response{}, err
	}

	if err := s.payPeriodService.AuthorizeEdit(ctx, p.PayPeriodID); err != nil {
		return punch.Response{}, err
	}

	if p.Status == status {
		return punch.ToResponse(p), nil
	}

	upd := punch.ApprovalUpdate{ID: id, Status: status}
	if status == punch.StatusApproved {
		now := time.Now()
		upd.ApprovedBy = &actor.UserID
		upd.ApprovedAt = &now
	}

	if err := s.punchRepo.SetApproval(ctx, upd, actor.UserID); err != nil {
		return punch.Response{}, fmt.Errorf("failed to update punch status: %w", err)
	}

	updated, err := s.punchRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return punch.Response{}, fmt.Errorf("failed to reload punch: %w", err)
	}

	s.publishChanged(actor.UserID, updated)
	return punch.ToResponse(updated), nil
}

// ApprovePayroll implements punch.PunchService. Only punches that are
// pending at call time move; already-approved records are untouched, so
// a repeat invocation approves nothing.
func (s *PunchServiceImpl) ApprovePayroll(ctx context.Context, filter punch.Filter) (int, error) {
	return s.approvePending(ctx, filter, func(punch.Punch) bool { return true })
}

// ApproveEmployee implements punch.PunchService.
func (s *PunchServiceImpl) ApproveEmployee(ctx context.Context, filter punch.Filter, employeeID string) (int, error) {
	return s.approvePending(ctx, filter, func(p punch.Punch) bool {
		return p.EmployeeID == employeeID
	})
}

// ApproveEmployeeDay implements punch.PunchService.
func (s *PunchServiceImpl) ApproveEmployeeDay(ctx context.Context, filter punch.Filter, employeeID string, date string) (int, error) {
	return s.approvePending(ctx, filter, func(p punch.Punch) bool {
		return p.EmployeeID == employeeID && p.DayKey() == date
	})
}

func (s *PunchServiceImpl) approvePending(ctx context.Context, filter punch.Filter, match func(punch.Punch) bool) (int, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return 0, err
	}

	punches, err := s.punchRepo.List(ctx, filter, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to list punches: %w", err)
	}

	// Every period touched by the batch must pass the lock gate, not
	// just the one named in the filter.
	checked := make(map[string]bool)
	now := time.Now()
	var updates []punch.ApprovalUpdate
	for _, p := range punches {
		if p.Status != punch.StatusPending || !match(p) {
			continue
		}
		if p.PayPeriodID != nil && !checked[*p.PayPeriodID] {
			if err := s.payPeriodService.AuthorizeEdit(ctx, p.PayPeriodID); err != nil {
				return 0, err
			}
			checked[*p.PayPeriodID] = true
		}
		updates = append(updates, punch.ApprovalUpdate{
			ID:         p.ID,
			Status:     punch.StatusApproved,
			ApprovedBy: &actor.UserID,
			ApprovedAt: &now,
		})
	}

	if len(updates) == 0 {
		return 0, nil
	}

	if err := s.punchRepo.SetApprovalBatch(ctx, updates, actor.UserID); err != nil {
		return 0, fmt.Errorf("failed to approve punches: %w", err)
	}

	slog.Info("Punches approved", "count", len(updates), "user_id", actor.UserID)
	s.hub.Publish(actor.UserID, sse.Event{
		OwnerID: actor.UserID,
		Event:   sse.EventPunchChanged,
		Data:    map[string]interface{}{"approved": len(updates)},
	})

	return len(updates), nil
}

// Delete implements punch.PunchService.
func (s *PunchServiceImpl) Delete(ctx context.Context, id string) error {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	p, err := s.punchRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return err
	}

	if err := s.payPeriodService.AuthorizeEdit(ctx, p.PayPeriodID); err != nil {
		return err
	}

	if err := s.punchRepo.Delete(ctx, id, actor.UserID); err != nil {
		return fmt.Errorf("failed to delete punch: %w", err)
	}

	s.publishChanged(actor.UserID, p)
	return nil
}

func (s *PunchServiceImpl) publishChanged(ownerID string, p punch.Punch) {
	s.hub.Publish(ownerID, sse.Event{
		OwnerID: ownerID,
		Event:   sse.EventPunchChanged,
		Data: map[string]interface{}{
			"punch_id":    p.ID,
			"employee_id": p.EmployeeID,
			"date":        p.DayKey(),
		},
	})
}
