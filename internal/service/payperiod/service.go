package payperiod

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lodgetrack/timeclock-backend/internal/domain/auth"
	"github.com/lodgetrack/timeclock-backend/internal/domain/payperiod"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/jwt"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/sse"
)

type PayPeriodServiceImpl struct {
	payPeriodRepo payperiod.PayPeriodRepository
	jwtService    jwt.Service
	hub           *sse.Hub

	// Active admin overrides, keyed by session user. Locking any period
	// revokes every override; an override never survives a lock.
	mu        sync.RWMutex
	overrides map[string]struct{}
}

func NewPayPeriodService(
	payPeriodRepo payperiod.PayPeriodRepository,
	jwtService jwt.Service,
	hub *sse.Hub,
) payperiod.PayPeriodService {
	return &PayPeriodServiceImpl{
		payPeriodRepo: payPeriodRepo,
		jwtService:    jwtService,
		hub:           hub,
		overrides:     make(map[string]struct{}),
	}
}

// Create implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) Create(ctx context.Context, req payperiod.CreateRequest) (payperiod.Response, error) {
	if err := req.Validate(); err != nil {
		return payperiod.Response{}, err
	}

	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return payperiod.Response{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	existing, err := s.payPeriodRepo.List(ctx, actor.UserID)
	if err != nil {
		return payperiod.Response{}, fmt.Errorf("failed to list pay periods: %w", err)
	}
	candidate := payperiod.PayPeriod{StartDate: start, EndDate: end}
	for _, p := range existing {
		if p.Contains(start) || p.Contains(end) || candidate.Contains(p.StartDate) {
			return payperiod.Response{}, payperiod.ErrPeriodOverlap
		}
	}

	created, err := s.payPeriodRepo.Create(ctx, payperiod.PayPeriod{
		StartDate:  start,
		EndDate:    end,
		PeriodType: req.PeriodType,
		OwnerID:    actor.UserID,
	})
	if err != nil {
		return payperiod.Response{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return payperiod.ToResponse(created), nil
}

// List implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) List(ctx context.Context) ([]payperiod.Response, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.payPeriodRepo.List(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}

	responses := make([]payperiod.Response, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, payperiod.ToResponse(p))
	}
	return responses, nil
}

// Get implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) Get(ctx context.Context, id string) (payperiod.Response, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return payperiod.Response{}, err
	}

	period, err := s.payPeriodRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return payperiod.Response{}, err
	}
	return payperiod.ToResponse(period), nil
}

// Lock implements payperiod.PayPeriodService. Locking revokes every
// active override; an override never survives a lock.
func (s *PayPeriodServiceImpl) Lock(ctx context.Context, id string) (payperiod.Response, error) {
	resp, err := s.setLocked(ctx, id, true)
	if err != nil {
		return payperiod.Response{}, err
	}

	s.mu.Lock()
	s.overrides = make(map[string]struct{})
	s.mu.Unlock()

	return resp, nil
}

// Unlock implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) Unlock(ctx context.Context, id string) (payperiod.Response, error) {
	return s.setLocked(ctx, id, false)
}

func (s *PayPeriodServiceImpl) setLocked(ctx context.Context, id string, locked bool) (payperiod.Response, error) {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return payperiod.Response{}, err
	}

	if err := s.payPeriodRepo.SetLocked(ctx, id, locked, actor.UserID); err != nil {
		return payperiod.Response{}, err
	}

	period, err := s.payPeriodRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return payperiod.Response{}, fmt.Errorf("failed to reload pay period: %w", err)
	}

	slog.Info("Pay period lock changed", "period_id", id, "locked", locked, "user_id", actor.UserID)
	s.hub.Publish(actor.UserID, sse.Event{
		OwnerID: actor.UserID,
		Event:   sse.EventPeriodLocked,
		Data:    map[string]interface{}{"pay_period_id": id, "locked": locked},
	})

	return payperiod.ToResponse(period), nil
}

// SetOverride implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) SetOverride(ctx context.Context, active bool) error {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !actor.IsAdmin {
		return auth.ErrAdminPrivilegeRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		s.overrides[actor.UserID] = struct{}{}
	} else {
		delete(s.overrides, actor.UserID)
	}
	return nil
}

// OverrideActive implements payperiod.PayPeriodService.
func (s *PayPeriodServiceImpl) OverrideActive(ctx context.Context) bool {
	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.overrides[actor.UserID]
	return ok
}

// AuthorizeEdit implements payperiod.PayPeriodService. Punches with no
// period are never gated.
func (s *PayPeriodServiceImpl) AuthorizeEdit(ctx context.Context, periodID *string) error {
	if periodID == nil || *periodID == "" {
		return nil
	}

	actor, err := s.jwtService.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	period, err := s.payPeriodRepo.GetByID(ctx, *periodID, actor.UserID)
	if err != nil {
		return err
	}

	if !payperiod.CanEdit(period.IsLocked, actor.IsAdmin, s.OverrideActive(ctx)) {
		return payperiod.ErrPeriodLocked
	}
	return nil
}
