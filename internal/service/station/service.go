package station

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"github.com/lodgetrack/timeclock-backend/internal/domain/employee"
	"github.com/lodgetrack/timeclock-backend/internal/domain/property"
	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/domain/station"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/sse"
)

// Property lookups are cached briefly: the station hits the same
// property on every keypad interaction.
const propertyCacheTTL = 5 * time.Minute

type StationServiceImpl struct {
	employeeRepo  employee.EmployeeRepository
	propertyRepo  property.PropertyRepository
	punchRepo     punch.PunchRepository
	hub           *sse.Hub
	propertyCache *cache.Cache
}

func NewStationService(
	employeeRepo employee.EmployeeRepository,
	propertyRepo property.PropertyRepository,
	punchRepo punch.PunchRepository,
	hub *sse.Hub,
) station.StationService {
	return &StationServiceImpl{
		employeeRepo:  employeeRepo,
		propertyRepo:  propertyRepo,
		punchRepo:     punchRepo,
		hub:           hub,
		propertyCache: cache.New(propertyCacheTTL, 10*time.Minute),
	}
}

func (s *StationServiceImpl) getProperty(ctx context.Context, id string) (property.Property, error) {
	if cached, found := s.propertyCache.Get(id); found {
		return cached.(property.Property), nil
	}

	prop, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return property.Property{}, err
	}

	s.propertyCache.Set(id, prop, cache.DefaultExpiration)
	return prop, nil
}

// VerifyPIN implements station.StationService. The typed PIN is matched
// against every active roster hash; PINs are never stored or compared in
// plain text.
func (s *StationServiceImpl) VerifyPIN(ctx context.Context, req station.VerifyPINRequest) (station.VerifyPINResponse, error) {
	if err := req.Validate(); err != nil {
		return station.VerifyPINResponse{}, err
	}

	prop, err := s.getProperty(ctx, req.PropertyID)
	if err != nil {
		return station.VerifyPINResponse{}, err
	}

	roster, err := s.employeeRepo.ListActiveByProperty(ctx, req.PropertyID)
	if err != nil {
		return station.VerifyPINResponse{}, fmt.Errorf("failed to load property roster: %w", err)
	}

	var matched *employee.Employee
	for i := range roster {
		if roster[i].PINHash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(roster[i].PINHash), []byte(req.PIN)) == nil {
			matched = &roster[i]
			break
		}
	}
	if matched == nil {
		return station.VerifyPINResponse{}, employee.ErrInvalidPIN
	}

	resp := station.VerifyPINResponse{
		EmployeeID:   matched.ID,
		EmployeeName: matched.Name,
		PropertyName: prop.Name,
	}

	open, err := s.punchRepo.GetOpenByEmployee(ctx, matched.ID)
	if err != nil {
		return station.VerifyPINResponse{}, fmt.Errorf("failed to check open punch: %w", err)
	}
	if open != nil {
		resp.ActivePunch = &station.Active{
			PunchID: open.ID,
			ClockIn: open.ClockIn.Format(time.RFC3339),
		}
	}

	return resp, nil
}

// ClockIn implements station.StationService.
func (s *StationServiceImpl) ClockIn(ctx context.Context, req station.ClockRequest) (punch.Response, error) {
	if err := req.Validate(); err != nil {
		return punch.Response{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return punch.Response{}, err
	}
	if !emp.IsActive {
		return punch.Response{}, employee.ErrEmployeeInactive
	}

	open, err := s.punchRepo.GetOpenByEmployee(ctx, emp.ID)
	if err != nil {
		return punch.Response{}, fmt.Errorf("failed to check open punch: %w", err)
	}
	if open != nil {
		return punch.Response{}, punch.ErrAlreadyClockedIn
	}

	created, err := s.punchRepo.Create(ctx, punch.Punch{
		ID:         uuid.New().String(),
		EmployeeID: emp.ID,
		PropertyID: req.PropertyID,
		ClockIn:    time.Now().UTC(),
		Status:     punch.StatusPending,
	})
	if err != nil {
		return punch.Response{}, fmt.Errorf("failed to create punch: %w", err)
	}

	slog.Info("Employee clocked in", "employee_id", emp.ID, "property_id", req.PropertyID, "punch_id", created.ID)
	s.notify(ctx, req.PropertyID, created)

	return punch.ToResponse(created), nil
}

// ClockOut implements station.StationService.
func (s *StationServiceImpl) ClockOut(ctx context.Context, req station.ClockRequest) (punch.Response, error) {
	if err := req.Validate(); err != nil {
		return punch.Response{}, err
	}

	open, err := s.punchRepo.GetOpenByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return punch.Response{}, fmt.Errorf("failed to check open punch: %w", err)
	}
	if open == nil {
		return punch.Response{}, punch.ErrNotClockedIn
	}

	clockOut := time.Now().UTC()
	if err := s.punchRepo.Close(ctx, open.ID, clockOut); err != nil {
		return punch.Response{}, fmt.Errorf("failed to close punch: %w", err)
	}

	closed := *open
	closed.ClockOut = &clockOut

	slog.Info("Employee clocked out", "employee_id", req.EmployeeID, "punch_id", open.ID)
	s.notify(ctx, req.PropertyID, closed)

	return punch.ToResponse(closed), nil
}

// notify publishes a punch change to the property owner's dashboards.
// Station requests are unauthenticated, so the owner comes from the
// property record.
func (s *StationServiceImpl) notify(ctx context.Context, propertyID string, p punch.Punch) {
	prop, err := s.getProperty(ctx, propertyID)
	if err != nil {
		return
	}
	s.hub.Publish(prop.OwnerID, sse.Event{
		OwnerID: prop.OwnerID,
		Event:   sse.EventPunchChanged,
		Data: map[string]interface{}{
			"punch_id":    p.ID,
			"employee_id": p.EmployeeID,
			"date":        p.DayKey(),
		},
	})
}
