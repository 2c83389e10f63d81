package station

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lodgetrack/timeclock-backend/internal/domain/employee"
	"github.com/lodgetrack/timeclock-backend/internal/domain/property"
	"github.com/lodgetrack/timeclock-backend/internal/domain/punch"
	"github.com/lodgetrack/timeclock-backend/internal/domain/station"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/sse"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) ListActiveByProperty(_ context.Context, propertyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.PropertyID == propertyID && e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePropertyRepo struct {
	properties map[string]property.Property
	getCalls   int
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id string) (property.Property, error) {
	r.getCalls++
	p, ok := r.properties[id]
	if !ok {
		return property.Property{}, property.ErrPropertyNotFound
	}
	return p, nil
}

func (r *fakePropertyRepo) ListByOwner(_ context.Context, ownerID string) ([]property.Property, error) {
	var out []property.Property
	for _, p := range r.properties {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePunchRepo struct {
	punches map[string]punch.Punch
	nextID  int
}

func (r *fakePunchRepo) Create(_ context.Context, p punch.Punch) (punch.Punch, error) {
	if p.ID == "" {
		r.nextID++
		p.ID = fmt.Sprintf("punch-%d", r.nextID)
	}
	r.punches[p.ID] = p
	return p, nil
}

func (r *fakePunchRepo) GetByID(_ context.Context, id string, _ string) (punch.Punch, error) {
	p, ok := r.punches[id]
	if !ok {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	return p, nil
}

func (r *fakePunchRepo) List(_ context.Context, _ punch.Filter, _ string) ([]punch.Punch, error) {
	return nil, nil
}

func (r *fakePunchRepo) GetOpenByEmployee(_ context.Context, employeeID string) (*punch.Punch, error) {
	for _, p := range r.punches {
		if p.EmployeeID == employeeID && p.IsOpen() {
			open := p
			return &open, nil
		}
	}
	return nil, nil
}

func (r *fakePunchRepo) UpdateTimes(_ context.Context, _ string, _ time.Time, _ *time.Time, _ string) error {
	return nil
}

func (r *fakePunchRepo) Close(_ context.Context, id string, clockOut time.Time) error {
	p, ok := r.punches[id]
	if !ok {
		return punch.ErrPunchNotFound
	}
	p.ClockOut = &clockOut
	r.punches[id] = p
	return nil
}

func (r *fakePunchRepo) SetApproval(_ context.Context, _ punch.ApprovalUpdate, _ string) error {
	return nil
}

func (r *fakePunchRepo) SetApprovalBatch(_ context.Context, _ []punch.ApprovalUpdate, _ string) error {
	return nil
}

func (r *fakePunchRepo) AssignPayPeriod(_ context.Context, _ string, _, _ time.Time, _ string) (int64, error) {
	return 0, nil
}

func (r *fakePunchRepo) Delete(_ context.Context, id string, _ string) error {
	delete(r.punches, id)
	return nil
}

func hashPIN(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type stationFixture struct {
	svc          station.StationService
	employeeRepo *fakeEmployeeRepo
	propertyRepo *fakePropertyRepo
	punchRepo    *fakePunchRepo
	hub          *sse.Hub
}

func newStationFixture(t *testing.T) *stationFixture {
	t.Helper()

	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", PropertyID: "prop-1", Name: "Ana Ruiz", PINHash: hashPIN(t, "1234"), IsActive: true},
		"emp-2": {ID: "emp-2", PropertyID: "prop-1", Name: "Ben Ochoa", PINHash: hashPIN(t, "5678"), IsActive: true},
		"emp-3": {ID: "emp-3", PropertyID: "prop-1", Name: "Cara Diaz", PINHash: hashPIN(t, "9999"), IsActive: false},
	}}
	propertyRepo := &fakePropertyRepo{properties: map[string]property.Property{
		"prop-1": {ID: "prop-1", Name: "Seaside Inn", OwnerID: "owner-1"},
	}}
	punchRepo := &fakePunchRepo{punches: make(map[string]punch.Punch)}
	hub := sse.NewHub()

	return &stationFixture{
		svc:          NewStationService(employeeRepo, propertyRepo, punchRepo, hub),
		employeeRepo: employeeRepo,
		propertyRepo: propertyRepo,
		punchRepo:    punchRepo,
		hub:          hub,
	}
}

func TestVerifyPIN(t *testing.T) {
	f := newStationFixture(t)

	resp, err := f.svc.VerifyPIN(context.Background(), station.VerifyPINRequest{
		PropertyID: "prop-1",
		PIN:        "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Ana Ruiz", resp.EmployeeName)
	assert.Equal(t, "Seaside Inn", resp.PropertyName)
	assert.Nil(t, resp.ActivePunch)
}

func TestVerifyPINWrongPIN(t *testing.T) {
	f := newStationFixture(t)

	_, err := f.svc.VerifyPIN(context.Background(), station.VerifyPINRequest{
		PropertyID: "prop-1",
		PIN:        "0000",
	})
	assert.ErrorIs(t, err, employee.ErrInvalidPIN)
}

func TestVerifyPINIgnoresInactiveEmployees(t *testing.T) {
	f := newStationFixture(t)

	_, err := f.svc.VerifyPIN(context.Background(), station.VerifyPINRequest{
		PropertyID: "prop-1",
		PIN:        "9999",
	})
	assert.ErrorIs(t, err, employee.ErrInvalidPIN)
}

func TestVerifyPINValidation(t *testing.T) {
	f := newStationFixture(t)

	_, err := f.svc.VerifyPIN(context.Background(), station.VerifyPINRequest{
		PropertyID: "prop-1",
		PIN:        "12ab",
	})
	require.Error(t, err)

	_, err = f.svc.VerifyPIN(context.Background(), station.VerifyPINRequest{
		PropertyID: "prop-1",
		PIN:        "12345",
	})
	require.Error(t, err)
}

func TestVerifyPINReportsActivePunch(t *testing.T) {
	f := newStationFixture(t)

	_, err := f.svc.ClockIn(context.Background(), station.ClockRequest{PropertyID: "prop-1", EmployeeID: "emp-1"})
	require.NoError(t, err)

	resp, err := f.svc.VerifyPIN(context.Background(), station.VerifyPINRequest{
		PropertyID: "prop-1",
		PIN:        "1234",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ActivePunch)
	assert.NotEmpty(t, resp.ActivePunch.PunchID)
}

func TestClockInAndOut(t *testing.T) {
	f := newStationFixture(t)
	ctx := context.Background()
	req := station.ClockRequest{PropertyID: "prop-1", EmployeeID: "emp-1"}

	opened, err := f.svc.ClockIn(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, punch.StatusPending, opened.Status)
	assert.Nil(t, opened.ClockOut)

	closed, err := f.svc.ClockOut(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, closed.ID)
	assert.NotNil(t, closed.ClockOut)
}

func TestClockInRejectsDoubleClockIn(t *testing.T) {
	f := newStationFixture(t)
	ctx := context.Background()
	req := station.ClockRequest{PropertyID: "prop-1", EmployeeID: "emp-1"}

	_, err := f.svc.ClockIn(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.ClockIn(ctx, req)
	assert.ErrorIs(t, err, punch.ErrAlreadyClockedIn)
}

func TestClockOutWithoutOpenPunch(t *testing.T) {
	f := newStationFixture(t)

	_, err := f.svc.ClockOut(context.Background(), station.ClockRequest{PropertyID: "prop-1", EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, punch.ErrNotClockedIn)
}

func TestClockInRejectsInactiveEmployee(t *testing.T) {
	f := newStationFixture(t)

	_, err := f.svc.ClockIn(context.Background(), station.ClockRequest{PropertyID: "prop-1", EmployeeID: "emp-3"})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestClockEventsReachOwnerDashboards(t *testing.T) {
	f := newStationFixture(t)
	ch, cleanup := f.hub.Subscribe("owner-1")
	defer cleanup()

	_, err := f.svc.ClockIn(context.Background(), station.ClockRequest{PropertyID: "prop-1", EmployeeID: "emp-1"})
	require.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventPunchChanged, ev.Event)
	default:
		t.Fatal("expected a punch change event")
	}
}

func TestPropertyLookupsAreCached(t *testing.T) {
	f := newStationFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.VerifyPIN(ctx, station.VerifyPINRequest{PropertyID: "prop-1", PIN: "1234"})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, f.propertyRepo.getCalls, "repeat lookups should hit the cache")
}
