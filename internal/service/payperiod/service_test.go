package payperiod

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodgetrack/timeclock-backend/internal/domain/auth"
	"github.com/lodgetrack/timeclock-backend/internal/domain/payperiod"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/jwt"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/sse"
)

type fakePayPeriodRepo struct {
	periods map[string]payperiod.PayPeriod
	nextID  int
}

func newFakePayPeriodRepo() *fakePayPeriodRepo {
	return &fakePayPeriodRepo{periods: make(map[string]payperiod.PayPeriod)}
}

func (r *fakePayPeriodRepo) Create(_ context.Context, p payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	r.nextID++
	p.ID = fmt.Sprintf("pp-%d", r.nextID)
	r.periods[p.ID] = p
	return p, nil
}

func (r *fakePayPeriodRepo) GetByID(_ context.Context, id string, ownerID string) (payperiod.PayPeriod, error) {
	p, ok := r.periods[id]
	if !ok || p.OwnerID != ownerID {
		return payperiod.PayPeriod{}, payperiod.ErrPayPeriodNotFound
	}
	return p, nil
}

func (r *fakePayPeriodRepo) List(_ context.Context, ownerID string) ([]payperiod.PayPeriod, error) {
	var out []payperiod.PayPeriod
	for _, p := range r.periods {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePayPeriodRepo) SetLocked(_ context.Context, id string, locked bool, ownerID string) error {
	p, ok := r.periods[id]
	if !ok || p.OwnerID != ownerID {
		return payperiod.ErrPayPeriodNotFound
	}
	p.IsLocked = locked
	r.periods[id] = p
	return nil
}

func (r *fakePayPeriodRepo) ListRecent(_ context.Context, endsOnOrAfter time.Time) ([]payperiod.PayPeriod, error) {
	var out []payperiod.PayPeriod
	for _, p := range r.periods {
		if !p.EndDate.Before(endsOnOrAfter) {
			out = append(out, p)
		}
	}
	return out, nil
}

func authedContext(t *testing.T, jwtService jwt.Service, userID string, isAdmin bool) context.Context {
	t.Helper()
	token, _, err := jwtService.JWTAuth().Encode(map[string]interface{}{
		"user_id":  userID,
		"is_admin": isAdmin,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T) (payperiod.PayPeriodService, *fakePayPeriodRepo, jwt.Service) {
	t.Helper()
	repo := newFakePayPeriodRepo()
	jwtService := jwt.NewJWTService("test-secret")
	return NewPayPeriodService(repo, jwtService, sse.NewHub()), repo, jwtService
}

func seedPeriod(repo *fakePayPeriodRepo, ownerID string, locked bool) payperiod.PayPeriod {
	p, _ := repo.Create(context.Background(), payperiod.PayPeriod{
		StartDate:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		PeriodType: payperiod.TypeWeekly,
		IsLocked:   locked,
		OwnerID:    ownerID,
	})
	return p
}

func TestCreatePayPeriod(t *testing.T) {
	svc, _, jwtService := newTestService(t)
	ctx := authedContext(t, jwtService, "owner-1", true)

	resp, err := svc.Create(ctx, payperiod.CreateRequest{
		StartDate:  "2025-03-03",
		EndDate:    "2025-03-09",
		PeriodType: payperiod.TypeWeekly,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", resp.StartDate)
	assert.Equal(t, "2025-03-09", resp.EndDate)
	assert.False(t, resp.IsLocked)
}

func TestCreatePayPeriodValidation(t *testing.T) {
	svc, _, jwtService := newTestService(t)
	ctx := authedContext(t, jwtService, "owner-1", true)

	t.Run("malformed dates", func(t *testing.T) {
		_, err := svc.Create(ctx, payperiod.CreateRequest{
			StartDate:  "03/03/2025",
			EndDate:    "2025-03-09",
			PeriodType: payperiod.TypeWeekly,
		})
		require.Error(t, err)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := svc.Create(ctx, payperiod.CreateRequest{
			StartDate:  "2025-03-09",
			EndDate:    "2025-03-03",
			PeriodType: payperiod.TypeWeekly,
		})
		assert.ErrorIs(t, err, payperiod.ErrInvalidDateRange)
	})

	t.Run("unknown period type", func(t *testing.T) {
		_, err := svc.Create(ctx, payperiod.CreateRequest{
			StartDate:  "2025-03-03",
			EndDate:    "2025-03-09",
			PeriodType: "monthly",
		})
		assert.ErrorIs(t, err, payperiod.ErrInvalidPeriodType)
	})
}

func TestCreateRejectsOverlappingPeriod(t *testing.T) {
	svc, repo, jwtService := newTestService(t)
	seedPeriod(repo, "owner-1", false) // 2025-03-03 .. 2025-03-09
	ctx := authedContext(t, jwtService, "owner-1", true)

	overlapping := []payperiod.CreateRequest{
		{StartDate: "2025-03-07", EndDate: "2025-03-13", PeriodType: payperiod.TypeWeekly},
		{StartDate: "2025-02-25", EndDate: "2025-03-03", PeriodType: payperiod.TypeWeekly},
		{StartDate: "2025-03-01", EndDate: "2025-03-14", PeriodType: payperiod.TypeBiweekly},
	}
	for _, req := range overlapping {
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, payperiod.ErrPeriodOverlap, "%s..%s", req.StartDate, req.EndDate)
	}

	// Adjacent weeks do not overlap; another owner's calendar never collides.
	_, err := svc.Create(ctx, payperiod.CreateRequest{
		StartDate: "2025-03-10", EndDate: "2025-03-16", PeriodType: payperiod.TypeWeekly,
	})
	require.NoError(t, err)

	other := authedContext(t, jwtService, "owner-2", true)
	_, err = svc.Create(other, payperiod.CreateRequest{
		StartDate: "2025-03-03", EndDate: "2025-03-09", PeriodType: payperiod.TypeWeekly,
	})
	require.NoError(t, err)
}

func TestGetPayPeriodScopedToOwner(t *testing.T) {
	svc, repo, jwtService := newTestService(t)
	p := seedPeriod(repo, "owner-1", false)

	_, err := svc.Get(authedContext(t, jwtService, "owner-2", false), p.ID)
	assert.ErrorIs(t, err, payperiod.ErrPayPeriodNotFound)

	got, err := svc.Get(authedContext(t, jwtService, "owner-1", false), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestLockAndUnlock(t *testing.T) {
	svc, repo, jwtService := newTestService(t)
	p := seedPeriod(repo, "owner-1", false)
	ctx := authedContext(t, jwtService, "owner-1", true)

	locked, err := svc.Lock(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	unlocked, err := svc.Unlock(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, unlocked.IsLocked)
}

func TestLockClearsAllOverrides(t *testing.T) {
	svc, repo, jwtService := newTestService(t)
	p := seedPeriod(repo, "owner-1", false)
	ctx := authedContext(t, jwtService, "owner-1", true)

	require.NoError(t, svc.SetOverride(ctx, true))
	assert.True(t, svc.OverrideActive(ctx))

	_, err := svc.Lock(ctx, p.ID)
	require.NoError(t, err)

	assert.False(t, svc.OverrideActive(ctx), "locking must revoke every active override")
}

func TestSetOverrideRequiresAdmin(t *testing.T) {
	svc, _, jwtService := newTestService(t)
	ctx := authedContext(t, jwtService, "owner-1", false)

	err := svc.SetOverride(ctx, true)
	assert.ErrorIs(t, err, auth.ErrAdminPrivilegeRequired)
	assert.False(t, svc.OverrideActive(ctx))
}

func TestAuthorizeEdit(t *testing.T) {
	svc, repo, jwtService := newTestService(t)
	unlockedPeriod := seedPeriod(repo, "owner-1", false)
	lockedPeriod := seedPeriod(repo, "owner-1", true)

	adminCtx := authedContext(t, jwtService, "owner-1", true)
	memberCtx := authedContext(t, jwtService, "owner-1", false)

	t.Run("no period is never gated", func(t *testing.T) {
		assert.NoError(t, svc.AuthorizeEdit(memberCtx, nil))
		empty := ""
		assert.NoError(t, svc.AuthorizeEdit(memberCtx, &empty))
	})

	t.Run("unlocked period allows edits", func(t *testing.T) {
		assert.NoError(t, svc.AuthorizeEdit(memberCtx, &unlockedPeriod.ID))
	})

	t.Run("locked period blocks non-admins", func(t *testing.T) {
		assert.ErrorIs(t, svc.AuthorizeEdit(memberCtx, &lockedPeriod.ID), payperiod.ErrPeriodLocked)
	})

	t.Run("locked period blocks admins without override", func(t *testing.T) {
		assert.ErrorIs(t, svc.AuthorizeEdit(adminCtx, &lockedPeriod.ID), payperiod.ErrPeriodLocked)
	})

	t.Run("locked period allows admins with active override", func(t *testing.T) {
		require.NoError(t, svc.SetOverride(adminCtx, true))
		assert.NoError(t, svc.AuthorizeEdit(adminCtx, &lockedPeriod.ID))

		require.NoError(t, svc.SetOverride(adminCtx, false))
		assert.ErrorIs(t, svc.AuthorizeEdit(adminCtx, &lockedPeriod.ID), payperiod.ErrPeriodLocked)
	})
}

func TestLockPublishesEvent(t *testing.T) {
	repo := newFakePayPeriodRepo()
	jwtService := jwt.NewJWTService("test-secret")
	hub := sse.NewHub()
	svc := NewPayPeriodService(repo, jwtService, hub)

	p := seedPeriod(repo, "owner-1", false)
	ch, cleanup := hub.Subscribe("owner-1")
	defer cleanup()

	_, err := svc.Lock(authedContext(t, jwtService, "owner-1", true), p.ID)
	require.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventPeriodLocked, ev.Event)
	default:
		t.Fatal("expected a lock event to be published")
	}
}

func TestCanEditPredicate(t *testing.T) {
	assert.True(t, payperiod.CanEdit(false, false, false))
	assert.True(t, payperiod.CanEdit(false, true, true))
	assert.False(t, payperiod.CanEdit(true, false, false))
	assert.False(t, payperiod.CanEdit(true, false, true))
	assert.False(t, payperiod.CanEdit(true, true, false))
	assert.True(t, payperiod.CanEdit(true, true, true))
}
