package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/events"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

func (f *fixture) waitlistUC() *WaitlistManager {
	return NewWaitlistManager(f.repo, f.avail, events.NewDispatcher(), f.cfg)
}

func (f *fixture) waitFor(t *testing.T, start time.Time, staffID *uint, status string) *models.WaitlistEntry {
	t.Helper()

	entry := &models.WaitlistEntry{
		PublicID:    uuid.NewString(),
		CustomerID:  1,
		Customer:    *f.repo.customers[1],
		ServiceID:   1,
		StaffID:     staffID,
		WindowStart: start,
		WindowEnd:   start.Add(time.Hour),
		Status:      status,
	}
	require.NoError(t, f.repo.CreateWaitlistEntry(context.Background(), entry))
	return entry
}

func TestWaitlist_PromoteWhenSlotFrees(t *testing.T) {
	f := newFixture(t)
	staffID := uint(1)
	start := futureStart()

	entry := f.waitFor(t, start, &staffID, "pending")

	promoted, err := f.waitlistUC().PromotePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	stored, err := f.repo.GetWaitlistEntry(context.Background(), entry.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "contacted", stored.Status)
	require.NotNil(t, stored.ContactedAt)
}

func TestWaitlist_NoPromotionWhileSlotTaken(t *testing.T) {
	f := newFixture(t)
	staffID := uint(1)
	start := futureStart()

	slot := domain.Interval{Start: start, End: start.Add(time.Hour)}
	require.NoError(t, f.avail.ClaimSlot(context.Background(), 1, slot, "busy"))

	f.waitFor(t, start, &staffID, "pending")

	promoted, err := f.waitlistUC().PromotePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, promoted)
}

func TestWaitlist_ExpireStale(t *testing.T) {
	f := newFixture(t)
	staffID := uint(1)

	past := time.Now().UTC().Add(-48 * time.Hour)
	old := f.waitFor(t, past, &staffID, "pending")
	fresh := f.waitFor(t, futureStart(), &staffID, "pending")

	expired, err := f.waitlistUC().ExpireStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	storedOld, _ := f.repo.GetWaitlistEntry(context.Background(), old.PublicID)
	assert.Equal(t, "expired", storedOld.Status)

	storedFresh, _ := f.repo.GetWaitlistEntry(context.Background(), fresh.PublicID)
	assert.Equal(t, "pending", storedFresh.Status)
}

func TestWaitlist_MarkBookedAndCancel(t *testing.T) {
	f := newFixture(t)
	staffID := uint(1)

	uc := f.waitlistUC()

	entry := f.waitFor(t, futureStart(), &staffID, "contacted")
	booked, err := uc.MarkBooked(context.Background(), entry.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "booked", booked.Status)

	// entrada fechada não cancela
	_, err = uc.Cancel(context.Background(), entry.PublicID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	other := f.waitFor(t, futureStart().Add(2*time.Hour), &staffID, "pending")
	cancelled, err := uc.Cancel(context.Background(), other.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
}
