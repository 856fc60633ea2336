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

func (f *fixture) finishUC() *FinishBooking {
	return NewFinishBooking(f.repo, f.avail, events.NewDispatcher(), f.cfg)
}

// pastAppointment semeia um agendamento confirmado que já terminou.
func (f *fixture) pastAppointment(t *testing.T) *models.Appointment {
	t.Helper()

	start := time.Now().UTC().Add(-3 * time.Hour)
	ap := &models.Appointment{
		PublicID:   uuid.NewString(),
		CustomerID: 1,
		Customer:   *f.repo.customers[1],
		ServiceID:  1,
		Service:    *f.repo.services[1],
		StaffID:    1,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     string(domain.StatusConfirmed),
	}
	require.NoError(t, f.repo.CreateAppointment(context.Background(), ap))
	return ap
}

func TestFinishBooking_Complete(t *testing.T) {
	f := newFixture(t)
	ap := f.pastAppointment(t)

	done, err := f.finishUC().Complete(context.Background(), ap.PublicID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)
}

func TestFinishBooking_CompleteBeforeEndFails(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, 48*time.Hour)

	_, err := f.finishUC().Complete(context.Background(), ap.PublicID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_finished"))
}

func TestFinishBooking_NoShow(t *testing.T) {
	f := newFixture(t)
	ap := f.pastAppointment(t)

	missed, err := f.finishUC().NoShow(context.Background(), ap.PublicID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), missed.Status)
	require.NotNil(t, missed.NoShowAt)
}

func TestFinishBooking_NoShowBeforeEndFails(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, 48*time.Hour)

	_, err := f.finishUC().NoShow(context.Background(), ap.PublicID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_finished"))
}

// Falta não pode ser marcada no meio do atendimento: o cliente ainda
// pode chegar enquanto o intervalo corre.
func TestFinishBooking_NoShowDuringAppointmentFails(t *testing.T) {
	f := newFixture(t)

	start := time.Now().UTC().Add(-5 * time.Minute)
	ap := &models.Appointment{
		PublicID:   uuid.NewString(),
		CustomerID: 1,
		Customer:   *f.repo.customers[1],
		ServiceID:  1,
		Service:    *f.repo.services[1],
		StaffID:    1,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     string(domain.StatusConfirmed),
	}
	require.NoError(t, f.repo.CreateAppointment(context.Background(), ap))

	_, err := f.finishUC().NoShow(context.Background(), ap.PublicID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_finished"))
}

func TestFinishBooking_Confirm(t *testing.T) {
	f := newFixture(t)
	t.Setenv("AUTO_CONFIRM_BOOKINGS", "false")
	f.cfg.Reload()

	ap, _, err := f.createUC(nil).Execute(context.Background(), domain.BookingRequest{
		CustomerID: 1,
		ServiceID:  1,
		StaffID:    1,
		StartTime:  futureStart(),
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusPending), ap.Status)

	confirmed, err := f.finishUC().Confirm(context.Background(), ap.PublicID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)

	// confirmar de novo é invalid_state
	_, err = f.finishUC().Confirm(context.Background(), ap.PublicID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestFinishBooking_CompleteCancelledFails(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, 48*time.Hour)

	_, err := f.cancelUC().Execute(context.Background(), ap.PublicID, "", false)
	require.NoError(t, err)

	_, err = f.finishUC().Complete(context.Background(), ap.PublicID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
