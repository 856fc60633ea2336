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

func (f *fixture) cancelUC() *CancelBooking {
	return NewCancelBooking(f.repo, f.avail, events.NewDispatcher(), f.cfg)
}

// bookAt semeia um agendamento confirmado começando em `lead` a partir
// de agora, com o claim correspondente no calendário.
func (f *fixture) bookAt(t *testing.T, lead time.Duration) *models.Appointment {
	t.Helper()

	start := time.Now().UTC().Add(lead).Truncate(time.Minute)
	ap := &models.Appointment{
		PublicID:   uuid.NewString(),
		CustomerID: 1,
		Customer:   *f.repo.customers[1],
		ServiceID:  1,
		Service:    *f.repo.services[1],
		StaffID:    1,
		Staff:      *f.repo.staff[1],
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     string(domain.StatusConfirmed),
		Price:      100,
	}
	require.NoError(t, f.repo.CreateAppointment(context.Background(), ap))

	slot := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	require.NoError(t, f.avail.ClaimSlot(context.Background(), 1, slot, ap.PublicID))

	return ap
}

func TestCancelBooking_WithEnoughNotice(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, 25*time.Hour) // política flexible exige 24h

	cancelled, err := f.cancelUC().Execute(context.Background(), ap.PublicID, "viagem", false)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Contains(t, cancelled.Notes, "viagem")

	// horário liberado: a mesma janela aceita um novo claim
	slot := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	require.NoError(t, f.avail.ClaimSlot(context.Background(), 1, slot, "next"))
}

func TestCancelBooking_InsideWindowFails(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, 23*time.Hour)

	_, err := f.cancelUC().Execute(context.Background(), ap.PublicID, "", false)
	assert.True(t, httperr.IsBusiness(err, "cancellation_window_violated"))

	// o agendamento segue de pé e o horário continua ocupado
	current, getErr := f.repo.GetAppointmentByPublicID(context.Background(), ap.PublicID)
	require.NoError(t, getErr)
	assert.Equal(t, string(domain.StatusConfirmed), current.Status)
}

func TestCancelBooking_StrictPolicies(t *testing.T) {
	tests := []struct {
		policy string
		lead   time.Duration
		wantOK bool
	}{
		{"moderate", 47 * time.Hour, false},
		{"moderate", 49 * time.Hour, true},
		{"strict", 71 * time.Hour, false},
		{"strict", 73 * time.Hour, true},
		{"very_strict", 167 * time.Hour, false},
		{"very_strict", 169 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			f := newFixture(t)
			f.repo.services[1].CancellationPolicy = tt.policy
			ap := f.bookAt(t, tt.lead)

			_, err := f.cancelUC().Execute(context.Background(), ap.PublicID, "", false)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, "cancellation_window_violated"))
			}
		})
	}
}

// Serviço sem política reconhecida cai na janela padrão do negócio
// (CANCELLATION_WINDOW_HOURS), não nas 24h da flexible.
func TestCancelBooking_DefaultWindowForUnknownPolicy(t *testing.T) {
	f := newFixture(t)
	t.Setenv("CANCELLATION_WINDOW_HOURS", "2")
	f.cfg.Reload()
	f.repo.services[1].CancellationPolicy = "sob_consulta"

	ok := f.bookAt(t, 3*time.Hour)
	_, err := f.cancelUC().Execute(context.Background(), ok.PublicID, "", false)
	require.NoError(t, err)

	late := f.bookAt(t, 1*time.Hour)
	_, err = f.cancelUC().Execute(context.Background(), late.PublicID, "", false)
	assert.True(t, httperr.IsBusiness(err, "cancellation_window_violated"))
}

func TestCancelBooking_UpdateFailureKeepsSlot(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, 48*time.Hour)
	f.repo.failUpdateAppointment = true

	_, err := f.cancelUC().Execute(context.Background(), ap.PublicID, "", false)
	assert.True(t, httperr.IsBusiness(err, "failed_to_cancel"))

	// a compensação reassumiu o claim: o horário segue ocupado
	slot := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	err = f.avail.ClaimSlot(context.Background(), 1, slot, "steal")
	assert.True(t, domain.IsSlotConflict(err))
}

func TestCancelBooking_OverrideSkipsWindow(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, 2*time.Hour)

	cancelled, err := f.cancelUC().Execute(context.Background(), ap.PublicID, "imprevisto", true)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
}

func TestCancelBooking_TwiceIsInvalidState(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, 48*time.Hour)

	uc := f.cancelUC()
	_, err := uc.Execute(context.Background(), ap.PublicID, "", false)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ap.PublicID, "", false)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelBooking_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.cancelUC().Execute(context.Background(), "does-not-exist", "", false)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
