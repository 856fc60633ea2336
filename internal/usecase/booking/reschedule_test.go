package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/events"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

func (f *fixture) rescheduleUC() *RescheduleBooking {
	return NewRescheduleBooking(f.repo, f.avail, events.NewDispatcher(), f.cfg)
}

func TestRescheduleBooking_Success(t *testing.T) {
	f := newFixture(t)
	old := f.bookAt(t, 48*time.Hour)
	newStart := futureStart() // 3 dias, 10:00

	next, err := f.rescheduleUC().Execute(context.Background(), old.PublicID, newStart, 0)
	require.NoError(t, err)

	assert.True(t, next.StartTime.Equal(newStart))
	assert.NotEqual(t, old.PublicID, next.PublicID)
	assert.Equal(t, string(domain.StatusConfirmed), next.Status)

	// registro antigo vira rescheduled e aponta para o novo
	stored, err := f.repo.GetAppointmentByPublicID(context.Background(), old.PublicID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRescheduled), stored.Status)
	require.NotNil(t, stored.RescheduledToID)
	assert.Equal(t, next.ID, *stored.RescheduledToID)
	require.NotNil(t, next.RescheduledFromID)
	assert.Equal(t, old.ID, *next.RescheduledFromID)

	// horário antigo liberado, novo ocupado
	oldSlot := domain.Interval{Start: old.StartTime, End: old.EndTime}
	require.NoError(t, f.avail.ClaimSlot(context.Background(), 1, oldSlot, "x"))

	newSlot := domain.Interval{Start: next.StartTime, End: next.EndTime}
	err = f.avail.ClaimSlot(context.Background(), 1, newSlot, "y")
	assert.True(t, domain.IsSlotConflict(err))
}

func TestRescheduleBooking_TargetTakenKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	old := f.bookAt(t, 48*time.Hour)

	// outro agendamento já ocupa o destino
	newStart := futureStart()
	taken := domain.Interval{Start: newStart, End: newStart.Add(time.Hour)}
	require.NoError(t, f.avail.ClaimSlot(context.Background(), 1, taken, "other"))

	_, err := f.rescheduleUC().Execute(context.Background(), old.PublicID, newStart, 0)
	assert.True(t, domain.IsSlotConflict(err))

	// o agendamento original não perdeu o horário
	stored, getErr := f.repo.GetAppointmentByPublicID(context.Background(), old.PublicID)
	require.NoError(t, getErr)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)

	oldSlot := domain.Interval{Start: old.StartTime, End: old.EndTime}
	err = f.avail.ClaimSlot(context.Background(), 1, oldSlot, "steal")
	assert.True(t, domain.IsSlotConflict(err), "o horário original deveria continuar reservado")
}

func TestRescheduleBooking_PersistFailureSwapsBack(t *testing.T) {
	f := newFixture(t)
	old := f.bookAt(t, 48*time.Hour)
	f.repo.failSaveReschedule = true

	newStart := futureStart()
	_, err := f.rescheduleUC().Execute(context.Background(), old.PublicID, newStart, 0)
	require.Error(t, err)

	// claim antigo restaurado, destino liberado
	oldSlot := domain.Interval{Start: old.StartTime, End: old.EndTime}
	err = f.avail.ClaimSlot(context.Background(), 1, oldSlot, "steal")
	assert.True(t, domain.IsSlotConflict(err))

	newSlot := domain.Interval{Start: newStart, End: newStart.Add(time.Hour)}
	require.NoError(t, f.avail.ClaimSlot(context.Background(), 1, newSlot, "free"))

	stored, getErr := f.repo.GetAppointmentByPublicID(context.Background(), old.PublicID)
	require.NoError(t, getErr)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
}

// Remarcar não passa pela janela de cancelamento: mover um horário
// próximo para mais tarde continua válido.
func TestRescheduleBooking_InsideCancellationWindowSucceeds(t *testing.T) {
	f := newFixture(t)
	old := f.bookAt(t, 2*time.Hour) // bem dentro das 24h da política flexible

	next, err := f.rescheduleUC().Execute(context.Background(), old.PublicID, futureStart(), 0)
	require.NoError(t, err)
	assert.True(t, next.StartTime.Equal(futureStart()))
}

func TestRescheduleBooking_ToAnotherStaff(t *testing.T) {
	f := newFixture(t)
	f.repo.addStaff(&models.Staff{ID: 2, Name: "Carla", Active: true}, 1)

	old := f.bookAt(t, 48*time.Hour)
	newStart := futureStart()

	next, err := f.rescheduleUC().Execute(context.Background(), old.PublicID, newStart, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next.StaffID)

	// o horário do profissional original ficou livre
	oldSlot := domain.Interval{Start: old.StartTime, End: old.EndTime}
	require.NoError(t, f.avail.ClaimSlot(context.Background(), 1, oldSlot, "x"))
}

func TestRescheduleBooking_CancelledCannotMove(t *testing.T) {
	f := newFixture(t)
	old := f.bookAt(t, 48*time.Hour)

	_, err := f.cancelUC().Execute(context.Background(), old.PublicID, "", false)
	require.NoError(t, err)

	_, err = f.rescheduleUC().Execute(context.Background(), old.PublicID, futureStart(), 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
