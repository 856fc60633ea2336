package booking

import (
	"context"

	"github.com/BruksfildServices01/agenda-core/internal/availability"
	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/events"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/models"
	"github.com/BruksfildServices01/agenda-core/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

// FinishBooking fecha o ciclo de vida: confirmação, conclusão e falta.
type FinishBooking struct {
	repo   domain.Repository
	avail  *availability.Manager
	events *events.Dispatcher
	cfg    *config.Config
}

func NewFinishBooking(
	repo domain.Repository,
	avail *availability.Manager,
	dispatcher *events.Dispatcher,
	cfg *config.Config,
) *FinishBooking {
	return &FinishBooking{
		repo:   repo,
		avail:  avail,
		events: dispatcher,
		cfg:    cfg,
	}
}

// ======================================================
// CONFIRM
// ======================================================

func (uc *FinishBooking) Confirm(
	ctx context.Context,
	publicID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanConfirm(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusConfirmed)
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.ErrBusiness("failed_to_update_appointment")
	}

	return ap, nil
}

// ======================================================
// COMPLETE
// ======================================================

// Complete só é válido depois do horário de término.
func (uc *FinishBooking) Complete(
	ctx context.Context,
	publicID string,
) (*models.Appointment, error) {

	settings := uc.cfg.Booking()
	now := timezone.NowIn(settings.Timezone)

	ap, err := uc.repo.GetAppointmentByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanComplete(domain.Status(ap.Status)); err != nil {
		return nil, err
	}
	if now.Before(ap.EndTime) {
		return nil, httperr.ErrBusiness("appointment_not_finished")
	}

	ap.Status = string(domain.StatusCompleted)
	ap.CompletedAt = &now
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.ErrBusiness("failed_to_update_appointment")
	}

	uc.releaseFinished(ctx, ap)

	uc.events.Dispatch(events.Event{
		Type:        events.AppointmentCompleted,
		Appointment: ap,
	})

	return ap, nil
}

// ======================================================
// NO-SHOW
// ======================================================

// NoShow, como Complete, só vale depois do horário de término: o
// comparecimento tardio ainda conta enquanto o intervalo corre.
func (uc *FinishBooking) NoShow(
	ctx context.Context,
	publicID string,
) (*models.Appointment, error) {

	settings := uc.cfg.Booking()
	now := timezone.NowIn(settings.Timezone)

	ap, err := uc.repo.GetAppointmentByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanNoShow(domain.Status(ap.Status)); err != nil {
		return nil, err
	}
	if now.Before(ap.EndTime) {
		return nil, httperr.ErrBusiness("appointment_not_finished")
	}

	ap.Status = string(domain.StatusNoShow)
	ap.NoShowAt = &now
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, httperr.ErrBusiness("failed_to_update_appointment")
	}

	uc.releaseFinished(ctx, ap)

	uc.events.Dispatch(events.Event{
		Type:        events.AppointmentNoShow,
		Appointment: ap,
	})

	return ap, nil
}

// releaseFinished solta o claim de um agendamento terminado. O horário
// já passou, então falha aqui não afeta disponibilidade futura.
func (uc *FinishBooking) releaseFinished(ctx context.Context, ap *models.Appointment) {
	slot := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	uc.avail.ReleaseSlot(ctx, ap.StaffID, slot)
}
