package booking

import (
	"context"
	"log"

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

type CancelBooking struct {
	repo   domain.Repository
	avail  *availability.Manager
	events *events.Dispatcher
	cfg    *config.Config
}

func NewCancelBooking(
	repo domain.Repository,
	avail *availability.Manager,
	dispatcher *events.Dispatcher,
	cfg *config.Config,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		avail:  avail,
		events: dispatcher,
		cfg:    cfg,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute cancela respeitando a janela da política do serviço.
// override pula a checagem de janela (staff/admin cancelando).
// Cancelar de novo um agendamento já cancelado é invalid_state.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	publicID string,
	reason string,
	override bool,
) (*models.Appointment, error) {

	settings := uc.cfg.Booking()
	now := timezone.NowIn(settings.Timezone)

	ap, err := uc.repo.GetAppointmentByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// --------------------------------------------------
	// 1️⃣ Transição de estado
	// --------------------------------------------------
	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Janela de cancelamento da política do serviço
	// (serviço sem política reconhecida usa a janela padrão do negócio)
	// --------------------------------------------------
	if !override {
		policy := domain.CancellationPolicy(ap.Service.CancellationPolicy)
		notice := domain.RequiredNoticeWithDefault(policy, settings.CancellationWindowHours)
		if ap.StartTime.Sub(now) < notice {
			return nil, httperr.ErrBusiness("cancellation_window_violated")
		}
	}

	// --------------------------------------------------
	// 3️⃣ Libera o horário
	// --------------------------------------------------
	slot := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	if err := uc.avail.ReleaseSlot(ctx, ap.StaffID, slot); err != nil {
		return nil, httperr.ErrBusiness("failed_to_cancel")
	}

	// --------------------------------------------------
	// 4️⃣ Persiste a transição
	// --------------------------------------------------
	ap.Status = string(domain.StatusCancelled)
	ap.CancelledAt = &now
	if reason != "" {
		if ap.Notes != "" {
			ap.Notes += " | "
		}
		ap.Notes += "cancelamento: " + reason
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		// recoloca o claim: o horário ainda pertence ao agendamento
		if cerr := uc.avail.ClaimSlot(ctx, ap.StaffID, slot, ap.PublicID); cerr != nil {
			log.Printf("cancelamento %s: falha ao reassumir o horário: %v", ap.PublicID, cerr)
		}
		return nil, httperr.ErrBusiness("failed_to_cancel")
	}

	uc.events.Dispatch(events.Event{
		Type:        events.AppointmentCancelled,
		Appointment: ap,
		Reason:      reason,
	})

	return ap, nil
}
