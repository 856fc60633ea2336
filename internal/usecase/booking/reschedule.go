package booking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

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

type RescheduleBooking struct {
	repo   domain.Repository
	avail  *availability.Manager
	events *events.Dispatcher
	cfg    *config.Config
}

func NewRescheduleBooking(
	repo domain.Repository,
	avail *availability.Manager,
	dispatcher *events.Dispatcher,
	cfg *config.Config,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:   repo,
		avail:  avail,
		events: dispatcher,
		cfg:    cfg,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute remarca para um novo horário (mesmo profissional ou outro).
// O registro antigo vira "rescheduled" e aponta para o novo; a troca de
// slot é atômica e, se qualquer passo falhar, o horário original é
// reassumido — o agendamento nunca perde os dois horários.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	publicID string,
	newStart time.Time,
	newStaffID uint, // 0 = manter o profissional atual
) (*models.Appointment, error) {

	settings := uc.cfg.Booking()
	now := timezone.NowIn(settings.Timezone)

	old, err := uc.repo.GetAppointmentByPublicID(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// --------------------------------------------------
	// 1️⃣ Transição + políticas (remarcação = novo início)
	// --------------------------------------------------
	if err := domain.CanReschedule(domain.Status(old.Status)); err != nil {
		return nil, err
	}
	if !newStart.After(now) {
		return nil, httperr.ErrBusiness("start_in_past")
	}

	limitDays := old.Service.MaxAdvanceDays
	if limitDays <= 0 {
		limitDays = settings.AdvanceBookingLimitDays
	}
	if !domain.CheckAdvanceLimit(newStart, now, limitDays) {
		return nil, httperr.ErrBusiness("advance_limit_exceeded")
	}

	staffID := old.StaffID
	if newStaffID != 0 {
		staffID = newStaffID
	}

	// --------------------------------------------------
	// 2️⃣ Expediente do novo horário
	// --------------------------------------------------
	newSlot := availability.CandidateInterval(&old.Service, newStart)

	wh, err := uc.repo.GetWorkingHours(ctx, staffID, int(newStart.Weekday()))
	if err != nil {
		return nil, err
	}
	if !domain.ScheduleFromModel(wh).WithinWorkingHours(newSlot.Start, newSlot.End) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	if newStaffID != 0 && newStaffID != old.StaffID {
		ok, err := uc.repo.StaffPerformsService(ctx, staffID, old.ServiceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("staff_not_qualified")
		}
	}

	oldSlot := domain.Interval{Start: old.StartTime, End: old.EndTime}
	next := &models.Appointment{
		PublicID:      uuid.NewString(),
		CustomerID:    old.CustomerID,
		ServiceID:     old.ServiceID,
		StaffID:       staffID,
		StartTime:     newSlot.Start,
		EndTime:       newSlot.End,
		Status:        old.Status,
		Price:         old.Price,
		DepositAmount: old.DepositAmount,
		DepositRef:    old.DepositRef,
		Notes:         old.Notes,
		SeriesID:      old.SeriesID,
	}

	// --------------------------------------------------
	// 3️⃣ Troca atômica de slot
	// --------------------------------------------------
	if staffID == old.StaffID {
		err = uc.avail.SwapSlot(ctx, staffID, oldSlot, newSlot, old.PublicID, next.PublicID)
	} else {
		// profissionais diferentes: claim no novo antes de soltar o antigo
		if err = uc.avail.ClaimSlot(ctx, staffID, newSlot, next.PublicID); err == nil {
			if err = uc.avail.ReleaseSlot(ctx, old.StaffID, oldSlot); err != nil {
				uc.avail.ReleaseSlot(ctx, staffID, newSlot)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Persiste os dois registros (compensa se falhar)
	// --------------------------------------------------
	priorStatus := old.Status
	old.Status = string(domain.StatusRescheduled)

	if err := uc.repo.SaveReschedule(ctx, old, next); err != nil {
		old.Status = priorStatus
		if staffID == old.StaffID {
			if serr := uc.avail.SwapSlot(ctx, staffID, newSlot, oldSlot, next.PublicID, old.PublicID); serr != nil {
				log.Printf("remarcação %s: falha ao devolver o horário original: %v", old.PublicID, serr)
			}
		} else {
			if rerr := uc.avail.ReleaseSlot(ctx, staffID, newSlot); rerr != nil {
				log.Printf("remarcação %s: falha ao liberar o horário de destino: %v", old.PublicID, rerr)
			}
			if cerr := uc.avail.ClaimSlot(ctx, old.StaffID, oldSlot, old.PublicID); cerr != nil {
				log.Printf("remarcação %s: falha ao reassumir o horário original: %v", old.PublicID, cerr)
			}
		}
		return nil, httperr.ErrBusiness("failed_to_reschedule")
	}

	next.Customer = old.Customer
	next.Service = old.Service

	uc.events.Dispatch(events.Event{
		Type:        events.AppointmentRescheduled,
		Appointment: next,
	})

	return next, nil
}
