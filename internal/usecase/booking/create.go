package booking

import (
	"context"

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

type CreateBooking struct {
	repo     domain.Repository
	avail    *availability.Manager
	pricer   domain.Pricer
	deposits domain.DepositCollector // opcional
	events   *events.Dispatcher
	cfg      *config.Config
}

func NewCreateBooking(
	repo domain.Repository,
	avail *availability.Manager,
	pricer domain.Pricer,
	deposits domain.DepositCollector,
	dispatcher *events.Dispatcher,
	cfg *config.Config,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		avail:    avail,
		pricer:   pricer,
		deposits: deposits,
		events:   dispatcher,
		cfg:      cfg,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute valida → checa políticas → claim atômico → persiste.
// Nenhuma mutação acontece antes das políticas passarem; depois do
// claim, qualquer falha libera o slot (nunca sobra claim órfão).
// Em conflito com waitlist habilitada, a entrada criada é retornada
// junto com o erro de conflito.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in domain.BookingRequest,
) (*models.Appointment, *models.WaitlistEntry, error) {

	// --------------------------------------------------
	// 1️⃣ Settings (snapshot da operação inteira)
	// --------------------------------------------------
	settings := uc.cfg.Booking()
	now := timezone.NowIn(settings.Timezone)

	// --------------------------------------------------
	// 2️⃣ Validação de forma
	// --------------------------------------------------
	if err := in.Validate(now); err != nil {
		return nil, nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Serviço + cliente
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, nil, httperr.ErrBusiness("service_not_found")
	}

	customer, err := uc.repo.GetCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("customer_not_found")
	}

	// --------------------------------------------------
	// 4️⃣ Limite de antecedência
	// --------------------------------------------------
	limitDays := svc.MaxAdvanceDays
	if limitDays <= 0 {
		limitDays = settings.AdvanceBookingLimitDays
	}
	if !domain.CheckAdvanceLimit(in.StartTime, now, limitDays) {
		return nil, nil, httperr.ErrBusiness("advance_limit_exceeded")
	}

	// --------------------------------------------------
	// 5️⃣ Profissional explícito ou auto-atribuição
	// --------------------------------------------------
	candidates, explicit, err := uc.resolveStaff(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	slot := availability.CandidateInterval(svc, in.StartTime)
	appointmentID := uuid.NewString()

	// --------------------------------------------------
	// 6️⃣ Expediente + claim atômico por candidato
	// --------------------------------------------------
	var staff *models.Staff
	for i := range candidates {
		candidate := &candidates[i]

		wh, err := uc.repo.GetWorkingHours(ctx, candidate.ID, int(in.StartTime.Weekday()))
		if err != nil {
			return nil, nil, err
		}
		if !domain.ScheduleFromModel(wh).WithinWorkingHours(slot.Start, slot.End) {
			if explicit {
				return nil, nil, httperr.ErrBusiness("outside_working_hours")
			}
			continue
		}

		err = uc.avail.ClaimSlot(ctx, candidate.ID, slot, appointmentID)
		if err == nil {
			staff = candidate
			break
		}
		if !domain.IsSlotConflict(err) {
			return nil, nil, err
		}
		if explicit {
			wl := uc.maybeWaitlist(ctx, in, slot, &candidate.ID, settings)
			return nil, wl, err
		}
	}

	if staff == nil {
		wl := uc.maybeWaitlist(ctx, in, slot, nil, settings)
		return nil, wl, domain.ErrSlotConflict
	}

	// --------------------------------------------------
	// 7️⃣ Snapshot de preço + criação
	// --------------------------------------------------
	price := uc.pricer.ComputePrice(svc, staff, in.StartTime, svc.DurationMin)

	ap := &models.Appointment{
		PublicID:      appointmentID,
		CustomerID:    customer.ID,
		ServiceID:     svc.ID,
		StaffID:       staff.ID,
		StartTime:     slot.Start,
		EndTime:       slot.End,
		Status:        string(domain.InitialStatus(settings.AutoConfirmBookings)),
		Price:         price,
		DepositAmount: in.DepositAmount,
		Notes:         in.Notes,
		SeriesID:      in.SeriesID,
	}

	// --------------------------------------------------
	// 8️⃣ Sinal (quando o serviço exige)
	// --------------------------------------------------
	if svc.RequiresDeposit && uc.deposits != nil {
		if ap.DepositAmount <= 0 {
			ap.DepositAmount = svc.DepositAmount
		}
		ref, err := uc.deposits.CreateDeposit(ctx, ap, svc)
		if err != nil {
			uc.avail.ReleaseSlot(ctx, staff.ID, slot)
			return nil, nil, httperr.ErrBusiness("deposit_failed")
		}
		ap.DepositRef = ref
	}

	// --------------------------------------------------
	// 9️⃣ Persistência (compensa o claim se falhar)
	// --------------------------------------------------
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		uc.avail.ReleaseSlot(ctx, staff.ID, slot)
		return nil, nil, httperr.ErrBusiness("failed_to_create_appointment")
	}

	ap.Customer = *customer
	ap.Service = *svc
	ap.Staff = *staff

	uc.events.Dispatch(events.Event{
		Type:        events.AppointmentCreated,
		Appointment: ap,
	})

	return ap, nil, nil
}

// resolveStaff devolve os candidatos em ordem determinística.
// explicit indica que o caller pediu um profissional específico.
func (uc *CreateBooking) resolveStaff(
	ctx context.Context,
	in domain.BookingRequest,
) ([]models.Staff, bool, error) {

	if in.StaffID != 0 {
		staff, err := uc.repo.GetStaff(ctx, in.StaffID)
		if err != nil || !staff.Active {
			return nil, true, httperr.ErrBusiness("staff_not_found")
		}

		ok, err := uc.repo.StaffPerformsService(ctx, staff.ID, in.ServiceID)
		if err != nil {
			return nil, true, err
		}
		if !ok {
			return nil, true, httperr.ErrBusiness("staff_not_qualified")
		}

		return []models.Staff{*staff}, true, nil
	}

	candidates, err := uc.repo.ListStaffForService(ctx, in.ServiceID)
	if err != nil {
		return nil, false, err
	}
	if len(candidates) == 0 {
		return nil, false, httperr.ErrBusiness("staff_not_found")
	}
	return candidates, false, nil
}

func (uc *CreateBooking) maybeWaitlist(
	ctx context.Context,
	in domain.BookingRequest,
	slot domain.Interval,
	staffID *uint,
	settings config.BookingSettings,
) *models.WaitlistEntry {

	if !settings.EnableWaitlist {
		return nil
	}

	entry := &models.WaitlistEntry{
		PublicID:    uuid.NewString(),
		CustomerID:  in.CustomerID,
		ServiceID:   in.ServiceID,
		StaffID:     staffID,
		WindowStart: slot.Start,
		WindowEnd:   slot.End,
		Flexibility: "time",
		Status:      "pending",
	}

	if err := uc.repo.CreateWaitlistEntry(ctx, entry); err != nil {
		return nil
	}
	return entry
}
