package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/models"
)

type Repository interface {
	// -------- Catálogo --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetStaff(
		ctx context.Context,
		id uint,
	) (*models.Staff, error)

	ListStaffForService(
		ctx context.Context,
		serviceID uint,
	) ([]models.Staff, error)

	StaffPerformsService(
		ctx context.Context,
		staffID uint,
		serviceID uint,
	) (bool, error)

	GetWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Cliente --------
	GetCustomer(
		ctx context.Context,
		id uint,
	) (*models.Customer, error)

	GetOrCreateCustomer(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentByPublicID(
		ctx context.Context,
		publicID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SaveReschedule persiste o registro antigo (rescheduled) e o novo
	// na mesma transação.
	SaveReschedule(
		ctx context.Context,
		old *models.Appointment,
		next *models.Appointment,
	) error

	ListAppointments(
		ctx context.Context,
		start time.Time,
		end time.Time,
		staffID *uint,
	) ([]models.Appointment, error)

	ListDueReminders(
		ctx context.Context,
		windowStart time.Time,
		windowEnd time.Time,
	) ([]models.Appointment, error)

	MarkReminderSent(
		ctx context.Context,
		appointmentID uint,
		at time.Time,
	) error

	// -------- Waitlist --------
	CreateWaitlistEntry(
		ctx context.Context,
		entry *models.WaitlistEntry,
	) error

	GetWaitlistEntry(
		ctx context.Context,
		publicID string,
	) (*models.WaitlistEntry, error)

	ListWaitlistEntries(
		ctx context.Context,
		status string,
	) ([]models.WaitlistEntry, error)

	UpdateWaitlistEntry(
		ctx context.Context,
		entry *models.WaitlistEntry,
	) error

	// -------- Série recorrente --------
	CreateSeries(
		ctx context.Context,
		series *models.RecurringSeries,
	) error
}

// Claim é um intervalo bloqueado pelo agendamento identificado.
type Claim struct {
	Interval
	AppointmentID string
}

// SlotStore é o contrato do calendário de ocupação por profissional.
// Claim tem que ser linearizável por staff: dois claims concorrentes
// sobre intervalos que se cruzam produzem exatamente um sucesso e um
// ErrSlotConflict.
type SlotStore interface {
	Blocked(
		ctx context.Context,
		staffID uint,
		from time.Time,
		to time.Time,
	) ([]Claim, error)

	Claim(
		ctx context.Context,
		staffID uint,
		slot Interval,
		appointmentID string,
	) error

	// Release é idempotente: liberar um intervalo não reivindicado é no-op.
	Release(
		ctx context.Context,
		staffID uint,
		slot Interval,
	) error
}

// Pricer é o colaborador de preço (avaliador de regras plugável).
type Pricer interface {
	ComputePrice(
		service *models.Service,
		staff *models.Staff,
		start time.Time,
		durationMin int,
	) float64
}

// DepositCollector cria a cobrança de sinal quando o serviço exige.
type DepositCollector interface {
	CreateDeposit(
		ctx context.Context,
		ap *models.Appointment,
		service *models.Service,
	) (string, error)
}
