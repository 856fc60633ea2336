package booking

import "github.com/BruksfildServices01/agenda-core/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusCancelled   Status = "cancelled"
	StatusCompleted   Status = "completed"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

// InitialStatus depende da confirmação automática das settings.
func InitialStatus(autoConfirm bool) Status {
	if autoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}

// Blocks indica se um agendamento neste status ocupa o horário.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal: nenhuma transição sai destes estados.
func (s Status) Terminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// ===============================
// Transições permitidas
// ===============================

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusRescheduled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow, StatusRescheduled},
}

func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

func CanNoShow(current Status) error {
	return CanTransition(current, StatusNoShow)
}

func CanReschedule(current Status) error {
	return CanTransition(current, StatusRescheduled)
}

func CanConfirm(current Status) error {
	return CanTransition(current, StatusConfirmed)
}
