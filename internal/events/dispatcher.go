package events

import (
	"log"
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// ===============================
// Domain Events
// ===============================

type Type string

const (
	AppointmentCreated     Type = "appointment_created"
	AppointmentCancelled   Type = "appointment_cancelled"
	AppointmentRescheduled Type = "appointment_rescheduled"
	AppointmentCompleted   Type = "appointment_completed"
	AppointmentNoShow      Type = "appointment_no_show"
	AppointmentReminder    Type = "appointment_reminder"
	WaitlistOffered        Type = "waitlist_offered"
)

type Event struct {
	Type        Type
	Appointment *models.Appointment
	Waitlist    *models.WaitlistEntry
	Reason      string
	At          time.Time
}

// Sink consome eventos de domínio (auditoria, notificação...).
type Sink interface {
	Handle(ev Event) error
}

// ===============================
// Dispatcher
// ===============================

// Dispatcher entrega eventos fora do caminho da requisição: falha de
// um sink nunca vira falha de agendamento.
type Dispatcher struct {
	sinks []Sink
	queue chan Event
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		for _, sink := range d.sinks {
			if err := sink.Handle(ev); err != nil {
				log.Println("event sink error:", err)
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos o evento (nunca quebrar a API)
		log.Println("event queue full, dropping event")
	}
}
