package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/events"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// Notifier envia confirmações/cancelamentos/lembretes por e-mail e SMS.
// Fire-and-forget: o controller nunca espera nem falha por causa disso.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Handle implementa events.Sink.
func (n *Notifier) Handle(ev events.Event) error {
	if ev.Type == events.WaitlistOffered {
		return n.handleWaitlist(ev.Waitlist)
	}

	ap := ev.Appointment
	if ap == nil || ap.Customer.ID == 0 {
		return nil
	}

	subject, body := n.compose(ev.Type, ap, ev.Reason)
	if subject == "" {
		return nil
	}

	if ap.Customer.Email != "" {
		go func(email, name, subject, body string) {
			if err := SendEmailWithSendGrid(email, name, subject, body); err != nil {
				log.Printf("notify: falha no e-mail do agendamento %s: %v", ap.PublicID, err)
			}
		}(ap.Customer.Email, ap.Customer.Name, subject, body)
	}

	if ap.Customer.Phone != "" {
		sms := fmt.Sprintf("%s\n%s", subject, ap.StartTime.Format("02/01 15:04"))
		go func(phone, sms string) {
			if err := SendSMS(phone, sms); err != nil {
				log.Printf("notify: falha no SMS do agendamento %s: %v", ap.PublicID, err)
			}
		}(ap.Customer.Phone, sms)
	}

	return nil
}

func (n *Notifier) compose(t events.Type, ap *models.Appointment, reason string) (string, string) {
	when := ap.StartTime.Format("02 Jan 2006 15:04")
	service := ap.Service.Name
	staff := ap.Staff.Name

	switch t {
	case events.AppointmentCreated:
		return fmt.Sprintf("Agendamento %s", statusLabel(ap.Status)),
			fmt.Sprintf(
				"Olá %s,\n\nSeu agendamento de %s com %s está %s.\nHorário: %s\n\nObrigado.",
				ap.Customer.Name, service, staff, statusLabel(ap.Status), when,
			)

	case events.AppointmentCancelled:
		body := fmt.Sprintf(
			"Olá %s,\n\nSeu agendamento de %s em %s foi cancelado.",
			ap.Customer.Name, service, when,
		)
		if reason != "" {
			body += "\nMotivo: " + reason
		}
		return "Agendamento cancelado", body

	case events.AppointmentRescheduled:
		return "Agendamento remarcado", fmt.Sprintf(
			"Olá %s,\n\nSeu agendamento de %s foi remarcado para %s.",
			ap.Customer.Name, service, when,
		)

	case events.AppointmentReminder:
		return "Lembrete de agendamento", fmt.Sprintf(
			"Olá %s,\n\nLembrete: %s com %s em %s.",
			ap.Customer.Name, service, staff, when,
		)

	}

	return "", ""
}

func (n *Notifier) handleWaitlist(entry *models.WaitlistEntry) error {
	if entry == nil || entry.Customer.ID == 0 {
		return nil
	}

	when := entry.WindowStart.Format("02 Jan 2006 15:04")
	subject := "Horário disponível"
	body := fmt.Sprintf(
		"Olá %s,\n\nAbriu um horário compatível com sua lista de espera: %s.\nReserve pelo canal de sempre antes que alguém passe na frente.",
		entry.Customer.Name, when,
	)

	if entry.Customer.Email != "" {
		go func(email, name string) {
			if err := SendEmailWithSendGrid(email, name, subject, body); err != nil {
				log.Printf("notify: falha no e-mail da lista de espera %s: %v", entry.PublicID, err)
			}
		}(entry.Customer.Email, entry.Customer.Name)
	}

	if entry.Customer.Phone != "" {
		sms := fmt.Sprintf("%s\n%s", subject, when)
		go func(phone string) {
			if err := SendSMS(phone, sms); err != nil {
				log.Printf("notify: falha no SMS da lista de espera %s: %v", entry.PublicID, err)
			}
		}(entry.Customer.Phone)
	}

	return nil
}

func statusLabel(status string) string {
	if status == "confirmed" {
		return "confirmado"
	}
	return "pendente de confirmação"
}

// Reminder é chamado pelos jobs de background fora do fluxo de eventos.
func (n *Notifier) Reminder(ap *models.Appointment) {
	n.Handle(events.Event{
		Type:        events.AppointmentReminder,
		Appointment: ap,
		At:          time.Now(),
	})
}
