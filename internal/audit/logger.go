package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-core/internal/events"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// Logger grava a trilha de auditoria. Agendamentos nunca são apagados:
// cancelamento é mudança de status e cada transição vira uma linha aqui.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&entry).Error
}

// Handle implementa events.Sink.
func (l *Logger) Handle(ev events.Event) error {
	switch {
	case ev.Appointment != nil:
		return l.Log(nil, string(ev.Type), "appointment", &ev.Appointment.ID, map[string]any{
			"public_id": ev.Appointment.PublicID,
			"staff_id":  ev.Appointment.StaffID,
			"start":     ev.Appointment.StartTime,
			"end":       ev.Appointment.EndTime,
			"status":    ev.Appointment.Status,
			"reason":    ev.Reason,
		})
	case ev.Waitlist != nil:
		return l.Log(nil, string(ev.Type), "waitlist_entry", &ev.Waitlist.ID, map[string]any{
			"public_id": ev.Waitlist.PublicID,
			"status":    ev.Waitlist.Status,
		})
	}
	return nil
}
