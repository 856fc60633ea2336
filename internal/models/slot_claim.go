package models

import "time"

// SlotClaim é a ocupação autoritativa de um intervalo (staff, [start, end)).
// Uma linha existe enquanto o intervalo está bloqueado; cancelamento e
// remarcação removem a linha, o Appointment permanece como trilha de auditoria.
type SlotClaim struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index" json:"staff_id"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	AppointmentID string `gorm:"size:36;index" json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
}
