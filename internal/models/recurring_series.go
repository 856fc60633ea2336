package models

import "time"

// RecurringSeries é o template de uma série recorrente. A série em si
// nunca é "agendada" — apenas as expansões viram Appointments.
type RecurringSeries struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex" json:"public_id"`

	CustomerID uint `json:"customer_id"`
	ServiceID  uint `json:"service_id"`
	StaffID    uint `json:"staff_id"`

	// daily | weekly | monthly
	Frequency string `gorm:"size:10" json:"frequency"`
	Interval  int    `gorm:"default:1" json:"interval"`

	// Dias da semana para frequência weekly, CSV de 0-6 (domingo=0).
	Weekdays   string `gorm:"size:20" json:"weekdays"`
	DayOfMonth int    `json:"day_of_month"`

	FirstStart     time.Time  `json:"first_start"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	MaxOccurrences int        `json:"max_occurrences"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
