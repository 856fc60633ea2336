package models

import "time"

type Appointment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex" json:"public_id"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StaffID uint  `json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// Snapshot do preço no momento da reserva (não recalculado depois).
	Price         float64 `json:"price"`
	DepositAmount float64 `json:"deposit_amount"`
	DepositRef    string  `gorm:"size:100" json:"deposit_ref,omitempty"`

	Notes string `gorm:"size:500" json:"notes"`

	SeriesID *uint `gorm:"index" json:"series_id,omitempty"`

	// Encadeamento de remarcação: o registro antigo fica "rescheduled"
	// e aponta para o novo.
	RescheduledToID   *uint `json:"rescheduled_to_id,omitempty"`
	RescheduledFromID *uint `json:"rescheduled_from_id,omitempty"`

	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	NoShowAt       *time.Time `json:"no_show_at,omitempty"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
