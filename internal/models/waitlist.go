package models

import "time"

type WaitlistEntry struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex" json:"public_id"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint  `json:"service_id"`
	StaffID   *uint `json:"staff_id,omitempty"` // nil = qualquer profissional

	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	// time | staff | any
	Flexibility string `gorm:"size:20;default:'time'" json:"flexibility"`

	// pending | contacted | booked | expired | cancelled
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ContactedAt *time.Time `json:"contacted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
