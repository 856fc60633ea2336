package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`

	DurationMin int     `json:"duration_min"`
	BufferMin   int     `json:"buffer_min"`
	Price       float64 `json:"price"`

	// flexible | moderate | strict | very_strict
	CancellationPolicy string `gorm:"size:20;default:'flexible'" json:"cancellation_policy"`

	// 0 = usa o limite global das settings.
	MaxAdvanceDays int `json:"max_advance_days"`

	RequiresDeposit bool    `gorm:"default:false" json:"requires_deposit"`
	DepositAmount   float64 `json:"deposit_amount"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
