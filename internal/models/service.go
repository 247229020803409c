package models

import "time"

// Service is a bookable treatment. A nil UnitID makes it available at
// every unit.
type Service struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Code            string  `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     string  `gorm:"type:text" json:"description"`
	DurationMinutes int     `gorm:"not null" json:"duration"`
	Price           float64 `gorm:"not null" json:"price"`
	UnitID          *uint   `json:"unit_id,omitempty"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
