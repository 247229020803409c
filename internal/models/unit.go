package models

import "time"

// Unit is a physical location. Code is stable and used in URLs and as the
// foreign key of bookings.
type Unit struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	City         string    `gorm:"size:100" json:"city"`
	State        string    `gorm:"size:2" json:"state"`
	Address      string    `gorm:"type:text;not null" json:"address"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Email        string    `gorm:"size:255" json:"email"`
	OpeningHours string    `gorm:"size:255" json:"opening_hours"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
