package models

import "time"

const (
	OverrideAvailable   = "available"
	OverrideUnavailable = "unavailable"
)

// AvailabilityOverride is a therapist-declared exception to the default
// slot template for one date.
type AvailabilityOverride struct {
	ID          uint     `gorm:"primaryKey" json:"-"`
	TherapistID uint     `gorm:"column:massagista_id;uniqueIndex:idx_override_day;not null" json:"massagista_id"`
	Date        string   `gorm:"size:10;uniqueIndex:idx_override_day;not null" json:"date"`
	Status      string   `gorm:"size:20;not null" json:"status"`
	TimeSlots   []string `gorm:"serializer:json;type:text" json:"time_slots"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
