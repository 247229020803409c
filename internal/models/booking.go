package models

import "time"

// Booking occupies one (therapist, date, time) tuple while active.
// AppointmentDate is YYYY-MM-DD and AppointmentTime HH:MM, both local to
// the unit.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientName  string `gorm:"size:255;not null" json:"client_name"`
	ClientEmail string `gorm:"size:255" json:"client_email,omitempty"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`

	UnitCode string `gorm:"size:50;index;not null" json:"unit_code"`
	Unit     *Unit  `gorm:"foreignKey:UnitCode;references:Code" json:"unit,omitempty"`

	TherapistID uint  `gorm:"column:massagista_id;index;not null" json:"massagista_id"`
	Therapist   *User `gorm:"foreignKey:TherapistID" json:"-"`

	ServiceName     string  `gorm:"column:service;size:100;not null" json:"service"`
	Price           float64 `json:"price"`
	DurationMinutes int     `gorm:"default:60" json:"duration_minutes"`

	AppointmentDate string `gorm:"size:10;not null" json:"appointment_date"`
	AppointmentTime string `gorm:"size:5;not null" json:"appointment_time"`

	Status    string `gorm:"size:20;default:'pending';not null" json:"status"`
	Notes     string `gorm:"type:text" json:"notes"`
	Promotion string `gorm:"size:255" json:"promotion,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
