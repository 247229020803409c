package models

import "time"

const (
	UserTypeMassagista = "massagista"
	UserTypeAdmin      = "admin"
)

// User is a staff account. Therapists (massagistas) own a calendar and an
// ordered list of specialties; they are deactivated, never deleted.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:255;not null" json:"name"`
	Email        string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	CPF          *string `gorm:"size:14;uniqueIndex" json:"cpf,omitempty"`
	Phone        string  `gorm:"size:20" json:"phone"`
	UserType     string  `gorm:"size:20;default:'massagista'" json:"user_type"`

	UnitPreference *string `gorm:"size:50" json:"unit_preference"`
	Bio            string  `gorm:"type:text" json:"bio"`
	AvatarURL      string  `gorm:"size:500" json:"avatar_url"`
	IsAvailable    bool    `gorm:"default:true" json:"is_available"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`

	Specialties []TherapistSpecialty `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"specialties"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsMassagista() bool {
	return u.UserType == UserTypeMassagista
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// TherapistSpecialty is one named specialty. CustomPrice overrides the
// default price of the service with the same name.
type TherapistSpecialty struct {
	ID          uint     `gorm:"primaryKey" json:"-"`
	UserID      uint     `gorm:"index;not null" json:"-"`
	Position    int      `gorm:"not null" json:"-"`
	Name        string   `gorm:"size:100;not null" json:"name"`
	CustomPrice *float64 `json:"custom_price,omitempty"`
}
