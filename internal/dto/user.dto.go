package dto

import (
	"time"

	"github.com/espacoviv/agendamento/internal/models"
)

type SpecialtyDTO struct {
	Name        string   `json:"name"`
	CustomPrice *float64 `json:"custom_price"`
}

// UserDTO never carries the password hash or the CPF.
type UserDTO struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	UserType       string         `json:"user_type"`
	UnitPreference *string        `json:"unit_preference"`
	Bio            string         `json:"bio"`
	AvatarURL      string         `json:"avatar_url"`
	IsAvailable    bool           `json:"is_available"`
	IsActive       bool           `json:"is_active"`
	Specialties    []SpecialtyDTO `json:"specialties"`
	CreatedAt      time.Time      `json:"created_at"`
}

func User(u *models.User) UserDTO {
	specs := make([]SpecialtyDTO, 0, len(u.Specialties))
	for _, sp := range u.Specialties {
		specs = append(specs, SpecialtyDTO{Name: sp.Name, CustomPrice: sp.CustomPrice})
	}

	return UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		UserType:       u.UserType,
		UnitPreference: u.UnitPreference,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		IsAvailable:    u.IsAvailable,
		IsActive:       u.IsActive,
		Specialties:    specs,
		CreatedAt:      u.CreatedAt,
	}
}
