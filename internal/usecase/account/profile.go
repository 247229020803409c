package account

import (
	"context"
	"strings"

	domain "github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
)

type GetMe struct {
	repo domain.Repository
}

func NewGetMe(repo domain.Repository) *GetMe {
	return &GetMe{repo: repo}
}

// Execute fails with ErrInactiveUser for a deactivated account so a still
// valid token stops working.
func (uc *GetMe) Execute(ctx context.Context, userID uint) (*models.User, error) {
	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return u, nil
}

// ======================================================
// UPDATE
// ======================================================

// UpdateProfileInput only changes the fields that are set.
type UpdateProfileInput struct {
	UserID         uint
	Name           *string
	Phone          *string
	Bio            *string
	UnitPreference *string
	IsAvailable    *bool
	Specialties    []domain.SpecialtyInput
	SetSpecialties bool
}

type UpdateProfile struct {
	repo domain.Repository
}

func NewUpdateProfile(repo domain.Repository) *UpdateProfile {
	return &UpdateProfile{repo: repo}
}

func (uc *UpdateProfile) Execute(
	ctx context.Context,
	in UpdateProfileInput,
) (*models.User, error) {

	u, err := uc.repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrBusiness("invalid_request")
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Bio != nil {
		u.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.UnitPreference != nil {
		if up := strings.TrimSpace(*in.UnitPreference); up != "" {
			u.UnitPreference = &up
		} else {
			u.UnitPreference = nil
		}
	}
	if in.IsAvailable != nil {
		u.IsAvailable = *in.IsAvailable
	}

	var specialties []models.TherapistSpecialty
	if in.SetSpecialties {
		specialties = domain.BuildSpecialties(in.Specialties)
	}

	if err := uc.repo.UpdateUser(ctx, u, specialties); err != nil {
		return nil, err
	}
	return u, nil
}
