package account

import (
	"context"

	domain "github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/domain/catalog"
	"github.com/espacoviv/agendamento/internal/models"
)

type SpecialtyView struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type TherapistView struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Bio            string          `json:"bio"`
	AvatarURL      string          `json:"avatar_url,omitempty"`
	UnitPreference *string         `json:"unit_preference"`
	IsAvailable    bool            `json:"is_available"`
	Specialties    []SpecialtyView `json:"specialties"`
}

type ListTherapistsByUnit struct {
	repo    domain.Repository
	catalog catalog.Repository
}

func NewListTherapistsByUnit(repo domain.Repository, catalog catalog.Repository) *ListTherapistsByUnit {
	return &ListTherapistsByUnit{repo: repo, catalog: catalog}
}

// Execute lists the therapists bookable at the unit. A specialty without
// a custom price shows the catalog price of the service with that name.
func (uc *ListTherapistsByUnit) Execute(ctx context.Context, unitCode string) ([]TherapistView, error) {
	unit, err := uc.catalog.GetUnitByCode(ctx, unitCode)
	if err != nil {
		return nil, err
	}

	services, err := uc.catalog.ListServices(ctx, &unit.ID)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(services))
	for _, s := range services {
		prices[s.Name] = s.Price
	}

	users, err := uc.repo.ListTherapistsByUnit(ctx, unit.Code)
	if err != nil {
		return nil, err
	}

	out := make([]TherapistView, 0, len(users))
	for _, u := range users {
		out = append(out, toTherapistView(u, prices))
	}
	return out, nil
}

func toTherapistView(u models.User, prices map[string]float64) TherapistView {
	specs := make([]SpecialtyView, 0, len(u.Specialties))
	for _, sp := range u.Specialties {
		price := prices[sp.Name]
		if sp.CustomPrice != nil {
			price = *sp.CustomPrice
		}
		specs = append(specs, SpecialtyView{Name: sp.Name, Price: price})
	}

	return TherapistView{
		ID:             u.ID,
		Name:           u.Name,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		UnitPreference: u.UnitPreference,
		IsAvailable:    u.IsAvailable,
		Specialties:    specs,
	}
}
