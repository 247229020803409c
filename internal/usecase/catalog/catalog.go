package catalog

import (
	"context"

	domain "github.com/espacoviv/agendamento/internal/domain/catalog"
	"github.com/espacoviv/agendamento/internal/models"
)

type ListUnits struct {
	repo domain.Repository
}

func NewListUnits(repo domain.Repository) *ListUnits {
	return &ListUnits{repo: repo}
}

func (uc *ListUnits) Execute(ctx context.Context) ([]models.Unit, error) {
	return uc.repo.ListUnits(ctx)
}

type GetUnit struct {
	repo domain.Repository
}

func NewGetUnit(repo domain.Repository) *GetUnit {
	return &GetUnit{repo: repo}
}

func (uc *GetUnit) Execute(ctx context.Context, code string) (*models.Unit, error) {
	return uc.repo.GetUnitByCode(ctx, code)
}

type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

// Execute lists the global services, plus the unit's own when unitCode is
// given. An unknown unit code is an error.
func (uc *ListServices) Execute(ctx context.Context, unitCode string) ([]models.Service, error) {
	if unitCode == "" {
		return uc.repo.ListServices(ctx, nil)
	}

	unit, err := uc.repo.GetUnitByCode(ctx, unitCode)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListServices(ctx, &unit.ID)
}
