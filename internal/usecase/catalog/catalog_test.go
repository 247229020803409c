package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/infra/memory"
	"github.com/espacoviv/agendamento/internal/models"
)

func TestListServicesByUnit(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if _, err := s.EnsureUnits(ctx, []models.Unit{
		{Code: "sp-perdizes", Name: "Perdizes", IsActive: true},
		{Code: "rj-centro", Name: "Centro", IsActive: true},
	}); err != nil {
		t.Fatal(err)
	}
	perdizes, _ := s.GetUnitByCode(ctx, "sp-perdizes")
	centro, _ := s.GetUnitByCode(ctx, "rj-centro")

	if _, err := s.EnsureServices(ctx, []models.Service{
		{Code: "shiatsu", Name: "Shiatsu", IsActive: true},
		{Code: "perdizes-spa", Name: "Spa Perdizes", UnitID: &perdizes.ID, IsActive: true},
		{Code: "centro-spa", Name: "Spa Centro", UnitID: &centro.ID, IsActive: true},
	}); err != nil {
		t.Fatal(err)
	}

	uc := NewListServices(s)

	all, err := uc.Execute(ctx, "")
	if err != nil || len(all) != 1 {
		t.Errorf("global = %+v %v", all, err)
	}
	mine, _ := uc.Execute(ctx, "sp-perdizes")
	if len(mine) != 2 {
		t.Errorf("perdizes = %+v", mine)
	}
	for _, svc := range mine {
		if svc.Code == "centro-spa" {
			t.Error("leaked another unit's service")
		}
	}

	if _, err := uc.Execute(ctx, "nope"); !errors.Is(err, booking.ErrUnitNotFound) {
		t.Errorf("unknown unit = %v", err)
	}
	if _, err := NewGetUnit(s).Execute(ctx, "nope"); !errors.Is(err, booking.ErrUnitNotFound) {
		t.Errorf("get unknown unit = %v", err)
	}

	units, _ := NewListUnits(s).Execute(ctx)
	if len(units) != 2 || units[0].Code != "rj-centro" {
		t.Errorf("units = %+v", units)
	}
}
