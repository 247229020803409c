package catalog

import (
	"context"

	"github.com/espacoviv/agendamento/internal/models"
)

type Repository interface {
	// ListUnits returns active units ordered by code.
	ListUnits(ctx context.Context) ([]models.Unit, error)

	// GetUnitByCode returns booking.ErrUnitNotFound when absent.
	GetUnitByCode(ctx context.Context, code string) (*models.Unit, error)

	// ListServices returns active global services plus, when unitID is
	// set, the services owned by that unit. Ordered by name.
	ListServices(ctx context.Context, unitID *uint) ([]models.Service, error)

	// -------- Seeding --------

	// EnsureUnits inserts the units whose code is not stored yet and
	// returns how many were created.
	EnsureUnits(ctx context.Context, units []models.Unit) (int, error)

	// EnsureServices works like EnsureUnits, keyed by service code.
	EnsureServices(ctx context.Context, services []models.Service) (int, error)
}
