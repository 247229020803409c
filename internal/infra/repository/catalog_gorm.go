package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/espacoviv/agendamento/internal/domain/booking"
	domain "github.com/espacoviv/agendamento/internal/domain/catalog"
	"github.com/espacoviv/agendamento/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListUnits(ctx context.Context) ([]models.Unit, error) {
	var out []models.Unit
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) GetUnitByCode(ctx context.Context, code string) (*models.Unit, error) {
	var unit models.Unit
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&unit).Error; err != nil {
		return nil, notFound(err, booking.ErrUnitNotFound)
	}
	return &unit, nil
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, unitID *uint) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if unitID != nil {
		q = q.Where("unit_id IS NULL OR unit_id = ?", *unitID)
	} else {
		q = q.Where("unit_id IS NULL")
	}

	var out []models.Service
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) EnsureUnits(ctx context.Context, units []models.Unit) (int, error) {
	if len(units) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&units)
	return int(res.RowsAffected), res.Error
}

func (r *CatalogGormRepository) EnsureServices(ctx context.Context, services []models.Service) (int, error) {
	if len(services) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&services)
	return int(res.RowsAffected), res.Error
}
