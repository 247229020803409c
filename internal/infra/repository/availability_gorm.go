package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AvailabilityGormRepository)(nil)

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) UpsertOverride(
	ctx context.Context,
	ov *models.AvailabilityOverride,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "massagista_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "time_slots", "updated_at"}),
		}).
		Create(ov).Error
}

func (r *AvailabilityGormRepository) GetOverride(
	ctx context.Context,
	therapistID uint,
	date string,
) (*models.AvailabilityOverride, error) {

	var ov models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where("massagista_id = ? AND date = ?", therapistID, date).
		First(&ov).Error; err != nil {
		return nil, notFound(err, domain.ErrNoOverride)
	}
	return &ov, nil
}

func (r *AvailabilityGormRepository) ListOverrides(
	ctx context.Context,
	therapistID uint,
	from string,
	to string,
) ([]models.AvailabilityOverride, error) {

	var out []models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where("massagista_id = ? AND date >= ? AND date <= ?", therapistID, from, to).
		Order("date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
