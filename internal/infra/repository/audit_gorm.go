package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/espacoviv/agendamento/internal/audit"
	"github.com/espacoviv/agendamento/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

var _ audit.Store = (*AuditGormRepository)(nil)

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) InsertAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditGormRepository) ListAuditLogs(
	ctx context.Context,
	userID uint,
	limit, offset int,
) ([]models.AuditLog, int64, error) {

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.AuditLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
