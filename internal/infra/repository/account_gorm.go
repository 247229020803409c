package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AccountGormRepository)(nil)

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AccountGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {

	err := r.db.WithContext(ctx).Create(u).Error

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "cpf") {
			return domain.ErrCPFTaken
		}
		return domain.ErrEmailTaken
	}
	return err
}

func (r *AccountGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Specialties", orderByPosition).
		First(&u, id).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *AccountGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Specialties", orderByPosition).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *AccountGormRepository) UpdateUser(
	ctx context.Context,
	u *models.User,
	specialties []models.TherapistSpecialty,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(u).
			Omit(clause.Associations).
			Select("name", "phone", "bio", "unit_preference", "avatar_url", "is_available", "is_active", "updated_at").
			Updates(u).Error; err != nil {
			return err
		}

		if specialties == nil {
			return nil
		}

		if err := tx.
			Where("user_id = ?", u.ID).
			Delete(&models.TherapistSpecialty{}).Error; err != nil {
			return err
		}
		for i := range specialties {
			specialties[i].ID = 0
			specialties[i].UserID = u.ID
		}
		if len(specialties) > 0 {
			if err := tx.Create(&specialties).Error; err != nil {
				return err
			}
		}
		u.Specialties = specialties
		return nil
	})
}

func (r *AccountGormRepository) UpdatePassword(
	ctx context.Context,
	userID uint,
	hash string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

func (r *AccountGormRepository) ListTherapistsByUnit(
	ctx context.Context,
	unitCode string,
) ([]models.User, error) {

	var out []models.User
	if err := r.db.WithContext(ctx).
		Preload("Specialties", orderByPosition).
		Where("user_type = ? AND is_active = ? AND is_available = ?", models.UserTypeMassagista, true, true).
		Where("unit_preference = ? OR unit_preference IS NULL OR unit_preference = ''", unitCode).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Password reset
// --------------------------------------------------

func (r *AccountGormRepository) IssueReset(
	ctx context.Context,
	pr *models.PasswordReset,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.PasswordReset{}).
			Where("user_id = ? AND is_used = ?", pr.UserID, false).
			Update("is_used", true).Error; err != nil {
			return err
		}
		return tx.Create(pr).Error
	})
}

func (r *AccountGormRepository) ConsumeReset(
	ctx context.Context,
	token string,
	now time.Time,
) (*models.PasswordReset, error) {

	var pr models.PasswordReset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", token).
			First(&pr).Error; err != nil {
			return notFound(err, domain.ErrInvalidResetToken)
		}

		if pr.IsUsed || !now.Before(pr.ExpiresAt) {
			return domain.ErrInvalidResetToken
		}

		pr.IsUsed = true
		return tx.Model(&pr).Update("is_used", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &pr, nil
}
