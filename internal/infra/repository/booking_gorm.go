package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (r *BookingGormRepository) GetUnitByCode(
	ctx context.Context,
	code string,
) (*models.Unit, error) {

	var unit models.Unit
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&unit).Error; err != nil {
		return nil, notFound(err, domain.ErrUnitNotFound)
	}
	return &unit, nil
}

func (r *BookingGormRepository) GetTherapist(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Specialties", orderByPosition).
		Where("id = ? AND user_type = ?", id, models.UserTypeMassagista).
		First(&u).Error; err != nil {
		return nil, notFound(err, domain.ErrTherapistNotFound)
	}
	return &u, nil
}

func (r *BookingGormRepository) FindServiceByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		Order("id").
		First(&svc).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &svc, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// lockTherapist serializes slot checks of one therapist for the rest of tx.
func lockTherapist(tx *gorm.DB, therapistID uint) error {
	var u models.User
	return tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", therapistID).
		First(&u).Error
}

func slotTaken(tx *gorm.DB, b *models.Booking) (bool, error) {
	var ids []uint
	if err := tx.
		Model(&models.Booking{}).
		Where(
			"massagista_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ? AND id <> ?",
			b.TherapistID,
			b.AppointmentDate,
			b.AppointmentTime,
			domain.ActiveStrings(),
			b.ID,
		).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *BookingGormRepository) CreateIfSlotFree(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTherapist(tx, b.TherapistID); err != nil {
			return notFound(err, domain.ErrTherapistNotFound)
		}

		taken, err := slotTaken(tx, b)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlotUnavailable
		}

		return tx.Omit(clause.Associations).Create(b).Error
	})

	// The partial unique index is the last line when another writer
	// bypassed the row lock.
	if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
		return domain.ErrSlotUnavailable
	}
	return err
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Therapist").
		Preload("Unit").
		First(&b, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
	expected domain.Status,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if domain.Status(b.Status).IsActive() {
			if err := lockTherapist(tx, b.TherapistID); err != nil {
				return err
			}
			taken, err := slotTaken(tx, b)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrSlotUnavailable
			}
		}

		res := tx.Model(b).
			Omit(clause.Associations).
			Where("status = ?", string(expected)).
			Select("status", "confirmed_at", "cancelled_at", "completed_at", "updated_at").
			Updates(b)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.Booking{}).Where("id = ?", b.ID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return domain.ErrBookingNotFound
			}
			return domain.ErrStatusChanged
		}
		return nil
	})

	if httperr.IsUniqueViolation(err) {
		return domain.ErrSlotUnavailable
	}
	return err
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.Filter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Therapist").
		Model(&models.Booking{})

	if f.TherapistID != nil {
		q = q.Where("massagista_id = ?", *f.TherapistID)
	}
	if f.UnitCode != "" {
		q = q.Where("unit_code = ?", f.UnitCode)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("status IN ?", statuses)
	}
	if f.DateFrom != "" {
		q = q.Where("appointment_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("appointment_date <= ?", f.DateTo)
	}

	var out []models.Booking
	if err := q.
		Order("appointment_date ASC, appointment_time ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ListPendingCreatedBefore(
	ctx context.Context,
	before time.Time,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(domain.StatusPending), before).
		Order("appointment_date ASC, appointment_time ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
