package booking

import (
	"context"
	"time"

	"github.com/espacoviv/agendamento/internal/models"
)

// Filter narrows a booking listing. Zero values match everything; dates
// are inclusive YYYY-MM-DD bounds.
type Filter struct {
	TherapistID *uint
	UnitCode    string
	Statuses    []Status
	DateFrom    string
	DateTo      string
}

type Repository interface {
	// -------- Reference data --------
	GetUnitByCode(
		ctx context.Context,
		code string,
	) (*models.Unit, error)

	// GetTherapist returns ErrTherapistNotFound for unknown ids and for
	// users that are not massagistas. Specialties are loaded.
	GetTherapist(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	FindServiceByName(
		ctx context.Context,
		name string,
	) (*models.Service, error)

	// -------- Booking (create / conflict) --------

	// CreateIfSlotFree inserts b unless an active booking already holds
	// (therapist, date, time). The check and the insert are atomic.
	CreateIfSlotFree(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// UpdateBooking writes the status and lifecycle timestamps of b only
	// while the stored status still equals expected, else ErrStatusChanged.
	// When b's status is active the slot check, excluding b itself, runs
	// atomically with the write.
	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
		expected Status,
	) error

	// -------- Queries --------

	// ListBookings orders by appointment date, then time, then id. The
	// therapist of every booking is loaded.
	ListBookings(
		ctx context.Context,
		f Filter,
	) ([]models.Booking, error)

	ListPendingCreatedBefore(
		ctx context.Context,
		before time.Time,
	) ([]models.Booking, error)
}
