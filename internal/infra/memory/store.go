// Package memory is the in-process backend. A single mutex guards all
// state, so every check-then-write is atomic.
package memory

import (
	"sync"
	"time"

	"github.com/espacoviv/agendamento/internal/audit"
	"github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/domain/catalog"
	"github.com/espacoviv/agendamento/internal/models"
)

type overrideKey struct {
	therapistID uint
	date        string
}

type Store struct {
	mu sync.RWMutex

	units     []models.Unit
	services  []models.Service
	users     map[uint]*models.User
	bookings  map[uint]*models.Booking
	overrides map[overrideKey]models.AvailabilityOverride
	resets    []*models.PasswordReset
	audit     []models.AuditLog

	nextID uint
	now    func() time.Time
}

var (
	_ booking.Repository      = (*Store)(nil)
	_ availability.Repository = (*Store)(nil)
	_ account.Repository      = (*Store)(nil)
	_ catalog.Repository      = (*Store)(nil)
	_ audit.Store             = (*Store)(nil)
)

func New() *Store {
	return &Store{
		users:     make(map[uint]*models.User),
		bookings:  make(map[uint]*models.Booking),
		overrides: make(map[overrideKey]models.AvailabilityOverride),
		now:       time.Now,
	}
}

// WithClock replaces the timestamp source; used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// id must be called with mu held.
func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}
