package memory

import (
	"context"
	"sort"
	"time"

	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/models"
)

// slotTaken must be called with mu held.
func (s *Store) slotTaken(b *models.Booking) bool {
	for _, cur := range s.bookings {
		if cur.ID == b.ID {
			continue
		}
		if cur.TherapistID == b.TherapistID &&
			cur.AppointmentDate == b.AppointmentDate &&
			cur.AppointmentTime == b.AppointmentTime &&
			booking.Status(cur.Status).IsActive() {
			return true
		}
	}
	return false
}

func (s *Store) CreateIfSlotFree(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slotTaken(b) {
		return booking.ErrSlotUnavailable
	}

	b.ID = s.id()
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt

	cp := *b
	cp.Unit, cp.Therapist = nil, nil
	s.bookings[b.ID] = &cp
	return nil
}

func (s *Store) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return s.hydrate(b), nil
}

func (s *Store) UpdateBooking(_ context.Context, b *models.Booking, expected booking.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.bookings[b.ID]
	if !ok {
		return booking.ErrBookingNotFound
	}
	if cur.Status != string(expected) {
		return booking.ErrStatusChanged
	}
	if booking.Status(b.Status).IsActive() && s.slotTaken(cur) {
		return booking.ErrSlotUnavailable
	}

	// only the lifecycle columns change
	cp := *cur
	cp.Status = b.Status
	cp.ConfirmedAt = b.ConfirmedAt
	cp.CancelledAt = b.CancelledAt
	cp.CompletedAt = b.CompletedAt
	cp.UpdatedAt = s.now()
	s.bookings[b.ID] = &cp

	b.UpdatedAt = cp.UpdatedAt
	return nil
}

func (s *Store) ListBookings(_ context.Context, f booking.Filter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if matches(b, f) {
			out = append(out, *s.hydrate(b))
		}
	}
	sortBookings(out)
	return out, nil
}

func (s *Store) ListPendingCreatedBefore(_ context.Context, before time.Time) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if b.Status == string(booking.StatusPending) && b.CreatedAt.Before(before) {
			out = append(out, *s.hydrate(b))
		}
	}
	sortBookings(out)
	return out, nil
}

// hydrate must be called with mu held.
func (s *Store) hydrate(b *models.Booking) *models.Booking {
	cp := *b
	if u, ok := s.users[b.TherapistID]; ok {
		cp.Therapist = cloneUser(u)
	}
	if u := s.unitByCode(b.UnitCode); u != nil {
		unit := *u
		cp.Unit = &unit
	}
	return &cp
}

func matches(b *models.Booking, f booking.Filter) bool {
	if f.TherapistID != nil && b.TherapistID != *f.TherapistID {
		return false
	}
	if f.UnitCode != "" && b.UnitCode != f.UnitCode {
		return false
	}
	if f.DateFrom != "" && b.AppointmentDate < f.DateFrom {
		return false
	}
	if f.DateTo != "" && b.AppointmentDate > f.DateTo {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, st := range f.Statuses {
			if string(st) == b.Status {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func sortBookings(out []models.Booking) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate < out[j].AppointmentDate
		}
		if out[i].AppointmentTime != out[j].AppointmentTime {
			return out[i].AppointmentTime < out[j].AppointmentTime
		}
		return out[i].ID < out[j].ID
	})
}
