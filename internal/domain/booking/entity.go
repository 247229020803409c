package booking

import (
	"time"

	"github.com/espacoviv/agendamento/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus moves a booking to next and stamps the matching timestamp.
// It reports whether the booking now needs its slot back, i.e. it goes
// from a freed status to an active one.
func ApplyStatus(b *models.Booking, next Status, now time.Time) (reactivated bool) {
	reactivated = next.IsActive() && !Status(b.Status).IsActive()

	b.Status = string(next)
	switch next {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}
	return reactivated
}

// IsStale reports whether a pending booking outlived ttl.
func IsStale(b *models.Booking, ttl time.Duration, now time.Time) bool {
	return ttl > 0 &&
		Status(b.Status) == StatusPending &&
		!b.CreatedAt.Add(ttl).After(now)
}

// ResolvePrice returns the therapist's custom price for the service when
// set, else the catalog price, else zero.
func ResolvePrice(therapist *models.User, serviceName string, svc *models.Service) float64 {
	for _, sp := range therapist.Specialties {
		if sp.Name == serviceName && sp.CustomPrice != nil {
			return *sp.CustomPrice
		}
	}
	if svc != nil {
		return svc.Price
	}
	return 0
}
