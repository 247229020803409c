package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/audit"
	domain "github.com/espacoviv/agendamento/internal/domain/booking"
)

// ExpirePending cancels bookings left pending longer than ttl.
type ExpirePending struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	ttl   time.Duration
	now   func() time.Time
	log   *zap.Logger
}

func NewExpirePending(
	repo domain.Repository,
	audit *audit.Dispatcher,
	ttl time.Duration,
	now func() time.Time,
	log *zap.Logger,
) *ExpirePending {
	return &ExpirePending{
		repo:  repo,
		audit: audit,
		ttl:   ttl,
		now:   nowOr(now),
		log:   log,
	}
}

// Execute returns how many bookings were cancelled. Bookings whose status
// moved on after the listing are skipped. One failing booking does not
// stop the sweep.
func (uc *ExpirePending) Execute(ctx context.Context) (int, error) {
	if uc.ttl <= 0 {
		return 0, nil
	}

	now := uc.now()
	stale, err := uc.repo.ListPendingCreatedBefore(ctx, now.Add(-uc.ttl))
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		b := &stale[i]
		if !domain.IsStale(b, uc.ttl, now) {
			continue
		}

		domain.ApplyStatus(b, domain.StatusCancelled, now)
		err := uc.repo.UpdateBooking(ctx, b, domain.StatusPending)
		if errors.Is(err, domain.ErrStatusChanged) {
			uc.log.Debug("pending booking changed before expiry", zap.Uint("booking_id", b.ID))
			continue
		}
		if err != nil {
			uc.log.Warn("expire pending booking", zap.Uint("booking_id", b.ID), zap.Error(err))
			continue
		}
		expired++

		uc.audit.Dispatch(audit.Event{
			UnitCode: b.UnitCode,
			UserID:   &b.TherapistID,
			Action:   "booking_expired",
			Entity:   "booking",
			EntityID: &b.ID,
		})
	}
	return expired, nil
}
