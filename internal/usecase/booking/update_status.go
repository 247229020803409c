package booking

import (
	"context"
	"time"

	"github.com/espacoviv/agendamento/internal/audit"
	domain "github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/infra/slotlock"
	"github.com/espacoviv/agendamento/internal/models"
)

type UpdateStatusInput struct {
	BookingID uint
	ActorID   uint
	IsAdmin   bool
	Status    string
}

type UpdateBookingStatus struct {
	repo   domain.Repository
	locker slotlock.Locker
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	locker slotlock.Locker,
	audit *audit.Dispatcher,
	now func() time.Time,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:   repo,
		locker: locker,
		audit:  audit,
		now:    nowOr(now),
	}
}

// Execute applies any status of the enum. Therapists may only touch their
// own bookings; someone else's booking is reported as not found. The write
// only lands if the status read is still current, and any active target
// status re-validates the slot.
func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Booking, error) {

	next, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if !in.IsAdmin && b.TherapistID != in.ActorID {
		return nil, domain.ErrBookingNotFound
	}

	previous := b.Status
	domain.ApplyStatus(b, next, uc.now())

	save := func() error { return uc.repo.UpdateBooking(ctx, b, domain.Status(previous)) }
	if next.IsActive() {
		err = withSlotLock(ctx, uc.locker, b, save)
	} else {
		err = save()
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		UnitCode: b.UnitCode,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"from": previous, "to": b.Status},
	})

	return b, nil
}
