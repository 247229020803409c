package calendar

import (
	"context"

	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/timezone"
)

type FreeSlots struct {
	deps Deps
}

func NewFreeSlots(deps Deps) *FreeSlots {
	return &FreeSlots{deps: deps}
}

// Execute returns the therapist's bookable times for a date in template
// order. Past dates have none.
func (uc *FreeSlots) Execute(
	ctx context.Context,
	therapistID uint,
	date string,
) ([]string, error) {

	if _, err := uc.deps.Bookings.GetTherapist(ctx, therapistID); err != nil {
		return nil, err
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if day.Before(timezone.Today(uc.deps.now(), uc.deps.Timezone)) {
		return []string{}, nil
	}

	ov, err := override(ctx, uc.deps.Overrides, therapistID, date)
	if err != nil {
		return nil, err
	}
	template := availability.Effective(uc.deps.Template.SlotsFor(day), ov)

	bookings, err := uc.deps.Bookings.ListBookings(ctx, booking.Filter{
		TherapistID: &therapistID,
		Statuses:    booking.ActiveStatuses,
		DateFrom:    date,
		DateTo:      date,
	})
	if err != nil {
		return nil, err
	}

	return availability.Free(template, availability.BookedTimes(bookings)), nil
}
