package calendar

import (
	"context"

	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/timezone"
)

type NextAvailable struct {
	deps Deps
}

func NewNextAvailable(deps Deps) *NextAvailable {
	return &NextAvailable{deps: deps}
}

// Execute scans fromDate (default today) and the following 29 days for the
// first free slot. Running out of days is a normal result, not an error.
func (uc *NextAvailable) Execute(
	ctx context.Context,
	unitCode string,
	fromDate string,
	therapistID *uint,
) (*availability.NextAvailable, error) {

	unit, err := uc.deps.unit(ctx, unitCode)
	if err != nil {
		return nil, err
	}

	start := timezone.Today(uc.deps.now(), uc.deps.Timezone)
	if fromDate != "" {
		if start, err = parseDate(fromDate); err != nil {
			return nil, err
		}
	}
	if err := uc.deps.checkTherapist(ctx, therapistID); err != nil {
		return nil, err
	}

	days, err := uc.deps.loadRange(
		ctx,
		unit.Code,
		therapistID,
		start,
		start.AddDate(0, 0, availability.SearchWindowDays-1),
	)
	if err != nil {
		return nil, err
	}

	for i, d := range days {
		if res, ok := availability.PickFirst(d.date, i, d.template, availability.BookedTimes(d.bookings)); ok {
			return &res, nil
		}
	}

	res := availability.Exhausted()
	return &res, nil
}
