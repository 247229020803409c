package availability

import (
	"context"

	domain "github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/timezone"
)

const maxWeekDates = 31

type SetWeekInput struct {
	TherapistID uint
	Dates       []string
	Status      string
	TimeSlots   []string
}

type SetWeek struct {
	day *SetDay
}

func NewSetWeek(day *SetDay) *SetWeek {
	return &SetWeek{day: day}
}

// Execute applies the same override to every date in order. It is not
// atomic: on failure the dates before the failing one stay applied and
// are returned with the error.
func (uc *SetWeek) Execute(
	ctx context.Context,
	in SetWeekInput,
) ([]string, error) {

	if len(in.Dates) == 0 || len(in.Dates) > maxWeekDates {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	for _, d := range in.Dates {
		if _, err := timezone.ParseDate(d); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	if !domain.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidOverride
	}

	applied := make([]string, 0, len(in.Dates))
	for _, d := range in.Dates {
		if _, err := uc.day.Execute(ctx, SetDayInput{
			TherapistID: in.TherapistID,
			Date:        d,
			Status:      in.Status,
			TimeSlots:   in.TimeSlots,
		}); err != nil {
			return applied, err
		}
		applied = append(applied, d)
	}
	return applied, nil
}
