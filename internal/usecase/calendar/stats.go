package calendar

import (
	"context"

	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
)

const maxStatsDays = 366

type StatsInput struct {
	UnitCode    string
	TherapistID *uint
	DateFrom    string
	DateTo      string
}

type AvailabilityStats struct {
	deps Deps
}

func NewAvailabilityStats(deps Deps) *AvailabilityStats {
	return &AvailabilityStats{deps: deps}
}

func (uc *AvailabilityStats) Execute(
	ctx context.Context,
	in StatsInput,
) (*availability.Stats, error) {

	from, err := parseDate(in.DateFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(in.DateTo)
	if err != nil {
		return nil, err
	}
	if to.Before(from) || to.Sub(from).Hours()/24 >= maxStatsDays {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	if in.UnitCode != "" {
		if _, err := uc.deps.unit(ctx, in.UnitCode); err != nil {
			return nil, err
		}
	}
	if err := uc.deps.checkTherapist(ctx, in.TherapistID); err != nil {
		return nil, err
	}

	days, err := uc.deps.loadRange(ctx, in.UnitCode, in.TherapistID, from, to)
	if err != nil {
		return nil, err
	}

	totalSlots := 0
	for _, d := range days {
		totalSlots += len(d.template)
	}

	s := availability.BuildStats(
		availability.Period{From: in.DateFrom, To: in.DateTo, Days: len(days)},
		totalSlots,
		flatten(days),
	)
	return &s, nil
}

func flatten(days []dayData) []models.Booking {
	var out []models.Booking
	for _, d := range days {
		out = append(out, d.bookings...)
	}
	return out
}
