package calendar

import (
	"context"
	"time"

	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/timezone"
)

// ======================================================
// DAY
// ======================================================

type DayView struct {
	deps Deps
}

func NewDayView(deps Deps) *DayView {
	return &DayView{deps: deps}
}

func (uc *DayView) Execute(
	ctx context.Context,
	unitCode string,
	date string,
	therapistID *uint,
) (*availability.DayView, error) {

	unit, err := uc.deps.unit(ctx, unitCode)
	if err != nil {
		return nil, err
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if err := uc.deps.checkTherapist(ctx, therapistID); err != nil {
		return nil, err
	}

	days, err := uc.deps.loadRange(ctx, unit.Code, therapistID, day, day)
	if err != nil {
		return nil, err
	}
	d := days[0]

	return &availability.DayView{
		Date:            date,
		UnitCode:        unit.Code,
		UnitName:        unit.Name,
		Slots:           availability.BuildSlots(d.template, d.bookings),
		TotalBookings:   len(d.bookings),
		RevenueEstimate: availability.Revenue(d.bookings),
	}, nil
}

// ======================================================
// WEEK
// ======================================================

type WeekView struct {
	deps Deps
}

func NewWeekView(deps Deps) *WeekView {
	return &WeekView{deps: deps}
}

func (uc *WeekView) Execute(
	ctx context.Context,
	unitCode string,
	weekStart string,
	therapistID *uint,
) (*availability.WeekAvailability, error) {

	unit, err := uc.deps.unit(ctx, unitCode)
	if err != nil {
		return nil, err
	}
	start, err := parseDate(weekStart)
	if err != nil {
		return nil, err
	}
	if err := uc.deps.checkTherapist(ctx, therapistID); err != nil {
		return nil, err
	}

	days, err := uc.deps.loadRange(ctx, unit.Code, therapistID, start, start.AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}

	w := availability.BuildWeek(buildDays(days))
	return &w, nil
}

func buildDays(days []dayData) []availability.DayAvailability {
	out := make([]availability.DayAvailability, 0, len(days))
	for _, d := range days {
		out = append(out, availability.BuildDay(d.date, d.template, d.bookings))
	}
	return out
}

// ======================================================
// MONTH
// ======================================================

type MonthView struct {
	deps Deps
}

func NewMonthView(deps Deps) *MonthView {
	return &MonthView{deps: deps}
}

// Execute covers every Monday-start week intersecting the month; month
// statistics only count the days inside it.
func (uc *MonthView) Execute(
	ctx context.Context,
	unitCode string,
	year int,
	month int,
	therapistID *uint,
) (*availability.MonthAvailability, error) {

	unit, err := uc.deps.unit(ctx, unitCode)
	if err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}
	if year < 1 || year > 9999 {
		return nil, httperr.ErrBusiness("invalid_year")
	}
	if err := uc.deps.checkTherapist(ctx, therapistID); err != nil {
		return nil, err
	}

	m := time.Month(month)
	starts := availability.WeekStarts(year, m)
	rangeEnd := starts[len(starts)-1].AddDate(0, 0, 6)

	days, err := uc.deps.loadRange(ctx, unit.Code, therapistID, starts[0], rangeEnd)
	if err != nil {
		return nil, err
	}

	all := buildDays(days)
	weeks := make([]availability.WeekAvailability, 0, len(starts))
	for i := range starts {
		weeks = append(weeks, availability.BuildWeek(all[i*7:i*7+7]))
	}

	first, last := timezone.MonthRange(year, m)
	var monthDays []dayData
	for _, d := range days {
		if !d.date.Before(first) && !d.date.After(last) {
			monthDays = append(monthDays, d)
		}
	}
	bookings := flatten(monthDays)

	return &availability.MonthAvailability{
		Year:       year,
		Month:      month,
		MonthName:  m.String(),
		Weeks:      weeks,
		MonthStats: availability.BuildMonthStats(year, m, weeks, bookings),
	}, nil
}
