package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
	"github.com/espacoviv/agendamento/internal/timezone"
)

// Deps are shared by every calendar read.
type Deps struct {
	Bookings  booking.Repository
	Overrides availability.Repository
	Template  availability.Template
	Timezone  string
	Now       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// dayData is what a calendar view needs for one date.
type dayData struct {
	date     time.Time
	template []string
	bookings []models.Booking
}

// loadRange collects templates and active bookings for from..to. With a
// therapist, the override of each day applies and only their bookings
// count; otherwise the unit-wide default template is used.
func (d Deps) loadRange(
	ctx context.Context,
	unitCode string,
	therapistID *uint,
	from time.Time,
	to time.Time,
) ([]dayData, error) {

	fromS, toS := timezone.FormatDate(from), timezone.FormatDate(to)

	bookings, err := d.Bookings.ListBookings(ctx, booking.Filter{
		TherapistID: therapistID,
		UnitCode:    unitCode,
		Statuses:    booking.ActiveStatuses,
		DateFrom:    fromS,
		DateTo:      toS,
	})
	if err != nil {
		return nil, err
	}
	byDate := make(map[string][]models.Booking)
	for _, b := range bookings {
		byDate[b.AppointmentDate] = append(byDate[b.AppointmentDate], b)
	}

	overrides := map[string]*models.AvailabilityOverride{}
	if therapistID != nil {
		list, err := d.Overrides.ListOverrides(ctx, *therapistID, fromS, toS)
		if err != nil {
			return nil, err
		}
		for i := range list {
			overrides[list[i].Date] = &list[i]
		}
	}

	var out []dayData
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := timezone.FormatDate(day)
		out = append(out, dayData{
			date:     day,
			template: availability.Effective(d.Template.SlotsFor(day), overrides[key]),
			bookings: byDate[key],
		})
	}
	return out, nil
}

func (d Deps) unit(ctx context.Context, code string) (*models.Unit, error) {
	return d.Bookings.GetUnitByCode(ctx, code)
}

func (d Deps) checkTherapist(ctx context.Context, therapistID *uint) error {
	if therapistID == nil {
		return nil
	}
	_, err := d.Bookings.GetTherapist(ctx, *therapistID)
	return err
}

func parseDate(s string) (time.Time, error) {
	t, err := timezone.ParseDate(s)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return t, nil
}

func override(ctx context.Context, repo availability.Repository, therapistID uint, date string) (*models.AvailabilityOverride, error) {
	ov, err := repo.GetOverride(ctx, therapistID, date)
	if errors.Is(err, availability.ErrNoOverride) {
		return nil, nil
	}
	return ov, err
}
