package booking

import (
	"context"
	"time"

	domain "github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
	"github.com/espacoviv/agendamento/internal/timezone"
)

type ListBookingsInput struct {
	TherapistID *uint
	UnitCode    string
	Status      string
	DateFrom    string
	DateTo      string
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns matching bookings ordered by date and time ascending.
func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) ([]models.Booking, error) {

	f := domain.Filter{
		TherapistID: in.TherapistID,
		UnitCode:    in.UnitCode,
		DateFrom:    in.DateFrom,
		DateTo:      in.DateTo,
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Statuses = []domain.Status{st}
	}

	for _, d := range []string{in.DateFrom, in.DateTo} {
		if d == "" {
			continue
		}
		if _, err := timezone.ParseDate(d); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	if in.DateFrom != "" && in.DateTo != "" && in.DateFrom > in.DateTo {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	return uc.repo.ListBookings(ctx, f)
}

// ======================================================
// Calendar of a therapist
// ======================================================

type ListTherapistCalendar struct {
	repo domain.Repository
}

func NewListTherapistCalendar(repo domain.Repository) *ListTherapistCalendar {
	return &ListTherapistCalendar{repo: repo}
}

// Execute groups the therapist's active bookings of a month by date.
func (uc *ListTherapistCalendar) Execute(
	ctx context.Context,
	therapistID uint,
	year int,
	month int,
) (map[string][]models.Booking, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}
	if year < 1 {
		return nil, httperr.ErrBusiness("invalid_year")
	}

	first, last := timezone.MonthRange(year, time.Month(month))
	bookings, err := uc.repo.ListBookings(ctx, domain.Filter{
		TherapistID: &therapistID,
		Statuses:    domain.ActiveStatuses,
		DateFrom:    timezone.FormatDate(first),
		DateTo:      timezone.FormatDate(last),
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string][]models.Booking)
	for _, b := range bookings {
		out[b.AppointmentDate] = append(out[b.AppointmentDate], b)
	}
	return out, nil
}
