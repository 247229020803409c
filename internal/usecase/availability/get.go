package availability

import (
	"context"
	"errors"
	"time"

	domain "github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
	"github.com/espacoviv/agendamento/internal/timezone"
)

// DayOverride is the public answer for one therapist day. Without a
// stored override it reports the template of that date.
type DayOverride struct {
	Date       string   `json:"date"`
	Status     string   `json:"status"`
	TimeSlots  []string `json:"time_slots"`
	IsOverride bool     `json:"is_override"`
}

// TherapistLookup is satisfied by the booking repository.
type TherapistLookup interface {
	GetTherapist(ctx context.Context, id uint) (*models.User, error)
}

type GetDay struct {
	repo       domain.Repository
	therapists TherapistLookup
	template   domain.Template
}

func NewGetDay(repo domain.Repository, therapists TherapistLookup, template domain.Template) *GetDay {
	return &GetDay{
		repo:       repo,
		therapists: therapists,
		template:   template,
	}
}

func (uc *GetDay) Execute(
	ctx context.Context,
	therapistID uint,
	date string,
) (*DayOverride, error) {

	if _, err := uc.therapists.GetTherapist(ctx, therapistID); err != nil {
		return nil, err
	}
	day, err := timezone.ParseDate(date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	ov, err := uc.repo.GetOverride(ctx, therapistID, date)
	if errors.Is(err, domain.ErrNoOverride) {
		slots := uc.template.SlotsFor(day)
		status := models.OverrideAvailable
		if len(slots) == 0 {
			status = models.OverrideUnavailable
		}
		return &DayOverride{Date: date, Status: status, TimeSlots: slots}, nil
	}
	if err != nil {
		return nil, err
	}

	slots := ov.TimeSlots
	if slots == nil {
		slots = []string{}
	}
	return &DayOverride{Date: date, Status: ov.Status, TimeSlots: slots, IsOverride: true}, nil
}

// MonthOverride is a stored override inside a month listing.
type MonthOverride struct {
	Status    string   `json:"status"`
	TimeSlots []string `json:"time_slots"`
}

type GetMonth struct {
	repo domain.Repository
}

func NewGetMonth(repo domain.Repository) *GetMonth {
	return &GetMonth{repo: repo}
}

// Execute returns only stored overrides, keyed by date.
func (uc *GetMonth) Execute(
	ctx context.Context,
	therapistID uint,
	year int,
	month int,
) (map[string]MonthOverride, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}
	if year < 1 || year > 9999 {
		return nil, httperr.ErrBusiness("invalid_year")
	}

	first, last := timezone.MonthRange(year, time.Month(month))
	list, err := uc.repo.ListOverrides(ctx, therapistID, timezone.FormatDate(first), timezone.FormatDate(last))
	if err != nil {
		return nil, err
	}

	out := make(map[string]MonthOverride, len(list))
	for _, ov := range list {
		slots := ov.TimeSlots
		if slots == nil {
			slots = []string{}
		}
		out[ov.Date] = MonthOverride{Status: ov.Status, TimeSlots: slots}
	}
	return out, nil
}
