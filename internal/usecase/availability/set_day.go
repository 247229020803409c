package availability

import (
	"context"
	"strings"

	"github.com/espacoviv/agendamento/internal/audit"
	domain "github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
	"github.com/espacoviv/agendamento/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type SetDayInput struct {
	TherapistID uint
	Date        string
	Status      string
	TimeSlots   []string
}

// ======================================================
// USE CASE
// ======================================================

type SetDay struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetDay(repo domain.Repository, audit *audit.Dispatcher) *SetDay {
	return &SetDay{
		repo:  repo,
		audit: audit,
	}
}

// Execute stores the override for one day; repeating it with the same
// input leaves the same state. Slot strings are kept as sent.
func (uc *SetDay) Execute(
	ctx context.Context,
	in SetDayInput,
) (*models.AvailabilityOverride, error) {

	if _, err := timezone.ParseDate(in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if !domain.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidOverride
	}

	ov := &models.AvailabilityOverride{
		TherapistID: in.TherapistID,
		Date:        in.Date,
		Status:      in.Status,
		TimeSlots:   cleanSlots(in.TimeSlots),
	}
	if err := uc.repo.UpsertOverride(ctx, ov); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.TherapistID,
		Action:   "availability_set",
		Entity:   "availability_override",
		EntityID: &ov.ID,
		Metadata: map[string]any{"date": ov.Date, "status": ov.Status, "time_slots": ov.TimeSlots},
	})

	return ov, nil
}

func cleanSlots(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
