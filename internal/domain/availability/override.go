package availability

import (
	"context"
	"errors"

	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
)

// ErrNoOverride means the default template applies for that day.
var ErrNoOverride = errors.New("no availability override")

var ErrInvalidOverride = httperr.ErrBusiness("invalid_override")

func ValidStatus(status string) bool {
	return status == models.OverrideAvailable || status == models.OverrideUnavailable
}

type Repository interface {
	// UpsertOverride stores the override for (therapist, date); last write wins.
	UpsertOverride(
		ctx context.Context,
		ov *models.AvailabilityOverride,
	) error

	// GetOverride returns ErrNoOverride when nothing is stored.
	GetOverride(
		ctx context.Context,
		therapistID uint,
		date string,
	) (*models.AvailabilityOverride, error)

	// ListOverrides returns the overrides with from <= date <= to, ordered by date.
	ListOverrides(
		ctx context.Context,
		therapistID uint,
		from string,
		to string,
	) ([]models.AvailabilityOverride, error)
}
