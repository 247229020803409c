package memory

import (
	"context"
	"sort"

	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/models"
)

func cloneOverride(ov models.AvailabilityOverride) *models.AvailabilityOverride {
	ov.TimeSlots = append([]string(nil), ov.TimeSlots...)
	return &ov
}

func (s *Store) UpsertOverride(_ context.Context, ov *models.AvailabilityOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := overrideKey{therapistID: ov.TherapistID, date: ov.Date}
	now := s.now()
	if cur, ok := s.overrides[key]; ok {
		ov.ID = cur.ID
		ov.CreatedAt = cur.CreatedAt
	} else {
		ov.ID = s.id()
		ov.CreatedAt = now
	}
	ov.UpdatedAt = now
	s.overrides[key] = *cloneOverride(*ov)
	return nil
}

func (s *Store) GetOverride(_ context.Context, therapistID uint, date string) (*models.AvailabilityOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ov, ok := s.overrides[overrideKey{therapistID: therapistID, date: date}]
	if !ok {
		return nil, availability.ErrNoOverride
	}
	return cloneOverride(ov), nil
}

func (s *Store) ListOverrides(_ context.Context, therapistID uint, from, to string) ([]models.AvailabilityOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AvailabilityOverride
	for key, ov := range s.overrides {
		if key.therapistID != therapistID || key.date < from || key.date > to {
			continue
		}
		out = append(out, *cloneOverride(ov))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
