package memory

import (
	"context"
	"sort"

	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/models"
)

func (s *Store) ListUnits(_ context.Context) ([]models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Unit, 0, len(s.units))
	for _, u := range s.units {
		if u.IsActive {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) GetUnitByCode(_ context.Context, code string) (*models.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.unitByCode(code); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, booking.ErrUnitNotFound
}

func (s *Store) unitByCode(code string) *models.Unit {
	for i := range s.units {
		if s.units[i].Code == code {
			return &s.units[i]
		}
	}
	return nil
}

func (s *Store) ListServices(_ context.Context, unitID *uint) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		if !svc.IsActive {
			continue
		}
		if svc.UnitID == nil || (unitID != nil && *svc.UnitID == *unitID) {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) FindServiceByName(_ context.Context, name string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, svc := range s.services {
		if svc.Name == name && svc.IsActive {
			cp := svc
			return &cp, nil
		}
	}
	return nil, booking.ErrServiceNotFound
}

func (s *Store) EnsureUnits(_ context.Context, units []models.Unit) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := 0
	for _, u := range units {
		if s.unitByCode(u.Code) != nil {
			continue
		}
		u.ID = s.id()
		u.CreatedAt = s.now()
		u.UpdatedAt = u.CreatedAt
		s.units = append(s.units, u)
		created++
	}
	return created, nil
}

func (s *Store) EnsureServices(_ context.Context, services []models.Service) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := 0
	for _, svc := range services {
		exists := false
		for _, cur := range s.services {
			if cur.Code == svc.Code {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		svc.ID = s.id()
		svc.CreatedAt = s.now()
		svc.UpdatedAt = svc.CreatedAt
		s.services = append(s.services, svc)
		created++
	}
	return created, nil
}
