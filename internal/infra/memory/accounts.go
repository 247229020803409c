package memory

import (
	"context"
	"sort"
	"time"

	"github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/models"
)

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.Specialties = append([]models.TherapistSpecialty(nil), u.Specialties...)
	return &cp
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cur := range s.users {
		if cur.Email == u.Email {
			return account.ErrEmailTaken
		}
		if u.CPF != nil && cur.CPF != nil && *cur.CPF == *u.CPF {
			return account.ErrCPFTaken
		}
	}

	u.ID = s.id()
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	for i := range u.Specialties {
		u.Specialties[i].ID = s.id()
		u.Specialties[i].UserID = u.ID
	}
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, account.ErrUserNotFound
}

func (s *Store) GetTherapist(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || !u.IsMassagista() {
		return nil, booking.ErrTherapistNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) UpdateUser(_ context.Context, u *models.User, specialties []models.TherapistSpecialty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return account.ErrUserNotFound
	}

	next := cloneUser(u)
	next.PasswordHash = cur.PasswordHash
	next.Specialties = cur.Specialties
	if specialties != nil {
		next.Specialties = make([]models.TherapistSpecialty, len(specialties))
		for i, sp := range specialties {
			sp.ID = s.id()
			sp.UserID = u.ID
			next.Specialties[i] = sp
		}
	}
	next.UpdatedAt = s.now()
	s.users[u.ID] = next

	u.Specialties = append([]models.TherapistSpecialty(nil), next.Specialties...)
	u.UpdatedAt = next.UpdatedAt
	return nil
}

func (s *Store) UpdatePassword(_ context.Context, userID uint, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return account.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = s.now()
	return nil
}

func (s *Store) ListTherapistsByUnit(_ context.Context, unitCode string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.User
	for _, u := range s.users {
		if !u.IsMassagista() || !u.IsActive || !u.IsAvailable {
			continue
		}
		if u.UnitPreference != nil && *u.UnitPreference != "" && *u.UnitPreference != unitCode {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) IssueReset(_ context.Context, pr *models.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cur := range s.resets {
		if cur.UserID == pr.UserID && !cur.IsUsed {
			cur.IsUsed = true
		}
	}
	pr.ID = s.id()
	pr.CreatedAt = s.now()
	cp := *pr
	s.resets = append(s.resets, &cp)
	return nil
}

func (s *Store) ConsumeReset(_ context.Context, token string, now time.Time) (*models.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cur := range s.resets {
		if cur.Token != token {
			continue
		}
		if cur.IsUsed || !now.Before(cur.ExpiresAt) {
			return nil, account.ErrInvalidResetToken
		}
		cur.IsUsed = true
		cp := *cur
		return &cp, nil
	}
	return nil, account.ErrInvalidResetToken
}
