package memory

import (
	"context"

	"github.com/espacoviv/agendamento/internal/models"
)

func (s *Store) InsertAuditLog(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.id()
	entry.CreatedAt = s.now()
	s.audit = append(s.audit, *entry)
	return nil
}

// ListAuditLogs returns the user's entries, newest first.
func (s *Store) ListAuditLogs(_ context.Context, userID uint, limit, offset int) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var mine []models.AuditLog
	for i := len(s.audit) - 1; i >= 0; i-- {
		e := s.audit[i]
		if e.UserID != nil && *e.UserID == userID {
			mine = append(mine, e)
		}
	}

	total := int64(len(mine))
	if offset >= len(mine) {
		return []models.AuditLog{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}
