package account

import (
	"context"

	"github.com/espacoviv/agendamento/internal/audit"
	"github.com/espacoviv/agendamento/internal/models"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

type AuditPage struct {
	Logs  []models.AuditLog
	Page  int
	Limit int
	Total int64
}

type ListAuditLogs struct {
	store audit.Store
}

func NewListAuditLogs(store audit.Store) *ListAuditLogs {
	return &ListAuditLogs{store: store}
}

// Execute returns the user's entries, newest first. Out of range page and
// limit values are clamped.
func (uc *ListAuditLogs) Execute(ctx context.Context, userID uint, page, limit int) (*AuditPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	logs, total, err := uc.store.ListAuditLogs(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &AuditPage{Logs: logs, Page: page, Limit: limit, Total: total}, nil
}
