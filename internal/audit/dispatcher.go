package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/models"
)

type Event struct {
	UserID   *uint
	UnitCode string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Store persists audit entries.
type Store interface {
	InsertAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, userID uint, limit, offset int) ([]models.AuditLog, int64, error)
}

const queueSize = 100

type Dispatcher struct {
	store  Store
	log    *zap.Logger
	queue  chan Event
	done   chan struct{}
	closer sync.Once
}

func NewDispatcher(store Store, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   log.Named("audit"),
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		entry := toEntry(ev)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := d.store.InsertAuditLog(ctx, &entry)
		cancel()

		if err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
			continue
		}
		d.log.Debug("audit", zap.String("action", ev.Action), zap.String("entity", ev.Entity))
	}
}

// Dispatch never blocks; events are dropped when the queue is full.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	defer func() {
		// Dispatch after Close.
		if recover() != nil {
			d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		}
	}()

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue and waits for the worker.
func (d *Dispatcher) Close() {
	d.closer.Do(func() {
		close(d.queue)
	})
	<-d.done
}

func toEntry(ev Event) models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return models.AuditLog{
		UserID:   ev.UserID,
		UnitCode: ev.UnitCode,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}
}
