package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/espacoviv/agendamento/internal/audit"
	domain "github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/infra/slotlock"
	"github.com/espacoviv/agendamento/internal/models"
	"github.com/espacoviv/agendamento/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string

	UnitCode    string
	TherapistID uint
	Service     string

	Date      string
	Time      string
	Notes     string
	Promotion string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	locker slotlock.Locker
	audit  *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	locker slotlock.Locker,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1️⃣ Unidade
	// --------------------------------------------------
	unit, err := uc.repo.GetUnitByCode(ctx, in.UnitCode)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Massagista
	// --------------------------------------------------
	therapist, err := uc.repo.GetTherapist(ctx, in.TherapistID)
	if err != nil {
		return nil, err
	}
	if !therapist.IsActive {
		return nil, domain.ErrTherapistNotFound
	}

	// --------------------------------------------------
	// 3️⃣ Formato
	// --------------------------------------------------
	if strings.TrimSpace(in.ClientName) == "" ||
		strings.TrimSpace(in.ClientPhone) == "" ||
		strings.TrimSpace(in.Service) == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	if _, err := timezone.ParseDate(in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if !timezone.IsValidTime(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	// --------------------------------------------------
	// 4️⃣ Serviço (texto livre; catálogo só define preço e duração)
	// --------------------------------------------------
	svc, err := uc.repo.FindServiceByName(ctx, in.Service)
	if err != nil && !errors.Is(err, domain.ErrServiceNotFound) {
		return nil, err
	}

	b := &models.Booking{
		ClientName:      strings.TrimSpace(in.ClientName),
		ClientPhone:     strings.TrimSpace(in.ClientPhone),
		ClientEmail:     strings.TrimSpace(in.ClientEmail),
		UnitCode:        unit.Code,
		TherapistID:     therapist.ID,
		ServiceName:     in.Service,
		Price:           domain.ResolvePrice(therapist, in.Service, svc),
		DurationMinutes: 60,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
		Promotion:       in.Promotion,
	}
	if svc != nil {
		b.DurationMinutes = svc.DurationMinutes
	}

	// --------------------------------------------------
	// 5️⃣ Horário (checagem + inserção atômicas)
	// --------------------------------------------------
	if err := withSlotLock(ctx, uc.locker, b, func() error {
		return uc.repo.CreateIfSlotFree(ctx, b)
	}); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			uc.audit.Dispatch(audit.Event{
				UserID:   &in.TherapistID,
				UnitCode: in.UnitCode,
				Action:   "booking_conflict",
				Entity:   "booking",
				Metadata: map[string]string{"date": in.Date, "time": in.Time},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &b.TherapistID,
		UnitCode: b.UnitCode,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// withSlotLock runs fn while holding the slot lock of b. A lock that
// cannot be taken in time means another writer is booking that slot.
func withSlotLock(ctx context.Context, locker slotlock.Locker, b *models.Booking, fn func() error) error {
	if locker == nil {
		return fn()
	}

	unlock, err := locker.Lock(ctx, slotlock.Key(b.TherapistID, b.AppointmentDate, b.AppointmentTime))
	if errors.Is(err, slotlock.ErrTimeout) {
		return domain.ErrSlotUnavailable
	}
	if err != nil {
		return err
	}
	defer unlock()

	return fn()
}

func nowOr(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
