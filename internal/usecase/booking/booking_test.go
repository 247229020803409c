package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/audit"
	domain "github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/infra/memory"
	"github.com/espacoviv/agendamento/internal/infra/slotlock"
	"github.com/espacoviv/agendamento/internal/models"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	store     *memory.Store
	dispatch  *audit.Dispatcher
	create    *CreateBooking
	therapist *models.User
	other     *models.User
	clock     *testClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{clock: &testClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}}
	f.store = memory.New().WithClock(f.clock.Now)

	if _, err := f.store.EnsureUnits(ctx, []models.Unit{{Code: "sp-perdizes", Name: "Perdizes", IsActive: true}}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.store.EnsureServices(ctx, []models.Service{
		{Code: "shiatsu", Name: "Shiatsu", DurationMinutes: 60, Price: 120, IsActive: true},
	}); err != nil {
		t.Fatal(err)
	}

	custom := 150.0
	f.therapist = &models.User{
		Name: "Ana", Email: "ana@espacoviv.com", UserType: models.UserTypeMassagista,
		IsActive: true, IsAvailable: true,
		Specialties: []models.TherapistSpecialty{{Name: "Relaxante", CustomPrice: &custom}},
	}
	f.other = &models.User{Name: "Bia", Email: "bia@espacoviv.com", UserType: models.UserTypeMassagista, IsActive: true}
	for _, u := range []*models.User{f.therapist, f.other} {
		if err := f.store.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	f.dispatch = audit.NewDispatcher(f.store, zap.NewNop())
	t.Cleanup(f.dispatch.Close)

	f.create = NewCreateBooking(f.store, slotlock.NewLocal(), f.dispatch)
	return f
}

func (f *fixture) input() CreateBookingInput {
	return CreateBookingInput{
		ClientName:  "Maria",
		ClientPhone: "11999990000",
		UnitCode:    "sp-perdizes",
		TherapistID: f.therapist.ID,
		Service:     "Shiatsu",
		Date:        "2024-06-03",
		Time:        "14:00",
	}
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	all, err := f.store.ListBookings(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	return len(all)
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	b, err := f.create.Execute(context.Background(), f.input())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == 0 || b.Status != "pending" {
		t.Errorf("unexpected booking %+v", b)
	}
	if b.Price != 120 || b.DurationMinutes != 60 {
		t.Errorf("catalog price/duration not applied: %+v", b)
	}

	in := f.input()
	in.Service = "Relaxante"
	in.Time = "15:00"
	b, err = f.create.Execute(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if b.Price != 150 {
		t.Errorf("custom price = %f", b.Price)
	}
}

func TestCreateBookingValidationOrder(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(in *CreateBookingInput)
		want   error
		code   string
	}{
		{"unknown unit wins over unknown therapist", func(in *CreateBookingInput) { in.UnitCode = "xx"; in.TherapistID = 999 }, domain.ErrUnitNotFound, ""},
		{"unknown therapist", func(in *CreateBookingInput) { in.TherapistID = 999 }, domain.ErrTherapistNotFound, ""},
		{"unknown unit wins over bad date", func(in *CreateBookingInput) { in.UnitCode = "xx"; in.Date = "03/06/2024" }, domain.ErrUnitNotFound, ""},
		{"unknown therapist wins over bad time", func(in *CreateBookingInput) { in.TherapistID = 999; in.Time = "2pm" }, domain.ErrTherapistNotFound, ""},
		{"bad date", func(in *CreateBookingInput) { in.Date = "03/06/2024" }, nil, "invalid_date"},
		{"bad time", func(in *CreateBookingInput) { in.Time = "2pm" }, nil, "invalid_time"},
		{"missing client", func(in *CreateBookingInput) { in.ClientName = " " }, nil, "invalid_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input()
			tt.mutate(&in)
			_, err := f.create.Execute(context.Background(), in)
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if tt.code != "" && !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("got %v, want %s", err, tt.code)
			}
			if n := f.count(t); n != 0 {
				t.Fatalf("ledger mutated: %d bookings", n)
			}
		})
	}
}

func TestCreateBookingInactiveTherapist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.therapist.IsActive = false
	if err := f.store.UpdateUser(ctx, f.therapist, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := f.create.Execute(ctx, f.input()); !errors.Is(err, domain.ErrTherapistNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestCreateBookingFreeFormService(t *testing.T) {
	f := newFixture(t)
	in := f.input()
	in.Service = "Reflexologia"

	b, err := f.create.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unknown service names are accepted: %v", err)
	}
	if b.Price != 0 || b.DurationMinutes != 60 {
		t.Errorf("unexpected defaults %+v", b)
	}
}

func TestConcurrentDuplicateBooking(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.create.Execute(context.Background(), f.input())
		}(i)
	}
	wg.Wait()

	ok, conflict := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrSlotUnavailable):
			conflict++
		default:
			t.Fatalf("unexpected %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Errorf("ok=%d conflict=%d", ok, conflict)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewUpdateBookingStatus(f.store, slotlock.NewLocal(), f.dispatch, f.clock.Now)

	b, _ := f.create.Execute(ctx, f.input())

	if _, err := uc.Execute(ctx, UpdateStatusInput{BookingID: b.ID, ActorID: f.therapist.ID, Status: "done"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("invalid status = %v", err)
	}
	if _, err := uc.Execute(ctx, UpdateStatusInput{BookingID: b.ID, ActorID: f.other.ID, Status: "confirmed"}); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("foreign booking = %v", err)
	}
	if _, err := uc.Execute(ctx, UpdateStatusInput{BookingID: 9999, ActorID: f.therapist.ID, Status: "confirmed"}); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("missing booking = %v", err)
	}

	got, err := uc.Execute(ctx, UpdateStatusInput{BookingID: b.ID, ActorID: f.therapist.ID, Status: "confirmed"})
	if err != nil || got.ConfirmedAt == nil {
		t.Fatalf("confirm: %v %+v", err, got)
	}

	// admin may act on anyone's booking
	if _, err := uc.Execute(ctx, UpdateStatusInput{BookingID: b.ID, ActorID: f.other.ID, IsAdmin: true, Status: "cancelled"}); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}

	// slot was freed and taken by someone else
	if _, err := f.create.Execute(ctx, f.input()); err != nil {
		t.Fatalf("rebook freed slot: %v", err)
	}
	if _, err := uc.Execute(ctx, UpdateStatusInput{BookingID: b.ID, ActorID: f.therapist.ID, Status: "pending"}); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("reactivation over a taken slot = %v", err)
	}
}

func TestListBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewListBookings(f.store)

	for _, hm := range []string{"16:00", "09:00"} {
		in := f.input()
		in.Time = hm
		if _, err := f.create.Execute(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	tid := f.therapist.ID
	got, err := uc.Execute(ctx, ListBookingsInput{TherapistID: &tid, Status: "pending", DateFrom: "2024-06-01", DateTo: "2024-06-30"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].AppointmentTime != "09:00" {
		t.Errorf("unexpected list %+v", got)
	}

	if _, err := uc.Execute(ctx, ListBookingsInput{Status: "nope"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("bad status = %v", err)
	}
	if _, err := uc.Execute(ctx, ListBookingsInput{DateFrom: "2024-06-30", DateTo: "2024-06-01"}); !httperr.IsBusiness(err, "invalid_date_range") {
		t.Errorf("bad range = %v", err)
	}
}

func TestTherapistCalendar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, slot := range [][2]string{
		{"2024-06-03", "10:00"},
		{"2024-06-03", "11:00"},
		{"2024-06-20", "10:00"},
		{"2024-07-01", "10:00"},
	} {
		in := f.input()
		in.Date, in.Time = slot[0], slot[1]
		if _, err := f.create.Execute(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	got, err := NewListTherapistCalendar(f.store).Execute(ctx, f.therapist.ID, 2024, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(got["2024-06-03"]) != 2 || len(got["2024-06-20"]) != 1 || len(got) != 2 {
		t.Errorf("unexpected calendar %+v", got)
	}

	if _, err := NewListTherapistCalendar(f.store).Execute(ctx, f.therapist.ID, 2024, 13); !httperr.IsBusiness(err, "invalid_month") {
		t.Errorf("bad month = %v", err)
	}
}

func TestGetBookingOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, _ := f.create.Execute(ctx, f.input())
	uc := NewGetBooking(f.store)

	if _, err := uc.Execute(ctx, b.ID, f.other.ID, false); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("foreign get = %v", err)
	}
	got, err := uc.Execute(ctx, b.ID, f.therapist.ID, false)
	if err != nil || got.Therapist == nil || got.Therapist.Name != "Ana" {
		t.Errorf("own get = %v %+v", err, got)
	}
}

func TestExpirePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old, _ := f.create.Execute(ctx, f.input())

	f.clock.Advance(10 * time.Hour)
	in := f.input()
	in.Time = "15:00"
	fresh, _ := f.create.Execute(ctx, in)

	f.clock.Advance(15 * time.Hour) // old is 25h, fresh is 15h
	uc := NewExpirePending(f.store, f.dispatch, 24*time.Hour, f.clock.Now, zap.NewNop())

	n, err := uc.Execute(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expired %d, err %v", n, err)
	}

	got, _ := f.store.GetBooking(ctx, old.ID)
	if got.Status != "cancelled" || got.CancelledAt == nil {
		t.Errorf("old booking not cancelled: %+v", got)
	}
	got, _ = f.store.GetBooking(ctx, fresh.ID)
	if got.Status != "pending" {
		t.Errorf("fresh booking touched: %+v", got)
	}

	disabled := NewExpirePending(f.store, f.dispatch, 0, nil, zap.NewNop())
	if n, _ := disabled.Execute(ctx); n != 0 {
		t.Errorf("disabled sweep expired %d", n)
	}
}

// racingRepo runs afterRead once, right after the first read it wraps
// returns, to interleave a concurrent writer.
type racingRepo struct {
	*memory.Store
	afterRead func()
	once      sync.Once
}

func (r *racingRepo) fire() {
	r.once.Do(func() {
		if r.afterRead != nil {
			r.afterRead()
		}
	})
}

func (r *racingRepo) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	b, err := r.Store.GetBooking(ctx, id)
	r.fire()
	return b, err
}

func (r *racingRepo) ListPendingCreatedBefore(ctx context.Context, before time.Time) ([]models.Booking, error) {
	out, err := r.Store.ListPendingCreatedBefore(ctx, before)
	r.fire()
	return out, err
}

func activeOnSlot(t *testing.T, f *fixture, date, hm string) int {
	t.Helper()
	tid := f.therapist.ID
	got, err := f.store.ListBookings(context.Background(), domain.Filter{
		TherapistID: &tid,
		Statuses:    domain.ActiveStatuses,
		DateFrom:    date,
		DateTo:      date,
	})
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, b := range got {
		if b.AppointmentTime == hm {
			n++
		}
	}
	return n
}

func TestUpdateStatusStaleReadLoses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.create.Execute(ctx, f.input())
	if err != nil {
		t.Fatal(err)
	}

	repo := &racingRepo{Store: f.store}
	repo.afterRead = func() {
		// another actor cancels a and rebooks the slot
		cur, _ := f.store.GetBooking(ctx, a.ID)
		domain.ApplyStatus(cur, domain.StatusCancelled, f.clock.Now())
		if err := f.store.UpdateBooking(ctx, cur, domain.StatusPending); err != nil {
			t.Errorf("cancel: %v", err)
		}
		if _, err := f.create.Execute(ctx, f.input()); err != nil {
			t.Errorf("rebook: %v", err)
		}
	}

	uc := NewUpdateBookingStatus(repo, slotlock.NewLocal(), f.dispatch, f.clock.Now)
	_, err = uc.Execute(ctx, UpdateStatusInput{BookingID: a.ID, ActorID: f.therapist.ID, Status: "confirmed"})
	if !errors.Is(err, domain.ErrStatusChanged) {
		t.Fatalf("stale confirm = %v", err)
	}
	var be httperr.BusinessError
	if !errors.As(err, &be) || be.Status != 409 {
		t.Errorf("want a 409 business error, got %#v", err)
	}

	if n := activeOnSlot(t, f, a.AppointmentDate, a.AppointmentTime); n != 1 {
		t.Errorf("active bookings on slot = %d", n)
	}
	got, _ := f.store.GetBooking(ctx, a.ID)
	if got.Status != "cancelled" || got.ConfirmedAt != nil {
		t.Errorf("cancelled booking overwritten: %+v", got)
	}
}

func TestExpirePendingSkipsConfirmedAfterListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.input())
	if err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(25 * time.Hour)

	repo := &racingRepo{Store: f.store}
	repo.afterRead = func() {
		cur, _ := f.store.GetBooking(ctx, b.ID)
		domain.ApplyStatus(cur, domain.StatusConfirmed, f.clock.Now())
		if err := f.store.UpdateBooking(ctx, cur, domain.StatusPending); err != nil {
			t.Errorf("confirm: %v", err)
		}
	}

	uc := NewExpirePending(repo, f.dispatch, 24*time.Hour, f.clock.Now, zap.NewNop())
	n, err := uc.Execute(ctx)
	if err != nil || n != 0 {
		t.Fatalf("expired %d, err %v", n, err)
	}

	got, _ := f.store.GetBooking(ctx, b.ID)
	if got.Status != "confirmed" || got.ConfirmedAt == nil || got.CancelledAt != nil {
		t.Errorf("confirmed booking was expired: %+v", got)
	}
}
