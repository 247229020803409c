package calendar

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/infra/memory"
	"github.com/espacoviv/agendamento/internal/models"
	"github.com/espacoviv/agendamento/internal/timezone"
)

var monday = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00"}

type env struct {
	store     *memory.Store
	deps      Deps
	therapist uint
	other     uint
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	s := memory.New()
	if _, err := s.EnsureUnits(ctx, []models.Unit{{Code: "sp-perdizes", Name: "Perdizes", IsActive: true}}); err != nil {
		t.Fatal(err)
	}
	ana := &models.User{Name: "Ana", Email: "ana@x.com", UserType: models.UserTypeMassagista, IsActive: true}
	bia := &models.User{Name: "Bia", Email: "bia@x.com", UserType: models.UserTypeMassagista, IsActive: true}
	for _, u := range []*models.User{ana, bia} {
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	return &env{
		store: s,
		deps: Deps{
			Bookings:  s,
			Overrides: s,
			Timezone:  timezone.DefaultTimezone,
			Now:       func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
		},
		therapist: ana.ID,
		other:     bia.ID,
	}
}

func (e *env) book(t *testing.T, therapist uint, date, hm, status string, price float64) {
	t.Helper()
	err := e.store.CreateIfSlotFree(context.Background(), &models.Booking{
		ClientName:      "Cliente " + hm,
		ClientPhone:     "1199",
		UnitCode:        "sp-perdizes",
		TherapistID:     therapist,
		ServiceName:     "Shiatsu",
		Price:           price,
		AppointmentDate: date,
		AppointmentTime: hm,
		Status:          status,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (e *env) override(t *testing.T, date, status string, slots ...string) {
	t.Helper()
	err := e.store.UpsertOverride(context.Background(), &models.AvailabilityOverride{
		TherapistID: e.therapist, Date: date, Status: status, TimeSlots: slots,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestFreeSlotsScenarios(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewFreeSlots(e.deps)

	got, err := uc.Execute(ctx, e.therapist, "2024-06-03")
	if err != nil || !reflect.DeepEqual(got, monday) {
		t.Fatalf("no bookings: %v %v", got, err)
	}

	e.book(t, e.therapist, "2024-06-03", "14:00", "confirmed", 0)
	e.book(t, e.therapist, "2024-06-03", "15:00", "cancelled", 0)
	e.book(t, e.other, "2024-06-03", "16:00", "pending", 0)

	got, _ = uc.Execute(ctx, e.therapist, "2024-06-03")
	want := []string{"09:00", "10:00", "11:00", "15:00", "16:00", "17:00", "18:00", "19:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("14:00 booked: %v", got)
	}

	e.override(t, "2024-06-03", models.OverrideUnavailable)
	got, _ = uc.Execute(ctx, e.therapist, "2024-06-03")
	if len(got) != 0 {
		t.Fatalf("unavailable override: %v", got)
	}
}

func TestFreeSlotsCustomOverrideAndEdges(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewFreeSlots(e.deps)

	e.override(t, "2024-06-04", models.OverrideAvailable, "08:00", "12:30")
	e.book(t, e.therapist, "2024-06-04", "08:00", "pending", 0)

	got, _ := uc.Execute(ctx, e.therapist, "2024-06-04")
	if !reflect.DeepEqual(got, []string{"12:30"}) {
		t.Errorf("custom override: %v", got)
	}

	if got, _ := uc.Execute(ctx, e.therapist, "2024-05-31"); len(got) != 0 {
		t.Errorf("past date should be empty: %v", got)
	}
	if _, err := uc.Execute(ctx, e.therapist, "2024/06/04"); !httperr.IsBusiness(err, "invalid_date") {
		t.Errorf("bad date = %v", err)
	}
	if _, err := uc.Execute(ctx, 999, "2024-06-04"); !errors.Is(err, booking.ErrTherapistNotFound) {
		t.Errorf("unknown therapist = %v", err)
	}
}

func TestDayView(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewDayView(e.deps)

	e.book(t, e.therapist, "2024-06-03", "10:00", "confirmed", 120)
	e.book(t, e.other, "2024-06-03", "11:00", "pending", 100)
	e.book(t, e.other, "2024-06-03", "14:00", "no_show", 100)

	v, err := uc.Execute(ctx, "sp-perdizes", "2024-06-03", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Slots) != 9 || v.TotalBookings != 2 || v.RevenueEstimate != 220 || v.UnitName != "Perdizes" {
		t.Errorf("unit view = %+v", v)
	}
	if v.Slots[1].Available || *v.Slots[1].MassagistaName != "Ana" {
		t.Errorf("10:00 = %+v", v.Slots[1])
	}

	// unit-wide ignores overrides, a therapist view applies them
	e.override(t, "2024-06-03", models.OverrideAvailable, "10:00", "20:00")
	tid := e.therapist
	v, _ = uc.Execute(ctx, "sp-perdizes", "2024-06-03", &tid)
	if len(v.Slots) != 2 || v.TotalBookings != 1 || v.Slots[1].Time != "20:00" || !v.Slots[1].Available {
		t.Errorf("therapist view = %+v", v)
	}
	v, _ = uc.Execute(ctx, "sp-perdizes", "2024-06-03", nil)
	if len(v.Slots) != 9 {
		t.Errorf("unit-wide view applied an override: %d slots", len(v.Slots))
	}

	if _, err := uc.Execute(ctx, "nope", "2024-06-03", nil); !errors.Is(err, booking.ErrUnitNotFound) {
		t.Errorf("unknown unit = %v", err)
	}
}

func TestWeekView(t *testing.T) {
	e := newEnv(t)
	uc := NewWeekView(e.deps)

	e.book(t, e.therapist, "2024-06-04", "09:00", "pending", 0)
	e.book(t, e.therapist, "2024-06-06", "09:00", "pending", 0)
	e.book(t, e.therapist, "2024-06-06", "10:00", "pending", 0)
	e.book(t, e.therapist, "2024-06-10", "10:00", "pending", 0) // next week

	w, err := uc.Execute(context.Background(), "sp-perdizes", "2024-06-03", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Days) != 7 || w.WeekEnd != "2024-06-09" {
		t.Fatalf("week = %+v", w)
	}
	s := w.WeekStats
	if s.TotalBookedSlots != 3 || s.TotalAvailableSlots != 58 {
		t.Errorf("stats = %+v", s)
	}
	if math.Abs(s.OccupancyRate-availability.OccupancyRate(3, 58)) > 1e-9 {
		t.Errorf("occupancy = %f", s.OccupancyRate)
	}
	if *s.BusiestDay != "Thursday" {
		t.Errorf("busiest = %s", *s.BusiestDay)
	}
	if !w.Days[5].IsWeekend || w.Days[5].TotalSlots != 8 {
		t.Errorf("saturday = %+v", w.Days[5])
	}
}

func TestMonthView(t *testing.T) {
	e := newEnv(t)
	uc := NewMonthView(e.deps)

	e.book(t, e.therapist, "2024-05-31", "09:00", "pending", 100) // outside june
	e.book(t, e.therapist, "2024-06-12", "09:00", "pending", 120)

	m, err := uc.Execute(context.Background(), "sp-perdizes", 2024, 6, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.MonthName != "June" || len(m.Weeks) != 5 || m.Weeks[0].WeekStart != "2024-05-27" {
		t.Errorf("month = %s with %d weeks from %s", m.MonthName, len(m.Weeks), m.Weeks[0].WeekStart)
	}
	if m.MonthStats.TotalBookings != 1 || m.MonthStats.TotalRevenueEstimate != 120 {
		t.Errorf("stats = %+v", m.MonthStats)
	}

	if _, err := uc.Execute(context.Background(), "sp-perdizes", 2024, 13, nil); !httperr.IsBusiness(err, "invalid_month") {
		t.Errorf("bad month = %v", err)
	}
}

func TestNextAvailable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewNextAvailable(e.deps)

	for _, hm := range monday {
		e.book(t, e.therapist, "2024-06-03", hm, "confirmed", 0)
	}

	res, err := uc.Execute(ctx, "sp-perdizes", "2024-06-03", nil)
	if err != nil || !res.Found {
		t.Fatalf("next = %+v %v", res, err)
	}
	if res.NextAvailable.Date != "2024-06-04" || res.NextAvailable.Time != "09:00" || res.NextAvailable.DaysFromNow != 1 {
		t.Errorf("next = %+v", res.NextAvailable)
	}

	// default start is today per the clock
	res, _ = uc.Execute(ctx, "sp-perdizes", "", nil)
	if res.NextAvailable.Date != "2024-06-01" {
		t.Errorf("default start = %s", res.NextAvailable.Date)
	}
}

func TestNextAvailableExhausted(t *testing.T) {
	e := newEnv(t)
	start, _ := timezone.ParseDate("2024-06-03")
	for i := 0; i < availability.SearchWindowDays; i++ {
		e.override(t, timezone.FormatDate(start.AddDate(0, 0, i)), models.OverrideUnavailable)
	}

	tid := e.therapist
	res, err := NewNextAvailable(e.deps).Execute(context.Background(), "sp-perdizes", "2024-06-03", &tid)
	if err != nil {
		t.Fatalf("exhaustion is not an error: %v", err)
	}
	if res.Found || res.NextAvailable != nil {
		t.Errorf("expected exhausted, got %+v", res)
	}

	// offset 30 is open but outside the window
	e.override(t, "2024-07-03", models.OverrideAvailable, "10:00")
	res, _ = NewNextAvailable(e.deps).Execute(context.Background(), "sp-perdizes", "2024-06-03", &tid)
	if res.Found {
		t.Errorf("returned a date beyond the window: %+v", res.NextAvailable)
	}

	// offset 29 is the last day searched
	e.override(t, "2024-07-02", models.OverrideAvailable, "10:00")
	res, _ = NewNextAvailable(e.deps).Execute(context.Background(), "sp-perdizes", "2024-06-03", &tid)
	if !res.Found || res.NextAvailable.Date != "2024-07-02" || res.NextAvailable.DaysFromNow != 29 {
		t.Errorf("last day of the window not found: %+v", res.NextAvailable)
	}
}

func TestAvailabilityStats(t *testing.T) {
	e := newEnv(t)
	uc := NewAvailabilityStats(e.deps)

	e.book(t, e.therapist, "2024-06-03", "10:00", "confirmed", 120)
	e.book(t, e.other, "2024-06-03", "10:00", "pending", 100)
	e.book(t, e.other, "2024-06-04", "14:00", "pending", 100)

	s, err := uc.Execute(context.Background(), StatsInput{UnitCode: "sp-perdizes", DateFrom: "2024-06-03", DateTo: "2024-06-04"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Period.Days != 2 || s.Bookings.Total != 3 || s.Bookings.TotalSlots != 18 {
		t.Errorf("stats = %+v", s)
	}
	if *s.Patterns.PeakHour != "10:00" || s.Revenue.EstimatedTotal != 320 {
		t.Errorf("patterns/revenue = %v / %v", *s.Patterns.PeakHour, s.Revenue)
	}

	tid := e.other
	s, _ = uc.Execute(context.Background(), StatsInput{TherapistID: &tid, DateFrom: "2024-06-03", DateTo: "2024-06-04"})
	if s.Bookings.Total != 2 {
		t.Errorf("therapist stats total = %d", s.Bookings.Total)
	}

	if _, err := uc.Execute(context.Background(), StatsInput{DateFrom: "2024-06-04", DateTo: "2024-06-03"}); !httperr.IsBusiness(err, "invalid_date_range") {
		t.Errorf("reversed range = %v", err)
	}
}
