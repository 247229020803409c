package availability

import "time"

// ===============================
// Slot templates
// ===============================

var weekdaySlots = []string{
	"09:00", "10:00", "11:00",
	"14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
}

var weekendSlots = []string{
	"09:00", "10:00", "11:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// DefaultSlots returns the bookable times for a date: nine on weekdays,
// eight on Saturday and Sunday. The slice is a fresh copy.
func DefaultSlots(date time.Time) []string {
	src := weekdaySlots
	if IsWeekend(date) {
		src = weekendSlots
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ===============================
// Holidays
// ===============================

type monthDay struct {
	month time.Month
	day   int
}

// Fixed-date national holidays, recurring every year.
var holidays = []monthDay{
	{time.January, 1},
	{time.April, 21},
	{time.September, 7},
	{time.October, 12},
	{time.November, 15},
	{time.December, 25},
}

func IsHoliday(date time.Time) bool {
	for _, h := range holidays {
		if date.Month() == h.month && date.Day() == h.day {
			return true
		}
	}
	return false
}

// Template resolves the default slots for a date. When HolidaysClosed is
// set, holidays have no slots at all.
type Template struct {
	HolidaysClosed bool
}

func (t Template) SlotsFor(date time.Time) []string {
	if t.HolidaysClosed && IsHoliday(date) {
		return []string{}
	}
	return DefaultSlots(date)
}
