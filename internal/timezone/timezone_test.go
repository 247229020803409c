package timezone

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Weekday() != time.Monday {
		t.Errorf("2024-06-03 should be a Monday, got %s", d.Weekday())
	}

	for _, bad := range []string{"", "03/06/2024", "2024-13-01", "2024-02-30"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	tests := map[string]bool{
		"09:00": true,
		"19:30": true,
		"9:00":  false,
		"24:00": false,
		"10:60": false,
		"":      false,
	}
	for in, want := range tests {
		if got := IsValidTime(in); got != want {
			t.Errorf("IsValidTime(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTodayUsesLocalCalendarDay(t *testing.T) {
	// 01:30 UTC is still the previous evening in São Paulo.
	now := time.Date(2024, 6, 4, 1, 30, 0, 0, time.UTC)
	got := FormatDate(Today(now, DefaultTimezone))
	if got != "2024-06-03" {
		t.Errorf("Today() = %s, want 2024-06-03", got)
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2024, time.February)
	if FormatDate(first) != "2024-02-01" || FormatDate(last) != "2024-02-29" {
		t.Errorf("unexpected range %s..%s", FormatDate(first), FormatDate(last))
	}
}

func TestLocationFallback(t *testing.T) {
	if Location("Not/AZone").String() != DefaultTimezone {
		t.Errorf("invalid zone should fall back to %s", DefaultTimezone)
	}
}
