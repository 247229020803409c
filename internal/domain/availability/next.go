package availability

import (
	"time"

	"github.com/espacoviv/agendamento/internal/timezone"
)

const (
	SearchWindowDays = 30
	maxAlternatives  = 5
)

type NextSlot struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	DayOfWeek   string `json:"day_of_week"`
	DaysFromNow int    `json:"days_from_now"`
}

type SlotAlternative struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// NextAvailable is either Found with a slot, or exhausted after the
// search window.
type NextAvailable struct {
	Found         bool              `json:"found"`
	NextAvailable *NextSlot         `json:"next_available,omitempty"`
	Alternatives  []SlotAlternative `json:"alternatives,omitempty"`
	SearchedDays  int               `json:"searched_days"`
}

// PickFirst returns the first free template slot of the day, with the first
// template slots tagged as alternatives.
func PickFirst(date time.Time, offset int, template []string, booked []string) (NextAvailable, bool) {
	free := Free(template, booked)
	if len(free) == 0 {
		return NextAvailable{}, false
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	n := len(template)
	if n > maxAlternatives {
		n = maxAlternatives
	}
	alts := make([]SlotAlternative, 0, n)
	for _, slot := range template[:n] {
		_, isTaken := taken[slot]
		alts = append(alts, SlotAlternative{Time: slot, Available: !isTaken})
	}

	return NextAvailable{
		Found: true,
		NextAvailable: &NextSlot{
			Date:        timezone.FormatDate(date),
			Time:        free[0],
			DayOfWeek:   date.Weekday().String(),
			DaysFromNow: offset,
		},
		Alternatives: alts,
		SearchedDays: offset + 1,
	}, true
}

func Exhausted() NextAvailable {
	return NextAvailable{Found: false, SearchedDays: SearchWindowDays}
}
