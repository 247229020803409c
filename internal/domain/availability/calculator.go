package availability

import (
	"github.com/espacoviv/agendamento/internal/models"
)

// Effective applies a therapist override to the base template. An
// unavailable override yields no slots; an available override with slots
// replaces the template; anything else keeps the template.
func Effective(base []string, ov *models.AvailabilityOverride) []string {
	if ov == nil {
		return base
	}
	switch ov.Status {
	case models.OverrideUnavailable:
		return []string{}
	case models.OverrideAvailable:
		if len(ov.TimeSlots) > 0 {
			out := make([]string, len(ov.TimeSlots))
			copy(out, ov.TimeSlots)
			return out
		}
	}
	return base
}

// Free returns template minus booked, in template order.
func Free(template []string, booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	out := make([]string, 0, len(template))
	for _, slot := range template {
		if _, ok := taken[slot]; !ok {
			out = append(out, slot)
		}
	}
	return out
}

// OccupancyRate is booked / (booked + free) as a percentage.
func OccupancyRate(booked, free int) float64 {
	total := booked + free
	if total == 0 {
		return 0
	}
	return float64(booked) / float64(total) * 100
}

func BookedTimes(bookings []models.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.AppointmentTime)
	}
	return out
}
