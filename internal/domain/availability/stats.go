package availability

import (
	"sort"

	"github.com/espacoviv/agendamento/internal/models"
)

type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
	Days int    `json:"days"`
}

type BookingStats struct {
	Total         int     `json:"total"`
	TotalSlots    int     `json:"total_slots"`
	AveragePerDay float64 `json:"average_per_day"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type Patterns struct {
	PeakHour            *string        `json:"peak_hour"`
	PopularService      *string        `json:"popular_service"`
	HourlyDistribution  map[string]int `json:"hourly_distribution"`
	ServiceDistribution map[string]int `json:"service_distribution"`
}

type RevenueStats struct {
	EstimatedTotal    float64 `json:"estimated_total"`
	AveragePerBooking float64 `json:"average_per_booking"`
	AveragePerDay     float64 `json:"average_per_day"`
}

type Stats struct {
	Period   Period       `json:"period"`
	Bookings BookingStats `json:"bookings"`
	Patterns Patterns     `json:"patterns"`
	Revenue  RevenueStats `json:"revenue"`
}

// BuildStats summarizes active bookings of a period. totalSlots is the sum
// of the template sizes of every day in it. Ties pick the earliest hour
// and the alphabetically first service.
func BuildStats(period Period, totalSlots int, bookings []models.Booking) Stats {
	hourly := make(map[string]int)
	services := make(map[string]int)
	for _, b := range bookings {
		hourly[b.AppointmentTime]++
		services[b.ServiceName]++
	}

	total := len(bookings)
	revenue := Revenue(bookings)

	s := Stats{
		Period: period,
		Bookings: BookingStats{
			Total:      total,
			TotalSlots: totalSlots,
		},
		Patterns: Patterns{
			PeakHour:            topKey(hourly),
			PopularService:      topKey(services),
			HourlyDistribution:  hourly,
			ServiceDistribution: services,
		},
		Revenue: RevenueStats{EstimatedTotal: revenue},
	}

	if period.Days > 0 {
		s.Bookings.AveragePerDay = float64(total) / float64(period.Days)
		s.Revenue.AveragePerDay = revenue / float64(period.Days)
	}
	if totalSlots > 0 {
		s.Bookings.OccupancyRate = float64(total) / float64(totalSlots) * 100
	}
	if total > 0 {
		s.Revenue.AveragePerBooking = revenue / float64(total)
	}
	return s
}

func topKey(counts map[string]int) *string {
	if len(counts) == 0 {
		return nil
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return &best
}
