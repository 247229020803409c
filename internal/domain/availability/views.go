package availability

import (
	"time"

	"github.com/espacoviv/agendamento/internal/models"
	"github.com/espacoviv/agendamento/internal/timezone"
)

// ===============================
// Read models
// ===============================

type SlotInfo struct {
	Time           string  `json:"time"`
	Available      bool    `json:"available"`
	BookedBy       *string `json:"booked_by"`
	Service        *string `json:"service"`
	MassagistaName *string `json:"massagista_name"`
}

type DayView struct {
	Date            string     `json:"date"`
	UnitCode        string     `json:"unit_code"`
	UnitName        string     `json:"unit_name"`
	Slots           []SlotInfo `json:"slots"`
	TotalBookings   int        `json:"total_bookings"`
	RevenueEstimate float64    `json:"revenue_estimate"`
}

type DayAvailability struct {
	Date           string   `json:"date"`
	DayOfWeek      string   `json:"day_of_week"`
	AvailableSlots []string `json:"available_slots"`
	BookedSlots    []string `json:"booked_slots"`
	TotalSlots     int      `json:"total_slots"`
	AvailableCount int      `json:"available_count"`
	IsWeekend      bool     `json:"is_weekend"`
	IsHoliday      bool     `json:"is_holiday"`
}

type WeekStats struct {
	TotalAvailableSlots int     `json:"total_available_slots"`
	TotalBookedSlots    int     `json:"total_booked_slots"`
	OccupancyRate       float64 `json:"occupancy_rate"`
	BusiestDay          *string `json:"busiest_day"`
}

type WeekAvailability struct {
	WeekStart string            `json:"week_start"`
	WeekEnd   string            `json:"week_end"`
	Days      []DayAvailability `json:"days"`
	WeekStats WeekStats         `json:"week_stats"`
}

type MonthStats struct {
	TotalBookings        int     `json:"total_bookings"`
	TotalAvailableSlots  int     `json:"total_available_slots"`
	TotalBookedSlots     int     `json:"total_booked_slots"`
	OccupancyRate        float64 `json:"occupancy_rate"`
	TotalRevenueEstimate float64 `json:"total_revenue_estimate"`
	AverageDailyBookings float64 `json:"average_daily_bookings"`
	BusiestDay           *string `json:"busiest_day"`
	BusiestWeek          *string `json:"busiest_week"`
}

type MonthAvailability struct {
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	MonthName  string             `json:"month_name"`
	Weeks      []WeekAvailability `json:"weeks"`
	MonthStats MonthStats         `json:"month_stats"`
}

// ===============================
// Builders
// ===============================

// BuildDay summarizes one day. Every active booking counts as booked, even
// at a time outside the template.
func BuildDay(date time.Time, template []string, bookings []models.Booking) DayAvailability {
	booked := BookedTimes(bookings)
	free := Free(template, booked)

	return DayAvailability{
		Date:           timezone.FormatDate(date),
		DayOfWeek:      date.Weekday().String(),
		AvailableSlots: free,
		BookedSlots:    booked,
		TotalSlots:     len(template),
		AvailableCount: len(free),
		IsWeekend:      IsWeekend(date),
		IsHoliday:      IsHoliday(date),
	}
}

// BuildSlots reports the occupant of every template slot. The first
// booking at a time wins when several therapists share it.
func BuildSlots(template []string, bookings []models.Booking) []SlotInfo {
	byTime := make(map[string]*models.Booking, len(bookings))
	for i := range bookings {
		if _, ok := byTime[bookings[i].AppointmentTime]; !ok {
			byTime[bookings[i].AppointmentTime] = &bookings[i]
		}
	}

	out := make([]SlotInfo, 0, len(template))
	for _, slot := range template {
		info := SlotInfo{Time: slot, Available: true}
		if b, ok := byTime[slot]; ok {
			info.Available = false
			info.BookedBy = strPtr(b.ClientName)
			info.Service = strPtr(b.ServiceName)
			if b.Therapist != nil {
				info.MassagistaName = strPtr(b.Therapist.Name)
			}
		}
		out = append(out, info)
	}
	return out
}

func Revenue(bookings []models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += b.Price
	}
	return total
}

// BuildWeek aggregates seven consecutive days. BusiestDay is the first day
// with the highest booked count.
func BuildWeek(days []DayAvailability) WeekAvailability {
	w := WeekAvailability{Days: days}
	if len(days) == 0 {
		return w
	}
	w.WeekStart = days[0].Date
	w.WeekEnd = days[len(days)-1].Date

	busiest := -1
	for i, d := range days {
		w.WeekStats.TotalAvailableSlots += d.AvailableCount
		w.WeekStats.TotalBookedSlots += len(d.BookedSlots)
		if busiest < 0 || len(d.BookedSlots) > len(days[busiest].BookedSlots) {
			busiest = i
		}
	}
	w.WeekStats.OccupancyRate = OccupancyRate(w.WeekStats.TotalBookedSlots, w.WeekStats.TotalAvailableSlots)
	w.WeekStats.BusiestDay = strPtr(days[busiest].DayOfWeek)
	return w
}

// WeekStarts lists the Mondays of every week intersecting the month.
func WeekStarts(year int, month time.Month) []time.Time {
	first, last := timezone.MonthRange(year, month)
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)

	var out []time.Time
	for d := start; !d.After(last); d = d.AddDate(0, 0, 7) {
		out = append(out, d)
	}
	return out
}

// BuildMonthStats aggregates the days that fall inside the month; the
// edge days of the first and last weeks are excluded.
func BuildMonthStats(
	year int,
	month time.Month,
	weeks []WeekAvailability,
	monthBookings []models.Booking,
) MonthStats {
	first, last := timezone.MonthRange(year, month)
	from, to := timezone.FormatDate(first), timezone.FormatDate(last)

	var s MonthStats
	busiestDay := -1
	var busiestDate string

	for _, w := range weeks {
		for _, d := range w.Days {
			if d.Date < from || d.Date > to {
				continue
			}
			s.TotalAvailableSlots += d.AvailableCount
			s.TotalBookedSlots += len(d.BookedSlots)
			if len(d.BookedSlots) > busiestDay {
				busiestDay = len(d.BookedSlots)
				busiestDate = d.Date
			}
		}
	}

	busiestWeek := -1
	for i, w := range weeks {
		if busiestWeek < 0 || w.WeekStats.TotalBookedSlots > weeks[busiestWeek].WeekStats.TotalBookedSlots {
			busiestWeek = i
		}
	}

	s.TotalBookings = len(monthBookings)
	s.TotalRevenueEstimate = Revenue(monthBookings)
	s.OccupancyRate = OccupancyRate(s.TotalBookedSlots, s.TotalAvailableSlots)
	s.AverageDailyBookings = float64(s.TotalBookings) / float64(last.Day())
	if busiestDay >= 0 {
		s.BusiestDay = strPtr(busiestDate)
	}
	if busiestWeek >= 0 {
		s.BusiestWeek = strPtr(weeks[busiestWeek].WeekStart)
	}
	return s
}

func strPtr(s string) *string {
	return &s
}
