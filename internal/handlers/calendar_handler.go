package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/httpresp"
	ucCalendar "github.com/espacoviv/agendamento/internal/usecase/calendar"
)

// CalendarHandler serves the public availability grids. Every read takes an
// optional massagista_id narrowing it to one therapist.
type CalendarHandler struct {
	day   *ucCalendar.DayView
	week  *ucCalendar.WeekView
	month *ucCalendar.MonthView
	next  *ucCalendar.NextAvailable
	stats *ucCalendar.AvailabilityStats
}

func NewCalendarHandler(
	day *ucCalendar.DayView,
	week *ucCalendar.WeekView,
	month *ucCalendar.MonthView,
	next *ucCalendar.NextAvailable,
	stats *ucCalendar.AvailabilityStats,
) *CalendarHandler {
	return &CalendarHandler{
		day:   day,
		week:  week,
		month: month,
		next:  next,
		stats: stats,
	}
}

func (h *CalendarHandler) Day(c *gin.Context) {
	therapistID, ok := optionalUintQuery(c, "massagista_id")
	if !ok {
		return
	}

	view, err := h.day.Execute(c.Request.Context(), c.Param("unit_code"), c.Param("date"), therapistID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *CalendarHandler) Week(c *gin.Context) {
	therapistID, ok := optionalUintQuery(c, "massagista_id")
	if !ok {
		return
	}

	view, err := h.week.Execute(c.Request.Context(), c.Param("unit_code"), c.Query("week_start"), therapistID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *CalendarHandler) Month(c *gin.Context) {
	therapistID, ok := optionalUintQuery(c, "massagista_id")
	if !ok {
		return
	}
	year, ok := intValue(c, c.Param("year"), "invalid_year")
	if !ok {
		return
	}
	month, ok := intValue(c, c.Param("month"), "invalid_month")
	if !ok {
		return
	}

	view, err := h.month.Execute(c.Request.Context(), c.Param("unit_code"), year, month, therapistID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *CalendarHandler) NextAvailable(c *gin.Context) {
	therapistID, ok := optionalUintQuery(c, "massagista_id")
	if !ok {
		return
	}

	res, err := h.next.Execute(c.Request.Context(), c.Param("unit_code"), c.Query("from_date"), therapistID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *CalendarHandler) Stats(c *gin.Context) {
	therapistID, ok := optionalUintQuery(c, "massagista_id")
	if !ok {
		return
	}

	stats, err := h.stats.Execute(c.Request.Context(), ucCalendar.StatsInput{
		UnitCode:    c.Query("unit_code"),
		TherapistID: therapistID,
		DateFrom:    c.Query("date_from"),
		DateTo:      c.Query("date_to"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}
