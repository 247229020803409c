package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/espacoviv/agendamento/internal/dto"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/httpresp"
	ucAvailability "github.com/espacoviv/agendamento/internal/usecase/availability"
	ucBooking "github.com/espacoviv/agendamento/internal/usecase/booking"
)

// MassagistaHandler serves the therapist's own agenda and day overrides.
type MassagistaHandler struct {
	setDay   *ucAvailability.SetDay
	setWeek  *ucAvailability.SetWeek
	getDay   *ucAvailability.GetDay
	getMonth *ucAvailability.GetMonth

	list     *ucBooking.ListBookings
	calendar *ucBooking.ListTherapistCalendar
	status   *ucBooking.UpdateBookingStatus
}

func NewMassagistaHandler(
	setDay *ucAvailability.SetDay,
	setWeek *ucAvailability.SetWeek,
	getDay *ucAvailability.GetDay,
	getMonth *ucAvailability.GetMonth,
	list *ucBooking.ListBookings,
	calendar *ucBooking.ListTherapistCalendar,
	status *ucBooking.UpdateBookingStatus,
) *MassagistaHandler {
	return &MassagistaHandler{
		setDay:   setDay,
		setWeek:  setWeek,
		getDay:   getDay,
		getMonth: getMonth,
		list:     list,
		calendar: calendar,
		status:   status,
	}
}

type SetDayRequest struct {
	Status    string   `json:"status" binding:"required"`
	TimeSlots []string `json:"time_slots"`
}

type SetWeekRequest struct {
	Dates     []string `json:"dates" binding:"required"`
	Status    string   `json:"status" binding:"required"`
	TimeSlots []string `json:"time_slots"`
}

// ======================================================
// Availability overrides
// ======================================================

func (h *MassagistaHandler) SetDay(c *gin.Context) {
	var req SetDayRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.setDay.Execute(c.Request.Context(), ucAvailability.SetDayInput{
		TherapistID: currentUserID(c),
		Date:        c.Param("date"),
		Status:      req.Status,
		TimeSlots:   req.TimeSlots,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":    "Disponibilidade atualizada",
		"date":       o.Date,
		"status":     o.Status,
		"time_slots": o.TimeSlots,
	})
}

func (h *MassagistaHandler) SetWeek(c *gin.Context) {
	var req SetWeekRequest
	if !bindJSON(c, &req) {
		return
	}

	applied, err := h.setWeek.Execute(c.Request.Context(), ucAvailability.SetWeekInput{
		TherapistID: currentUserID(c),
		Dates:       req.Dates,
		Status:      req.Status,
		TimeSlots:   req.TimeSlots,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Disponibilidade da semana atualizada",
		"dates":   applied,
	})
}

func (h *MassagistaHandler) GetMonth(c *gin.Context) {
	year, ok := intValue(c, c.Param("year"), "invalid_year")
	if !ok {
		return
	}
	month, ok := intValue(c, c.Param("month"), "invalid_month")
	if !ok {
		return
	}

	overrides, err := h.getMonth.Execute(c.Request.Context(), currentUserID(c), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, overrides)
}

// GetDay is public.
func (h *MassagistaHandler) GetDay(c *gin.Context) {
	therapistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	day, err := h.getDay.Execute(c.Request.Context(), therapistID, c.Param("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, day)
}

// ======================================================
// Appointments
// ======================================================

func (h *MassagistaHandler) Appointments(c *gin.Context) {
	id := currentUserID(c)

	bookings, err := h.list.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		TherapistID: &id,
		Status:      c.Query("status"),
		DateFrom:    c.Query("date_from"),
		DateTo:      c.Query("date_to"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Bookings(bookings))
}

func (h *MassagistaHandler) Calendar(c *gin.Context) {
	year, ok := intValue(c, c.Query("year"), "invalid_year")
	if !ok {
		return
	}
	month, ok := intValue(c, c.Query("month"), "invalid_month")
	if !ok {
		return
	}

	grouped, err := h.calendar.Execute(c.Request.Context(), currentUserID(c), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make(map[string][]dto.BookingDTO, len(grouped))
	for date, list := range grouped {
		out[date] = dto.Bookings(list)
	}
	c.JSON(http.StatusOK, out)
}

func (h *MassagistaHandler) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.status.Execute(c.Request.Context(), ucBooking.UpdateStatusInput{
		BookingID: id,
		ActorID:   currentUserID(c),
		Status:    req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Booking(b))
}
