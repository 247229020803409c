package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/espacoviv/agendamento/internal/dto"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/httpresp"
	ucBooking "github.com/espacoviv/agendamento/internal/usecase/booking"
	ucCalendar "github.com/espacoviv/agendamento/internal/usecase/calendar"
)

type BookingHandler struct {
	create    *ucBooking.CreateBooking
	get       *ucBooking.GetBooking
	list      *ucBooking.ListBookings
	status    *ucBooking.UpdateBookingStatus
	freeSlots *ucCalendar.FreeSlots
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	get *ucBooking.GetBooking,
	list *ucBooking.ListBookings,
	status *ucBooking.UpdateBookingStatus,
	freeSlots *ucCalendar.FreeSlots,
) *BookingHandler {
	return &BookingHandler{
		create:    create,
		get:       get,
		list:      list,
		status:    status,
		freeSlots: freeSlots,
	}
}

// ======================================================
// Requests
// ======================================================

type CreateBookingRequest struct {
	ClientName   string `json:"client_name" binding:"required"`
	ClientPhone  string `json:"client_phone" binding:"required"`
	ClientEmail  string `json:"client_email" binding:"omitempty,email"`
	UnitCode     string `json:"unit_code" binding:"required"`
	MassagistaID uint   `json:"massagista_id" binding:"required"`
	Service      string `json:"service" binding:"required"`
	Date         string `json:"appointment_date"`
	Time         string `json:"appointment_time"`
	Notes        string `json:"notes"`
	Promotion    string `json:"promotion"`

	// short keys accepted when the appointment_* ones are absent
	ShortDate string `json:"date"`
	ShortTime string `json:"time"`
}

func (r CreateBookingRequest) date() string {
	if r.Date != "" {
		return r.Date
	}
	return r.ShortDate
}

func (r CreateBookingRequest) time() string {
	if r.Time != "" {
		return r.Time
	}
	return r.ShortTime
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// Public
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		UnitCode:    req.UnitCode,
		TherapistID: req.MassagistaID,
		Service:     req.Service,
		Date:        req.date(),
		Time:        req.time(),
		Notes:       req.Notes,
		Promotion:   req.Promotion,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message":    "Agendamento criado com sucesso",
		"booking_id": b.ID,
		"status":     b.Status,
		"booking":    dto.Booking(b),
	})
}

// AvailableTimes lists the therapist's free slots of a date.
func (h *BookingHandler) AvailableTimes(c *gin.Context) {
	therapistID, ok := uintParam(c, "massagista_id")
	if !ok {
		return
	}

	slots, err := h.freeSlots.Execute(c.Request.Context(), therapistID, c.Param("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, slots)
}

// ======================================================
// Authenticated
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), id, currentUserID(c), isAdmin(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Booking(b))
}

// List is the admin listing over every therapist.
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.list.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		UnitCode: c.Query("unit_code"),
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.Bookings(bookings))
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
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
		IsAdmin:   isAdmin(c),
		Status:    req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.Booking(b))
}
