package dto

import (
	"time"

	"github.com/espacoviv/agendamento/internal/models"
)

type BookingDTO struct {
	ID              uint       `json:"id"`
	ClientName      string     `json:"client_name"`
	ClientPhone     string     `json:"client_phone"`
	ClientEmail     string     `json:"client_email,omitempty"`
	UnitCode        string     `json:"unit_code"`
	UnitName        string     `json:"unit_name,omitempty"`
	MassagistaID    uint       `json:"massagista_id"`
	MassagistaName  string     `json:"massagista_name,omitempty"`
	Service         string     `json:"service"`
	Price           float64    `json:"price"`
	Duration        int        `json:"duration"`
	AppointmentDate string     `json:"appointment_date"`
	AppointmentTime string     `json:"appointment_time"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	Promotion       string     `json:"promotion,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func Booking(b *models.Booking) BookingDTO {
	out := BookingDTO{
		ID:              b.ID,
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		ClientEmail:     b.ClientEmail,
		UnitCode:        b.UnitCode,
		MassagistaID:    b.TherapistID,
		Service:         b.ServiceName,
		Price:           b.Price,
		Duration:        b.DurationMinutes,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		Status:          b.Status,
		Notes:           b.Notes,
		Promotion:       b.Promotion,
		CreatedAt:       b.CreatedAt,
		ConfirmedAt:     b.ConfirmedAt,
		CancelledAt:     b.CancelledAt,
		CompletedAt:     b.CompletedAt,
	}
	if b.Unit != nil {
		out.UnitName = b.Unit.Name
	}
	if b.Therapist != nil {
		out.MassagistaName = b.Therapist.Name
	}
	return out
}

func Bookings(list []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(list))
	for i := range list {
		out = append(out, Booking(&list[i]))
	}
	return out
}
