package booking

import "github.com/espacoviv/agendamento/internal/httperr"

var (
	ErrUnitNotFound      = httperr.ErrNotFound("unit_not_found")
	ErrTherapistNotFound = httperr.ErrNotFound("massagista_not_found")
	ErrServiceNotFound   = httperr.ErrNotFound("service_not_found")
	ErrBookingNotFound   = httperr.ErrNotFound("booking_not_found")
	ErrSlotUnavailable   = httperr.ErrBusiness("slot_unavailable")
	ErrInvalidStatus     = httperr.ErrBusiness("invalid_status")
	ErrStatusChanged     = httperr.ErrConflict("booking_status_conflict")
)
