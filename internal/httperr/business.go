package httperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

type BusinessError struct {
	Code   string
	Status int
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Status: http.StatusBadRequest}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Status: http.StatusNotFound}
}

func ErrUnauthorized(code string) error {
	return BusinessError{Code: code, Status: http.StatusUnauthorized}
}

func ErrForbidden(code string) error {
	return BusinessError{Code: code, Status: http.StatusForbidden}
}

func ErrConflict(code string) error {
	return BusinessError{Code: code, Status: http.StatusConflict}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Postgres SQLSTATE codes raised by the active-slot index.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}
