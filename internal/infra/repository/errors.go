package repository

import (
	"errors"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error to a domain sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
