package account

import (
	"context"
	"time"

	"github.com/espacoviv/agendamento/internal/models"
)

type Repository interface {
	// -------- Users --------

	// CreateUser returns ErrEmailTaken / ErrCPFTaken on duplicates.
	CreateUser(
		ctx context.Context,
		u *models.User,
	) error

	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// GetUserByEmail returns ErrUserNotFound when absent.
	GetUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	// UpdateUser saves profile fields. A non-nil specialties slice
	// replaces the stored list in order.
	UpdateUser(
		ctx context.Context,
		u *models.User,
		specialties []models.TherapistSpecialty,
	) error

	UpdatePassword(
		ctx context.Context,
		userID uint,
		hash string,
	) error

	ListTherapistsByUnit(
		ctx context.Context,
		unitCode string,
	) ([]models.User, error)

	// -------- Password reset --------

	// IssueReset marks every unused token of the user as used, then stores pr.
	IssueReset(
		ctx context.Context,
		pr *models.PasswordReset,
	) error

	// ConsumeReset marks the token used and returns it if it was unused and
	// not expired at now; otherwise ErrInvalidResetToken.
	ConsumeReset(
		ctx context.Context,
		token string,
		now time.Time,
	) (*models.PasswordReset, error)
}
