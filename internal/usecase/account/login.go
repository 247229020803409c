package account

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/auth"
	domain "github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/models"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token string
	User  *models.User
}

type Login struct {
	repo   domain.Repository
	tokens *auth.TokenIssuer
	log    *zap.Logger
}

func NewLogin(repo domain.Repository, tokens *auth.TokenIssuer, log *zap.Logger) *Login {
	return &Login{
		repo:   repo,
		tokens: tokens,
		log:    log,
	}
}

// Execute answers the same error for an unknown e-mail and a wrong
// password. Legacy hashes are upgraded after a successful login.
func (uc *Login) Execute(
	ctx context.Context,
	in LoginInput,
) (*LoginOutput, error) {

	u, err := uc.repo.GetUserByEmail(ctx, domain.NormalizeEmail(in.Email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.VerifyPassword(u.PasswordHash, in.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, domain.ErrInactiveUser
	}

	if auth.NeedsRehash(u.PasswordHash) {
		if hash, err := auth.HashPassword(in.Password); err == nil {
			if err := uc.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
				uc.log.Warn("password rehash failed", zap.Uint("user_id", u.ID), zap.Error(err))
			}
		}
	}

	token, err := uc.tokens.Issue(u.ID, u.UserType)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Token: token, User: u}, nil
}
