package account

import "github.com/espacoviv/agendamento/internal/httperr"

var (
	ErrEmailTaken         = httperr.ErrBusiness("email_already_exists")
	ErrCPFTaken           = httperr.ErrBusiness("cpf_already_exists")
	ErrInvalidEmailDomain = httperr.ErrBusiness("invalid_email_domain")
	ErrInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials")
	ErrInactiveUser       = httperr.ErrUnauthorized("inactive_user")
	ErrUserNotFound       = httperr.ErrNotFound("user_not_found")
	ErrInvalidResetToken  = httperr.ErrBusiness("invalid_reset_token")
)
