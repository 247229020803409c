package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/auth"
	domain "github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/infra/mailer"
	"github.com/espacoviv/agendamento/internal/models"
)

const (
	ResetTokenTTL   = time.Hour
	resetTokenBytes = 32
)

// ======================================================
// FORGOT
// ======================================================

type ForgotPassword struct {
	repo    domain.Repository
	mail    mailer.Mailer
	baseURL string
	now     func() time.Time
	log     *zap.Logger
}

func NewForgotPassword(
	repo domain.Repository,
	mail mailer.Mailer,
	baseURL string,
	now func() time.Time,
	log *zap.Logger,
) *ForgotPassword {
	if now == nil {
		now = time.Now
	}
	return &ForgotPassword{
		repo:    repo,
		mail:    mail,
		baseURL: baseURL,
		now:     now,
		log:     log.Named("forgot_password"),
	}
}

// Execute never reveals whether the account exists. Only storage errors
// are returned; a failed e-mail is logged.
func (uc *ForgotPassword) Execute(ctx context.Context, email string) error {
	u, err := uc.repo.GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !u.IsActive {
		return nil
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	pr := &models.PasswordReset{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: uc.now().Add(ResetTokenTTL),
	}
	if err := uc.repo.IssueReset(ctx, pr); err != nil {
		return err
	}

	if err := uc.mail.Send(ctx, resetMessage(u, uc.baseURL, token)); err != nil {
		uc.log.Warn("reset e-mail not sent",
			zap.Uint("user_id", u.ID),
			zap.Error(err),
		)
	}
	return nil
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func resetMessage(u *models.User, baseURL, token string) mailer.Message {
	link := fmt.Sprintf("%s?token=%s", baseURL, token)
	body := fmt.Sprintf(`<p>Olá, %s!</p>
<p>Recebemos um pedido para redefinir sua senha no Espaço VIV.</p>
<p><a href="%s">Clique aqui para criar uma nova senha</a>. O link vale por 1 hora.</p>
<p>Se você não fez este pedido, ignore este e-mail.</p>`,
		html.EscapeString(u.Name), html.EscapeString(link))

	return mailer.Message{
		To:      u.Email,
		Subject: "Redefinição de senha - Espaço VIV",
		HTML:    body,
	}
}

// ======================================================
// RESET
// ======================================================

type ResetPassword struct {
	repo domain.Repository
	now  func() time.Time
}

func NewResetPassword(repo domain.Repository, now func() time.Time) *ResetPassword {
	if now == nil {
		now = time.Now
	}
	return &ResetPassword{repo: repo, now: now}
}

func (uc *ResetPassword) Execute(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < domain.MinPasswordLength {
		return httperr.ErrBusiness("invalid_request")
	}

	pr, err := uc.repo.ConsumeReset(ctx, token, uc.now())
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, pr.UserID, hash)
}
