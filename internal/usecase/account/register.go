package account

import (
	"context"
	"strings"

	"github.com/espacoviv/agendamento/internal/auth"
	domain "github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	CPF            string
	Phone          string
	UnitPreference string
	Specialties    []domain.SpecialtyInput
}

// ======================================================
// USE CASE
// ======================================================

// DomainCheck reports whether the e-mail domain can receive mail.
type DomainCheck func(email string) bool

type Register struct {
	repo        domain.Repository
	domainCheck DomainCheck
}

// NewRegister creates the use case; a nil check skips the domain lookup.
func NewRegister(repo domain.Repository, check DomainCheck) *Register {
	return &Register{
		repo:        repo,
		domainCheck: check,
	}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.User, error) {

	// --------------------------------------------------
	// 1️⃣ Formato
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || !strings.Contains(email, "@") {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	// --------------------------------------------------
	// 2️⃣ Domínio do e-mail
	// --------------------------------------------------
	if uc.domainCheck != nil && !uc.domainCheck(email) {
		return nil, domain.ErrInvalidEmailDomain
	}

	// --------------------------------------------------
	// 3️⃣ Senha
	// --------------------------------------------------
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CPF:          domain.NormalizeCPF(in.CPF),
		Phone:        strings.TrimSpace(in.Phone),
		UserType:     models.UserTypeMassagista,
		IsAvailable:  true,
		IsActive:     true,
		Specialties:  domain.BuildSpecialties(in.Specialties),
	}
	if up := strings.TrimSpace(in.UnitPreference); up != "" {
		u.UnitPreference = &up
	}

	// --------------------------------------------------
	// 4️⃣ Persistência (e-mail e CPF únicos)
	// --------------------------------------------------
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
