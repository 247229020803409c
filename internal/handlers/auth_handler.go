package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/dto"
	"github.com/espacoviv/agendamento/internal/httperr"
	ucAccount "github.com/espacoviv/agendamento/internal/usecase/account"
)

const forgotPasswordMessage = "Se o e-mail estiver cadastrado, você receberá as instruções para redefinir a senha."

type AuthHandler struct {
	register *ucAccount.Register
	login    *ucAccount.Login
	forgot   *ucAccount.ForgotPassword
	reset    *ucAccount.ResetPassword
}

func NewAuthHandler(
	register *ucAccount.Register,
	login *ucAccount.Login,
	forgot *ucAccount.ForgotPassword,
	reset *ucAccount.ResetPassword,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		forgot:   forgot,
		reset:    reset,
	}
}

// --------- Requests ---------

type SpecialtyRequest struct {
	Name        string   `json:"name" binding:"required"`
	CustomPrice *float64 `json:"custom_price" binding:"omitempty,gte=0"`
}

type RegisterRequest struct {
	Name           string             `json:"name" binding:"required"`
	Email          string             `json:"email" binding:"required,email"`
	Password       string             `json:"password" binding:"required,min=6"`
	CPF            string             `json:"cpf"`
	Phone          string             `json:"phone"`
	UnitPreference string             `json:"unit_preference"`
	Specialties    []SpecialtyRequest `json:"specialties" binding:"dive"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func specialtyInputs(in []SpecialtyRequest) []domain.SpecialtyInput {
	out := make([]domain.SpecialtyInput, 0, len(in))
	for _, s := range in {
		out = append(out, domain.SpecialtyInput{Name: s.Name, CustomPrice: s.CustomPrice})
	}
	return out
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		CPF:            req.CPF,
		Phone:          req.Phone,
		UnitPreference: req.UnitPreference,
		Specialties:    specialtyInputs(req.Specialties),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.User(u))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.login.Execute(c.Request.Context(), ucAccount.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": out.Token,
		"token_type":   "bearer",
		"user":         dto.User(out.User),
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.forgot.Execute(c.Request.Context(), req.Email); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.reset.Execute(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Senha redefinida com sucesso."})
}
