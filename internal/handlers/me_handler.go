package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/espacoviv/agendamento/internal/dto"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/infra/storage"
	ucAccount "github.com/espacoviv/agendamento/internal/usecase/account"
)

type MeHandler struct {
	me      *ucAccount.GetMe
	update  *ucAccount.UpdateProfile
	avatar  *ucAccount.UploadAvatar
	auditUC *ucAccount.ListAuditLogs
}

func NewMeHandler(
	me *ucAccount.GetMe,
	update *ucAccount.UpdateProfile,
	avatar *ucAccount.UploadAvatar,
	auditUC *ucAccount.ListAuditLogs,
) *MeHandler {
	return &MeHandler{
		me:      me,
		update:  update,
		avatar:  avatar,
		auditUC: auditUC,
	}
}

type UpdateProfileRequest struct {
	Name           *string             `json:"name"`
	Phone          *string             `json:"phone"`
	Bio            *string             `json:"bio"`
	UnitPreference *string             `json:"unit_preference"`
	IsAvailable    *bool               `json:"is_available"`
	Specialties    *[]SpecialtyRequest `json:"specialties" binding:"omitempty,dive"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	u, err := h.me.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.User(u))
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucAccount.UpdateProfileInput{
		UserID:         currentUserID(c),
		Name:           req.Name,
		Phone:          req.Phone,
		Bio:            req.Bio,
		UnitPreference: req.UnitPreference,
		IsAvailable:    req.IsAvailable,
	}
	if req.Specialties != nil {
		in.SetSpecialties = true
		in.Specialties = specialtyInputs(*req.Specialties)
	}

	u, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.User(u))
}

// UploadAvatar expects a multipart "avatar" file.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "invalid_image", httperr.Message("invalid_image"))
		return
	}
	if fh.Size > storage.MaxUploadBytes {
		httperr.Respond(c, storage.ErrTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	url, err := h.avatar.Execute(c.Request.Context(), currentUserID(c), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

func (h *MeHandler) AuditLogs(c *gin.Context) {
	page, _ := intFromQuery(c, "page", 1)
	limit, _ := intFromQuery(c, "limit", 20)

	res, err := h.auditUC.Execute(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  res.Page,
		"limit": res.Limit,
		"total": res.Total,
		"logs":  res.Logs,
	})
}
