package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/httpresp"
	ucAccount "github.com/espacoviv/agendamento/internal/usecase/account"
	ucCatalog "github.com/espacoviv/agendamento/internal/usecase/catalog"
)

type CatalogHandler struct {
	units      *ucCatalog.ListUnits
	unit       *ucCatalog.GetUnit
	services   *ucCatalog.ListServices
	therapists *ucAccount.ListTherapistsByUnit
}

func NewCatalogHandler(
	units *ucCatalog.ListUnits,
	unit *ucCatalog.GetUnit,
	services *ucCatalog.ListServices,
	therapists *ucAccount.ListTherapistsByUnit,
) *CatalogHandler {
	return &CatalogHandler{
		units:      units,
		unit:       unit,
		services:   services,
		therapists: therapists,
	}
}

func (h *CatalogHandler) ListUnits(c *gin.Context) {
	units, err := h.units.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, units)
}

func (h *CatalogHandler) GetUnit(c *gin.Context) {
	unit, err := h.unit.Execute(c.Request.Context(), c.Param("code"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, unit)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.services.Execute(c.Request.Context(), c.Query("unit_code"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, services)
}

// TherapistsByUnit is public: clients pick a therapist before booking.
func (h *CatalogHandler) TherapistsByUnit(c *gin.Context) {
	list, err := h.therapists.Execute(c.Request.Context(), c.Param("unit_code"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, list)
}
