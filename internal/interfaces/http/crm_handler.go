package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
)

// CrmHandler maneja clientes potenciales del CRM y sus actividades.
type CrmHandler struct {
	uc   *usecase.CrmUseCase
	errs *ErrorWriter
	val  *RequestValidator
}

// NewCrmHandler construye el handler.
func NewCrmHandler(uc *usecase.CrmUseCase, errs *ErrorWriter, val *RequestValidator) *CrmHandler {
	return &CrmHandler{uc: uc, errs: errs, val: val}
}

// ── Müşteri ───────────────────────────────────────────────────────────────────

// ListMusteri godoc
// @Summary      Listar clientes CRM
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.CrmMusteriResponse
// @Router       /api/crm/musteri [get]
func (h *CrmHandler) ListMusteri(c *fiber.Ctx) error {
	out, err := h.uc.ListMusteri(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// SearchMusteri godoc
// @Summary      Buscar clientes CRM (código, nombre, empresa, teléfono, email)
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int     true   "Firma"
// @Param        q            query   string  false  "Texto"
// @Success      200  {array}  dto.CrmMusteriResponse
// @Router       /api/crm/musteri/search [get]
func (h *CrmHandler) SearchMusteri(c *fiber.Ctx) error {
	out, err := h.uc.SearchMusteri(c.Context(), GetTenantID(c), c.Query("q"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetMusteri godoc
// @Summary      Obtener cliente CRM
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.CrmMusteriResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/musteri/{id} [get]
func (h *CrmHandler) GetMusteri(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.GetMusteri(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// CreateMusteri godoc
// @Summary      Crear cliente CRM
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                    true  "Firma"
// @Param        body         body    dto.CrmMusteriRequest  true  "Cliente"
// @Success      201  {object}  dto.CrmMusteriResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/crm/musteri [post]
func (h *CrmHandler) CreateMusteri(c *fiber.Ctx) error {
	var in dto.CrmMusteriRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateMusteri(c.Context(), GetTenantID(c), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMusteri godoc
// @Summary      Actualizar cliente CRM
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                    true  "Firma"
// @Param        id           path    int                    true  "ID"
// @Param        body         body    dto.CrmMusteriRequest  true  "Cliente"
// @Success      200  {object}  dto.CrmMusteriResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/musteri/{id} [put]
func (h *CrmHandler) UpdateMusteri(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CrmMusteriRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateMusteri(c.Context(), GetTenantID(c), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// DeleteMusteri godoc
// @Summary      Borrar cliente CRM
// @Description  Borra también sus actividades.
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/musteri/{id} [delete]
func (h *CrmHandler) DeleteMusteri(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.DeleteMusteri(c.Context(), GetTenantID(c), id); err != nil {
		return h.errs.Write(c, err)
	}
	return deleted(c, "Müşteri başarıyla silindi.")
}

// ── Aktivite ──────────────────────────────────────────────────────────────────

// ListAktivite godoc
// @Summary      Actividades de un cliente CRM
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID del cliente"
// @Success      200  {array}   dto.CrmAktiviteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/musteri/{id}/aktivite [get]
func (h *CrmHandler) ListAktivite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListAktivite(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// CreateAktivite godoc
// @Summary      Registrar actividad para un cliente CRM
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                     true  "Firma"
// @Param        id           path    int                     true  "ID del cliente"
// @Param        body         body    dto.CrmAktiviteRequest  true  "Actividad"
// @Success      201  {object}  dto.CrmAktiviteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/musteri/{id}/aktivite [post]
func (h *CrmHandler) CreateAktivite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CrmAktiviteRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateAktivite(c.Context(), GetTenantID(c), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBekleyen godoc
// @Summary      Actividades planificadas pendientes
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.CrmAktiviteResponse
// @Router       /api/crm/aktivite/bekleyen [get]
func (h *CrmHandler) ListBekleyen(c *fiber.Ctx) error {
	out, err := h.uc.ListBekleyen(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetAktivite godoc
// @Summary      Obtener actividad
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.CrmAktiviteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/aktivite/{id} [get]
func (h *CrmHandler) GetAktivite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.GetAktivite(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// UpdateAktivite godoc
// @Summary      Actualizar actividad
// @Tags         crm
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                     true  "Firma"
// @Param        id           path    int                     true  "ID"
// @Param        body         body    dto.CrmAktiviteRequest  true  "Actividad"
// @Success      200  {object}  dto.CrmAktiviteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/aktivite/{id} [put]
func (h *CrmHandler) UpdateAktivite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CrmAktiviteRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateAktivite(c.Context(), GetTenantID(c), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Tamamla godoc
// @Summary      Marcar actividad como completada
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.CrmAktiviteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/aktivite/{id}/tamamla [post]
func (h *CrmHandler) Tamamla(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Tamamla(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// DeleteAktivite godoc
// @Summary      Borrar actividad
// @Tags         crm
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/aktivite/{id} [delete]
func (h *CrmHandler) DeleteAktivite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.DeleteAktivite(c.Context(), GetTenantID(c), id); err != nil {
		return h.errs.Write(c, err)
	}
	return deleted(c, "Aktivite başarıyla silindi.")
}
