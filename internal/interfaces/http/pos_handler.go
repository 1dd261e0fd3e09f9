package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/pos"
)

// MasaHandler maneja las mesas del local.
type MasaHandler struct {
	uc   *pos.MasaUseCase
	errs *ErrorWriter
	val  *RequestValidator
}

// NewMasaHandler construye el handler.
func NewMasaHandler(uc *pos.MasaUseCase, errs *ErrorWriter, val *RequestValidator) *MasaHandler {
	return &MasaHandler{uc: uc, errs: errs, val: val}
}

// List godoc
// @Summary      Listar mesas
// @Tags         masa
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.MasaResponse
// @Router       /api/masa [get]
func (h *MasaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// ListBos godoc
// @Summary      Mesas libres y activas
// @Tags         masa
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.MasaResponse
// @Router       /api/masa/bos [get]
func (h *MasaHandler) ListBos(c *fiber.Ctx) error {
	out, err := h.uc.ListBos(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener mesa
// @Tags         masa
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.MasaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/masa/{id} [get]
func (h *MasaHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear mesa
// @Tags         masa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int              true  "Firma"
// @Param        body         body    dto.MasaRequest  true  "Mesa"
// @Success      201  {object}  dto.MasaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/masa [post]
func (h *MasaHandler) Create(c *fiber.Ctx) error {
	var in dto.MasaRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetTenantID(c), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar mesa
// @Tags         masa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int              true  "Firma"
// @Param        id           path    int              true  "ID"
// @Param        body         body    dto.MasaRequest  true  "Mesa"
// @Success      200  {object}  dto.MasaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/masa/{id} [put]
func (h *MasaHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.MasaRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Update(c.Context(), GetTenantID(c), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar mesa
// @Description  Rechazado con 400 si alguna comanda referencia la mesa.
// @Tags         masa
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/masa/{id} [delete]
func (h *MasaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetTenantID(c), id); err != nil {
		return h.errs.Write(c, err)
	}
	return deleted(c, "Masa başarıyla silindi.")
}

// ──────────────────────────────────────────────────────────────────────────────

// AdisyonHandler maneja las comandas abiertas sobre las mesas.
type AdisyonHandler struct {
	uc   *pos.AdisyonUseCase
	errs *ErrorWriter
	val  *RequestValidator
}

// NewAdisyonHandler construye el handler.
func NewAdisyonHandler(uc *pos.AdisyonUseCase, errs *ErrorWriter, val *RequestValidator) *AdisyonHandler {
	return &AdisyonHandler{uc: uc, errs: errs, val: val}
}

// List godoc
// @Summary      Listar comandas
// @Tags         adisyon
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.AdisyonResponse
// @Router       /api/adisyon [get]
func (h *AdisyonHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// ListAcik godoc
// @Summary      Comandas abiertas
// @Tags         adisyon
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.AdisyonResponse
// @Router       /api/adisyon/acik [get]
func (h *AdisyonHandler) ListAcik(c *fiber.Ctx) error {
	out, err := h.uc.ListAcik(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comanda con sus líneas
// @Tags         adisyon
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.AdisyonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adisyon/{id} [get]
func (h *AdisyonHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Ac godoc
// @Summary      Abrir comanda sobre una mesa
// @Description  La mesa pasa a Dolu. Una sola comanda abierta por mesa. Sin adisyonNo se genera A-yyyymmdd-NNN.
// @Tags         adisyon
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                   true  "Firma"
// @Param        body         body    dto.AdisyonAcRequest  true  "Comanda"
// @Success      201  {object}  dto.AdisyonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/adisyon [post]
func (h *AdisyonHandler) Ac(c *fiber.Ctx) error {
	var in dto.AdisyonAcRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	if in.GarsonID == nil {
		in.GarsonID = userIDPtr(c)
	}
	out, err := h.uc.Ac(c.Context(), GetTenantID(c), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SatirEkle godoc
// @Summary      Añadir línea a la comanda
// @Tags         adisyon
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                      true  "Firma"
// @Param        id           path    int                      true  "ID"
// @Param        body         body    dto.AdisyonSatirRequest  true  "Línea"
// @Success      200  {object}  dto.AdisyonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adisyon/{id}/satir [post]
func (h *AdisyonHandler) SatirEkle(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.AdisyonSatirRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.SatirEkle(c.Context(), GetTenantID(c), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// SatirSil godoc
// @Summary      Quitar línea de la comanda
// @Tags         adisyon
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Param        satirId      path    int  true  "Línea"
// @Success      200  {object}  dto.AdisyonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adisyon/{id}/satir/{satirId} [delete]
func (h *AdisyonHandler) SatirSil(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	satirID, err := paramID(c, "satirId")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.SatirSil(c.Context(), GetTenantID(c), id, satirID)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Kapat godoc
// @Summary      Cerrar comanda
// @Description  Estado Kapali, mesa libre. Sin odenenTutar se cobra el total.
// @Tags         adisyon
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                      true   "Firma"
// @Param        id           path    int                      true   "ID"
// @Param        body         body    dto.AdisyonKapatRequest  false  "Pago"
// @Success      200  {object}  dto.AdisyonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adisyon/{id}/kapat [post]
func (h *AdisyonHandler) Kapat(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.AdisyonKapatRequest
	if len(c.Body()) > 0 {
		if err := h.val.Bind(c, &in); err != nil {
			return h.errs.Write(c, err)
		}
	}
	out, err := h.uc.Kapat(c.Context(), GetTenantID(c), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Iptal godoc
// @Summary      Anular comanda
// @Tags         adisyon
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.AdisyonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adisyon/{id}/iptal [post]
func (h *AdisyonHandler) Iptal(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Iptal(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar comanda
// @Description  Las comandas Kapali no se borran.
// @Tags         adisyon
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adisyon/{id} [delete]
func (h *AdisyonHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetTenantID(c), id); err != nil {
		return h.errs.Write(c, err)
	}
	return deleted(c, "Adisyon başarıyla silindi.")
}
