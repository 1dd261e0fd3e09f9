package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/billing"
	"github.com/jhoicas/erpcrm-api/internal/application/dto"
)

// HeaderDocumentDigest digest SHA-256 (Base64) del XML UBL canonicalizado.
const HeaderDocumentDigest = "X-Document-Digest"

// FaturaHandler maneja facturas, su ciclo de vida y sus exportaciones.
type FaturaHandler struct {
	uc     *billing.FaturaUseCase
	export *billing.ExportUseCase
	errs   *ErrorWriter
	val    *RequestValidator
}

// NewFaturaHandler construye el handler.
func NewFaturaHandler(uc *billing.FaturaUseCase, export *billing.ExportUseCase, errs *ErrorWriter, val *RequestValidator) *FaturaHandler {
	return &FaturaHandler{uc: uc, export: export, errs: errs, val: val}
}

// List godoc
// @Summary      Listar facturas (más recientes primero)
// @Tags         fatura
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.FaturaListItem
// @Router       /api/fatura [get]
func (h *FaturaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar facturas (número o nombre de cari)
// @Tags         fatura
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int     true   "Firma"
// @Param        q            query   string  false  "Texto"
// @Success      200  {array}  dto.FaturaListItem
// @Router       /api/fatura/search [get]
func (h *FaturaHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), GetTenantID(c), c.Query("q"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con sus líneas
// @Tags         fatura
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.FaturaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fatura/{id} [get]
func (h *FaturaHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear factura (Taslak)
// @Description  Calcula descuento, KDV y totales por línea; cabecera y líneas en una transacción.
// @Tags         fatura
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                true  "Firma"
// @Param        body         body    dto.FaturaRequest  true  "Factura"
// @Success      201  {object}  dto.FaturaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fatura [post]
func (h *FaturaHandler) Create(c *fiber.Ctx) error {
	var in dto.FaturaRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetTenantID(c), userIDPtr(c), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar factura
// @Description  Solo en estado Taslak; reemplaza cabecera y líneas.
// @Tags         fatura
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int                true  "Firma"
// @Param        id           path    int                true  "ID"
// @Param        body         body    dto.FaturaRequest  true  "Factura"
// @Success      200  {object}  dto.FaturaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fatura/{id} [put]
func (h *FaturaHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.FaturaRequest
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
// @Summary      Borrar factura
// @Description  Las facturas Onaylandi no se borran.
// @Tags         fatura
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fatura/{id} [delete]
func (h *FaturaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetTenantID(c), id); err != nil {
		return h.errs.Write(c, err)
	}
	return deleted(c, "Fatura başarıyla silindi.")
}

// Onayla godoc
// @Summary      Aprobar factura (Taslak → Onaylandi)
// @Tags         fatura
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.FaturaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fatura/{id}/onayla [post]
func (h *FaturaHandler) Onayla(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Onayla(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Iptal godoc
// @Summary      Anular factura (Taslak|Onaylandi → Iptal)
// @Tags         fatura
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.FaturaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fatura/{id}/iptal [post]
func (h *FaturaHandler) Iptal(c *fiber.Ctx) error {
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

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         fatura
// @Security     Bearer
// @Produce      application/pdf
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fatura/{id}/pdf [get]
func (h *FaturaHandler) PDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	b, filename, err := h.export.PDF(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// UBL godoc
// @Summary      Descargar factura en UBL-TR (XML)
// @Description  El header X-Document-Digest lleva el SHA-256 del XML canonicalizado.
// @Tags         fatura
// @Security     Bearer
// @Produce      application/xml
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fatura/{id}/ubl [get]
func (h *FaturaHandler) UBL(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	b, filename, digest, err := h.export.UBL(c.Context(), GetTenantID(c), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(HeaderDocumentDigest, digest)
	return c.Send(b)
}
