package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// CariHandler maneja las cuentas corrientes (clientes/proveedores) de la firma.
type CariHandler struct {
	uc   *usecase.CariUseCase
	errs *ErrorWriter
	val  *RequestValidator
}

// NewCariHandler construye el handler.
func NewCariHandler(uc *usecase.CariUseCase, errs *ErrorWriter, val *RequestValidator) *CariHandler {
	return &CariHandler{uc: uc, errs: errs, val: val}
}

// List godoc
// @Summary      Listar cariler
// @Tags         cari
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}   dto.CariResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cari [get]
func (h *CariHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar cariler (código, nombre, teléfono, email)
// @Tags         cari
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int     true   "Firma"
// @Param        q            query   string  false  "Texto"
// @Success      200  {array}  dto.CariResponse
// @Router       /api/cari/search [get]
func (h *CariHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), GetTenantID(c), c.Query("q"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// ListByTip godoc
// @Summary      Listar cariler por tipo
// @Description  tip: 0|Musteri, 1|Tedarikci, 2|HerIkisi. HerIkisi aparece en ambos filtros.
// @Tags         cari
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int     true  "Firma"
// @Param        tip          path    string  true  "Tipo"
// @Success      200  {array}   dto.CariResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cari/tip/{tip} [get]
func (h *CariHandler) ListByTip(c *fiber.Ctx) error {
	tip, ok := entity.ParseCariTip(c.Params("tip"))
	if !ok {
		return h.errs.Write(c, &domain.ValidationError{Field: "tip", Message: "Geçersiz cari tipi."})
	}
	out, err := h.uc.ListByTip(c.Context(), GetTenantID(c), tip)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cari
// @Tags         cari
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.CariResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cari/{id} [get]
func (h *CariHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear cari
// @Tags         cari
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int              true  "Firma"
// @Param        body         body    dto.CariRequest  true  "Cari"
// @Success      201  {object}  dto.CariResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cari [post]
func (h *CariHandler) Create(c *fiber.Ctx) error {
	var in dto.CariRequest
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
// @Summary      Actualizar cari
// @Tags         cari
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int              true  "Firma"
// @Param        id           path    int              true  "ID"
// @Param        body         body    dto.CariRequest  true  "Cari"
// @Success      200  {object}  dto.CariResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cari/{id} [put]
func (h *CariHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.CariRequest
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
// @Summary      Borrar cari
// @Description  Rechazado con 400 si la cari tiene facturas.
// @Tags         cari
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cari/{id} [delete]
func (h *CariHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetTenantID(c), id); err != nil {
		return h.errs.Write(c, err)
	}
	return deleted(c, "Cari başarıyla silindi.")
}
