package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
)

// StokHandler maneja las fichas de stock.
type StokHandler struct {
	uc   *usecase.StokUseCase
	errs *ErrorWriter
	val  *RequestValidator
}

// NewStokHandler construye el handler.
func NewStokHandler(uc *usecase.StokUseCase, errs *ErrorWriter, val *RequestValidator) *StokHandler {
	return &StokHandler{uc: uc, errs: errs, val: val}
}

func (h *StokHandler) list(c *fiber.Ctx, out []dto.StokResponse, err error) error {
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar fichas de stock
// @Tags         stok
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.StokResponse
// @Router       /api/stok [get]
func (h *StokHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetTenantID(c))
	return h.list(c, out, err)
}

// Search godoc
// @Summary      Buscar fichas (código, nombre, barkod)
// @Tags         stok
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int     true   "Firma"
// @Param        q            query   string  false  "Texto"
// @Success      200  {array}  dto.StokResponse
// @Router       /api/stok/search [get]
func (h *StokHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), GetTenantID(c), c.Query("q"))
	return h.list(c, out, err)
}

// LowStock godoc
// @Summary      Fichas activas con existencia <= mínimo
// @Tags         stok
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {array}  dto.StokResponse
// @Router       /api/stok/lowstock [get]
func (h *StokHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.Context(), GetTenantID(c))
	return h.list(c, out, err)
}

// ListByKategori godoc
// @Summary      Listar fichas por categoría
// @Tags         stok
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int     true  "Firma"
// @Param        kategori     path    string  true  "Categoría"
// @Success      200  {array}  dto.StokResponse
// @Router       /api/stok/kategori/{kategori} [get]
func (h *StokHandler) ListByKategori(c *fiber.Ctx) error {
	out, err := h.uc.ListByKategori(c.Context(), GetTenantID(c), c.Params("kategori"))
	return h.list(c, out, err)
}

// GetByBarkod godoc
// @Summary      Obtener ficha por código de barras
// @Tags         stok
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int     true  "Firma"
// @Param        barkod       path    string  true  "Barkod"
// @Success      200  {object}  dto.StokResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stok/barkod/{barkod} [get]
func (h *StokHandler) GetByBarkod(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarkod(c.Context(), GetTenantID(c), c.Params("barkod"))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ficha
// @Tags         stok
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.StokResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stok/{id} [get]
func (h *StokHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear ficha de stock
// @Tags         stok
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int              true  "Firma"
// @Param        body         body    dto.StokRequest  true  "Ficha"
// @Success      201  {object}  dto.StokResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stok [post]
func (h *StokHandler) Create(c *fiber.Ctx) error {
	var in dto.StokRequest
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
// @Summary      Actualizar ficha de stock
// @Description  La existencia (stokMiktari) no se modifica por esta vía.
// @Tags         stok
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Tenant-Id  header  int              true  "Firma"
// @Param        id           path    int              true  "ID"
// @Param        body         body    dto.StokRequest  true  "Ficha"
// @Success      200  {object}  dto.StokResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stok/{id} [put]
func (h *StokHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.StokRequest
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
// @Summary      Borrar ficha de stock
// @Description  Rechazado con 400 si la ficha aparece en líneas de factura o comanda.
// @Tags         stok
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Param        id           path    int  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stok/{id} [delete]
func (h *StokHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetTenantID(c), id); err != nil {
		return h.errs.Write(c, err)
	}
	return deleted(c, "Stok kartı başarıyla silindi.")
}
