package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
)

// AdminHandler administración de la plataforma (solo SuperAdmin).
type AdminHandler struct {
	uc   *usecase.AdminUseCase
	errs *ErrorWriter
	val  *RequestValidator
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase, errs *ErrorWriter, val *RequestValidator) *AdminHandler {
	return &AdminHandler{uc: uc, errs: errs, val: val}
}

// ListTenants godoc
// @Summary      Listar firmas
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.TenantResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants [get]
func (h *AdminHandler) ListTenants(c *fiber.Ctx) error {
	out, err := h.uc.ListTenants(c.Context())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// CreateTenant godoc
// @Summary      Crear firma
// @Description  demoGun > 0 la crea en demo por ese número de días.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TenantRequest  true  "Firma"
// @Success      201   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/tenants [post]
func (h *AdminHandler) CreateTenant(c *fiber.Ctx) error {
	var in dto.TenantRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateTenant(c.Context(), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTenant godoc
// @Summary      Obtener firma
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.TenantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id} [get]
func (h *AdminHandler) GetTenant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.GetTenant(c.Context(), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// UpdateTenantDurum godoc
// @Summary      Cambiar estado de la firma
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID"
// @Param        body  body  dto.TenantDurumRequest  true  "Estado"
// @Success      200   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/durum [put]
func (h *AdminHandler) UpdateTenantDurum(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.TenantDurumRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.UpdateTenantDurum(c.Context(), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// ListModules godoc
// @Summary      Catálogo de módulos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ModuleResponse
// @Router       /api/admin/moduller [get]
func (h *AdminHandler) ListModules(c *fiber.Ctx) error {
	out, err := h.uc.ListModules(c.Context())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// ListTenantModules godoc
// @Summary      Módulos habilitados de la firma
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la firma"
// @Success      200  {array}   dto.TenantModuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/moduller [get]
func (h *AdminHandler) ListTenantModules(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListTenantModules(c.Context(), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// SetTenantModule godoc
// @Summary      Activar o desactivar un módulo para la firma
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la firma"
// @Param        body  body  dto.TenantModuleRequest  true  "Módulo"
// @Success      200   {array}   dto.TenantModuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/moduller [put]
func (h *AdminHandler) SetTenantModule(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.TenantModuleRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.SetTenantModule(c.Context(), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// ListSubscriptions godoc
// @Summary      Suscripciones de la firma
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la firma"
// @Success      200  {array}   dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/abonelikler [get]
func (h *AdminHandler) ListSubscriptions(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListSubscriptions(c.Context(), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// ListPlans godoc
// @Summary      Planes comerciales
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/admin/planlar [get]
func (h *AdminHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.uc.ListPlans(c.Context())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// CreatePlan godoc
// @Summary      Crear plan comercial
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanRequest  true  "Plan"
// @Success      201   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/planlar [post]
func (h *AdminHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreatePlan(c.Context(), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers godoc
// @Summary      Usuarios de la firma
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la firma"
// @Success      200  {array}   dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/kullanicilar [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.ListUsers(c.Context(), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario en la firma
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID de la firma"
// @Param        body  body  dto.UserRequest  true  "Usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/kullanicilar [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.UserRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.CreateUser(c.Context(), id, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
