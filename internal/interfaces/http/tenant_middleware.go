package http

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/pkg/jwt"
)

// HeaderTenantID header que identifica la firma en cada petición.
const HeaderTenantID = "X-Tenant-Id"

// TenantContext resuelve la firma de la petición desde X-Tenant-Id.
//
// Orden de comprobaciones:
//  1. header ausente, no numérico o <= 0 → 400 TENANT_REQUIRED (antes de tocar la base de datos).
//  2. Authorization presente → el token debe ser válido (401) y su tenant_id igual al header (403 TENANT_MISMATCH).
//  3. sin Authorization y requireToken → 401 MISSING_TOKEN.
func TenantContext(jwtSecret string, requireToken bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID, err := strconv.ParseInt(strings.TrimSpace(c.Get(HeaderTenantID)), 10, 64)
		if err != nil || tenantID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "TENANT_REQUIRED", Message: domain.ErrTenantRequired.Error(),
			})
		}

		tokenString, present, ok := bearerToken(c)
		switch {
		case present && !ok:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Format: Bearer <token>"})
		case present:
			claims, err := jwt.Parse(jwtSecret, tokenString)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Geçersiz veya süresi dolmuş token."})
			}
			if claims.TenantID != tenantID {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code: "TENANT_MISMATCH", Message: "Token bu firmaya ait değil.",
				})
			}
			storeClaims(c, claims)
		case requireToken:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header gereklidir."})
		}

		c.Locals(LocalTenantID, tenantID)
		return c.Next()
	}
}

// GetTenantID devuelve la firma resuelta por TenantContext (0 si no pasó por él).
func GetTenantID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalTenantID).(int64)
	return id
}

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, tenantID int64, code entity.ModuleCode) (bool, error)
}

// RequireModule verifica que la firma tenga el módulo activo. Debe usarse DESPUÉS de TenantContext.
//
//   - 403 MODULE_DISABLED     → módulo no habilitado o desactivado en el catálogo.
//   - 503 MODULE_CHECK_FAILED → fallo de infraestructura al consultar la DB.
func RequireModule(code entity.ModuleCode, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := GetTenantID(c)
		if tenantID == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "TENANT_REQUIRED", Message: domain.ErrTenantRequired.Error(),
			})
		}

		active, err := checker.HasActiveModule(c.Context(), tenantID, code)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "Modül kontrolü yapılamadı, lütfen daha sonra tekrar deneyin.",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "'" + string(code) + "' modülü bu firma için aktif değil.",
			})
		}
		return c.Next()
	}
}
