package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/pkg/jwt"
)

// Locals keys cargadas por los middlewares.
const (
	LocalUserID        = "user_id"
	LocalRole          = "role"
	LocalTokenTenantID = "token_tenant_id"
	LocalTenantID      = "tenant_id"
)

// bearerToken extrae el token del header Authorization. ok=false si el header existe pero está mal formado.
func bearerToken(c *fiber.Ctx) (token string, present, ok bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false, true
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true, false
	}
	token = strings.TrimSpace(parts[1])
	return token, true, token != ""
}

func storeClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalTokenTenantID, claims.TenantID)
	c.Locals(LocalRole, claims.Role)
}

// AuthMiddleware valida el Bearer Token JWT y carga user_id, tenant del token y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, present, ok := bearerToken(c)
		if !present {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header gereklidir."})
		}
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Format: Bearer <token>"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Geçersiz veya süresi dolmuş token."})
		}
		storeClaims(c, claims)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir DESPUÉS de AuthMiddleware o TenantContext.
//
//   - 401 MISSING_ROLE → no hay rol en el contexto (sin token o token sin claim).
//   - 403 FORBIDDEN    → rol fuera de la lista.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "Token rol bilgisi içermiyor."})
		}
		for _, r := range allowed {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Bu işlem için yetkiniz yok."})
	}
}

// GetUserID devuelve el user_id del token (0 si la petición no trae token).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) entity.Role {
	s, _ := c.Locals(LocalRole).(string)
	return entity.Role(s)
}

// getTokenTenantID tenant firmado dentro del token.
func getTokenTenantID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalTokenTenantID).(int64)
	return id
}

// userIDPtr nil cuando la petición es anónima.
func userIDPtr(c *fiber.Ctx) *int64 {
	if id := GetUserID(c); id > 0 {
		return &id
	}
	return nil
}
