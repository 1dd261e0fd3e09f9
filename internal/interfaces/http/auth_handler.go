package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/auth"
	"github.com/jhoicas/erpcrm-api/internal/application/dto"
)

// AuthHandler maneja login y validación de token.
type AuthHandler struct {
	uc   *auth.AuthUseCase
	errs *ErrorWriter
	val  *RequestValidator
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, errs *ErrorWriter, val *RequestValidator) *AuthHandler {
	return &AuthHandler{uc: uc, errs: errs, val: val}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Cualquier rechazo (usuario, contraseña, firma suspendida, demo vencida) devuelve el mismo 401.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := h.val.Bind(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar token
// @Tags         auth
// @Produce      json
// @Param        token  query  string  true  "JWT"
// @Success      200    {object}  dto.ValidateTokenResponse
// @Router       /api/auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	userID, ok := h.uc.ValidateToken(c.Query("token"))
	if !ok {
		return c.JSON(dto.ValidateTokenResponse{Valid: false})
	}
	return c.JSON(dto.ValidateTokenResponse{Valid: true, UserID: userID})
}

// Me godoc
// @Summary      Identidad del token en curso
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.MeResponse{
		UserID:   GetUserID(c),
		TenantID: getTokenTenantID(c),
		Rol:      string(GetRole(c)),
	})
}
