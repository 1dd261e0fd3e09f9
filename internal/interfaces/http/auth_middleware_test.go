package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	apphttp "github.com/jhoicas/erpcrm-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/erpcrm-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(7)
	testTenantID  = int64(3)
	testIssuer    = "erpcrm-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

// tokenFor genera un JWT para el tenant y rol indicados.
func tokenFor(t *testing.T, tenantID int64, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenantID, string(role), testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string, headers ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_SuperAdminAccede(t *testing.T) {
	app := buildTestApp(entity.RoleSuperAdmin)
	resp := doRequest(t, app, "/protected", tokenFor(t, testTenantID, entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "SuperAdmin", body["role"])
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildTestApp(entity.RoleTenantAdmin, entity.RoleUser)
	resp := doRequest(t, app, "/protected", tokenFor(t, testTenantID, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "User figura entre los roles permitidos")
}

func TestRequireRole_RolNoPermitido_Retorna403(t *testing.T) {
	app := buildTestApp(entity.RoleSuperAdmin)
	resp := doRequest(t, app, "/protected", tokenFor(t, testTenantID, entity.RoleTenantAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleSuperAdmin)
	resp := doRequest(t, app, "/protected", tokenFor(t, testTenantID, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

func TestAuthMiddleware_SinHeaderOTokenInvalido(t *testing.T) {
	app := buildTestApp(entity.RoleSuperAdmin)

	resp := doRequest(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")

	resp = doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")

	resp = doRequest(t, app, "/protected", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})

	resp := doRequest(t, app, "/me", tokenFor(t, testTenantID, entity.RoleGarson))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID int64  `json:"user_id"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, "Garson", body.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// TenantContext
// ──────────────────────────────────────────────────────────────────────────────

func buildTenantApp(requireToken bool) *fiber.App {
	app := fiber.New()
	app.Get("/t", apphttp.TenantContext(testJWTSecret, requireToken), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tenant": apphttp.GetTenantID(c), "user": apphttp.GetUserID(c)})
	})
	return app
}

func TestTenantContext_HeaderInvalido_Retorna400(t *testing.T) {
	app := buildTenantApp(false)
	for _, v := range []string{"", "0", "-4", "abc", "1.5"} {
		var resp *http.Response
		if v == "" {
			resp = doRequest(t, app, "/t", "")
		} else {
			resp = doRequest(t, app, "/t", "", apphttp.HeaderTenantID, v)
		}
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "header %q", v)
		assert.Contains(t, bodyString(t, resp), "X-Tenant-Id header'ı gereklidir.", "header %q", v)
	}
}

func TestTenantContext_SoloHeader(t *testing.T) {
	app := buildTenantApp(false)
	resp := doRequest(t, app, "/t", "", apphttp.HeaderTenantID, "12")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(12), body["tenant"])
	assert.Equal(t, int64(0), body["user"], "sin token la petición es anónima")
}

func TestTenantContext_TokenDeOtraFirma_Retorna403(t *testing.T) {
	app := buildTenantApp(false)
	resp := doRequest(t, app, "/t", tokenFor(t, testTenantID, entity.RoleUser),
		apphttp.HeaderTenantID, strconv.FormatInt(testTenantID+1, 10))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "TENANT_MISMATCH")
}

func TestTenantContext_TokenCoincidente(t *testing.T) {
	app := buildTenantApp(false)
	resp := doRequest(t, app, "/t", tokenFor(t, testTenantID, entity.RoleUser),
		apphttp.HeaderTenantID, strconv.FormatInt(testTenantID, 10))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testTenantID, body["tenant"])
	assert.Equal(t, testUserID, body["user"])
}

func TestTenantContext_TokenObligatorio(t *testing.T) {
	app := buildTenantApp(true)
	resp := doRequest(t, app, "/t", "", apphttp.HeaderTenantID, "3")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")

	resp = doRequest(t, app, "/t", "Bearer roto", apphttp.HeaderTenantID, "3")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
