package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erpcrm-api/internal/application/analytics"
	"github.com/jhoicas/erpcrm-api/internal/application/auth"
	"github.com/jhoicas/erpcrm-api/internal/application/billing"
	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/pos"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/erpcrm-api/internal/infrastructure/ubl"
	apphttp "github.com/jhoicas/erpcrm-api/internal/interfaces/http"
	"github.com/jhoicas/erpcrm-api/internal/testutil/memrepo"
	"github.com/jhoicas/erpcrm-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre el repositorio en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	store *memrepo.Store
	app   *fiber.App
	acme  *entity.Tenant
	beta  *entity.Tenant
}

func newAPI(t *testing.T, hideInternal bool) *apiFixture {
	t.Helper()
	store := memrepo.New()
	hasher := password.NewBcrypt(bcrypt.MinCost)

	acme := store.AddTenant("ACME", "Acme Ltd.", entity.ModuleCari, entity.ModuleStok, entity.ModuleFatura)
	beta := store.AddTenant("BETA", "Beta A.Ş.", entity.ModuleCari)

	hash, err := hasher.Hash("Gizli123")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		TenantID: acme.ID, Email: "ayse@acme.com", PasswordHash: hash,
		AdSoyad: "Ayşe Yılmaz", Rol: entity.RoleTenantAdmin, Aktif: true,
	}))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Tenants(), store.Modules(), hasher,
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		CariUC:        usecase.NewCariUseCase(store.Cariler()),
		StokUC:        usecase.NewStokUseCase(store.Stoklar()),
		FaturaUC:      billing.NewFaturaUseCase(store.TxRunner(), store.Faturas()),
		ExportUC:      billing.NewExportUseCase(store.Faturas(), store.Tenants(), store.Cariler(), pdf.NewMarotoPDFGenerator(), ubl.NewBuilder()),
		MasaUC:        pos.NewMasaUseCase(store.Masalar()),
		AdisyonUC:     pos.NewAdisyonUseCase(store.TxRunner(), store.Adisyonlar()),
		CrmUC:         usecase.NewCrmUseCase(store.Musteriler(), store.Aktiviteler()),
		DashboardUC:   analytics.NewDashboardUseCase(store.Dashboard()),
		AdminUC:       usecase.NewAdminUseCase(store.Tenants(), store.Modules(), store.Subscriptions(), store.Users(), hasher),
		ModuleService: usecase.NewModuleService(store.Modules()),
		JWTSecret:     testJWTSecret,
		HideInternal:  hideInternal,
	})
	return &apiFixture{store: store, app: app, acme: acme, beta: beta}
}

// call ejecuta una petición; tenantID 0 omite el header X-Tenant-Id.
func (f *apiFixture) call(t *testing.T, method, path string, tenantID int64, body any, auth string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != 0 {
		req.Header.Set(apphttp.HeaderTenantID, strconv.FormatInt(tenantID, 10))
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento por firma
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CariKoduUnicoPorFirma(t *testing.T) {
	f := newAPI(t, false)
	c1 := dto.CariRequest{CariKodu: "C1", CariAdi: "Acme Müşteri"}

	resp := f.call(t, http.MethodPost, "/api/cari", f.acme.ID, c1, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CariResponse](t, resp)
	assert.Equal(t, f.acme.ID, created.TenantID)
	assert.True(t, created.Aktif, "una cuenta nueva nace activa")

	resp = f.call(t, http.MethodPost, "/api/cari", f.acme.ID, c1, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE", e.Code)
	assert.Equal(t, "cariKodu", e.Field)

	resp = f.call(t, http.MethodPost, "/api/cari", f.beta.ID, c1, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "el mismo código es válido en otra firma")

	// Cada firma solo ve lo suyo.
	resp = f.call(t, http.MethodGet, "/api/cari/"+strconv.FormatInt(created.ID, 10), f.beta.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	list := decode[[]dto.CariResponse](t, f.call(t, http.MethodGet, "/api/cari", f.acme.ID, nil, ""))
	require.Len(t, list, 1)
	assert.Equal(t, "C1", list[0].CariKodu)
}

func TestRouter_SinHeaderTenant(t *testing.T) {
	f := newAPI(t, false)
	resp := f.call(t, http.MethodGet, "/api/cari", 0, nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "X-Tenant-Id header'ı gereklidir.", e.Message)
}

func TestRouter_ModuloDeshabilitado(t *testing.T) {
	f := newAPI(t, false)
	resp := f.call(t, http.MethodGet, "/api/stok", f.beta.ID, nil, "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "MODULE_DISABLED", e.Code)
	assert.Contains(t, e.Message, "'STOK'")
}

func TestRouter_ErrorDeValidacion(t *testing.T) {
	f := newAPI(t, false)

	resp := f.call(t, http.MethodPost, "/api/cari", f.acme.ID, dto.CariRequest{CariKodu: "C9", CariAdi: "X", Email: "no-es-correo"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "email", e.Field)

	resp = f.call(t, http.MethodPost, "/api/cari", f.acme.ID, dto.CariRequest{CariAdi: "Sin código"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "cariKodu", decode[dto.ErrorResponse](t, resp).Field)

	resp = f.call(t, http.MethodGet, "/api/cari/abc", f.acme.ID, nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fatura: alta, exportación y ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_FaturaCicloCompleto(t *testing.T) {
	f := newAPI(t, false)

	stokResp := f.call(t, http.MethodPost, "/api/stok", f.acme.ID, dto.StokRequest{
		StokKodu: "S1", StokAdi: "Un 1 kg", Birim: "Kg", SatisFiyati: d("30"),
	}, "")
	require.Equal(t, http.StatusCreated, stokResp.StatusCode)
	stok := decode[dto.StokResponse](t, stokResp)

	kdv := 8
	resp := f.call(t, http.MethodPost, "/api/fatura", f.acme.ID, dto.FaturaRequest{
		FaturaNo:   "F-2026-001",
		FaturaTipi: int(entity.FaturaSatis),
		Satirlar: []dto.FaturaSatiriRequest{
			{StokID: stok.ID, Miktar: d("2"), BirimFiyat: d("30"), KdvOrani: &kdv},
		},
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	fat := decode[dto.FaturaResponse](t, resp)
	assert.Equal(t, "Taslak", fat.Durum)
	assert.True(t, fat.GenelToplam.Equal(d("64.8")), fat.GenelToplam.String())
	id := strconv.FormatInt(fat.ID, 10)

	// Exportaciones
	resp = f.call(t, http.MethodGet, "/api/fatura/"+id+"/ubl", f.acme.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "xml")
	assert.Len(t, resp.Header.Get(apphttp.HeaderDocumentDigest), 44)
	assert.Contains(t, bodyString(t, resp), "F-2026-001")

	resp = f.call(t, http.MethodGet, "/api/fatura/"+id+"/pdf", f.acme.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "F-2026-001")

	// Aprobada no se borra; anulada sí.
	resp = f.call(t, http.MethodPost, "/api/fatura/"+id+"/onayla", f.acme.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Onaylandi", decode[dto.FaturaResponse](t, resp).Durum)

	resp = f.call(t, http.MethodDelete, "/api/fatura/"+id, f.acme.ID, nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Onaylanmış faturalar silinemez.", decode[dto.ErrorResponse](t, resp).Message)

	resp = f.call(t, http.MethodPost, "/api/fatura/"+id+"/iptal", f.acme.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.call(t, http.MethodDelete, "/api/fatura/"+id, f.acme.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Fatura başarıyla silindi.", decode[dto.MessageResponse](t, resp).Message)

	resp = f.call(t, http.MethodGet, "/api/fatura/"+id, f.acme.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_FaturaSinSatirlar(t *testing.T) {
	f := newAPI(t, false)
	resp := f.call(t, http.MethodPost, "/api/fatura", f.acme.ID, dto.FaturaRequest{FaturaNo: "F-1", FaturaTipi: 1}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "satirlar", decode[dto.ErrorResponse](t, resp).Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y administración
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginYMe(t *testing.T) {
	f := newAPI(t, false)

	resp := f.call(t, http.MethodPost, "/api/auth/login", 0, dto.LoginRequest{Email: "ayse@acme.com", Password: "yanlis"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.call(t, http.MethodPost, "/api/auth/login", 0, dto.LoginRequest{Email: "AYSE@acme.com", Password: "Gizli123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	assert.Equal(t, f.acme.ID, login.TenantID)
	assert.ElementsMatch(t, []string{"CARI", "STOK", "FATURA"}, login.AktifModuller)
	require.NotEmpty(t, login.Token)

	resp = f.call(t, http.MethodGet, "/api/auth/me", 0, nil, "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.MeResponse](t, resp)
	assert.Equal(t, login.UserID, me.UserID)
	assert.Equal(t, "TenantAdmin", me.Rol)

	valid := decode[dto.ValidateTokenResponse](t, f.call(t, http.MethodGet, "/api/auth/validate?token="+login.Token, 0, nil, ""))
	assert.True(t, valid.Valid)
	invalid := decode[dto.ValidateTokenResponse](t, f.call(t, http.MethodGet, "/api/auth/validate?token=x", 0, nil, ""))
	assert.False(t, invalid.Valid)

	// Token de ACME contra la firma BETA
	resp = f.call(t, http.MethodGet, "/api/cari", f.beta.ID, nil, "Bearer "+login.Token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_AdminSoloSuperAdmin(t *testing.T) {
	f := newAPI(t, false)

	resp := f.call(t, http.MethodGet, "/api/admin/tenants", 0, nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.call(t, http.MethodGet, "/api/admin/tenants", 0, nil, tokenFor(t, f.acme.ID, entity.RoleTenantAdmin))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.call(t, http.MethodGet, "/api/admin/tenants", 0, nil, tokenFor(t, f.acme.ID, entity.RoleSuperAdmin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores internos
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ErrorInterno(t *testing.T) {
	for _, hide := range []bool{false, true} {
		f := newAPI(t, hide)
		f.store.Fail = errors.New("conexión perdida")

		resp := f.call(t, http.MethodGet, "/api/dashboard/stats", f.acme.ID, nil, "")
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		e := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "Sunucu hatası.", e.Message)
		if hide {
			assert.Empty(t, e.Error, "en producción no se expone el detalle")
		} else {
			assert.Contains(t, e.Error, "conexión perdida")
		}
	}
}

func TestRouter_ModuloNoVerificable(t *testing.T) {
	f := newAPI(t, true)
	f.store.Fail = errors.New("conexión perdida")
	resp := f.call(t, http.MethodGet, "/api/cari", f.acme.ID, nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
