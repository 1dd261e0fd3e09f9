package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/client"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor falso
// ──────────────────────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var in dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Password != "Gizli123" {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "E-posta veya şifre hatalı."})
		return
	}
	end := time.Now().Add(5*24*time.Hour + time.Hour)
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		UserID: 7, AdSoyad: "Ayşe Yılmaz", Email: in.Email, Rol: "TenantAdmin",
		TenantID: 3, FirmaAdi: "Acme Ltd.", Token: "tok-123",
		AktifModuller: []string{"CARI", "STOK", "DESCONOCIDO"},
		DemoMu: true, DemoBitisTarihi: &end,
	})
}

func newServer(t *testing.T, mux *http.ServeMux) (*client.Client, *httptest.Server) {
	t.Helper()
	mux.HandleFunc("/api/auth/login", loginHandler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return client.New(client.Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, nil), srv
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_AbreSesion(t *testing.T) {
	c, _ := newServer(t, http.NewServeMux())

	resp, err := c.Login(context.Background(), "ayse@acme.com", "Gizli123")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TenantID)

	s := c.Session()
	assert.True(t, s.Active())
	assert.Equal(t, "tok-123", s.Token())
	assert.Equal(t, int64(3), s.TenantID())
	assert.Equal(t, entity.RoleTenantAdmin, s.Role())
	assert.True(t, s.Modules().Has(entity.ModuleCari))
	assert.False(t, s.Modules().Has(entity.ModuleFatura))

	days, ok := s.DemoDaysLeft(time.Now())
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	c.Logout()
	assert.False(t, s.Active())
	assert.Empty(t, s.Token())
	_, ok = s.DemoDaysLeft(time.Now())
	assert.False(t, ok)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	c, _ := newServer(t, http.NewServeMux())

	_, err := c.Login(context.Background(), "ayse@acme.com", "yanlis")
	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "E-posta veya şifre hatalı.", err.Error())
	assert.False(t, c.Session().Active())
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas de firma
// ──────────────────────────────────────────────────────────────────────────────

func TestCabecerasDeSesion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cari", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "3", r.Header.Get("X-Tenant-Id"))
		writeJSON(w, http.StatusOK, []dto.CariResponse{{ID: 1, CariKodu: "C1", CariAdi: "Acme"}})
	})
	c, _ := newServer(t, mux)

	_, err := c.ListCari(context.Background())
	assert.ErrorIs(t, err, client.ErrNoSession, "sin login no se llama a rutas de firma")

	_, err = c.Login(context.Background(), "ayse@acme.com", "Gizli123")
	require.NoError(t, err)

	list, err := c.ListCari(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "C1", list[0].CariKodu)
}

func TestSearch_EscapaLaConsulta(t *testing.T) {
	mux := http.NewServeMux()
	var got string
	mux.HandleFunc("/api/stok/search", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("q")
		writeJSON(w, http.StatusOK, []dto.StokResponse{})
	})
	c, _ := newServer(t, mux)
	_, err := c.Login(context.Background(), "ayse@acme.com", "Gizli123")
	require.NoError(t, err)

	list, err := c.SearchStok(context.Background(), "un & şeker")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, "un & şeker", got)
}

func TestErrorDeNegocio(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cari/5", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Bu cariye ait faturalar bulunduğu için silinemez."})
	})
	c, _ := newServer(t, mux)
	_, err := c.Login(context.Background(), "ayse@acme.com", "Gizli123")
	require.NoError(t, err)

	err = c.DeleteCari(context.Background(), 5)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bu cariye ait faturalar bulunduğu için silinemez.", apiErr.Message)
}

func TestTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	mux.HandleFunc("/api/auth/login", loginHandler)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(client.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := c.Login(context.Background(), "ayse@acme.com", "Gizli123")
	require.NoError(t, err)

	start := time.Now()
	_, err = c.DashboardStats(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
