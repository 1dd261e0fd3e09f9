package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/testutil/memrepo"
	"github.com/jhoicas/erpcrm-api/pkg/jwt"
	"github.com/jhoicas/erpcrm-api/pkg/password"
)

const testSecret = "test-secret-key-for-unit-tests"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store  *memrepo.Store
	uc     *AuthUseCase
	tenant *entity.Tenant
	user   *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memrepo.New()
	hasher := password.NewBcrypt(bcrypt.MinCost)
	tenant := store.AddTenant("ACME", "Acme Ltd.", entity.ModuleStok, entity.ModuleCari)

	hash, err := hasher.Hash("Gizli123")
	require.NoError(t, err)
	user := &entity.User{
		TenantID:     tenant.ID,
		Email:        "ayse@acme.com",
		PasswordHash: hash,
		AdSoyad:      "Ayşe Yılmaz",
		Rol:          entity.RoleTenantAdmin,
		Aktif:        true,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))

	uc := NewAuthUseCase(store.Users(), store.Tenants(), store.Modules(), hasher,
		JWTConfig{Secret: testSecret, ExpMinutes: 1440, Issuer: "erpcrm-test"})
	return &fixture{store: store, uc: uc, tenant: tenant, user: user}
}

func (f *fixture) updateTenant(t *testing.T, mutate func(*entity.Tenant)) {
	t.Helper()
	tn, err := f.store.Tenants().GetByID(context.Background(), f.tenant.ID)
	require.NoError(t, err)
	mutate(tn)
	require.NoError(t, f.store.Tenants().Update(context.Background(), tn))
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	f := newFixture(t)
	before := time.Now()

	// El email se normaliza: espacios y mayúsculas no importan
	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "  AYSE@acme.com ", Password: "Gizli123"})
	require.NoError(t, err)

	assert.Equal(t, f.user.ID, resp.UserID)
	assert.Equal(t, f.tenant.ID, resp.TenantID)
	assert.Equal(t, "Acme Ltd.", resp.FirmaAdi)
	assert.Equal(t, "TenantAdmin", resp.Rol)
	assert.Equal(t, []string{"CARI", "STOK"}, resp.AktifModuller)
	assert.False(t, resp.DemoMu)

	claims, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, claims.UserID)
	assert.Equal(t, f.tenant.ID, claims.TenantID)
	assert.WithinDuration(t, before.Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	u, _ := f.store.Users().GetByID(context.Background(), f.user.ID)
	require.NotNil(t, u.SonGirisTarihi, "el login exitoso registra el último acceso")
}

// Todas las causas de rechazo devuelven el mismo error genérico.
func TestLogin_RechazosUniformes(t *testing.T) {
	cases := []struct {
		name  string
		req   dto.LoginRequest
		setup func(t *testing.T, f *fixture)
	}{
		{name: "email vacío", req: dto.LoginRequest{Email: " ", Password: "Gizli123"}},
		{name: "password vacío", req: dto.LoginRequest{Email: "ayse@acme.com", Password: ""}},
		{name: "usuario inexistente", req: dto.LoginRequest{Email: "nadie@acme.com", Password: "Gizli123"}},
		{name: "password incorrecto", req: dto.LoginRequest{Email: "ayse@acme.com", Password: "gizli123"}},
		{
			name: "firma suspendida",
			req:  dto.LoginRequest{Email: "ayse@acme.com", Password: "Gizli123"},
			setup: func(t *testing.T, f *fixture) {
				f.updateTenant(t, func(tn *entity.Tenant) { tn.Durum = entity.TenantAskida })
			},
		},
		{
			name: "firma pasiva",
			req:  dto.LoginRequest{Email: "ayse@acme.com", Password: "Gizli123"},
			setup: func(t *testing.T, f *fixture) {
				f.updateTenant(t, func(tn *entity.Tenant) { tn.Durum = entity.TenantPasif })
			},
		},
		{
			name: "demo vencida",
			req:  dto.LoginRequest{Email: "ayse@acme.com", Password: "Gizli123"},
			setup: func(t *testing.T, f *fixture) {
				past := time.Now().Add(-time.Hour)
				f.updateTenant(t, func(tn *entity.Tenant) {
					tn.Durum, tn.DemoMu, tn.DemoBitisTarihi = entity.TenantDemo, true, &past
				})
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.setup != nil {
				tc.setup(t, f)
			}
			resp, err := f.uc.Login(context.Background(), tc.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	store := memrepo.New()
	hasher := password.NewBcrypt(bcrypt.MinCost)
	tenant := store.AddTenant("ACME", "Acme Ltd.")
	hash, _ := hasher.Hash("Gizli123")
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		TenantID: tenant.ID, Email: "pasif@acme.com", PasswordHash: hash, Rol: entity.RoleUser, Aktif: false,
	}))
	uc := NewAuthUseCase(store.Users(), store.Tenants(), store.Modules(), hasher, JWTConfig{Secret: testSecret, ExpMinutes: 60})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "pasif@acme.com", Password: "Gizli123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_DemoVigente(t *testing.T) {
	f := newFixture(t)
	end := time.Now().Add(72 * time.Hour)
	f.updateTenant(t, func(tn *entity.Tenant) {
		tn.Durum, tn.DemoMu, tn.DemoBitisTarihi = entity.TenantDemo, true, &end
	})

	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ayse@acme.com", Password: "Gizli123"})
	require.NoError(t, err)
	assert.True(t, resp.DemoMu)
	require.NotNil(t, resp.DemoBitisTarihi)
	assert.True(t, resp.DemoBitisTarihi.Equal(end))
}

// Las cuentas importadas con SHA-256 siguen entrando con el hasher encadenado.
func TestLogin_HashHeredado(t *testing.T) {
	store := memrepo.New()
	tenant := store.AddTenant("ESKI", "Eski Firma")
	legacy, _ := password.LegacySHA256{}.Hash("admin")
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		TenantID: tenant.ID, Email: "admin@eski.com", PasswordHash: legacy, Rol: entity.RoleTenantAdmin, Aktif: true,
	}))
	uc := NewAuthUseCase(store.Users(), store.Tenants(), store.Modules(),
		password.Chain{password.NewBcrypt(bcrypt.MinCost), password.LegacySHA256{}},
		JWTConfig{Secret: testSecret, ExpMinutes: 60})

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@eski.com", Password: "admin"})
	require.NoError(t, err)
	assert.Empty(t, resp.AktifModuller)
	assert.NotNil(t, resp.AktifModuller, "la lista vacía viaja como [] y no como null")
}

func TestLogin_ErrorDeInfraestructura(t *testing.T) {
	f := newFixture(t)
	f.store.Fail = assert.AnError

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ayse@acme.com", Password: "Gizli123"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateToken
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateToken(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ayse@acme.com", Password: "Gizli123"})
	require.NoError(t, err)

	id, ok := f.uc.ValidateToken(resp.Token)
	assert.True(t, ok)
	assert.Equal(t, f.user.ID, id)

	for _, bad := range []string{"", "   ", "abc.def.ghi", resp.Token + "x"} {
		_, ok := f.uc.ValidateToken(bad)
		assert.False(t, ok, bad)
	}

	expired, err := jwt.Generate(testSecret, f.user.ID, f.tenant.ID, "User", "erpcrm-test", -1)
	require.NoError(t, err)
	_, ok = f.uc.ValidateToken(expired)
	assert.False(t, ok, "un token vencido no es válido")
}
