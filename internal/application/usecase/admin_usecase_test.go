package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/testutil/memrepo"
	"github.com/jhoicas/erpcrm-api/pkg/password"
)

func newAdmin() (*usecase.AdminUseCase, *memrepo.Store) {
	store := memrepo.New()
	uc := usecase.NewAdminUseCase(store.Tenants(), store.Modules(), store.Subscriptions(), store.Users(), password.NewBcrypt(bcrypt.MinCost))
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Firmas
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmin_CreateTenant(t *testing.T) {
	uc, _ := newAdmin()

	got, err := uc.CreateTenant(ctx, dto.TenantRequest{FirmaKodu: " acme ", FirmaAdi: "Acme Ltd."})
	require.NoError(t, err)
	assert.Equal(t, "ACME", got.FirmaKodu)
	assert.Equal(t, "Aktif", got.DurumText)
	assert.False(t, got.DemoMu)

	_, err = uc.CreateTenant(ctx, dto.TenantRequest{FirmaKodu: "ACME", FirmaAdi: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "Bu firma kodu zaten kullanılıyor.", err.Error())

	demo, err := uc.CreateTenant(ctx, dto.TenantRequest{FirmaKodu: "DEMO", FirmaAdi: "Demo Firma", DemoGun: 14})
	require.NoError(t, err)
	assert.Equal(t, "Demo", demo.DurumText)
	require.NotNil(t, demo.DemoBitisTarihi)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), *demo.DemoBitisTarihi, time.Minute)

	list, err := uc.ListTenants(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAdmin_UpdateTenantDurum(t *testing.T) {
	uc, _ := newAdmin()
	tn, _ := uc.CreateTenant(ctx, dto.TenantRequest{FirmaKodu: "ACME", FirmaAdi: "Acme"})

	_, err := uc.UpdateTenantDurum(ctx, tn.ID, dto.TenantDurumRequest{Durum: int(entity.TenantDemo)})
	assert.Equal(t, "demoBitisTarihi", field(t, err), "demo sin fecha de fin")

	end := time.Now().Add(7 * 24 * time.Hour)
	got, err := uc.UpdateTenantDurum(ctx, tn.ID, dto.TenantDurumRequest{Durum: int(entity.TenantDemo), DemoBitisTarihi: &end})
	require.NoError(t, err)
	assert.True(t, got.DemoMu)

	got, err = uc.UpdateTenantDurum(ctx, tn.ID, dto.TenantDurumRequest{Durum: int(entity.TenantAskida)})
	require.NoError(t, err)
	assert.Equal(t, "Askida", got.DurumText)
	assert.False(t, got.DemoMu)
	assert.Nil(t, got.DemoBitisTarihi)

	_, err = uc.UpdateTenantDurum(ctx, tn.ID, dto.TenantDurumRequest{Durum: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateTenantDurum(ctx, 9999, dto.TenantDurumRequest{Durum: 1})
	assert.Equal(t, "Firma bulunamadı.", err.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Módulos
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmin_SetTenantModule(t *testing.T) {
	uc, store := newAdmin()
	tn := store.AddTenant("ACME", "Acme", entity.ModuleCari)
	svc := usecase.NewModuleService(store.Modules())

	has, err := svc.HasActiveModule(ctx, tn.ID, entity.ModulePOS)
	require.NoError(t, err)
	assert.False(t, has)

	list, err := uc.SetTenantModule(ctx, tn.ID, dto.TenantModuleRequest{ModulKodu: "pos", Aktif: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "CARI", list[0].ModulKodu)
	assert.Equal(t, "POS", list[1].ModulKodu)

	has, err = svc.HasActiveModule(ctx, tn.ID, entity.ModulePOS)
	require.NoError(t, err)
	assert.True(t, has)

	_, err = uc.SetTenantModule(ctx, tn.ID, dto.TenantModuleRequest{ModulKodu: "CARI", Aktif: false})
	require.NoError(t, err)
	set, err := svc.ActiveModules(ctx, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.ModuleCode{entity.ModulePOS}, set.Codes())

	_, err = uc.SetTenantModule(ctx, tn.ID, dto.TenantModuleRequest{ModulKodu: "MUHASEBE", Aktif: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Modül bulunamadı.", err.Error())
}

func TestModuleService_ParametrosObligatorios(t *testing.T) {
	svc := usecase.NewModuleService(memrepo.New().Modules())
	_, err := svc.HasActiveModule(ctx, 0, entity.ModuleCari)
	assert.Error(t, err)
	_, err = svc.HasActiveModule(ctx, 1, "")
	assert.Error(t, err)
}

func TestAdmin_ListModules(t *testing.T) {
	uc, _ := newAdmin()
	list, err := uc.ListModules(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(entity.KnownModules))
}

// ──────────────────────────────────────────────────────────────────────────────
// Planes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmin_CreatePlan(t *testing.T) {
	uc, _ := newAdmin()

	p, err := uc.CreatePlan(ctx, dto.PlanRequest{PlanKodu: "basic", PlanAdi: "Temel", AylikUcret: d("499.90"), Moduller: []string{"cari", "STOK"}})
	require.NoError(t, err)
	assert.Equal(t, "BASIC", p.PlanKodu)
	assert.Len(t, p.ModuleIDs, 2)
	assert.True(t, p.Aktif)

	_, err = uc.CreatePlan(ctx, dto.PlanRequest{PlanKodu: "PRO", PlanAdi: "Pro", Moduller: []string{"UCAK"}})
	assert.Equal(t, "Bilinmeyen modül: UCAK", err.Error())
	assert.Equal(t, "moduller", field(t, err))

	empty, err := uc.CreatePlan(ctx, dto.PlanRequest{PlanKodu: "FREE", PlanAdi: "Ücretsiz"})
	require.NoError(t, err)
	assert.NotNil(t, empty.ModuleIDs)

	plans, err := uc.ListPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestAdmin_ListSubscriptions(t *testing.T) {
	uc, store := newAdmin()
	tn := store.AddTenant("ACME", "Acme")
	store.AddSubscription(&entity.TenantSubscription{TenantID: tn.ID, SubscriptionPlanID: 1, BaslangicTarihi: time.Now()})

	list, err := uc.ListSubscriptions(ctx, tn.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.ListSubscriptions(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmin_CreateUser(t *testing.T) {
	uc, store := newAdmin()
	tn := store.AddTenant("ACME", "Acme")

	u, err := uc.CreateUser(ctx, tn.ID, dto.UserRequest{Email: " Kasa@Acme.com ", Password: "123456", AdSoyad: "Kasa 1", Rol: "Kasiyer"})
	require.NoError(t, err)
	assert.Equal(t, "kasa@acme.com", u.Email)
	assert.Equal(t, "Kasiyer", u.Rol)

	stored, err := store.Users().GetByEmail(ctx, "kasa@acme.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "123456", stored.PasswordHash)
	assert.NoError(t, password.NewBcrypt(bcrypt.MinCost).Verify(stored.PasswordHash, "123456"))

	def, err := uc.CreateUser(ctx, tn.ID, dto.UserRequest{Email: "user@acme.com", Password: "123456", AdSoyad: "U"})
	require.NoError(t, err)
	assert.Equal(t, "User", def.Rol)

	_, err = uc.CreateUser(ctx, tn.ID, dto.UserRequest{Email: "KASA@acme.com", Password: "x", AdSoyad: "Y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "Bu e-posta adresi zaten kayıtlı.", err.Error())

	_, err = uc.CreateUser(ctx, tn.ID, dto.UserRequest{Email: "z@acme.com", Password: "123456", Rol: "Patron"})
	assert.Equal(t, "rol", field(t, err))

	users, err := uc.ListUsers(ctx, tn.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
