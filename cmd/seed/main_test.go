package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/erpcrm-api/internal/application/pos"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/testutil/memrepo"
	"github.com/jhoicas/erpcrm-api/pkg/config"
	"github.com/jhoicas/erpcrm-api/pkg/logger"
	"github.com/jhoicas/erpcrm-api/pkg/password"
)

func newTestSeeder(store *memrepo.Store) *seeder {
	return &seeder{
		admin: usecase.NewAdminUseCase(store.Tenants(), store.Modules(), store.Subscriptions(), store.Users(),
			password.NewBcrypt(bcrypt.MinCost)),
		tenants: store.Tenants(),
		users:   store.Users(),
		cari:    usecase.NewCariUseCase(store.Cariler()),
		stok:    usecase.NewStokUseCase(store.Stoklar()),
		masa:    pos.NewMasaUseCase(store.Masalar()),
		adisyon: pos.NewAdisyonUseCase(store.TxRunner(), store.Adisyonlar()),
		log:     logger.Nop(),
	}
}

func TestSeeder_CreaFirmaDemoCompleta(t *testing.T) {
	ctx := context.Background()
	store := memrepo.New()
	s := newTestSeeder(store)

	require.NoError(t, s.run(ctx, config.SeedConfig{AdminEmail: "Root@Demo.Local", AdminPassword: "Kok12345"}))

	tenant, err := store.Tenants().GetByFirmaKodu(ctx, "DEMO")
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.True(t, tenant.DemoMu)
	assert.Equal(t, entity.TenantDemo, tenant.Durum)
	require.NotNil(t, tenant.DemoBitisTarihi)

	codes, err := store.Modules().ActiveCodes(ctx, tenant.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.KnownModules, codes)

	root, err := store.Users().GetByEmail(ctx, "root@demo.local")
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, entity.RoleSuperAdmin, root.Rol)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(root.PasswordHash), []byte("Kok12345")))

	demo, err := store.Users().GetByEmail(ctx, demoAdminEmail)
	require.NoError(t, err)
	require.NotNil(t, demo)
	assert.Equal(t, entity.RoleTenantAdmin, demo.Rol)

	cariler, _ := store.Cariler().List(ctx, tenant.ID)
	stoklar, _ := store.Stoklar().List(ctx, tenant.ID)
	masalar, _ := store.Masalar().List(ctx, tenant.ID)
	adisyonlar, _ := store.Adisyonlar().List(ctx, tenant.ID)
	assert.Len(t, cariler, 1)
	assert.Len(t, stoklar, 1)
	assert.Len(t, masalar, 1)
	assert.Len(t, adisyonlar, 1)
}

func TestSeeder_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := memrepo.New()
	s := newTestSeeder(store)
	cfg := config.SeedConfig{AdminEmail: "admin@demo.local"}

	require.NoError(t, s.run(ctx, cfg))
	require.NoError(t, s.run(ctx, cfg), "la segunda ejecución no debe fallar")

	tenant, err := store.Tenants().GetByFirmaKodu(ctx, "DEMO")
	require.NoError(t, err)
	require.NotNil(t, tenant)

	users, err := store.Users().ListByTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	cariler, _ := store.Cariler().List(ctx, tenant.ID)
	assert.Len(t, cariler, 1, "los datos de ejemplo solo se crean con la firma")
}
