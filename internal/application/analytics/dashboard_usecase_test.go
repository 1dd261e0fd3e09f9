package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erpcrm-api/internal/application/analytics"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/testutil/memrepo"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// GetStats
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_GetStats(t *testing.T) {
	ctx := context.Background()
	store := memrepo.New()

	require.NoError(t, store.Cariler().Create(ctx, &entity.Cari{TenantID: 1, CariKodu: "C1", CariAdi: "Acme", Aktif: true}))
	require.NoError(t, store.Cariler().Create(ctx, &entity.Cari{TenantID: 1, CariKodu: "C2", CariAdi: "Pasif", Aktif: false}))
	require.NoError(t, store.Cariler().Create(ctx, &entity.Cari{TenantID: 2, CariKodu: "C1", CariAdi: "Otra firma", Aktif: true}))

	require.NoError(t, store.Stoklar().Create(ctx, &entity.StokKarti{TenantID: 1, StokKodu: "S1", StokAdi: "Çay", StokMiktari: d("2"), MinStokMiktari: d("5"), Aktif: true}))
	require.NoError(t, store.Stoklar().Create(ctx, &entity.StokKarti{TenantID: 1, StokKodu: "S2", StokAdi: "Kahve", StokMiktari: d("50"), MinStokMiktari: d("5"), Aktif: true}))
	require.NoError(t, store.Stoklar().Create(ctx, &entity.StokKarti{TenantID: 1, StokKodu: "S3", StokAdi: "Eski", Aktif: false}))

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		tipi := entity.FaturaSatis
		if i == 0 {
			tipi = entity.FaturaAlis
		}
		require.NoError(t, store.Faturas().Create(ctx, &entity.Fatura{
			TenantID:     1,
			FaturaNo:     fmt.Sprintf("F-%d", i),
			FaturaTarihi: base.AddDate(0, 0, i),
			FaturaTipi:   tipi,
			GenelToplam:  d("100.005"),
		}))
	}

	uc := analytics.NewDashboardUseCase(store.Dashboard())
	stats, err := uc.GetStats(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.CustomerCount, "solo cuentas activas de la firma")
	assert.Equal(t, 2, stats.ProductCount)
	assert.Equal(t, 7, stats.InvoiceCount)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.True(t, stats.TotalRevenue.Equal(d("600.03")), "solo ventas, redondeado: %s", stats.TotalRevenue)

	require.Len(t, stats.RecentInvoices, 5)
	assert.Equal(t, "F-6", stats.RecentInvoices[0].FaturaNo, "la más reciente primero")
	assert.Equal(t, "Satis", stats.RecentInvoices[0].FaturaTipi)
	assert.Equal(t, "Taslak", stats.RecentInvoices[0].Durum)
}

func TestDashboard_FirmaVacia(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memrepo.New().Dashboard())
	stats, err := uc.GetStats(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, stats.InvoiceCount)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.NotNil(t, stats.RecentInvoices)
	assert.Empty(t, stats.RecentInvoices)
}

func TestDashboard_ErrorDeRepositorio(t *testing.T) {
	store := memrepo.New()
	store.Fail = assert.AnError
	uc := analytics.NewDashboardUseCase(store.Dashboard())

	_, err := uc.GetStats(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "dashboard: cari")
}
