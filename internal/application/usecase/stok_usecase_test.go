package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/testutil/memrepo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stok
// ──────────────────────────────────────────────────────────────────────────────

func TestStok_CreateConDefaults(t *testing.T) {
	uc := usecase.NewStokUseCase(memrepo.New().Stoklar())

	got, err := uc.Create(ctx, 1, dto.StokRequest{
		StokKodu: "S1", StokAdi: "Çay", SatisFiyati: d("12.50"), StokMiktari: d("40"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultBirim, got.Birim)
	assert.Equal(t, entity.DefaultKdvOrani, got.KdvOrani)
	assert.True(t, got.StokMiktari.Equal(d("40")), "la existencia inicial se toma del alta")
	assert.True(t, got.Aktif)

	sifir := 0
	got, err = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S2", StokAdi: "Ekmek", Birim: "Kg", KdvOrani: &sifir})
	require.NoError(t, err)
	assert.Equal(t, "Kg", got.Birim)
	assert.Equal(t, 0, got.KdvOrani, "una tasa 0 explícita se respeta")
}

func TestStok_Validaciones(t *testing.T) {
	uc := usecase.NewStokUseCase(memrepo.New().Stoklar())

	_, err := uc.Create(ctx, 1, dto.StokRequest{StokAdi: "Çay"})
	assert.Equal(t, "stokKodu", field(t, err))
	assert.Equal(t, "Stok kodu gereklidir.", err.Error())

	_, err = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S1"})
	assert.Equal(t, "stokAdi", field(t, err))

	_, err = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S1", StokAdi: "Çay", SatisFiyati: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStok_CodigoYBarkodUnicos(t *testing.T) {
	uc := usecase.NewStokUseCase(memrepo.New().Stoklar())
	_, err := uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S1", StokAdi: "Çay", Barkod: "8690000000011"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S1", StokAdi: "Kahve"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "Bu stok kodu zaten kullanılıyor.", err.Error())

	_, err = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S2", StokAdi: "Kahve", Barkod: "8690000000011"})
	assert.Equal(t, "barkod", field(t, err))

	// Sin barkod no hay conflicto entre fichas
	_, err = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S3", StokAdi: "Su"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S4", StokAdi: "Soda"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, 2, dto.StokRequest{StokKodu: "S1", StokAdi: "Çay", Barkod: "8690000000011"})
	assert.NoError(t, err, "otra firma puede repetir código y barkod")
}

func TestStok_UpdateNoTocaExistencia(t *testing.T) {
	uc := usecase.NewStokUseCase(memrepo.New().Stoklar())
	s, _ := uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S1", StokAdi: "Çay", StokMiktari: d("10")})

	got, err := uc.Update(ctx, 1, s.ID, dto.StokRequest{StokKodu: "S1", StokAdi: "Rize Çay", StokMiktari: d("999")})
	require.NoError(t, err)
	assert.Equal(t, "Rize Çay", got.StokAdi)
	assert.True(t, got.StokMiktari.Equal(d("10")))

	read, _ := uc.GetByID(ctx, 1, s.ID)
	assert.True(t, read.StokMiktari.Equal(d("10")))
}

func TestStok_LowStockYBarkod(t *testing.T) {
	uc := usecase.NewStokUseCase(memrepo.New().Stoklar())
	_, _ = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S1", StokAdi: "Çay", StokMiktari: d("3"), MinStokMiktari: d("5")})
	_, _ = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S2", StokAdi: "Kahve", StokMiktari: d("50"), MinStokMiktari: d("5"), Barkod: "123"})
	_, _ = uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S3", StokAdi: "Şeker", StokMiktari: d("5"), MinStokMiktari: d("5"), Kategori: "Gıda"})

	low, err := uc.ListLowStock(ctx, 1)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "S1", low[0].StokKodu, "ordenado por existencia ascendente")

	byKat, err := uc.ListByKategori(ctx, 1, "Gıda")
	require.NoError(t, err)
	require.Len(t, byKat, 1)

	got, err := uc.GetByBarkod(ctx, 1, " 123 ")
	require.NoError(t, err)
	assert.Equal(t, "S2", got.StokKodu)

	_, err = uc.GetByBarkod(ctx, 1, "000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Stok kartı bulunamadı.", err.Error())
}

func TestStok_DeleteConReferencias(t *testing.T) {
	store := memrepo.New()
	uc := usecase.NewStokUseCase(store.Stoklar())
	s, _ := uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S1", StokAdi: "Çay"})
	libre, _ := uc.Create(ctx, 1, dto.StokRequest{StokKodu: "S2", StokAdi: "Kahve"})

	require.NoError(t, store.Faturas().Create(ctx, &entity.Fatura{
		TenantID: 1, FaturaNo: "F-1",
		Satirlar: []*entity.FaturaSatiri{{StokID: s.ID, Miktar: d("1"), BirimFiyat: d("10")}},
	}))

	err := uc.Delete(ctx, 1, s.ID)
	assert.ErrorIs(t, err, domain.ErrReferenced)
	assert.Equal(t, "Bu stok kartına ait işlemler bulunduğu için silinemez.", err.Error())

	require.NoError(t, uc.Delete(ctx, 1, libre.ID))
}
