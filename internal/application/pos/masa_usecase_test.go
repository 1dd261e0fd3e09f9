package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/testutil/memrepo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Masa
// ──────────────────────────────────────────────────────────────────────────────

func TestMasa_CreateConDefaults(t *testing.T) {
	uc := NewMasaUseCase(memrepo.New().Masalar())

	got, err := uc.Create(ctx, 1, dto.MasaRequest{MasaNo: " 12 ", Bolum: "Teras"})
	require.NoError(t, err)
	assert.Equal(t, "12", got.MasaNo)
	assert.Equal(t, entity.DefaultKapasite, got.Kapasite)
	assert.Equal(t, "Boş", got.DurumText)
	assert.True(t, got.Aktif)

	_, err = uc.Create(ctx, 1, dto.MasaRequest{MasaNo: "12"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "Bu masa numarası zaten kullanılıyor.", err.Error())

	_, err = uc.Create(ctx, 1, dto.MasaRequest{})
	assert.Equal(t, "Masa numarası gereklidir.", err.Error())
}

func TestMasa_ListBos(t *testing.T) {
	uc := NewMasaUseCase(memrepo.New().Masalar())
	dolu := int(entity.MasaDolu)
	pasif := false
	_, _ = uc.Create(ctx, 1, dto.MasaRequest{MasaNo: "1", Bolum: "Salon"})
	_, _ = uc.Create(ctx, 1, dto.MasaRequest{MasaNo: "2", Bolum: "Salon", Durum: &dolu})
	_, _ = uc.Create(ctx, 1, dto.MasaRequest{MasaNo: "3", Bolum: "Bahçe", Aktif: &pasif})

	bos, err := uc.ListBos(ctx, 1)
	require.NoError(t, err)
	require.Len(t, bos, 1, "solo mesas libres y activas")
	assert.Equal(t, "1", bos[0].MasaNo)

	all, err := uc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Bahçe", all[0].Bolum, "ordenadas por sección")
}

func TestMasa_Update(t *testing.T) {
	uc := NewMasaUseCase(memrepo.New().Masalar())
	m, _ := uc.Create(ctx, 1, dto.MasaRequest{MasaNo: "1"})
	_, _ = uc.Create(ctx, 1, dto.MasaRequest{MasaNo: "2"})

	kap := 8
	got, err := uc.Update(ctx, 1, m.ID, dto.MasaRequest{MasaNo: "1", MasaAdi: "Pencere", Kapasite: &kap})
	require.NoError(t, err)
	assert.Equal(t, 8, got.Kapasite)
	assert.Equal(t, "Pencere", got.MasaAdi)

	_, err = uc.Update(ctx, 1, m.ID, dto.MasaRequest{MasaNo: "2"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, 2, m.ID, dto.MasaRequest{MasaNo: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Masa bulunamadı.", err.Error())
}

func TestMasa_DeleteConAdisyon(t *testing.T) {
	f := newFixture(t)
	uc := NewMasaUseCase(f.store.Masalar())
	a := f.ac(t)
	_, err := f.uc.Iptal(ctx, f.tenant, a.ID)
	require.NoError(t, err)

	err = uc.Delete(ctx, f.tenant, f.masa.ID)
	assert.ErrorIs(t, err, domain.ErrReferenced)
	assert.Equal(t, "Bu masaya ait adisyonlar bulunduğu için silinemez.", err.Error())

	require.NoError(t, uc.Delete(ctx, f.tenant, f.pasif.ID))
}
