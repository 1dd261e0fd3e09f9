package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/application/usecase"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/testutil/memrepo"
)

func newCrm(t *testing.T) (*usecase.CrmUseCase, *dto.CrmMusteriResponse) {
	t.Helper()
	store := memrepo.New()
	uc := usecase.NewCrmUseCase(store.Musteriler(), store.Aktiviteler())
	m, err := uc.CreateMusteri(ctx, 1, dto.CrmMusteriRequest{MusteriKodu: "CRM-1", MusteriAdi: "Deniz Yapı", Sektor: "İnşaat"})
	require.NoError(t, err)
	return uc, m
}

// ──────────────────────────────────────────────────────────────────────────────
// Müşteri
// ──────────────────────────────────────────────────────────────────────────────

func TestCrm_MusteriDefaults(t *testing.T) {
	_, m := newCrm(t)
	assert.Equal(t, entity.DefaultMusteriDurumu, m.MusteriDurumu)
	assert.True(t, m.Aktif)
}

func TestCrm_MusteriValidacionesYDuplicado(t *testing.T) {
	uc, m := newCrm(t)

	_, err := uc.CreateMusteri(ctx, 1, dto.CrmMusteriRequest{MusteriAdi: "X"})
	assert.Equal(t, "musteriKodu", field(t, err))

	_, err = uc.CreateMusteri(ctx, 1, dto.CrmMusteriRequest{MusteriKodu: "CRM-2"})
	assert.Equal(t, "Müşteri adı gereklidir.", err.Error())

	_, err = uc.CreateMusteri(ctx, 1, dto.CrmMusteriRequest{MusteriKodu: "CRM-1", MusteriAdi: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.UpdateMusteri(ctx, 1, m.ID, dto.CrmMusteriRequest{MusteriKodu: "CRM-1", MusteriAdi: "Deniz Yapı A.Ş.", MusteriDurumu: "Teklif"})
	require.NoError(t, err)
	assert.Equal(t, "Teklif", got.MusteriDurumu)

	_, err = uc.GetMusteri(ctx, 2, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Müşteri bulunamadı.", err.Error())
}

func TestCrm_SearchMusteri(t *testing.T) {
	uc, _ := newCrm(t)
	_, _ = uc.CreateMusteri(ctx, 1, dto.CrmMusteriRequest{MusteriKodu: "CRM-2", MusteriAdi: "Ege Gıda", FirmaAdi: "Ege Holding"})

	got, err := uc.SearchMusteri(ctx, 1, "holding")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CRM-2", got[0].MusteriKodu)

	got, err = uc.SearchMusteri(ctx, 1, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aktivite
// ──────────────────────────────────────────────────────────────────────────────

func TestCrm_AktiviteCicloDeVida(t *testing.T) {
	uc, m := newCrm(t)
	plan := time.Now().Add(48 * time.Hour)

	a, err := uc.CreateAktivite(ctx, 1, m.ID, dto.CrmAktiviteRequest{AktiviteTipi: "Arama", Baslik: "Teklif takibi", PlanlananTarih: &plan})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAktiviteDurum, a.Durum)
	assert.Equal(t, entity.DefaultOncelik, a.Oncelik)
	assert.Equal(t, "Deniz Yapı", a.MusteriAdi)

	bekleyen, err := uc.ListBekleyen(ctx, 1)
	require.NoError(t, err)
	require.Len(t, bekleyen, 1)

	done, err := uc.Tamamla(ctx, 1, a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TamamlandiAktiviteDurum, done.Durum)
	require.NotNil(t, done.TamamlanmaTarihi)

	// Completar dos veces conserva la primera fecha
	again, err := uc.Tamamla(ctx, 1, a.ID)
	require.NoError(t, err)
	assert.True(t, again.TamamlanmaTarihi.Equal(*done.TamamlanmaTarihi))

	bekleyen, err = uc.ListBekleyen(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, bekleyen)
}

func TestCrm_AktiviteValidaciones(t *testing.T) {
	uc, m := newCrm(t)

	_, err := uc.CreateAktivite(ctx, 1, m.ID, dto.CrmAktiviteRequest{Baslik: "x"})
	assert.Equal(t, "aktiviteTipi", field(t, err))

	_, err = uc.CreateAktivite(ctx, 1, m.ID, dto.CrmAktiviteRequest{AktiviteTipi: "Arama"})
	assert.Equal(t, "Başlık gereklidir.", err.Error())

	_, err = uc.CreateAktivite(ctx, 1, 9999, dto.CrmAktiviteRequest{AktiviteTipi: "Arama", Baslik: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetAktivite(ctx, 1, 9999)
	assert.Equal(t, "Aktivite bulunamadı.", err.Error())
}

func TestCrm_BorrarMusteriBorraAktiviteler(t *testing.T) {
	uc, m := newCrm(t)
	a, err := uc.CreateAktivite(ctx, 1, m.ID, dto.CrmAktiviteRequest{AktiviteTipi: "Toplantı", Baslik: "Demo"})
	require.NoError(t, err)

	list, err := uc.ListAktivite(ctx, 1, m.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.DeleteMusteri(ctx, 1, m.ID))

	_, err = uc.GetAktivite(ctx, 1, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.ListAktivite(ctx, 1, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
