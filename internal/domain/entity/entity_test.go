package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Fatura
// ──────────────────────────────────────────────────────────────────────────────

func TestFatura_HesaplaToplamlar(t *testing.T) {
	f := &Fatura{Satirlar: []*FaturaSatiri{
		{Miktar: d("2"), BirimFiyat: d("100"), KdvOrani: 18, IndirimOrani: d("10")},
		{Miktar: d("1.5"), BirimFiyat: d("40"), KdvOrani: 8},
	}}
	f.HesaplaToplamlar()

	l1 := f.Satirlar[0]
	assert.True(t, l1.IndirimTutar.Equal(d("20")), l1.IndirimTutar.String())
	assert.True(t, l1.KdvTutar.Equal(d("32.4")), l1.KdvTutar.String())
	assert.True(t, l1.ToplamTutar.Equal(d("212.4")), l1.ToplamTutar.String())
	assert.Equal(t, 1, l1.SiraNo)

	l2 := f.Satirlar[1]
	assert.True(t, l2.ToplamTutar.Equal(d("64.8")), l2.ToplamTutar.String())
	assert.Equal(t, 2, l2.SiraNo)

	assert.True(t, f.AraToplam.Equal(d("260")), f.AraToplam.String())
	assert.True(t, f.IndirimToplam.Equal(d("20")))
	assert.True(t, f.KdvToplam.Equal(d("37.2")), f.KdvToplam.String())
	assert.True(t, f.GenelToplam.Equal(d("277.2")), f.GenelToplam.String())
}

func TestFatura_Transiciones(t *testing.T) {
	f := &Fatura{Durum: FaturaTaslak}
	assert.True(t, f.Deletable())
	assert.True(t, f.CanApprove())
	assert.True(t, f.CanCancel())

	f.Durum = FaturaOnaylandi
	assert.False(t, f.Deletable(), "una factura aprobada no se borra")
	assert.False(t, f.CanApprove())
	assert.True(t, f.CanCancel())

	f.Durum = FaturaIptal
	assert.True(t, f.Deletable())
	assert.False(t, f.CanCancel())
}

func TestFaturaDurum_StringYDisplay(t *testing.T) {
	assert.Equal(t, "Onaylandi", FaturaOnaylandi.String())
	assert.Equal(t, "Onaylandı", FaturaOnaylandi.Display())
	got, ok := ParseFaturaDurum("Iptal")
	assert.True(t, ok)
	assert.Equal(t, FaturaIptal, got)
	_, ok = ParseFaturaDurum("x")
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tenant / Role / ModuleSet
// ──────────────────────────────────────────────────────────────────────────────

func TestTenant_CanSignIn(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(72 * time.Hour)

	assert.True(t, (&Tenant{Durum: TenantAktif}).CanSignIn(now))
	assert.False(t, (&Tenant{Durum: TenantPasif}).CanSignIn(now))
	assert.False(t, (&Tenant{Durum: TenantAskida}).CanSignIn(now))
	assert.False(t, (&Tenant{Durum: TenantDemo, DemoMu: true, DemoBitisTarihi: &past}).CanSignIn(now))

	demo := &Tenant{Durum: TenantDemo, DemoMu: true, DemoBitisTarihi: &future}
	assert.True(t, demo.CanSignIn(now))
	assert.Equal(t, 3, demo.DemoDaysLeft(now))
}

func TestRole(t *testing.T) {
	r, ok := ParseRole("TenantAdmin")
	assert.True(t, ok)
	assert.True(t, r.IsAdmin())
	assert.False(t, RoleGarson.IsAdmin())

	_, ok = ParseRole("tenantadmin")
	assert.False(t, ok, "los roles distinguen mayúsculas")
}

func TestModuleSet(t *testing.T) {
	s := NewModuleSet(ModuleStok, ModuleCari)
	assert.True(t, s.Has(ModuleCari))
	assert.False(t, s.Has(ModulePOS))
	assert.Equal(t, []ModuleCode{ModuleCari, ModuleStok}, s.Codes())
}

func TestParseCariTip(t *testing.T) {
	for in, want := range map[string]CariTip{"0": CariMusteri, "tedarikci": CariTedarikci, "HerIkisi": CariHerIkisi} {
		got, ok := ParseCariTip(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseCariTip("9")
	assert.False(t, ok)
	assert.Equal(t, "Tedarikçi", CariTedarikci.Display())
}

func TestStokKarti_LowStock(t *testing.T) {
	assert.True(t, (&StokKarti{StokMiktari: d("5"), MinStokMiktari: d("5")}).LowStock())
	assert.False(t, (&StokKarti{StokMiktari: d("6"), MinStokMiktari: d("5")}).LowStock())
}

func TestAdisyon_HesaplaToplamlar(t *testing.T) {
	a := &Adisyon{Satirlar: []*AdisyonSatiri{
		{Miktar: d("3"), BirimFiyat: d("25")},
		{Miktar: d("1"), BirimFiyat: d("200"), IndirimOrani: d("50")},
	}}
	a.HesaplaToplamlar()
	assert.True(t, a.AraToplam.Equal(d("275")), a.AraToplam.String())
	assert.True(t, a.IndirimToplam.Equal(d("100")))
	assert.True(t, a.GenelToplam.Equal(d("175")))
}
