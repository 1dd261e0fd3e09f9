package viewmodel

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/client"
)

var ctx = context.Background()

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCariAPI struct {
	rows      []dto.CariResponse
	listCalls int
	queries   []string
	deleted   []int64
	err       error
}

func (f *fakeCariAPI) ListCari(context.Context) ([]dto.CariResponse, error) {
	f.listCalls++
	return f.rows, f.err
}

func (f *fakeCariAPI) SearchCari(_ context.Context, q string) ([]dto.CariResponse, error) {
	f.queries = append(f.queries, q)
	var out []dto.CariResponse
	for _, r := range f.rows {
		if r.CariKodu == q {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeCariAPI) DeleteCari(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func cariFixture() *fakeCariAPI {
	return &fakeCariAPI{rows: []dto.CariResponse{
		{ID: 1, CariKodu: "C1", CariAdi: "Acme", CariTip: 0},
		{ID: 2, CariKodu: "C2", CariAdi: "Beta", CariTip: 1},
		{ID: 3, CariKodu: "C3", CariAdi: "Gama", CariTip: 2},
	}}
}

func always(answer bool) (Confirmer, *[]string) {
	var asked []string
	return func(title, message string) bool {
		asked = append(asked, title+"|"+message)
		return answer
	}, &asked
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestCariList_LoadYFormato(t *testing.T) {
	api := cariFixture()
	vm := NewCariList(api, nil)

	var props []string
	vm.OnChange(func(p string) { props = append(props, p) })

	require.NoError(t, vm.Load(ctx))
	items := vm.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Müşteri", items[0].TipText)
	assert.Equal(t, "Tedarikçi", items[1].TipText)
	assert.Equal(t, "Her İkisi", items[2].TipText)
	assert.False(t, vm.IsLoading())
	assert.Contains(t, props, PropItems)
}

func TestCariList_BusquedaEnBlancoRecarga(t *testing.T) {
	api := cariFixture()
	vm := NewCariList(api, nil)
	require.NoError(t, vm.Load(ctx))

	require.NoError(t, vm.SetSearchText(ctx, "C2"))
	require.Len(t, vm.Items(), 1)
	assert.Equal(t, []string{"C2"}, api.queries)
	assert.Equal(t, "C2", vm.SearchText())

	require.NoError(t, vm.SetSearchText(ctx, "   "))
	assert.Len(t, vm.Items(), 3)
	assert.Equal(t, 2, api.listCalls, "un texto en blanco vuelve a pedir el listado completo")
}

func TestCariList_ComandosRequierenSeleccion(t *testing.T) {
	api := cariFixture()
	confirm, asked := always(true)
	vm := NewCariList(api, confirm)
	require.NoError(t, vm.Load(ctx))

	assert.False(t, vm.CanEdit())
	assert.False(t, vm.CanDelete())
	ok, err := vm.Delete(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, *asked)

	assert.False(t, vm.Select(99))
	require.True(t, vm.Select(2))
	assert.True(t, vm.CanEdit())
	sel, ok := vm.Selected()
	require.True(t, ok)
	assert.Equal(t, "Beta", sel.CariAdi)

	vm.ClearSelection()
	assert.False(t, vm.CanDelete())
}

func TestCariList_BorradoConfirmado(t *testing.T) {
	api := cariFixture()
	confirm, asked := always(true)
	vm := NewCariList(api, confirm)
	require.NoError(t, vm.Load(ctx))
	require.True(t, vm.Select(2))

	ok, err := vm.Delete(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int64{2}, api.deleted)
	assert.Equal(t, []string{"Silme Onayı|'Beta' silinecek. Emin misiniz?"}, *asked)
	assert.Len(t, vm.Items(), 2)
	assert.False(t, vm.CanDelete(), "tras borrar no queda selección")
	assert.Equal(t, "Cari başarıyla silindi.", vm.InfoMessage())
}

func TestCariList_BorradoRechazado(t *testing.T) {
	api := cariFixture()
	confirm, _ := always(false)
	vm := NewCariList(api, confirm)
	require.NoError(t, vm.Load(ctx))
	require.True(t, vm.Select(1))

	ok, err := vm.Delete(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, api.deleted)
	assert.Len(t, vm.Items(), 3)

	// Sin Confirmer tampoco se borra.
	vm = NewCariList(api, nil)
	require.NoError(t, vm.Load(ctx))
	require.True(t, vm.Select(1))
	ok, _ = vm.Delete(ctx)
	assert.False(t, ok)
}

func TestCariList_Errores(t *testing.T) {
	api := cariFixture()
	confirm, _ := always(true)
	vm := NewCariList(api, confirm)
	require.NoError(t, vm.Load(ctx))
	require.True(t, vm.Select(1))

	api.err = &client.APIError{Status: http.StatusBadRequest, Message: "Bu cariye ait faturalar bulunduğu için silinemez."}
	ok, err := vm.Delete(ctx)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Silme işlemi sırasında hata oluştu: Bu cariye ait faturalar bulunduğu için silinemez.", vm.ErrorMessage())
	assert.Len(t, vm.Items(), 3)

	api.err = errors.New("bağlantı yok")
	require.Error(t, vm.Load(ctx))
	assert.Equal(t, "Cariler yüklenirken hata oluştu: bağlantı yok", vm.ErrorMessage())
	assert.Len(t, vm.Items(), 3, "un error conserva las filas anteriores")

	api.err = nil
	require.NoError(t, vm.Load(ctx))
	assert.Empty(t, vm.ErrorMessage(), "una carga correcta limpia el error")
}

type fakeFaturaAPI struct{ rows []dto.FaturaListItem }

func (f *fakeFaturaAPI) ListFatura(context.Context) ([]dto.FaturaListItem, error) { return f.rows, nil }

func (f *fakeFaturaAPI) SearchFatura(context.Context, string) ([]dto.FaturaListItem, error) {
	return f.rows, nil
}

func (f *fakeFaturaAPI) DeleteFatura(context.Context, int64) error { return nil }

func TestFaturaList_Formato(t *testing.T) {
	api := &fakeFaturaAPI{rows: []dto.FaturaListItem{
		{ID: 1, FaturaNo: "F-1", FaturaTipi: "Satis", Durum: "Onaylandi", GenelToplam: decimal.RequireFromString("1234.5")},
		{ID: 2, FaturaNo: "F-2", FaturaTipi: "Alis", Durum: "Iptal"},
	}}
	vm := NewFaturaList(api, nil)
	require.NoError(t, vm.Load(ctx))

	items := vm.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Satış", items[0].TipText)
	assert.Equal(t, "Onaylandı", items[0].DurumText)
	assert.Equal(t, "1.234,50 ₺", items[0].ToplamText)
	assert.Equal(t, "Alış", items[1].TipText)
	assert.Equal(t, "İptal", items[1].DurumText)
}

type fakeStokAPI struct{ rows []dto.StokResponse }

func (f *fakeStokAPI) ListStok(context.Context) ([]dto.StokResponse, error) { return f.rows, nil }

func (f *fakeStokAPI) SearchStok(context.Context, string) ([]dto.StokResponse, error) {
	return nil, nil
}

func (f *fakeStokAPI) DeleteStok(context.Context, int64) error { return nil }

func TestStokList_Kritik(t *testing.T) {
	d := decimal.RequireFromString
	api := &fakeStokAPI{rows: []dto.StokResponse{
		{ID: 1, StokAdi: "Un", StokMiktari: d("5"), MinStokMiktari: d("5")},
		{ID: 2, StokAdi: "Şeker", StokMiktari: d("12"), MinStokMiktari: d("5")},
	}}
	vm := NewStokList(api, nil)
	require.NoError(t, vm.Load(ctx))
	items := vm.Items()
	assert.True(t, items[0].Kritik)
	assert.False(t, items[1].Kritik)

	require.NoError(t, vm.SetSearchText(ctx, "yok"))
	assert.Empty(t, vm.Items())
}

// ──────────────────────────────────────────────────────────────────────────────
// Textos de enums
// ──────────────────────────────────────────────────────────────────────────────

func TestTextos(t *testing.T) {
	assert.Equal(t, "Bilinmiyor", CariTipText(7))
	assert.Equal(t, "Taslak", FaturaDurumText("Taslak"))
	assert.Equal(t, "Bilinmiyor", FaturaTipiText("x"))
	assert.Equal(t, "Boş", MasaDurumText(0))
	assert.Equal(t, "Dolu", MasaDurumText(1))
	assert.Equal(t, "Rezerve", MasaDurumText(2))
	assert.Equal(t, "Açık", AdisyonDurumText("Acik"))
	assert.Equal(t, "Kapalı", AdisyonDurumText("Kapali"))
}

func TestMoneyText(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00 ₺",
		"999.999":   "1.000,00 ₺",
		"1234567.5": "1.234.567,50 ₺",
		"-2500.125": "-2.500,13 ₺",
		"-0.001":    "0,00 ₺",
	}
	for in, want := range cases {
		assert.Equal(t, want, MoneyText(decimal.RequireFromString(in)), in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

type fakeDashboardAPI struct {
	res *dto.DashboardStatsResponse
	err error
}

func (f fakeDashboardAPI) DashboardStats(context.Context) (*dto.DashboardStatsResponse, error) {
	return f.res, f.err
}

func TestDashboard_Load(t *testing.T) {
	vm := NewDashboard(fakeDashboardAPI{res: &dto.DashboardStatsResponse{
		CustomerCount: 4, ProductCount: 10, InvoiceCount: 3, LowStockCount: 2,
		TotalRevenue:   decimal.RequireFromString("277.2"),
		RecentInvoices: []dto.RecentInvoice{{ID: 9, FaturaNo: "F-9", FaturaTipi: "Satis", Durum: "Taslak", CariAdi: "Acme"}},
	}})
	assert.Equal(t, "0,00 ₺", vm.Stats().ToplamCiroText)

	require.NoError(t, vm.Load(ctx))
	s := vm.Stats()
	assert.Equal(t, 4, s.ToplamMusteri)
	assert.Equal(t, 10, s.ToplamUrun)
	assert.Equal(t, 3, s.ToplamFatura)
	assert.Equal(t, 2, s.KritikStok)
	assert.Equal(t, "277,20 ₺", s.ToplamCiroText)
	require.Len(t, s.SonFaturalar, 1)
	assert.Equal(t, "Satış", s.SonFaturalar[0].TipText)
}

func TestDashboard_Error(t *testing.T) {
	vm := NewDashboard(fakeDashboardAPI{err: errors.New("kapalı")})
	require.Error(t, vm.Load(ctx))
	assert.Contains(t, vm.ErrorMessage(), "kapalı")
	assert.Equal(t, 0, vm.Stats().ToplamMusteri)
}

// ──────────────────────────────────────────────────────────────────────────────
// Main y Login
// ──────────────────────────────────────────────────────────────────────────────

func session(rol string, demoEnd *time.Time, modules ...string) *client.Session {
	s := client.NewSession()
	s.Start(&dto.LoginResponse{
		UserID: 1, AdSoyad: "Ayşe Yılmaz", Rol: rol, TenantID: 3, FirmaAdi: "Acme Ltd.",
		Token: "tok", AktifModuller: modules, DemoMu: demoEnd != nil, DemoBitisTarihi: demoEnd,
	})
	return s
}

func screens(menu []MenuItem) []string {
	out := make([]string, 0, len(menu))
	for _, it := range menu {
		out = append(out, it.Screen)
	}
	return out
}

func TestMain_MenuSegunModulosYRol(t *testing.T) {
	m := NewMain(session("User", nil, "FATURA", "CARI"), nil, nil)
	assert.Equal(t, []string{ScreenHome, "CARI", "FATURA"}, screens(m.Menu()))
	assert.Equal(t, "Acme Ltd.", m.FirmaAdi())
	assert.Equal(t, "Ayşe Yılmaz", m.KullaniciAdi())
	assert.Empty(t, m.DemoBilgisi())

	admin := NewMain(session("TenantAdmin", nil, "POS", "CRM", "RAPORLAMA"), nil, nil)
	assert.Equal(t, []string{ScreenHome, "POS", "CRM", "RAPORLAMA", ScreenSettings}, screens(admin.Menu()))
}

func TestMain_DemoBanner(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := now.Add(14 * 24 * time.Hour)
	m := NewMain(session("User", &end, "CARI"), func() time.Time { return now }, nil)
	assert.Equal(t, "Demo - 14 gün kaldı", m.DemoBilgisi())
}

func TestMain_NavigateYLogout(t *testing.T) {
	s := session("User", nil, "CARI")
	loggedOut := false
	m := NewMain(s, nil, func() { loggedOut = true })

	assert.Equal(t, ScreenHome, m.Current())
	assert.True(t, m.Navigate("CARI"))
	assert.Equal(t, "CARI", m.Current())
	assert.False(t, m.Navigate("STOK"), "un módulo inactivo no es navegable")
	assert.False(t, m.Navigate(ScreenSettings))
	assert.Equal(t, "CARI", m.Current())

	m.Logout()
	assert.True(t, loggedOut)
	assert.False(t, s.Active())
	assert.Empty(t, m.Menu())
}

type fakeAuth struct {
	err   error
	calls int
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (*dto.LoginResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.LoginResponse{Email: email, Token: "tok"}, nil
}

func TestLogin_Flujo(t *testing.T) {
	api := &fakeAuth{}
	vm := NewLogin(api)
	assert.False(t, vm.CanLogin())

	_, ok := vm.Submit(ctx)
	assert.False(t, ok)
	assert.Equal(t, msgLoginRequired, vm.ErrorMessage())
	assert.Equal(t, 0, api.calls)

	vm.SetEmail("  ayse@acme.com ")
	vm.SetPassword("Gizli123")
	assert.True(t, vm.CanLogin())

	api.err = &client.APIError{Status: http.StatusUnauthorized}
	_, ok = vm.Submit(ctx)
	assert.False(t, ok)
	assert.Equal(t, msgLoginFailed, vm.ErrorMessage())

	api.err = errors.New("dial tcp: connection refused")
	_, ok = vm.Submit(ctx)
	assert.False(t, ok)
	assert.Equal(t, msgLoginError, vm.ErrorMessage())

	api.err = nil
	resp, ok := vm.Submit(ctx)
	require.True(t, ok)
	assert.Equal(t, "ayse@acme.com", resp.Email)
	assert.Empty(t, vm.ErrorMessage())
	assert.False(t, vm.CanLogin(), "la contraseña se borra tras el login")
}
