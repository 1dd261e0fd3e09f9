package dto

import "time"

// CrmMusteriRequest body de POST y PUT /api/crm/musteri.
type CrmMusteriRequest struct {
	MusteriKodu       string `json:"musteriKodu" validate:"max=50"`
	MusteriAdi        string `json:"musteriAdi" validate:"max=200"`
	FirmaAdi          string `json:"firmaAdi" validate:"max=200"`
	Telefon           string `json:"telefon" validate:"max=20"`
	Email             string `json:"email" validate:"omitempty,email,max=100"`
	Adres             string `json:"adres" validate:"max=500"`
	Il                string `json:"il" validate:"max=50"`
	Ilce              string `json:"ilce" validate:"max=50"`
	Sektor            string `json:"sektor" validate:"max=100"`
	MusteriKaynagi    string `json:"musteriKaynagi" validate:"max=50"`
	MusteriDurumu     string `json:"musteriDurumu" validate:"max=50"`
	AtananKullaniciID *int64 `json:"atananKullaniciId" validate:"omitempty,gt=0"`
	Not               string `json:"not" validate:"max=2000"`
	Aktif             *bool  `json:"aktif"`
}

// CrmMusteriResponse cliente del CRM.
type CrmMusteriResponse struct {
	ID                int64      `json:"id"`
	TenantID          int64      `json:"tenantId"`
	MusteriKodu       string     `json:"musteriKodu"`
	MusteriAdi        string     `json:"musteriAdi"`
	FirmaAdi          string     `json:"firmaAdi,omitempty"`
	Telefon           string     `json:"telefon,omitempty"`
	Email             string     `json:"email,omitempty"`
	Adres             string     `json:"adres,omitempty"`
	Il                string     `json:"il,omitempty"`
	Ilce              string     `json:"ilce,omitempty"`
	Sektor            string     `json:"sektor,omitempty"`
	MusteriKaynagi    string     `json:"musteriKaynagi,omitempty"`
	MusteriDurumu     string     `json:"musteriDurumu"`
	AtananKullaniciID *int64     `json:"atananKullaniciId"`
	Not               string     `json:"not,omitempty"`
	Aktif             bool       `json:"aktif"`
	OlusturmaTarihi   time.Time  `json:"olusturmaTarihi"`
	GuncellemeTarihi  *time.Time `json:"guncellemeTarihi"`
}

// CrmAktiviteRequest body de POST /api/crm/musteri/:id/aktivite y PUT /api/crm/aktivite/:id.
type CrmAktiviteRequest struct {
	AktiviteTipi       string     `json:"aktiviteTipi" validate:"max=50"`
	Baslik             string     `json:"baslik" validate:"max=200"`
	Aciklama           string     `json:"aciklama" validate:"max=2000"`
	PlanlananTarih     *time.Time `json:"planlananTarih"`
	Durum              string     `json:"durum" validate:"max=50"`
	SorumluKullaniciID *int64     `json:"sorumluKullaniciId" validate:"omitempty,gt=0"`
	Oncelik            *int       `json:"oncelik" validate:"omitempty,min=1,max=3"`
}

// CrmAktiviteResponse actividad del CRM.
type CrmAktiviteResponse struct {
	ID                 int64      `json:"id"`
	TenantID           int64      `json:"tenantId"`
	CrmMusteriID       int64      `json:"crmMusteriId"`
	MusteriAdi         string     `json:"musteriAdi"`
	AktiviteTipi       string     `json:"aktiviteTipi"`
	Baslik             string     `json:"baslik"`
	Aciklama           string     `json:"aciklama,omitempty"`
	PlanlananTarih     *time.Time `json:"planlananTarih"`
	TamamlanmaTarihi   *time.Time `json:"tamamlanmaTarihi"`
	Durum              string     `json:"durum"`
	SorumluKullaniciID *int64     `json:"sorumluKullaniciId"`
	Oncelik            int        `json:"oncelik"`
	OlusturmaTarihi    time.Time  `json:"olusturmaTarihi"`
	GuncellemeTarihi   *time.Time `json:"guncellemeTarihi"`
}
