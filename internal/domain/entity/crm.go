package entity

import "time"

// Valores por defecto del CRM.
const (
	DefaultMusteriDurumu    = "Yeni"
	DefaultAktiviteDurum    = "Planlandı"
	TamamlandiAktiviteDurum = "Tamamlandı"
	DefaultOncelik          = 2
)

// CrmMusteri prospecto o cliente del CRM. MusteriKodu es único por tenant.
type CrmMusteri struct {
	ID                int64
	TenantID          int64
	MusteriKodu       string
	MusteriAdi        string
	FirmaAdi          string
	Telefon           string
	Email             string
	Adres             string
	Il                string
	Ilce              string
	Sektor            string
	MusteriKaynagi    string
	MusteriDurumu     string
	AtananKullaniciID *int64
	Not               string
	Aktif             bool
	OlusturmaTarihi   time.Time
	GuncellemeTarihi  *time.Time
}

// CrmAktivite actividad (llamada, reunión, ...) ligada a un CrmMusteri.
type CrmAktivite struct {
	ID                 int64
	TenantID           int64
	CrmMusteriID       int64
	AktiviteTipi       string
	Baslik             string
	Aciklama           string
	PlanlananTarih     *time.Time
	TamamlanmaTarihi   *time.Time
	Durum              string
	SorumluKullaniciID *int64
	Oncelik            int
	OlusturmaTarihi    time.Time
	GuncellemeTarihi   *time.Time

	MusteriAdi string // solo lectura (join)
}
