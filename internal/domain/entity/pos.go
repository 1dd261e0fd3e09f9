package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasaDurum ocupación de la mesa.
type MasaDurum int

const (
	MasaBos     MasaDurum = 0
	MasaDolu    MasaDurum = 1
	MasaRezerve MasaDurum = 2
)

func (d MasaDurum) Valid() bool { return d >= MasaBos && d <= MasaRezerve }

// Display texto para la interfaz.
func (d MasaDurum) Display() string {
	switch d {
	case MasaBos:
		return "Boş"
	case MasaDolu:
		return "Dolu"
	case MasaRezerve:
		return "Rezerve"
	}
	return "Bilinmiyor"
}

// DefaultKapasite capacidad de una mesa nueva.
const DefaultKapasite = 4

// Masa mesa física del local. MasaNo es único por tenant.
type Masa struct {
	ID              int64
	TenantID        int64
	MasaNo          string
	MasaAdi         string
	Kapasite        int
	Bolum           string
	Durum           MasaDurum
	Aktif           bool
	OlusturmaTarihi time.Time
}

// AdisyonDurum ciclo de vida de la comanda: Acik → Kapali | Iptal.
type AdisyonDurum int

const (
	AdisyonAcik   AdisyonDurum = 0
	AdisyonKapali AdisyonDurum = 1
	AdisyonIptal  AdisyonDurum = 2
)

func (d AdisyonDurum) String() string {
	switch d {
	case AdisyonAcik:
		return "Acik"
	case AdisyonKapali:
		return "Kapali"
	case AdisyonIptal:
		return "Iptal"
	}
	return "Bilinmiyor"
}

// Display texto para la interfaz.
func (d AdisyonDurum) Display() string {
	switch d {
	case AdisyonAcik:
		return "Açık"
	case AdisyonKapali:
		return "Kapalı"
	case AdisyonIptal:
		return "İptal"
	}
	return "Bilinmiyor"
}

// Adisyon comanda abierta sobre una mesa. AdisyonNo es único por tenant.
type Adisyon struct {
	ID              int64
	TenantID        int64
	MasaID          int64
	AdisyonNo       string
	AcilisTarihi    time.Time
	KapanisTarihi   *time.Time
	GarsonID        *int64
	AraToplam       decimal.Decimal
	IndirimToplam   decimal.Decimal
	GenelToplam     decimal.Decimal
	OdenenTutar     decimal.Decimal
	Durum           AdisyonDurum
	Aciklama        string
	OlusturmaTarihi time.Time

	Satirlar []*AdisyonSatiri
	MasaNo   string // solo lectura (join)
}

// AdisyonSatiri línea de comanda.
type AdisyonSatiri struct {
	ID              int64
	AdisyonID       int64
	StokID          int64
	Miktar          decimal.Decimal
	BirimFiyat      decimal.Decimal
	IndirimOrani    decimal.Decimal
	IndirimTutar    decimal.Decimal
	ToplamTutar     decimal.Decimal
	Not             string
	SiraNo          int
	OlusturmaTarihi time.Time

	StokAdi string // solo lectura (join)
}

// Hesapla calcula descuento y total de la línea (los precios de carta ya incluyen KDV).
func (s *AdisyonSatiri) Hesapla() {
	brut := s.Miktar.Mul(s.BirimFiyat).Round(2)
	s.IndirimTutar = brut.Mul(s.IndirimOrani).Div(hundred).Round(2)
	s.ToplamTutar = brut.Sub(s.IndirimTutar)
}

// HesaplaToplamlar recalcula los totales de cabecera a partir de las líneas cargadas.
func (a *Adisyon) HesaplaToplamlar() {
	a.AraToplam = decimal.Zero
	a.IndirimToplam = decimal.Zero
	a.GenelToplam = decimal.Zero
	for _, s := range a.Satirlar {
		s.Hesapla()
		a.AraToplam = a.AraToplam.Add(s.ToplamTutar.Add(s.IndirimTutar))
		a.IndirimToplam = a.IndirimToplam.Add(s.IndirimTutar)
		a.GenelToplam = a.GenelToplam.Add(s.ToplamTutar)
	}
}

// Acik la comanda admite cambios.
func (a *Adisyon) Acik() bool { return a.Durum == AdisyonAcik }
