package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FaturaTipi compra o venta.
type FaturaTipi int

const (
	FaturaAlis  FaturaTipi = 0
	FaturaSatis FaturaTipi = 1
)

func (t FaturaTipi) Valid() bool { return t == FaturaAlis || t == FaturaSatis }

func (t FaturaTipi) String() string {
	if t == FaturaAlis {
		return "Alis"
	}
	return "Satis"
}

// Display texto para la interfaz.
func (t FaturaTipi) Display() string {
	if t == FaturaAlis {
		return "Alış"
	}
	return "Satış"
}

// FaturaDurum ciclo de vida: Taslak → Onaylandi → Iptal.
type FaturaDurum int

const (
	FaturaTaslak    FaturaDurum = 0
	FaturaOnaylandi FaturaDurum = 1
	FaturaIptal     FaturaDurum = 2
)

func (d FaturaDurum) String() string {
	switch d {
	case FaturaTaslak:
		return "Taslak"
	case FaturaOnaylandi:
		return "Onaylandi"
	case FaturaIptal:
		return "Iptal"
	}
	return "Bilinmiyor"
}

// Display texto para la interfaz.
func (d FaturaDurum) Display() string {
	switch d {
	case FaturaTaslak:
		return "Taslak"
	case FaturaOnaylandi:
		return "Onaylandı"
	case FaturaIptal:
		return "İptal"
	}
	return "Bilinmiyor"
}

// ParseFaturaDurum convierte el nombre devuelto por la API ("Onaylandi") al enum.
func ParseFaturaDurum(s string) (FaturaDurum, bool) {
	for _, d := range []FaturaDurum{FaturaTaslak, FaturaOnaylandi, FaturaIptal} {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// Fatura cabecera de factura. FaturaNo es único por tenant.
type Fatura struct {
	ID                   int64
	TenantID             int64
	FaturaNo             string
	FaturaTarihi         time.Time
	VadeTarihi           *time.Time
	FaturaTipi           FaturaTipi
	CariID               *int64
	AraToplam            decimal.Decimal
	KdvToplam            decimal.Decimal
	IndirimToplam        decimal.Decimal
	GenelToplam          decimal.Decimal
	Durum                FaturaDurum
	Aciklama             string
	OlusturanKullaniciID *int64
	OlusturmaTarihi      time.Time
	GuncellemeTarihi     *time.Time

	Satirlar []*FaturaSatiri
	CariAdi  string // solo lectura (join)
}

// FaturaSatiri línea de factura.
type FaturaSatiri struct {
	ID           int64
	FaturaID     int64
	StokID       int64
	Miktar       decimal.Decimal
	BirimFiyat   decimal.Decimal
	KdvOrani     int
	KdvTutar     decimal.Decimal
	IndirimOrani decimal.Decimal
	IndirimTutar decimal.Decimal
	ToplamTutar  decimal.Decimal
	Aciklama     string
	SiraNo       int

	StokKodu string // solo lectura (join)
	StokAdi  string
	Birim    string
}

var hundred = decimal.NewFromInt(100)

// Brut importe bruto de la línea (Miktar × BirimFiyat).
func (s *FaturaSatiri) Brut() decimal.Decimal {
	return s.Miktar.Mul(s.BirimFiyat).Round(2)
}

// Hesapla calcula IndirimTutar, KdvTutar y ToplamTutar a partir de cantidad, precio y tasas.
func (s *FaturaSatiri) Hesapla() {
	brut := s.Brut()
	s.IndirimTutar = brut.Mul(s.IndirimOrani).Div(hundred).Round(2)
	net := brut.Sub(s.IndirimTutar)
	s.KdvTutar = net.Mul(decimal.NewFromInt(int64(s.KdvOrani))).Div(hundred).Round(2)
	s.ToplamTutar = net.Add(s.KdvTutar)
}

// HesaplaToplamlar recalcula cada línea y los totales de cabecera.
func (f *Fatura) HesaplaToplamlar() {
	f.AraToplam = decimal.Zero
	f.IndirimToplam = decimal.Zero
	f.KdvToplam = decimal.Zero
	f.GenelToplam = decimal.Zero
	for i, s := range f.Satirlar {
		s.SiraNo = i + 1
		s.Hesapla()
		f.AraToplam = f.AraToplam.Add(s.Brut())
		f.IndirimToplam = f.IndirimToplam.Add(s.IndirimTutar)
		f.KdvToplam = f.KdvToplam.Add(s.KdvTutar)
		f.GenelToplam = f.GenelToplam.Add(s.ToplamTutar)
	}
}

// Deletable solo las facturas no aprobadas se pueden borrar.
func (f *Fatura) Deletable() bool { return f.Durum != FaturaOnaylandi }

// CanApprove Taslak → Onaylandi.
func (f *Fatura) CanApprove() bool { return f.Durum == FaturaTaslak }

// CanCancel Taslak|Onaylandi → Iptal.
func (f *Fatura) CanCancel() bool { return f.Durum != FaturaIptal }
