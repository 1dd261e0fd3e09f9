package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasaRequest body de POST y PUT /api/masa.
type MasaRequest struct {
	MasaNo   string `json:"masaNo" validate:"max=20"`
	MasaAdi  string `json:"masaAdi" validate:"max=50"`
	Kapasite *int   `json:"kapasite" validate:"omitempty,min=1,max=100"`
	Bolum    string `json:"bolum" validate:"max=50"`
	Durum    *int   `json:"durum" validate:"omitempty,min=0,max=2"`
	Aktif    *bool  `json:"aktif"`
}

// MasaResponse mesa.
type MasaResponse struct {
	ID              int64     `json:"id"`
	TenantID        int64     `json:"tenantId"`
	MasaNo          string    `json:"masaNo"`
	MasaAdi         string    `json:"masaAdi,omitempty"`
	Kapasite        int       `json:"kapasite"`
	Bolum           string    `json:"bolum,omitempty"`
	Durum           int       `json:"durum"`
	DurumText       string    `json:"durumText"`
	Aktif           bool      `json:"aktif"`
	OlusturmaTarihi time.Time `json:"olusturmaTarihi"`
}

// AdisyonAcRequest body de POST /api/adisyon: abre una comanda sobre una mesa.
type AdisyonAcRequest struct {
	MasaID    int64  `json:"masaId" validate:"required,gt=0"`
	AdisyonNo string `json:"adisyonNo" validate:"max=50"`
	GarsonID  *int64 `json:"garsonId" validate:"omitempty,gt=0"`
	Aciklama  string `json:"aciklama" validate:"max=500"`
}

// AdisyonSatirRequest body de POST /api/adisyon/:id/satir. BirimFiyat cero toma el precio de venta.
type AdisyonSatirRequest struct {
	StokID       int64           `json:"stokId" validate:"required,gt=0"`
	Miktar       decimal.Decimal `json:"miktar"`
	BirimFiyat   decimal.Decimal `json:"birimFiyat"`
	IndirimOrani decimal.Decimal `json:"indirimOrani"`
	Not          string          `json:"not" validate:"max=500"`
}

// AdisyonKapatRequest body opcional de POST /api/adisyon/:id/kapat.
// OdenenTutar nil cobra el total.
type AdisyonKapatRequest struct {
	OdenenTutar *decimal.Decimal `json:"odenenTutar"`
}

// AdisyonSatiriResponse línea de comanda.
type AdisyonSatiriResponse struct {
	ID           int64           `json:"id"`
	StokID       int64           `json:"stokId"`
	StokAdi      string          `json:"stokAdi"`
	Miktar       decimal.Decimal `json:"miktar"`
	BirimFiyat   decimal.Decimal `json:"birimFiyat"`
	IndirimOrani decimal.Decimal `json:"indirimOrani"`
	IndirimTutar decimal.Decimal `json:"indirimTutar"`
	ToplamTutar  decimal.Decimal `json:"toplamTutar"`
	Not          string          `json:"not,omitempty"`
	SiraNo       int             `json:"siraNo"`
}

// AdisyonResponse comanda con sus líneas.
type AdisyonResponse struct {
	ID              int64                   `json:"id"`
	TenantID        int64                   `json:"tenantId"`
	MasaID          int64                   `json:"masaId"`
	MasaNo          string                  `json:"masaNo"`
	AdisyonNo       string                  `json:"adisyonNo"`
	AcilisTarihi    time.Time               `json:"acilisTarihi"`
	KapanisTarihi   *time.Time              `json:"kapanisTarihi"`
	GarsonID        *int64                  `json:"garsonId"`
	AraToplam       decimal.Decimal         `json:"araToplam"`
	IndirimToplam   decimal.Decimal         `json:"indirimToplam"`
	GenelToplam     decimal.Decimal         `json:"genelToplam"`
	OdenenTutar     decimal.Decimal         `json:"odenenTutar"`
	Durum           string                  `json:"durum"`
	Aciklama        string                  `json:"aciklama,omitempty"`
	OlusturmaTarihi time.Time               `json:"olusturmaTarihi"`
	Satirlar        []AdisyonSatiriResponse `json:"satirlar"`
}
