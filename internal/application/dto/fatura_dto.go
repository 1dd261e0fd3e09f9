package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FaturaSatiriRequest línea de factura. KdvOrani nil toma la tasa de la ficha de stock.
type FaturaSatiriRequest struct {
	StokID       int64           `json:"stokId" validate:"required,gt=0"`
	Miktar       decimal.Decimal `json:"miktar"`
	BirimFiyat   decimal.Decimal `json:"birimFiyat"`
	KdvOrani     *int            `json:"kdvOrani" validate:"omitempty,min=0,max=100"`
	IndirimOrani decimal.Decimal `json:"indirimOrani"`
	Aciklama     string          `json:"aciklama" validate:"max=500"`
}

// FaturaRequest body de POST y PUT /api/fatura.
type FaturaRequest struct {
	FaturaNo     string                `json:"faturaNo" validate:"max=50"`
	FaturaTarihi *time.Time            `json:"faturaTarihi"`
	VadeTarihi   *time.Time            `json:"vadeTarihi"`
	FaturaTipi   int                   `json:"faturaTipi" validate:"min=0,max=1"`
	CariID       *int64                `json:"cariId" validate:"omitempty,gt=0"`
	Aciklama     string                `json:"aciklama" validate:"max=1000"`
	Satirlar     []FaturaSatiriRequest `json:"satirlar" validate:"dive"`
}

// FaturaListItem fila de GET /api/fatura y /search. Tipo y estado viajan como texto.
type FaturaListItem struct {
	ID           int64           `json:"id"`
	FaturaNo     string          `json:"faturaNo"`
	FaturaTarihi time.Time       `json:"faturaTarihi"`
	FaturaTipi   string          `json:"faturaTipi"`
	CariAdi      string          `json:"cariAdi"`
	GenelToplam  decimal.Decimal `json:"genelToplam"`
	Durum        string          `json:"durum"`
}

// FaturaSatiriResponse línea con los importes calculados.
type FaturaSatiriResponse struct {
	ID           int64           `json:"id"`
	StokID       int64           `json:"stokId"`
	StokKodu     string          `json:"stokKodu"`
	StokAdi      string          `json:"stokAdi"`
	Birim        string          `json:"birim"`
	Miktar       decimal.Decimal `json:"miktar"`
	BirimFiyat   decimal.Decimal `json:"birimFiyat"`
	KdvOrani     int             `json:"kdvOrani"`
	KdvTutar     decimal.Decimal `json:"kdvTutar"`
	IndirimOrani decimal.Decimal `json:"indirimOrani"`
	IndirimTutar decimal.Decimal `json:"indirimTutar"`
	ToplamTutar  decimal.Decimal `json:"toplamTutar"`
	Aciklama     string          `json:"aciklama,omitempty"`
	SiraNo       int             `json:"siraNo"`
}

// FaturaResponse factura completa.
type FaturaResponse struct {
	ID                   int64                  `json:"id"`
	TenantID             int64                  `json:"tenantId"`
	FaturaNo             string                 `json:"faturaNo"`
	FaturaTarihi         time.Time              `json:"faturaTarihi"`
	VadeTarihi           *time.Time             `json:"vadeTarihi"`
	FaturaTipi           string                 `json:"faturaTipi"`
	CariID               *int64                 `json:"cariId"`
	CariAdi              string                 `json:"cariAdi"`
	AraToplam            decimal.Decimal        `json:"araToplam"`
	KdvToplam            decimal.Decimal        `json:"kdvToplam"`
	IndirimToplam        decimal.Decimal        `json:"indirimToplam"`
	GenelToplam          decimal.Decimal        `json:"genelToplam"`
	Durum                string                 `json:"durum"`
	Aciklama             string                 `json:"aciklama,omitempty"`
	OlusturanKullaniciID *int64                 `json:"olusturanKullaniciId"`
	OlusturmaTarihi      time.Time              `json:"olusturmaTarihi"`
	GuncellemeTarihi     *time.Time             `json:"guncellemeTarihi"`
	Satirlar             []FaturaSatiriResponse `json:"satirlar"`
}
