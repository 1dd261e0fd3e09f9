package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StokRequest body de POST y PUT /api/stok.
// StokMiktari solo se toma al crear; en PUT se ignora.
type StokRequest struct {
	StokKodu       string          `json:"stokKodu" validate:"max=50"`
	StokAdi        string          `json:"stokAdi" validate:"max=200"`
	Barkod         string          `json:"barkod" validate:"max=50"`
	Birim          string          `json:"birim" validate:"max=20"`
	Kategori       string          `json:"kategori" validate:"max=100"`
	AltKategori    string          `json:"altKategori" validate:"max=100"`
	AlisFiyati     decimal.Decimal `json:"alisFiyati"`
	SatisFiyati    decimal.Decimal `json:"satisFiyati"`
	KdvOrani       *int            `json:"kdvOrani" validate:"omitempty,min=0,max=100"`
	StokMiktari    decimal.Decimal `json:"stokMiktari"`
	MinStokMiktari decimal.Decimal `json:"minStokMiktari"`
	Aciklama       string          `json:"aciklama" validate:"max=1000"`
	Aktif          *bool           `json:"aktif"`
}

// StokResponse ficha de stock.
type StokResponse struct {
	ID               int64           `json:"id"`
	TenantID         int64           `json:"tenantId"`
	StokKodu         string          `json:"stokKodu"`
	StokAdi          string          `json:"stokAdi"`
	Barkod           string          `json:"barkod,omitempty"`
	Birim            string          `json:"birim"`
	Kategori         string          `json:"kategori,omitempty"`
	AltKategori      string          `json:"altKategori,omitempty"`
	AlisFiyati       decimal.Decimal `json:"alisFiyati"`
	SatisFiyati      decimal.Decimal `json:"satisFiyati"`
	KdvOrani         int             `json:"kdvOrani"`
	StokMiktari      decimal.Decimal `json:"stokMiktari"`
	MinStokMiktari   decimal.Decimal `json:"minStokMiktari"`
	Aciklama         string          `json:"aciklama,omitempty"`
	Aktif            bool            `json:"aktif"`
	OlusturmaTarihi  time.Time       `json:"olusturmaTarihi"`
	GuncellemeTarihi *time.Time      `json:"guncellemeTarihi"`
}
