package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto de una ficha de stock nueva.
const (
	DefaultBirim    = "Adet"
	DefaultKdvOrani = 18
)

// StokKarti ficha de inventario. StokKodu es único por tenant; Barkod también cuando no está vacío.
type StokKarti struct {
	ID               int64
	TenantID         int64
	StokKodu         string
	StokAdi          string
	Barkod           string // "" = sin barkod (NULL en la base)
	Birim            string
	Kategori         string
	AltKategori      string
	AlisFiyati       decimal.Decimal
	SatisFiyati      decimal.Decimal
	KdvOrani         int
	StokMiktari      decimal.Decimal
	MinStokMiktari   decimal.Decimal
	Aciklama         string
	Aktif            bool
	OlusturmaTarihi  time.Time
	GuncellemeTarihi *time.Time
}

// LowStock la existencia está en o por debajo del mínimo.
func (s *StokKarti) LowStock() bool {
	return s.StokMiktari.LessThanOrEqual(s.MinStokMiktari)
}
