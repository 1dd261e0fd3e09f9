package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CariRequest body de POST y PUT /api/cari. PUT reemplaza todos los campos editables.
type CariRequest struct {
	CariKodu     string          `json:"cariKodu" validate:"max=50"`
	CariAdi      string          `json:"cariAdi" validate:"max=200"`
	CariTip      int             `json:"cariTip" validate:"min=0,max=2"`
	VergiDairesi string          `json:"vergiDairesi" validate:"max=100"`
	VergiNo      string          `json:"vergiNo" validate:"max=20"`
	Telefon      string          `json:"telefon" validate:"max=20"`
	Email        string          `json:"email" validate:"omitempty,email,max=100"`
	Adres        string          `json:"adres" validate:"max=500"`
	Il           string          `json:"il" validate:"max=50"`
	Ilce         string          `json:"ilce" validate:"max=50"`
	Bakiye       decimal.Decimal `json:"bakiye"`
	AlacakLimiti decimal.Decimal `json:"alacakLimiti"`
	Aktif        *bool           `json:"aktif"`
}

// CariResponse cuenta corriente.
type CariResponse struct {
	ID               int64           `json:"id"`
	TenantID         int64           `json:"tenantId"`
	CariKodu         string          `json:"cariKodu"`
	CariAdi          string          `json:"cariAdi"`
	CariTip          int             `json:"cariTip"`
	VergiDairesi     string          `json:"vergiDairesi,omitempty"`
	VergiNo          string          `json:"vergiNo,omitempty"`
	Telefon          string          `json:"telefon,omitempty"`
	Email            string          `json:"email,omitempty"`
	Adres            string          `json:"adres,omitempty"`
	Il               string          `json:"il,omitempty"`
	Ilce             string          `json:"ilce,omitempty"`
	Bakiye           decimal.Decimal `json:"bakiye"`
	AlacakLimiti     decimal.Decimal `json:"alacakLimiti"`
	Aktif            bool            `json:"aktif"`
	OlusturmaTarihi  time.Time       `json:"olusturmaTarihi"`
	GuncellemeTarihi *time.Time      `json:"guncellemeTarihi"`
}
