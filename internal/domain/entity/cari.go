package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CariTip naturaleza de la cuenta corriente.
type CariTip int

const (
	CariMusteri   CariTip = 0
	CariTedarikci CariTip = 1
	CariHerIkisi  CariTip = 2
)

func (t CariTip) Valid() bool { return t >= CariMusteri && t <= CariHerIkisi }

func (t CariTip) String() string {
	switch t {
	case CariMusteri:
		return "Musteri"
	case CariTedarikci:
		return "Tedarikci"
	case CariHerIkisi:
		return "HerIkisi"
	}
	return "Bilinmiyor"
}

// Display texto para la interfaz.
func (t CariTip) Display() string {
	switch t {
	case CariMusteri:
		return "Müşteri"
	case CariTedarikci:
		return "Tedarikçi"
	case CariHerIkisi:
		return "Her İkisi"
	}
	return "Bilinmiyor"
}

// ParseCariTip acepta el número ("0") o el nombre ("Musteri"), sin distinguir mayúsculas.
func ParseCariTip(s string) (CariTip, bool) {
	for _, t := range []CariTip{CariMusteri, CariTedarikci, CariHerIkisi} {
		if s == strconv.Itoa(int(t)) || strings.EqualFold(s, t.String()) {
			return t, true
		}
	}
	return 0, false
}

// Cari cuenta corriente de cliente y/o proveedor. CariKodu es único por tenant.
type Cari struct {
	ID               int64
	TenantID         int64
	CariKodu         string
	CariAdi          string
	CariTip          CariTip
	VergiDairesi     string
	VergiNo          string
	Telefon          string
	Email            string
	Adres            string
	Il               string
	Ilce             string
	Bakiye           decimal.Decimal
	AlacakLimiti     decimal.Decimal
	Aktif            bool
	OlusturmaTarihi  time.Time
	GuncellemeTarihi *time.Time
}
