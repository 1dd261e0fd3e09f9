package viewmodel

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

const unknown = "Bilinmiyor"

// CariTipText "Müşteri", "Tedarikçi" o "Her İkisi".
func CariTipText(tip int) string {
	t := entity.CariTip(tip)
	if !t.Valid() {
		return unknown
	}
	return t.Display()
}

// FaturaTipiText convierte el tipo que envía la API ("Alis", "Satis") a "Alış" o "Satış".
func FaturaTipiText(s string) string {
	for _, t := range []entity.FaturaTipi{entity.FaturaAlis, entity.FaturaSatis} {
		if t.String() == s {
			return t.Display()
		}
	}
	return unknown
}

// FaturaDurumText "Taslak", "Onaylandı" o "İptal".
func FaturaDurumText(s string) string {
	if d, ok := entity.ParseFaturaDurum(s); ok {
		return d.Display()
	}
	return unknown
}

// MasaDurumText "Boş", "Dolu" o "Rezerve".
func MasaDurumText(durum int) string {
	return entity.MasaDurum(durum).Display()
}

// AdisyonDurumText "Açık", "Kapalı" o "İptal".
func AdisyonDurumText(s string) string {
	for _, d := range []entity.AdisyonDurum{entity.AdisyonAcik, entity.AdisyonKapali, entity.AdisyonIptal} {
		if d.String() == s {
			return d.Display()
		}
	}
	return unknown
}

// MoneyText importe con separadores turcos: 1.234.567,50 ₺
func MoneyText(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if v.IsNegative() && !v.Round(2).IsZero() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	b.WriteString(" ₺")
	return b.String()
}
