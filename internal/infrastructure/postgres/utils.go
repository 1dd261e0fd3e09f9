package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/erpcrm-api/internal/domain"
)

// duplicateByConstraint traduce el nombre del constraint único al error de campo que ve el usuario.
var duplicateByConstraint = map[string]error{
	"uq_tenants_firma_kodu":          domain.Duplicate("firmaKodu", "Bu firma kodu zaten kullanılıyor."),
	"uq_users_email":                 domain.Duplicate("email", "Bu e-posta adresi zaten kayıtlı."),
	"uq_cariler_tenant_kodu":         domain.Duplicate("cariKodu", "Bu cari kodu zaten kullanılıyor."),
	"uq_stok_kartlari_tenant_kodu":   domain.Duplicate("stokKodu", "Bu stok kodu zaten kullanılıyor."),
	"uq_stok_kartlari_tenant_barkod": domain.Duplicate("barkod", "Bu barkod zaten kullanılıyor."),
	"uq_faturalar_tenant_no":         domain.Duplicate("faturaNo", "Bu fatura numarası zaten kullanılıyor."),
	"uq_masalar_tenant_no":           domain.Duplicate("masaNo", "Bu masa numarası zaten kullanılıyor."),
	"uq_adisyonlar_tenant_no":        domain.Duplicate("adisyonNo", "Bu adisyon numarası zaten kullanılıyor."),
	"uq_adisyonlar_masa_acik":        domain.InvalidState("Bu masada zaten açık bir adisyon var."),
	"uq_crm_musteriler_tenant_kodu":  domain.Duplicate("musteriKodu", "Bu müşteri kodu zaten kullanılıyor."),
	"uq_subscription_plans_kodu":     domain.Duplicate("planKodu", "Bu plan kodu zaten kullanılıyor."),
}

// mapWriteError convierte errores de escritura de PostgreSQL en errores de dominio.
// Devuelve nil si err no es una violación conocida.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case "23505":
		if mapped, ok := duplicateByConstraint[pgErr.ConstraintName]; ok {
			return mapped
		}
		return domain.ErrDuplicate
	case "23503":
		return domain.ErrReferenced
	}
	return nil
}

// nullString guarda "" como NULL.
func nullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// fromNull lee una columna de texto nullable.
func fromNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
