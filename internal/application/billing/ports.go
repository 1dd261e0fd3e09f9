package billing

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los repos de facturación.
// Si fn devuelve error se hace rollback de cabecera y líneas.
type TxRunner interface {
	RunFatura(ctx context.Context, fn func(
		faturaRepo repository.FaturaRepository,
		cariRepo repository.CariRepository,
		stokRepo repository.StokRepository,
	) error) error
}

// FaturaDocument datos que necesitan las exportaciones. Cari es nil en facturas sin cuenta.
type FaturaDocument struct {
	Fatura *entity.Fatura
	Tenant *entity.Tenant
	Cari   *entity.Cari
}

// PDFGenerator genera la representación impresa de la factura.
type PDFGenerator interface {
	GenerateFaturaPDF(ctx context.Context, doc FaturaDocument) ([]byte, error)
}

// UBLBuilder construye el XML UBL-TR de la factura y su digest SHA-256 canónico (base64).
type UBLBuilder interface {
	BuildFaturaUBL(ctx context.Context, doc FaturaDocument) (xml []byte, digest string, err error)
}
