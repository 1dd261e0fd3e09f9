package repository

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// FaturaRepository define el puerto de persistencia para Fatura y sus líneas.
type FaturaRepository interface {
	// Create inserta cabecera y líneas; debe ejecutarse dentro de una transacción.
	Create(ctx context.Context, fatura *entity.Fatura) error
	// GetByID carga cabecera, CariAdi y líneas.
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Fatura, error)
	GetByNo(ctx context.Context, tenantID int64, faturaNo string) (*entity.Fatura, error)
	// List cabeceras (sin líneas) de la más reciente a la más antigua.
	List(ctx context.Context, tenantID int64) ([]*entity.Fatura, error)
	Search(ctx context.Context, tenantID int64, pattern string, limit int) ([]*entity.Fatura, error)
	// Update reescribe cabecera y reemplaza las líneas.
	Update(ctx context.Context, fatura *entity.Fatura) error
	// UpdateDurum pasa de from a to solo si la factura sigue en from; false si otro cambio llegó antes.
	UpdateDurum(ctx context.Context, tenantID, id int64, from, to entity.FaturaDurum) (bool, error)
	Delete(ctx context.Context, tenantID, id int64) error
}
