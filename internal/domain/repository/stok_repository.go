package repository

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// StokRepository define el puerto de persistencia para StokKarti.
type StokRepository interface {
	Create(ctx context.Context, stok *entity.StokKarti) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.StokKarti, error)
	GetByKod(ctx context.Context, tenantID int64, kod string) (*entity.StokKarti, error)
	GetByBarkod(ctx context.Context, tenantID int64, barkod string) (*entity.StokKarti, error)
	List(ctx context.Context, tenantID int64) ([]*entity.StokKarti, error)
	ListByKategori(ctx context.Context, tenantID int64, kategori string) ([]*entity.StokKarti, error)
	// ListLowStock fichas activas con StokMiktari <= MinStokMiktari, de menor a mayor existencia.
	ListLowStock(ctx context.Context, tenantID int64) ([]*entity.StokKarti, error)
	Search(ctx context.Context, tenantID int64, pattern string, limit int) ([]*entity.StokKarti, error)
	Update(ctx context.Context, stok *entity.StokKarti) error
	Delete(ctx context.Context, tenantID, id int64) error
	// HasReferences true si alguna línea de factura o de comanda usa la ficha.
	HasReferences(ctx context.Context, tenantID, id int64) (bool, error)
}
