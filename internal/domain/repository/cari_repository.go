package repository

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// CariRepository define el puerto de persistencia para Cari.
// Todas las operaciones reciben tenantID y nunca devuelven filas de otra firma.
type CariRepository interface {
	Create(ctx context.Context, cari *entity.Cari) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Cari, error)
	GetByKod(ctx context.Context, tenantID int64, kod string) (*entity.Cari, error)
	List(ctx context.Context, tenantID int64) ([]*entity.Cari, error)
	ListByTip(ctx context.Context, tenantID int64, tip entity.CariTip) ([]*entity.Cari, error)
	// Search busca pattern (ya escapado para ILIKE) en código, nombre, teléfono y email.
	Search(ctx context.Context, tenantID int64, pattern string, limit int) ([]*entity.Cari, error)
	Update(ctx context.Context, cari *entity.Cari) error
	Delete(ctx context.Context, tenantID, id int64) error
	HasFatura(ctx context.Context, tenantID, id int64) (bool, error)
}
