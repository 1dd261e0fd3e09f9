package repository

import (
	"context"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DashboardRepository consultas de solo lectura para el tablero. Cada método es una consulta
// independiente para que el caso de uso pueda lanzarlas en paralelo.
type DashboardRepository interface {
	CountActiveCari(ctx context.Context, tenantID int64) (int, error)
	CountActiveStok(ctx context.Context, tenantID int64) (int, error)
	CountFatura(ctx context.Context, tenantID int64) (int, error)
	// SumSatis suma GenelToplam de las facturas de tipo Satis (cualquier estado).
	SumSatis(ctx context.Context, tenantID int64) (decimal.Decimal, error)
	CountLowStock(ctx context.Context, tenantID int64) (int, error)
	// RecentFaturas últimas facturas por FaturaTarihi con CariAdi cargado.
	RecentFaturas(ctx context.Context, tenantID int64, limit int) ([]*entity.Fatura, error)
}
