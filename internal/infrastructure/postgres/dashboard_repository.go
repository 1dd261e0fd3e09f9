package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) count(ctx context.Context, op, query string, tenantID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, tenantID).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.%s: %w", op, err)
	}
	return n, nil
}

// CountActiveCari cuentas activas.
func (r *DashboardRepo) CountActiveCari(ctx context.Context, tenantID int64) (int, error) {
	return r.count(ctx, "CountActiveCari", `SELECT COUNT(*) FROM cariler WHERE tenant_id = $1 AND aktif`, tenantID)
}

// CountActiveStok fichas activas.
func (r *DashboardRepo) CountActiveStok(ctx context.Context, tenantID int64) (int, error) {
	return r.count(ctx, "CountActiveStok", `SELECT COUNT(*) FROM stok_kartlari WHERE tenant_id = $1 AND aktif`, tenantID)
}

// CountFatura todas las facturas, en cualquier estado.
func (r *DashboardRepo) CountFatura(ctx context.Context, tenantID int64) (int, error) {
	return r.count(ctx, "CountFatura", `SELECT COUNT(*) FROM faturalar WHERE tenant_id = $1`, tenantID)
}

// CountLowStock fichas activas en o por debajo del mínimo.
func (r *DashboardRepo) CountLowStock(ctx context.Context, tenantID int64) (int, error) {
	return r.count(ctx, "CountLowStock",
		`SELECT COUNT(*) FROM stok_kartlari WHERE tenant_id = $1 AND aktif AND stok_miktari <= min_stok_miktari`, tenantID)
}

// SumSatis suma de GenelToplam de las facturas de venta.
func (r *DashboardRepo) SumSatis(ctx context.Context, tenantID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(genel_toplam), 0) FROM faturalar WHERE tenant_id = $1 AND fatura_tipi = $2`,
		tenantID, entity.FaturaSatis,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("dashboard.SumSatis: %w", err)
	}
	return total, nil
}

// RecentFaturas últimas facturas por fecha con el nombre de la cuenta.
func (r *DashboardRepo) RecentFaturas(ctx context.Context, tenantID int64, limit int) ([]*entity.Fatura, error) {
	rows, err := r.q.Query(ctx, faturaSelect+` WHERE f.tenant_id = $1 ORDER BY f.fatura_tarihi DESC, f.id DESC LIMIT $2`,
		tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.RecentFaturas: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Fatura, 0, limit)
	for rows.Next() {
		f, err := scanFatura(rows)
		if err != nil {
			return nil, fmt.Errorf("dashboard.RecentFaturas scan: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
