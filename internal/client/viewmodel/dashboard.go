package viewmodel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
)

// DashboardAPI llamada de estadísticas del tablero.
type DashboardAPI interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

// DashboardStats valores listos para mostrar.
type DashboardStats struct {
	ToplamMusteri  int
	ToplamUrun     int
	ToplamFatura   int
	KritikStok     int
	ToplamCiroText string
	SonFaturalar   []FaturaRow
}

// Dashboard pantalla de inicio.
type Dashboard struct {
	state
	api   DashboardAPI
	stats DashboardStats
}

func NewDashboard(api DashboardAPI) *Dashboard {
	return &Dashboard{api: api, stats: DashboardStats{ToplamCiroText: MoneyText(decimal.Zero)}}
}

// Stats último resultado cargado.
func (d *Dashboard) Stats() DashboardStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := d.stats
	out.SonFaturalar = append([]FaturaRow(nil), d.stats.SonFaturalar...)
	return out
}

// Load consulta /api/dashboard/stats. Ante un error se conservan los valores anteriores.
func (d *Dashboard) Load(ctx context.Context) error {
	d.begin()
	defer d.end()

	res, err := d.api.DashboardStats(ctx)
	if err != nil {
		d.fail(fmt.Sprintf("Özet bilgiler yüklenirken hata oluştu: %s", err))
		return err
	}

	stats := DashboardStats{
		ToplamMusteri:  res.CustomerCount,
		ToplamUrun:     res.ProductCount,
		ToplamFatura:   res.InvoiceCount,
		KritikStok:     res.LowStockCount,
		ToplamCiroText: MoneyText(res.TotalRevenue),
		SonFaturalar:   make([]FaturaRow, 0, len(res.RecentInvoices)),
	}
	for _, r := range res.RecentInvoices {
		stats.SonFaturalar = append(stats.SonFaturalar, faturaRow(dto.FaturaListItem{
			ID:           r.ID,
			FaturaNo:     r.FaturaNo,
			FaturaTarihi: r.FaturaTarihi,
			FaturaTipi:   r.FaturaTipi,
			CariAdi:      r.CariAdi,
			GenelToplam:  r.GenelToplam,
			Durum:        r.Durum,
		}))
	}

	d.mu.Lock()
	d.stats = stats
	d.mu.Unlock()
	d.changed(PropStats)
	return nil
}
