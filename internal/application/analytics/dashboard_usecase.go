// Package analytics contiene los casos de uso del tablero principal.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/domain/repository"
)

const dashboardRecentFaturas = 5 // facturas recientes en el widget del tablero

// DashboardUseCase calcula las cifras del tablero en cada petición (sin caché).
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetStats construye DashboardStatsResponse para la firma.
//
// Seis consultas en paralelo:
//  1. CountActiveCari   → CustomerCount
//  2. CountActiveStok   → ProductCount
//  3. CountFatura       → InvoiceCount
//  4. SumSatis          → TotalRevenue
//  5. CountLowStock     → LowStockCount
//  6. RecentFaturas(5)  → RecentInvoices
func (uc *DashboardUseCase) GetStats(ctx context.Context, tenantID int64) (*dto.DashboardStatsResponse, error) {
	type countResult struct {
		n   int
		err error
	}
	type sumResult struct {
		total decimal.Decimal
		err   error
	}
	type recentResult struct {
		list []*entity.Fatura
		err  error
	}

	count := func(fn func(context.Context, int64) (int, error)) <-chan countResult {
		ch := make(chan countResult, 1)
		go func() {
			n, err := fn(ctx, tenantID)
			ch <- countResult{n, err}
		}()
		return ch
	}

	cariCh := count(uc.repo.CountActiveCari)
	stokCh := count(uc.repo.CountActiveStok)
	faturaCh := count(uc.repo.CountFatura)
	lowCh := count(uc.repo.CountLowStock)

	sumCh := make(chan sumResult, 1)
	recentCh := make(chan recentResult, 1)
	go func() {
		total, err := uc.repo.SumSatis(ctx, tenantID)
		sumCh <- sumResult{total, err}
	}()
	go func() {
		list, err := uc.repo.RecentFaturas(ctx, tenantID, dashboardRecentFaturas)
		recentCh <- recentResult{list, err}
	}()

	cari := <-cariCh
	stok := <-stokCh
	fatura := <-faturaCh
	low := <-lowCh
	sum := <-sumCh
	recent := <-recentCh

	for _, r := range []struct {
		name string
		err  error
	}{
		{"cari", cari.err},
		{"stok", stok.err},
		{"fatura", fatura.err},
		{"stok bajo mínimo", low.err},
		{"ventas", sum.err},
		{"facturas recientes", recent.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", r.name, r.err)
		}
	}

	invoices := make([]dto.RecentInvoice, 0, len(recent.list))
	for _, f := range recent.list {
		invoices = append(invoices, dto.RecentInvoice{
			ID:           f.ID,
			FaturaNo:     f.FaturaNo,
			FaturaTarihi: f.FaturaTarihi,
			FaturaTipi:   f.FaturaTipi.String(),
			CariAdi:      f.CariAdi,
			GenelToplam:  f.GenelToplam,
			Durum:        f.Durum.String(),
		})
	}

	return &dto.DashboardStatsResponse{
		CustomerCount:  cari.n,
		ProductCount:   stok.n,
		InvoiceCount:   fatura.n,
		TotalRevenue:   sum.total.Round(2),
		LowStockCount:  low.n,
		RecentInvoices: invoices,
	}, nil
}
