package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	CustomerCount  int             `json:"customerCount"`  // cuentas activas
	ProductCount   int             `json:"productCount"`   // fichas activas
	InvoiceCount   int             `json:"invoiceCount"`   // todas las facturas
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`   // Σ GenelToplam de ventas
	LowStockCount  int             `json:"lowStockCount"`  // fichas activas bajo mínimo
	RecentInvoices []RecentInvoice `json:"recentInvoices"` // últimas 5 por fecha
}

// RecentInvoice resumen de factura para el tablero.
type RecentInvoice struct {
	ID           int64           `json:"id"`
	FaturaNo     string          `json:"faturaNo"`
	FaturaTarihi time.Time       `json:"faturaTarihi"`
	FaturaTipi   string          `json:"faturaTipi"`
	CariAdi      string          `json:"cariAdi"`
	GenelToplam  decimal.Decimal `json:"genelToplam"`
	Durum        string          `json:"durum"`
}
