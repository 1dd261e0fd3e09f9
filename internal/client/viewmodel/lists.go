package viewmodel

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
)

// ── Cari ─────────────────────────────────────────────────────────────────────

// CariAPI llamadas que usa la pantalla de cuentas.
type CariAPI interface {
	ListCari(ctx context.Context) ([]dto.CariResponse, error)
	SearchCari(ctx context.Context, q string) ([]dto.CariResponse, error)
	DeleteCari(ctx context.Context, id int64) error
}

// CariRow fila de la grilla de cuentas.
type CariRow struct {
	ID       int64
	CariKodu string
	CariAdi  string
	TipText  string
	Telefon  string
	Email    string
	Bakiye   decimal.Decimal
	Aktif    bool
}

func cariRow(c dto.CariResponse) CariRow {
	return CariRow{
		ID:       c.ID,
		CariKodu: c.CariKodu,
		CariAdi:  c.CariAdi,
		TipText:  CariTipText(c.CariTip),
		Telefon:  c.Telefon,
		Email:    c.Email,
		Bakiye:   c.Bakiye,
		Aktif:    c.Aktif,
	}
}

// CariList pantalla de cuentas corrientes.
type CariList struct {
	*listModel[CariRow]
}

func NewCariList(api CariAPI, confirm Confirmer) *CariList {
	src := listSource[CariRow]{
		list: func(ctx context.Context) ([]CariRow, error) {
			out, err := api.ListCari(ctx)
			return mapRows(out, cariRow), err
		},
		search: func(ctx context.Context, q string) ([]CariRow, error) {
			out, err := api.SearchCari(ctx, q)
			return mapRows(out, cariRow), err
		},
		remove:    api.DeleteCari,
		id:        func(r CariRow) int64 { return r.ID },
		label:     func(r CariRow) string { return r.CariAdi },
		loadError: "Cariler yüklenirken hata oluştu",
		deleted:   "Cari başarıyla silindi.",
	}
	return &CariList{newListModel(src, confirm)}
}

// ── Stok ─────────────────────────────────────────────────────────────────────

// StokAPI llamadas que usa la pantalla de stock.
type StokAPI interface {
	ListStok(ctx context.Context) ([]dto.StokResponse, error)
	SearchStok(ctx context.Context, q string) ([]dto.StokResponse, error)
	DeleteStok(ctx context.Context, id int64) error
}

// StokRow fila de la grilla de fichas. Kritik marca existencias en o bajo el mínimo.
type StokRow struct {
	ID          int64
	StokKodu    string
	StokAdi     string
	Barkod      string
	Birim       string
	Kategori    string
	SatisFiyati decimal.Decimal
	StokMiktari decimal.Decimal
	KdvOrani    int
	Kritik      bool
}

func stokRow(s dto.StokResponse) StokRow {
	return StokRow{
		ID:          s.ID,
		StokKodu:    s.StokKodu,
		StokAdi:     s.StokAdi,
		Barkod:      s.Barkod,
		Birim:       s.Birim,
		Kategori:    s.Kategori,
		SatisFiyati: s.SatisFiyati,
		StokMiktari: s.StokMiktari,
		KdvOrani:    s.KdvOrani,
		Kritik:      s.StokMiktari.LessThanOrEqual(s.MinStokMiktari),
	}
}

// StokList pantalla de fichas de stock.
type StokList struct {
	*listModel[StokRow]
}

func NewStokList(api StokAPI, confirm Confirmer) *StokList {
	src := listSource[StokRow]{
		list: func(ctx context.Context) ([]StokRow, error) {
			out, err := api.ListStok(ctx)
			return mapRows(out, stokRow), err
		},
		search: func(ctx context.Context, q string) ([]StokRow, error) {
			out, err := api.SearchStok(ctx, q)
			return mapRows(out, stokRow), err
		},
		remove:    api.DeleteStok,
		id:        func(r StokRow) int64 { return r.ID },
		label:     func(r StokRow) string { return r.StokAdi },
		loadError: "Stok kartları yüklenirken hata oluştu",
		deleted:   "Stok kartı başarıyla silindi.",
	}
	return &StokList{newListModel(src, confirm)}
}

// ── Fatura ───────────────────────────────────────────────────────────────────

// FaturaAPI llamadas que usa la pantalla de facturas.
type FaturaAPI interface {
	ListFatura(ctx context.Context) ([]dto.FaturaListItem, error)
	SearchFatura(ctx context.Context, q string) ([]dto.FaturaListItem, error)
	DeleteFatura(ctx context.Context, id int64) error
}

// FaturaRow fila de la grilla de facturas.
type FaturaRow struct {
	ID           int64
	FaturaNo     string
	FaturaTarihi time.Time
	TipText      string
	CariAdi      string
	GenelToplam  decimal.Decimal
	ToplamText   string
	DurumText    string
}

func faturaRow(f dto.FaturaListItem) FaturaRow {
	return FaturaRow{
		ID:           f.ID,
		FaturaNo:     f.FaturaNo,
		FaturaTarihi: f.FaturaTarihi,
		TipText:      FaturaTipiText(f.FaturaTipi),
		CariAdi:      f.CariAdi,
		GenelToplam:  f.GenelToplam,
		ToplamText:   MoneyText(f.GenelToplam),
		DurumText:    FaturaDurumText(f.Durum),
	}
}

// FaturaList pantalla de facturas.
type FaturaList struct {
	*listModel[FaturaRow]
}

func NewFaturaList(api FaturaAPI, confirm Confirmer) *FaturaList {
	src := listSource[FaturaRow]{
		list: func(ctx context.Context) ([]FaturaRow, error) {
			out, err := api.ListFatura(ctx)
			return mapRows(out, faturaRow), err
		},
		search: func(ctx context.Context, q string) ([]FaturaRow, error) {
			out, err := api.SearchFatura(ctx, q)
			return mapRows(out, faturaRow), err
		},
		remove:    api.DeleteFatura,
		id:        func(r FaturaRow) int64 { return r.ID },
		label:     func(r FaturaRow) string { return r.FaturaNo },
		loadError: "Faturalar yüklenirken hata oluştu",
		deleted:   "Fatura başarıyla silindi.",
	}
	return &FaturaList{newListModel(src, confirm)}
}

func mapRows[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
