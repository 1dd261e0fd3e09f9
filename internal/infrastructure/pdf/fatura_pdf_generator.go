// Package pdf genera la representación impresa de las facturas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Firma + Vergi No    │  Tipo + Fatura No + Tarih    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMİSOR: Adres / Tel / Email                                 │
//	│  CARİ: Nombre + Vergi Dairesi / No + contacto                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Stok | Miktar | B.Fiyat | İnd% | KDV% | Tutar    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ara Toplam / İndirim / KDV / GENEL TOPLAM          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de verificación + estado del documento           │
//	└─────────────────────────────────────────────────────────────┘
//
// Las fuentes estándar del PDF no cubren los caracteres turcos: todo texto
// pasa por textnorm.PDFSafe antes de dibujarse.
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erpcrm-api/internal/application/billing"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/pkg/textnorm"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ billing.PDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateFaturaPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateFaturaPDF(ctx context.Context, doc billing.FaturaDocument) ([]byte, error) {
	if doc.Fatura == nil || doc.Tenant == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, tenant := doc.Fatura, doc.Tenant

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(safe("Fatura "+f.FaturaNo), true).
		WithAuthor(safe(tenant.FirmaAdi), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(f, tenant))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(tenant))
	m.AddRows(cariRow(doc.Cari))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(f.Satirlar)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(f))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(f, tenant)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: firma + vergi no (izq) y tipo, número y fecha (der).
func headerRow(f *entity.Fatura, tenant *entity.Tenant) core.Row {
	titulo := "SATIŞ FATURASI"
	if f.FaturaTipi == entity.FaturaAlis {
		titulo = "ALIŞ FATURASI"
	}
	fecha := "Tarih: " + f.FaturaTarihi.Format("02.01.2006")
	if f.VadeTarihi != nil {
		fecha += "   Vade: " + f.VadeTarihi.Format("02.01.2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(safe(tenant.FirmaAdi), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(safe("Vergi No: "+nonEmpty(tenant.VergiNo, "-")), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(safe(titulo), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(safe(f.FaturaNo), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func emisorRow(tenant *entity.Tenant) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DUZENLEYEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(safe(fmt.Sprintf("Adres: %s   |   Tel: %s   |   E-posta: %s",
				nonEmpty(tenant.Adres, "-"),
				nonEmpty(tenant.Telefon, "-"),
				nonEmpty(tenant.Email, "-"),
			)), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// cariRow: datos de la cuenta. Las facturas sin cuenta (venta de mostrador) lo indican.
func cariRow(c *entity.Cari) core.Row {
	if c == nil {
		return row.New(10).Add(col.New(12).Add(
			text.New("CARI", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Perakende satis", props.Text{Size: 9, Top: 6}),
		))
	}
	vergi := nonEmpty(c.VergiNo, "-")
	if c.VergiDairesi != "" {
		vergi = c.VergiDairesi + " / " + vergi
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CARI", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(safe(c.CariKodu+" - "+c.CariAdi), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(safe(fmt.Sprintf("Vergi: %s   |   E-posta: %s   |   Tel: %s",
				vergi,
				nonEmpty(c.Email, "-"),
				nonEmpty(c.Telefon, "-"),
			)), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Stok", 4, align.Left),
		h("Miktar", 1, align.Right),
		h("B.Fiyat", 2, align.Right),
		h("Ind%", 1, align.Center),
		h("KDV%", 1, align.Center),
		h("Tutar", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea, en el orden de SiraNo.
func tableDetailRows(satirlar []*entity.FaturaSatiri) []core.Row {
	result := make([]core.Row, 0, len(satirlar))
	for _, s := range satirlar {
		desc := s.StokAdi
		if s.Aciklama != "" {
			desc += " (" + s.Aciklama + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", s.SiraNo), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(safe(desc), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(safe(qty(s.Miktar)+" "+s.Birim), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(formatMoney(s.BirimFiyat), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(qty(s.IndirimOrani), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", s.KdvOrani), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(s.ToplamTutar), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(f *entity.Fatura) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top})
	}

	return row.New(28).Add(
		col.New(6),
		col.New(3).Add(
			label("Ara Toplam:", 0),
			label("Indirim:", 6),
			label("KDV:", 12),
			label("GENEL TOPLAM:", 19),
		),
		col.New(3).Add(
			value(formatMoney(f.AraToplam), 0),
			value(formatMoney(f.IndirimToplam), 6),
			value(formatMoney(f.KdvToplam), 12),
			grand(formatMoney(f.GenelToplam)+" TL", 19),
		),
	)
}

// footerRows: QR con los datos de verificación y el estado del documento.
func footerRows(f *entity.Fatura, tenant *entity.Tenant) []core.Row {
	estado := safe(f.Durum.Display())
	estadoColor := colorGray
	if f.Durum == entity.FaturaIptal {
		estado = "IPTAL EDILMISTIR"
		estadoColor = colorRed
	}

	rows := []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(verificationPayload(f, tenant), props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Durum: "+estado, props.Text{Style: fontstyle.Bold, Size: 10, Top: 4, Left: 3, Color: estadoColor}),
				text.New(safe(nonEmpty(f.Aciklama, "")), props.Text{Size: 8, Top: 12, Left: 3, Color: colorGray}),
			),
		),
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Bu belge "+safe(tenant.FirmaAdi)+" tarafindan olusturulmustur. QR kod fatura numarasi, tarih ve genel toplami icerir.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// verificationPayload "firmaKodu|faturaNo|yyyy-mm-dd|genelToplam".
func verificationPayload(f *entity.Fatura, tenant *entity.Tenant) string {
	return strings.Join([]string{
		tenant.FirmaKodu,
		f.FaturaNo,
		f.FaturaTarihi.Format("2006-01-02"),
		f.GenelToplam.StringFixed(2),
	}, "|")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func safe(s string) string { return textnorm.PDFSafe(s) }

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// qty cantidad sin ceros decimales sobrantes: 2 → "2", 1.50 → "1.5".
func qty(d decimal.Decimal) string { return d.String() }

// formatMoney formato turco con dos decimales: 1234567.5 → "1.234.567,50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
