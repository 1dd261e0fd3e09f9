package ubl_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erpcrm-api/internal/application/billing"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
	"github.com/jhoicas/erpcrm-api/internal/infrastructure/ubl"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func document() billing.FaturaDocument {
	vade := time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)
	f := &entity.Fatura{
		FaturaNo:     "F-2026-001",
		FaturaTarihi: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		VadeTarihi:   &vade,
		FaturaTipi:   entity.FaturaSatis,
		Satirlar: []*entity.FaturaSatiri{
			{StokKodu: "CAY", StokAdi: "Çay", Birim: "Kg", Miktar: d("2"), BirimFiyat: d("100"), KdvOrani: 18, IndirimOrani: d("10")},
			{StokKodu: "KHV", StokAdi: "Kahve", Birim: "Adet", Miktar: d("1.5"), BirimFiyat: d("40"), KdvOrani: 8},
		},
	}
	f.HesaplaToplamlar()
	return billing.FaturaDocument{
		Fatura: f,
		Tenant: &entity.Tenant{FirmaKodu: "ACME", FirmaAdi: "Acme Gıda", VergiNo: "1234567890"},
		Cari:   &entity.Cari{CariKodu: "C1", CariAdi: "Deniz Market", VergiNo: "12345678901", Il: "İstanbul"},
	}
}

func parse(t *testing.T, b []byte) *etree.Element {
	t.Helper()
	x := etree.NewDocument()
	require.NoError(t, x.ReadFromBytes(b))
	root := x.Root()
	require.NotNil(t, root)
	return root
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildFaturaUBL
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildFaturaUBL_Estructura(t *testing.T) {
	out, digest, err := ubl.NewBuilder().BuildFaturaUBL(context.Background(), document())
	require.NoError(t, err)

	root := parse(t, out)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, "F-2026-001", root.FindElement("./cbc:ID").Text())
	assert.Equal(t, "SATIS", root.FindElement("./cbc:InvoiceTypeCode").Text())
	assert.Equal(t, "2026-03-14", root.FindElement("./cbc:IssueDate").Text())
	assert.Equal(t, "2", root.FindElement("./cbc:LineCountNumeric").Text())
	assert.Equal(t, "2026-04-14", root.FindElement("./cac:PaymentMeans/cbc:PaymentDueDate").Text())

	supplierID := root.FindElement("./cac:AccountingSupplierParty/cac:Party/cac:PartyIdentification/cbc:ID")
	require.NotNil(t, supplierID)
	assert.Equal(t, "VKN", supplierID.SelectAttrValue("schemeID", ""))
	customerID := root.FindElement("./cac:AccountingCustomerParty/cac:Party/cac:PartyIdentification/cbc:ID")
	require.NotNil(t, customerID)
	assert.Equal(t, "TCKN", customerID.SelectAttrValue("schemeID", ""))

	tax := root.FindElement("./cac:TaxTotal")
	assert.Equal(t, "37.20", tax.FindElement("./cbc:TaxAmount").Text())
	subs := tax.FindElements("./cac:TaxSubtotal")
	require.Len(t, subs, 2)
	assert.Equal(t, "8", subs[0].FindElement("./cbc:Percent").Text(), "tasas en orden ascendente")
	assert.Equal(t, "60.00", subs[0].FindElement("./cbc:TaxableAmount").Text())
	assert.Equal(t, "180.00", subs[1].FindElement("./cbc:TaxableAmount").Text())

	assert.Equal(t, "277.20", root.FindElement("./cac:LegalMonetaryTotal/cbc:PayableAmount").Text())

	lines := root.FindElements("./cac:InvoiceLine")
	require.Len(t, lines, 2)
	q := lines[0].FindElement("./cbc:InvoicedQuantity")
	assert.Equal(t, "KGM", q.SelectAttrValue("unitCode", ""))
	assert.NotNil(t, lines[0].FindElement("./cac:AllowanceCharge"), "la línea con descuento lleva AllowanceCharge")
	assert.Nil(t, lines[1].FindElement("./cac:AllowanceCharge"))

	expected, err := ubl.Digest(out)
	require.NoError(t, err)
	assert.Equal(t, expected, digest)
	assert.Len(t, digest, 44, "SHA-256 en Base64")
}

func TestBuildFaturaUBL_Determinista(t *testing.T) {
	b := ubl.NewBuilder()
	out1, d1, err := b.BuildFaturaUBL(context.Background(), document())
	require.NoError(t, err)
	out2, d2, err := b.BuildFaturaUBL(context.Background(), document())
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
	assert.Equal(t, d1, d2)

	otro := document()
	otro.Fatura.FaturaNo = "F-2026-002"
	_, d3, err := b.BuildFaturaUBL(context.Background(), otro)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestBuildFaturaUBL_AlisInviertePartes(t *testing.T) {
	doc := document()
	doc.Fatura.FaturaTipi = entity.FaturaAlis
	out, _, err := ubl.NewBuilder().BuildFaturaUBL(context.Background(), doc)
	require.NoError(t, err)

	root := parse(t, out)
	assert.Equal(t, "ALIS", root.FindElement("./cbc:InvoiceTypeCode").Text())
	assert.Equal(t, "Deniz Market",
		root.FindElement("./cac:AccountingSupplierParty/cac:Party/cac:PartyName/cbc:Name").Text())
	assert.Equal(t, "Acme Gıda",
		root.FindElement("./cac:AccountingCustomerParty/cac:Party/cac:PartyName/cbc:Name").Text())
}

func TestBuildFaturaUBL_SinCari(t *testing.T) {
	doc := document()
	doc.Cari = nil
	out, _, err := ubl.NewBuilder().BuildFaturaUBL(context.Background(), doc)
	require.NoError(t, err)
	root := parse(t, out)
	assert.Equal(t, "Nihai Tüketici",
		root.FindElement("./cac:AccountingCustomerParty/cac:Party/cac:PartyName/cbc:Name").Text())
}

func TestBuildFaturaUBL_DocumentoIncompleto(t *testing.T) {
	_, _, err := ubl.NewBuilder().BuildFaturaUBL(context.Background(), billing.FaturaDocument{})
	assert.Error(t, err)
}

func TestDocumentUUID(t *testing.T) {
	doc := document()
	a := ubl.DocumentUUID(doc.Tenant, doc.Fatura)
	assert.Equal(t, a, ubl.DocumentUUID(doc.Tenant, doc.Fatura))
	assert.Equal(t, 5, int(a.Version()))
}
