// Package ubl genera la representación UBL-TR 1.2 (UBL 2.1) de una factura.
//
// El documento no se firma: el digest devuelto es el SHA-256 (Base64) del XML
// canonicalizado con C14N 1.0, el mismo valor que usaría una ds:Reference sobre
// el documento completo.
package ubl

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/erpcrm-api/internal/application/billing"
	"github.com/jhoicas/erpcrm-api/internal/domain/entity"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

const (
	customizationID = "TR1.2"
	profileID       = "TEMELFATURA"
	currency        = "TRY"
	kdvTaxTypeCode  = "0015"
)

// namespaceFatura genera UUID estables: la misma factura produce siempre el mismo cbc:UUID.
var namespaceFatura = uuid.MustParse("6f1c1a52-3c0e-4f7b-9a55-1d3e2b7c9f10")

// Builder implementa billing.UBLBuilder.
type Builder struct{}

var _ billing.UBLBuilder = (*Builder)(nil)

// NewBuilder crea el servicio.
func NewBuilder() *Builder { return &Builder{} }

// BuildFaturaUBL devuelve el XML (con cabecera) y el digest del documento canonicalizado.
func (b *Builder) BuildFaturaUBL(ctx context.Context, doc billing.FaturaDocument) ([]byte, string, error) {
	if doc.Fatura == nil || doc.Tenant == nil {
		return nil, "", fmt.Errorf("ubl: faltan fatura o firma en el documento")
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := x.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	f := doc.Fatura
	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "CustomizationID", customizationID)
	cbc(root, "ProfileID", profileID)
	cbc(root, "ID", f.FaturaNo)
	cbc(root, "CopyIndicator", "false")
	cbc(root, "UUID", DocumentUUID(doc.Tenant, f).String())
	cbc(root, "IssueDate", f.FaturaTarihi.Format("2006-01-02"))
	cbc(root, "IssueTime", f.FaturaTarihi.Format("15:04:05"))
	cbc(root, "InvoiceTypeCode", invoiceTypeCode(f.FaturaTipi))
	if f.Aciklama != "" {
		cbc(root, "Note", f.Aciklama)
	}
	cbc(root, "DocumentCurrencyCode", currency)
	cbc(root, "LineCountNumeric", strconv.Itoa(len(f.Satirlar)))

	// En una compra la firma es la receptora.
	supplier, customer := tenantParty(doc.Tenant), cariParty(doc.Cari)
	if f.FaturaTipi == entity.FaturaAlis {
		supplier, customer = customer, supplier
	}
	root.CreateElement("cac:AccountingSupplierParty").AddChild(supplier)
	root.CreateElement("cac:AccountingCustomerParty").AddChild(customer)

	if f.VadeTarihi != nil {
		pm := root.CreateElement("cac:PaymentMeans")
		cbc(pm, "PaymentMeansCode", "1")
		cbc(pm, "PaymentDueDate", f.VadeTarihi.Format("2006-01-02"))
	}

	writeTaxTotal(root, f)
	writeMonetaryTotal(root, f)
	for _, s := range f.Satirlar {
		writeLine(root, s)
	}

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("ubl: serializar: %w", err)
	}
	digest, err := Digest(out)
	if err != nil {
		return nil, "", err
	}
	return out, digest, nil
}

// Digest SHA-256 en Base64 del XML canonicalizado (C14N 1.0 sin comentarios).
func Digest(xmlBytes []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("ubl: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// DocumentUUID UUID v5 derivado de la firma y el número de factura.
func DocumentUUID(tenant *entity.Tenant, f *entity.Fatura) uuid.UUID {
	return uuid.NewSHA1(namespaceFatura, []byte(tenant.FirmaKodu+"/"+f.FaturaNo))
}

func invoiceTypeCode(t entity.FaturaTipi) string {
	if t == entity.FaturaAlis {
		return "ALIS"
	}
	return "SATIS"
}

// ── Partes ────────────────────────────────────────────────────────────────────

func tenantParty(t *entity.Tenant) *etree.Element {
	p := etree.NewElement("cac:Party")
	partyID(p, t.VergiNo)
	p.CreateElement("cac:PartyName").AddChild(newCbc("Name", t.FirmaAdi))
	address(p, t.Adres, "", "")
	contact(p, t.Telefon, t.Email)
	return p
}

// cariParty: sin cuenta asociada se emite un receptor genérico (nihai tüketici).
func cariParty(c *entity.Cari) *etree.Element {
	p := etree.NewElement("cac:Party")
	if c == nil {
		partyID(p, "11111111111")
		p.CreateElement("cac:PartyName").AddChild(newCbc("Name", "Nihai Tüketici"))
		return p
	}
	partyID(p, c.VergiNo)
	p.CreateElement("cac:PartyName").AddChild(newCbc("Name", c.CariAdi))
	address(p, c.Adres, c.Ilce, c.Il)
	if c.VergiDairesi != "" {
		ts := p.CreateElement("cac:PartyTaxScheme").CreateElement("cac:TaxScheme")
		cbc(ts, "Name", c.VergiDairesi)
	}
	contact(p, c.Telefon, c.Email)
	return p
}

// partyID VKN (10 dígitos) o TCKN (11 dígitos).
func partyID(p *etree.Element, vergiNo string) {
	if vergiNo == "" {
		return
	}
	scheme := "VKN"
	if len(vergiNo) == 11 {
		scheme = "TCKN"
	}
	id := p.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID")
	id.CreateAttr("schemeID", scheme)
	id.SetText(vergiNo)
}

func address(p *etree.Element, street, district, city string) {
	if street == "" && district == "" && city == "" {
		return
	}
	a := p.CreateElement("cac:PostalAddress")
	if street != "" {
		cbc(a, "StreetName", street)
	}
	if district != "" {
		cbc(a, "CitySubdivisionName", district)
	}
	if city != "" {
		cbc(a, "CityName", city)
	}
	a.CreateElement("cac:Country").AddChild(newCbc("Name", "Türkiye"))
}

func contact(p *etree.Element, phone, email string) {
	if phone == "" && email == "" {
		return
	}
	c := p.CreateElement("cac:Contact")
	if phone != "" {
		cbc(c, "Telephone", phone)
	}
	if email != "" {
		cbc(c, "ElectronicMail", email)
	}
}

// ── Totales y líneas ──────────────────────────────────────────────────────────

// writeTaxTotal un TaxSubtotal por tasa de KDV, en orden ascendente.
func writeTaxTotal(root *etree.Element, f *entity.Fatura) {
	type group struct{ base, tax decimal.Decimal }
	groups := map[int]*group{}
	for _, s := range f.Satirlar {
		g, ok := groups[s.KdvOrani]
		if !ok {
			g = &group{}
			groups[s.KdvOrani] = g
		}
		g.base = g.base.Add(s.Brut().Sub(s.IndirimTutar))
		g.tax = g.tax.Add(s.KdvTutar)
	}
	rates := make([]int, 0, len(groups))
	for r := range groups {
		rates = append(rates, r)
	}
	sort.Ints(rates)

	tt := root.CreateElement("cac:TaxTotal")
	amount(tt, "TaxAmount", f.KdvToplam)
	for _, r := range rates {
		sub := tt.CreateElement("cac:TaxSubtotal")
		amount(sub, "TaxableAmount", groups[r].base)
		amount(sub, "TaxAmount", groups[r].tax)
		cbc(sub, "Percent", strconv.Itoa(r))
		kdvScheme(sub.CreateElement("cac:TaxCategory"))
	}
}

func writeMonetaryTotal(root *etree.Element, f *entity.Fatura) {
	net := f.AraToplam.Sub(f.IndirimToplam)
	m := root.CreateElement("cac:LegalMonetaryTotal")
	amount(m, "LineExtensionAmount", net)
	amount(m, "TaxExclusiveAmount", net)
	amount(m, "TaxInclusiveAmount", f.GenelToplam)
	amount(m, "AllowanceTotalAmount", f.IndirimToplam)
	amount(m, "PayableAmount", f.GenelToplam)
}

func writeLine(root *etree.Element, s *entity.FaturaSatiri) {
	l := root.CreateElement("cac:InvoiceLine")
	cbc(l, "ID", strconv.Itoa(s.SiraNo))
	q := l.CreateElement("cbc:InvoicedQuantity")
	q.CreateAttr("unitCode", unitCode(s.Birim))
	q.SetText(s.Miktar.String())
	amount(l, "LineExtensionAmount", s.Brut().Sub(s.IndirimTutar))

	if s.IndirimTutar.IsPositive() {
		ac := l.CreateElement("cac:AllowanceCharge")
		cbc(ac, "ChargeIndicator", "false")
		cbc(ac, "MultiplierFactorNumeric", s.IndirimOrani.Div(decimal.NewFromInt(100)).String())
		amount(ac, "Amount", s.IndirimTutar)
		amount(ac, "BaseAmount", s.Brut())
	}

	tt := l.CreateElement("cac:TaxTotal")
	amount(tt, "TaxAmount", s.KdvTutar)
	sub := tt.CreateElement("cac:TaxSubtotal")
	amount(sub, "TaxableAmount", s.Brut().Sub(s.IndirimTutar))
	amount(sub, "TaxAmount", s.KdvTutar)
	cbc(sub, "Percent", strconv.Itoa(s.KdvOrani))
	kdvScheme(sub.CreateElement("cac:TaxCategory"))

	item := l.CreateElement("cac:Item")
	cbc(item, "Name", s.StokAdi)
	if s.Aciklama != "" {
		cbc(item, "Description", s.Aciklama)
	}
	if s.StokKodu != "" {
		item.CreateElement("cac:SellersItemIdentification").AddChild(newCbc("ID", s.StokKodu))
	}
	amount(l.CreateElement("cac:Price"), "PriceAmount", s.BirimFiyat)
}

func kdvScheme(cat *etree.Element) {
	ts := cat.CreateElement("cac:TaxScheme")
	cbc(ts, "Name", "KDV")
	cbc(ts, "TaxTypeCode", kdvTaxTypeCode)
}

// unitCode traduce la unidad del stok al código UN/ECE rec. 20.
func unitCode(birim string) string {
	switch birim {
	case "Kg", "KG", "kg":
		return "KGM"
	case "Lt", "LT", "lt", "Litre":
		return "LTR"
	case "M", "Metre", "m":
		return "MTR"
	case "Koli", "Paket":
		return "PA"
	}
	return "C62"
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newCbc(name, value string) *etree.Element {
	e := etree.NewElement("cbc:" + name)
	e.SetText(value)
	return e
}

func cbc(parent *etree.Element, name, value string) *etree.Element {
	e := parent.CreateElement("cbc:" + name)
	e.SetText(value)
	return e
}

func amount(parent *etree.Element, name string, v decimal.Decimal) {
	e := cbc(parent, name, v.StringFixed(2))
	e.CreateAttr("currencyID", currency)
}
