// Package ksef construye una versión simplificada del XML de factura estructurada (esquema FA)
// y su huella SHA-256 sobre la forma canónica C14N, para archivo.
package ksef

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	appbilling "github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/numbering"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
)

var _ appbilling.DocumentXMLExporter = (*Exporter)(nil)

// Namespace del esquema FA(2).
const NsFA = "http://crd.gov.pl/wzor/2023/06/29/12648/"

// Campos P_13_x (neto) y P_14_x (IVA) por tasa.
var rateFields = map[vat.Rate]string{
	vat.RateStandard:     "1",
	vat.RateReduced:      "2",
	vat.RateSuperReduced: "3",
	vat.RateZero:         "6_1",
}

var kinds = map[numbering.DocumentType]string{
	numbering.TypeVATInvoice: "VAT",
	numbering.TypeCorrective: "KOR",
	numbering.TypeProforma:   "PROFORMA",
	numbering.TypeQuote:      "OFERTA",
}

// Exporter implementa billing.DocumentXMLExporter.
type Exporter struct {
	seller     config.SellerConfig
	systemInfo string
}

// NewExporter construye el exportador. systemInfo se escribe en la cabecera (nombre de la app).
func NewExporter(seller config.SellerConfig, systemInfo string) *Exporter {
	return &Exporter{seller: seller, systemInfo: systemInfo}
}

// ExportXML devuelve el XML indentado y la huella base64 de su forma canónica.
// El mismo documento produce siempre el mismo XML y la misma huella.
func (e *Exporter) ExportXML(_ context.Context, view *appbilling.DocumentView) ([]byte, string, error) {
	doc, err := e.Build(view)
	if err != nil {
		return nil, "", err
	}
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("ksef: serializar: %w", err)
	}
	digest, err := Digest(out)
	if err != nil {
		return nil, "", err
	}
	return out, digest, nil
}

// Build arma el árbol XML del documento.
func (e *Exporter) Build(view *appbilling.DocumentView) (*etree.Document, error) {
	if view == nil || view.Document == nil {
		return nil, fmt.Errorf("ksef: documento vacío")
	}
	d := view.Document

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("Faktura")
	root.CreateAttr("xmlns", NsFA)

	header := root.CreateElement("Naglowek")
	form := header.CreateElement("KodFormularza")
	form.CreateAttr("kodSystemowy", "FA (2)")
	form.CreateAttr("wersjaSchemy", "1-0E")
	form.SetText("FA")
	header.CreateElement("WariantFormularza").SetText("2")
	header.CreateElement("DataWytworzeniaFa").SetText(d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	if e.systemInfo != "" {
		header.CreateElement("SystemInfo").SetText(e.systemInfo)
	}

	seller := root.CreateElement("Podmiot1")
	sellerID := seller.CreateElement("DaneIdentyfikacyjne")
	sellerID.CreateElement("NIP").SetText(e.seller.NIP)
	sellerID.CreateElement("Nazwa").SetText(e.seller.Name)
	if e.seller.Address != "" {
		addr := seller.CreateElement("Adres")
		addr.CreateElement("KodKraju").SetText("PL")
		addr.CreateElement("AdresL1").SetText(e.seller.Address)
	}

	buyer := root.CreateElement("Podmiot2").CreateElement("DaneIdentyfikacyjne")
	if d.CustomerNIP != "" {
		buyer.CreateElement("NIP").SetText(d.CustomerNIP)
	} else {
		buyer.CreateElement("BrakID").SetText("1")
	}
	buyer.CreateElement("Nazwa").SetText(d.CustomerName)

	fa := root.CreateElement("Fa")
	fa.CreateElement("KodWaluty").SetText(d.Currency)
	fa.CreateElement("P_1").SetText(d.IssueDate.Format("2006-01-02"))
	fa.CreateElement("P_2").SetText(d.Number)
	for _, row := range view.Summary.Breakdown {
		suffix, ok := rateFields[row.Rate]
		if !ok {
			return nil, fmt.Errorf("ksef: tasa sin campo %s", row.Rate)
		}
		fa.CreateElement("P_13_" + suffix).SetText(money.Fixed(row.Net))
		if row.Rate != vat.RateZero {
			fa.CreateElement("P_14_" + suffix).SetText(money.Fixed(row.VAT))
		}
	}
	fa.CreateElement("P_15").SetText(money.Fixed(d.TotalGross))
	if d.DocumentDiscountAmount.IsPositive() {
		fa.CreateElement("Rabat").SetText(money.Fixed(d.DocumentDiscountAmount))
	}
	if d.DeliveryCost.IsPositive() {
		fa.CreateElement("KosztDostawy").SetText(money.Fixed(d.DeliveryCost))
	}
	fa.CreateElement("RodzajFaktury").SetText(kinds[numbering.DocumentType(d.Type)])

	for _, l := range view.Lines {
		w := fa.CreateElement("FaWiersz")
		w.CreateElement("NrWierszaFa").SetText(strconv.Itoa(l.Position))
		w.CreateElement("P_7").SetText(l.Description)
		if l.Unit != "" {
			w.CreateElement("P_8A").SetText(l.Unit)
		}
		w.CreateElement("P_8B").SetText(l.Quantity.String())
		w.CreateElement("P_9A").SetText(money.Fixed(l.EffectiveRate))
		if l.DiscountApplied.GreaterThan(decimal.Zero) {
			w.CreateElement("P_10").SetText(money.Fixed(l.DiscountApplied))
		}
		w.CreateElement("P_11").SetText(money.Fixed(l.Net))
		w.CreateElement("P_12").SetText(strconv.Itoa(l.VATRate))
	}
	return doc, nil
}

// Digest calcula SHA-256 (base64) de la forma canónica C14N del XML.
func Digest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("ksef: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}
