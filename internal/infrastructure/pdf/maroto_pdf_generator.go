// Package pdf genera la representación PDF de facturas, proformas, correcciones y ofertas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Vendedor + NIP      │  Tipo + Número + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NABYWCA: Nombre + NIP                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lp | Nazwa | Ilość | Cena | VAT | Netto | Brutto    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN IVA por tasa        │  TOTALES + importe en letras │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR (número + total) + leyenda                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/numbering"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
)

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var titles = map[numbering.DocumentType]string{
	numbering.TypeVATInvoice: "FAKTURA VAT",
	numbering.TypeProforma:   "FAKTURA PROFORMA",
	numbering.TypeCorrective: "FAKTURA KORYGUJĄCA",
	numbering.TypeQuote:      "OFERTA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	seller config.SellerConfig
}

// NewMarotoPDFGenerator construye el generador con los datos del vendedor.
func NewMarotoPDFGenerator(seller config.SellerConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{seller: seller}
}

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, view *appbilling.DocumentView) ([]byte, error) {
	if view == nil || view.Document == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	doc := view.Document
	cfg := mconfig.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(doc)+" "+doc.Number, true).
		WithAuthor(nonEmpty(g.seller.Name, "—"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, g.seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(buyerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(view.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(vatSummaryRows(view.Summary)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(totalsRow(doc))
	m.AddRows(inWordsRow(view.InWords))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(doc, g.seller)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func title(doc *entity.Document) string {
	if t, ok := titles[numbering.DocumentType(doc.Type)]; ok {
		return t
	}
	return "DOKUMENT"
}

func sellerIDs(seller config.SellerConfig) string {
	ids := "NIP: " + nonEmpty(seller.NIP, "—")
	if seller.REGON != "" {
		ids += "   REGON: " + seller.REGON
	}
	return ids
}

// headerRow: vendedor + NIP (izq) y tipo + número + fecha (der).
func headerRow(doc *entity.Document, seller config.SellerConfig) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(seller.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(sellerIDs(seller), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(seller.Address, props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title(doc), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data wystawienia: "+doc.IssueDate.Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// buyerRow: datos del comprador.
func buyerRow(doc *entity.Document) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("NABYWCA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("NIP: "+nonEmpty(doc.CustomerNIP, "—"), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Lp.", 1, align.Center),
		headerCell("Nazwa usługi", 3, align.Left),
		headerCell("Ilość", 1, align.Right),
		headerCell("Cena netto", 2, align.Right),
		headerCell("VAT", 1, align.Center),
		headerCell("Wartość netto", 2, align.Right),
		headerCell("Wartość brutto", 2, align.Right),
	)
}

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

// tableLineRows: una fila por línea del documento.
func tableLineRows(lines []*entity.DocumentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := l.Quantity.String()
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		result = append(result, row.New(7).Add(
			cell(fmt.Sprintf("%d", l.Position), 1, align.Center),
			cell(l.Description, 3, align.Left),
			cell(qty, 1, align.Right),
			cell(money.FormatAmount(l.EffectiveRate), 2, align.Right),
			cell(vat.Rate(l.VATRate).String(), 1, align.Center),
			cell(money.FormatAmount(l.Net), 2, align.Right),
			cell(money.FormatAmount(l.Gross), 2, align.Right),
		))
	}
	return result
}

// vatSummaryRows: registro de IVA por tasa (una fila por tasa y la fila de totales).
func vatSummaryRows(s vat.Summary) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New(s.Title(), props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
		row.New(6).Add(
			headerCell("Stawka", 3, align.Left),
			headerCell("Netto", 3, align.Right),
			headerCell("VAT", 3, align.Right),
			headerCell("Brutto", 3, align.Right),
		),
	}
	for _, r := range s.Breakdown {
		rows = append(rows, row.New(5).Add(
			cell(r.Rate.String(), 3, align.Left),
			cell(money.FormatAmount(r.Net), 3, align.Right),
			cell(money.FormatAmount(r.VAT), 3, align.Right),
			cell(money.FormatAmount(r.Gross), 3, align.Right),
		))
	}
	rows = append(rows, row.New(6).Add(
		headerCell("Razem", 3, align.Left),
		headerCell(money.FormatAmount(s.TotalNet), 3, align.Right),
		headerCell(money.FormatAmount(s.TotalVAT), 3, align.Right),
		headerCell(money.FormatAmount(s.TotalGross), 3, align.Right),
	))
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 20,
		})
	}
	return row.New(28).Add(
		col.New(4),
		col.New(4).Add(
			label("Suma netto:"),
			text.New("Rabat:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("Dostawa:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 10}),
			text.New("VAT:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 15}),
			grand("DO ZAPŁATY:"),
		),
		col.New(4).Add(
			value(money.FormatPLN(doc.SubtotalNet)),
			text.New("-"+money.FormatPLN(doc.DocumentDiscountAmount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(money.FormatPLN(doc.DeliveryCost), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 10}),
			text.New(money.FormatPLN(doc.VATAmount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 15}),
			grand(money.FormatPLN(doc.TotalGross)),
		),
	)
}

func inWordsRow(words string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Słownie: "+words, props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

// footerRows: QR con número y total, cuenta bancaria y leyenda.
func footerRows(doc *entity.Document, seller config.SellerConfig) []core.Row {
	qr := fmt.Sprintf("%s|%s|%s", doc.Number, money.Fixed(doc.TotalGross), doc.Currency)
	legend := "Dokument wygenerowany elektronicznie, nie wymaga podpisu."
	if doc.Type == string(numbering.TypeProforma) || doc.Type == string(numbering.TypeQuote) {
		legend = "Dokument nie jest fakturą VAT i nie stanowi podstawy do odliczenia podatku."
	}
	return []core.Row{
		row.New(36).Add(
			col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Rachunek: "+nonEmpty(seller.Bank, "—"), props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New(legend, props.Text{
					Size: 7, Top: 14, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
