// Package totals agrega líneas ya calculadas en los totales de un documento
// (factura, proforma, corrección u oferta).
package totals

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/pricing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
)

var hundred = decimal.NewFromInt(100)

// Adjustment ajustes a nivel de documento. Si DiscountPercent > 0 se ignora DiscountAmount.
type Adjustment struct {
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	DeliveryCost    decimal.Decimal
}

// Validate rechaza ajustes negativos o porcentajes mayores a 100.
func (a Adjustment) Validate() error {
	if a.DiscountPercent.IsNegative() || a.DiscountPercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: porcentaje de descuento %s fuera de [0, 100]", domain.ErrInvalidDocumentAdjustment, a.DiscountPercent)
	}
	if a.DiscountAmount.IsNegative() {
		return fmt.Errorf("%w: descuento negativo %s", domain.ErrInvalidDocumentAdjustment, a.DiscountAmount)
	}
	if a.DeliveryCost.IsNegative() {
		return fmt.Errorf("%w: coste de envío negativo %s", domain.ErrInvalidDocumentAdjustment, a.DeliveryCost)
	}
	if !pricing.HasScale(a.DiscountPercent, pricing.PercentScale) ||
		!pricing.HasScale(a.DiscountAmount, pricing.MoneyScale) ||
		!pricing.HasScale(a.DeliveryCost, pricing.MoneyScale) {
		return fmt.Errorf("%w: los ajustes del documento admiten como máximo 2 decimales", domain.ErrInvalidDocumentAdjustment)
	}
	return nil
}

// Totals totales derivados de las líneas; nunca se editan por separado.
type Totals struct {
	SubtotalNet             decimal.Decimal
	SubtotalGross           decimal.Decimal
	DocumentDiscountAmount  decimal.Decimal
	DocumentDiscountPercent decimal.Decimal
	DeliveryCost            decimal.Decimal
	TotalNet                decimal.Decimal
	VATAmount               decimal.Decimal
	TotalGross              decimal.Decimal
	Currency                string
}

// Aggregate calcula los totales del documento.
//
// El IVA es la suma del IVA de cada línea y no se recalcula sobre el neto descontado:
// el descuento del documento no reduce el IVA.
func Aggregate(lines []pricing.PricedLine, adj Adjustment) (Totals, error) {
	if err := adj.Validate(); err != nil {
		return Totals{}, err
	}

	nets := make([]decimal.Decimal, 0, len(lines))
	grosses := make([]decimal.Decimal, 0, len(lines))
	vats := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		nets = append(nets, l.Net)
		grosses = append(grosses, l.Gross)
		vats = append(vats, l.VAT)
	}

	t := Totals{
		SubtotalNet:   money.Sum(nets...),
		SubtotalGross: money.Sum(grosses...),
		VATAmount:     money.Sum(vats...),
		DeliveryCost:  money.Round(adj.DeliveryCost),
		Currency:      money.Currency,
	}

	switch {
	case adj.DiscountPercent.IsPositive():
		t.DocumentDiscountPercent = adj.DiscountPercent
		t.DocumentDiscountAmount = money.Round(money.Percent(t.SubtotalNet, adj.DiscountPercent))
	case adj.DiscountAmount.IsPositive():
		t.DocumentDiscountAmount = decimal.Min(money.Round(adj.DiscountAmount), t.SubtotalNet)
	default:
		t.DocumentDiscountAmount = decimal.Zero
	}

	t.TotalNet = money.Round(t.SubtotalNet.Sub(t.DocumentDiscountAmount).Add(t.DeliveryCost))
	t.TotalGross = money.Round(t.TotalNet.Add(t.VATAmount))
	return t, nil
}

// Breakdown resumen de IVA por tasa de las mismas líneas.
func Breakdown(lines []pricing.PricedLine) (vat.Summary, error) {
	items := make([]vat.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, vat.Item{Net: l.Net, Rate: l.VATRate})
	}
	return vat.Aggregate(items)
}
