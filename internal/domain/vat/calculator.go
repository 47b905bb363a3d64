package vat

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
)

// Calculation es el triple neto/IVA/bruto de un importe. Invariante: Net + VAT == Gross.
type Calculation struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
	Rate  Rate
}

// FromNet calcula IVA y bruto a partir del neto.
// vat = round(net * tasa / 100), gross = net + vat (net ya redondeado).
func FromNet(net decimal.Decimal, rate Rate) (Calculation, error) {
	if !rate.Valid() {
		return Calculation{}, invalidRate(rate.Decimal())
	}
	if net.IsNegative() {
		return Calculation{}, fmt.Errorf("%w: neto negativo %s", domain.ErrInvalidInput, net.String())
	}
	n := money.Round(net)
	v := money.Round(money.Percent(n, rate.Decimal()))
	return Calculation{Net: n, VAT: v, Gross: money.Round(n.Add(v)), Rate: rate}, nil
}

// FromGross obtiene el neto contenido en un importe bruto.
// net = round(gross / (1 + tasa/100)), vat = round(gross - net).
func FromGross(gross decimal.Decimal, rate Rate) (Calculation, error) {
	if !rate.Valid() {
		return Calculation{}, invalidRate(rate.Decimal())
	}
	if gross.IsNegative() {
		return Calculation{}, fmt.Errorf("%w: bruto negativo %s", domain.ErrInvalidInput, gross.String())
	}
	g := money.Round(gross)
	divisor := decimal.NewFromInt(1).Add(money.Percent(decimal.NewFromInt(1), rate.Decimal()))
	n := money.Round(g.Div(divisor))
	return Calculation{Net: n, VAT: money.Round(g.Sub(n)), Gross: g, Rate: rate}, nil
}

// Validate comprueba la coherencia de un triple recibido de fuera (importaciones, ediciones manuales).
// Devuelve el cálculo esperado y, si hay diferencias mayores a 0.01, un error con todas ellas.
func Validate(net, vatAmount, gross decimal.Decimal, rate Rate) (Calculation, error) {
	expected, err := FromNet(net, rate)
	if err != nil {
		return Calculation{}, err
	}
	var errs []error
	if !money.EqualCents(vatAmount, expected.VAT) {
		errs = append(errs, fmt.Errorf("IVA no coincide: esperado %s, recibido %s", money.Fixed(expected.VAT), money.Fixed(vatAmount)))
	}
	if !money.EqualCents(gross, expected.Gross) {
		errs = append(errs, fmt.Errorf("bruto no coincide: esperado %s, recibido %s", money.Fixed(expected.Gross), money.Fixed(gross)))
	}
	if !money.EqualCents(net.Add(vatAmount), gross) {
		errs = append(errs, fmt.Errorf("neto + IVA (%s) distinto del bruto (%s)", money.Fixed(net.Add(vatAmount)), money.Fixed(gross)))
	}
	if len(errs) > 0 {
		return expected, errors.Join(append([]error{domain.ErrInvalidInput}, errs...)...)
	}
	return expected, nil
}
