// Package vat implementa el cálculo del IVA polaco (VAT): conversión neto↔bruto
// y el resumen por tasa que exige la presentación legal de las facturas.
package vat

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
)

// Rate es una tasa de IVA polaca en puntos porcentuales enteros.
type Rate int

// Tasas legales vigentes. Cualquier otro valor es entrada inválida.
const (
	RateZero         Rate = 0  // exportaciones, algunos servicios médicos
	RateSuperReduced Rate = 5  // alimentos básicos
	RateReduced      Rate = 8  // libros, medicamentos, construcción residencial
	RateStandard     Rate = 23 // tasa general
)

// Rates lista las tasas legales en orden descendente (orden del resumen).
var Rates = []Rate{RateStandard, RateReduced, RateSuperReduced, RateZero}

// Valid indica si la tasa pertenece al conjunto legal.
func (r Rate) Valid() bool {
	switch r {
	case RateZero, RateSuperReduced, RateReduced, RateStandard:
		return true
	}
	return false
}

// Decimal devuelve la tasa como porcentaje decimal (23 -> 23).
func (r Rate) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(r))
}

// String ej: "23%".
func (r Rate) String() string {
	return fmt.Sprintf("%d%%", int(r))
}

// Description devuelve la leyenda que se imprime en el resumen de IVA.
func (r Rate) Description() string {
	switch r {
	case RateStandard:
		return "Stawka podstawowa (23%)"
	case RateReduced:
		return "Stawka obniżona (8%)"
	case RateSuperReduced:
		return "Stawka obniżona (5%)"
	case RateZero:
		return "Stawka 0%"
	default:
		return fmt.Sprintf("Stawka %d%%", int(r))
	}
}

// ParseRate valida un entero como tasa legal.
func ParseRate(v int) (Rate, error) {
	r := Rate(v)
	if !r.Valid() {
		return 0, invalidRate(decimal.NewFromInt(int64(v)))
	}
	return r, nil
}

// RateFromDecimal valida una tasa recibida como decimal (ej: columnas NUMERIC o JSON).
// Solo se aceptan valores enteros del conjunto legal.
func RateFromDecimal(d decimal.Decimal) (Rate, error) {
	if !d.Equal(d.Truncate(0)) {
		return 0, invalidRate(d)
	}
	return ParseRate(int(d.IntPart()))
}

// ClosestRate sugiere la tasa legal más cercana a un valor inválido.
// En empate gana la tasa más alta.
func ClosestRate(d decimal.Decimal) Rate {
	best := Rates[0]
	bestDiff := d.Sub(best.Decimal()).Abs()
	for _, r := range Rates[1:] {
		diff := d.Sub(r.Decimal()).Abs()
		if diff.LessThan(bestDiff) {
			best, bestDiff = r, diff
		}
	}
	return best
}

func invalidRate(d decimal.Decimal) error {
	return fmt.Errorf("%w: %s%% (¿quiso decir %s?)", domain.ErrInvalidVATRate, d.String(), ClosestRate(d))
}
