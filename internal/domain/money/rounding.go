// Package money define la política de redondeo y formato de importes en PLN.
// Todo importe calculado pasa por Round antes de devolverse o combinarse con otro.
package money

import "github.com/shopspring/decimal"

// Currency es la única moneda del dominio.
const Currency = "PLN"

// Places es la precisión contractual de los importes (céntimos / grosze).
const Places = 2

var (
	hundred = decimal.NewFromInt(100)
	// Cent es la tolerancia estándar al comparar importes ya redondeados.
	Cent = decimal.New(1, -Places)
)

// Round redondea a 2 decimales, mitad alejándose de cero (1.005 -> 1.01, -1.005 -> -1.01).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Sum suma los importes y redondea el resultado.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return Round(total)
}

// Percent devuelve d * pct / 100 sin redondear.
func Percent(d, pct decimal.Decimal) decimal.Decimal {
	return d.Mul(pct).Div(hundred)
}

// Equal compara dos importes con tolerancia absoluta.
func Equal(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// EqualCents compara con tolerancia de 0.01.
func EqualCents(a, b decimal.Decimal) bool {
	return Equal(a, b, Cent)
}

// Fixed devuelve el formato de transporte: siempre 2 decimales, punto decimal (ej: 1334.29).
func Fixed(d decimal.Decimal) string {
	return Round(d).StringFixed(Places)
}
