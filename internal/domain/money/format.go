package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
)

var plPrinter = message.NewPrinter(language.Polish)

// FormatAmount formatea según la configuración regional polaca, sin símbolo (ej: 12 345,67).
// La parte entera se agrupa como entero y los céntimos salen del propio decimal.
func FormatAmount(d decimal.Decimal) string {
	r := Round(d)
	sign := ""
	if r.IsNegative() {
		sign, r = "-", r.Abs()
	}
	fixed := r.StringFixed(Places)
	cents := fixed[strings.IndexByte(fixed, '.')+1:]
	return sign + plPrinter.Sprint(number.Decimal(r.IntPart())) + "," + cents
}

// FormatPLN formatea con el sufijo de moneda usado en facturas (ej: 12 345,67 zł).
func FormatPLN(d decimal.Decimal) string {
	return FormatAmount(d) + " zł"
}

// ParseAmount interpreta importes escritos a mano o copiados de un PDF:
// "1 234,56 PLN", "1234.56", "1.234,56 zł", "1,234.56".
//
// Si aparecen coma y punto, el último es el separador decimal y el otro agrupa miles.
// Un separador repetido solo puede agrupar miles. Más de dos decimales es un error:
// "1.234" es ambiguo y no se redondea en silencio.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(
		"PLN", "", "zł", "", " ", "", "\u00a0", "", "\u202f", "",
	).Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: importe vacío", domain.ErrInvalidInput)
	}
	sign := ""
	if cleaned[0] == '-' || cleaned[0] == '+' {
		sign, cleaned = cleaned[:1], cleaned[1:]
	}

	intPart, frac := cleaned, ""
	if i := strings.LastIndexAny(cleaned, ",."); i >= 0 && strings.Count(cleaned, cleaned[i:i+1]) == 1 {
		intPart, frac = cleaned[:i], cleaned[i+1:]
		if frac == "" || len(frac) > Places || !digitsOnly(frac) {
			return decimal.Zero, fmt.Errorf("%w: importe %q: se esperan 1 o 2 decimales", domain.ErrInvalidInput, s)
		}
	}
	if intPart == "" && frac != "" {
		intPart = "0"
	}
	digits, ok := ungroup(intPart)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: importe %q: separador de miles no válido", domain.ErrInvalidInput, s)
	}
	if frac != "" {
		digits += "." + frac
	}
	d, err := decimal.NewFromString(sign + digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: importe %q: %v", domain.ErrInvalidInput, s, err)
	}
	return d, nil
}

// ungroup quita el separador de miles (coma o punto, uno solo) comprobando grupos de tres cifras.
func ungroup(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	sep := ""
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		return "", false
	case strings.Contains(s, ","):
		sep = ","
	case strings.Contains(s, "."):
		sep = "."
	default:
		return s, digitsOnly(s)
	}
	groups := strings.Split(s, sep)
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return "", false
	}
	for i, g := range groups {
		if !digitsOnly(g) || (i > 0 && len(g) != 3) {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
