package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	wordUnits    = [...]string{"", "jeden", "dwa", "trzy", "cztery", "pięć", "sześć", "siedem", "osiem", "dziewięć"}
	wordTeens    = [...]string{"dziesięć", "jedenaście", "dwanaście", "trzynaście", "czternaście", "piętnaście", "szesnaście", "siedemnaście", "osiemnaście", "dziewiętnaście"}
	wordTens     = [...]string{"", "", "dwadzieścia", "trzydzieści", "czterdzieści", "pięćdziesiąt", "sześćdziesiąt", "siedemdziesiąt", "osiemdziesiąt", "dziewięćdziesiąt"}
	wordHundreds = [...]string{"", "sto", "dwieście", "trzysta", "czterysta", "pięćset", "sześćset", "siedemset", "osiemset", "dziewięćset"}
)

// Formas gramaticales: [singular, 2-4, resto].
var (
	formsZloty    = [3]string{"złoty", "złote", "złotych"}
	formsGrosz    = [3]string{"grosz", "grosze", "groszy"}
	formsThousand = [3]string{"tysiąc", "tysiące", "tysięcy"}
	formsMillion  = [3]string{"milion", "miliony", "milionów"}
)

const maxWords = 999_999_999

// InWords devuelve el importe en palabras en polaco ("kwota słownie"), p. ej.
// 123.45 -> "sto dwadzieścia trzy złote czterdzieści pięć groszy".
// Fuera de rango (>= mil millones) devuelve el importe formateado.
func InWords(d decimal.Decimal) string {
	d = Round(d)
	negative := d.IsNegative()
	d = d.Abs()

	integer := d.IntPart()
	cents := d.Sub(decimal.NewFromInt(integer)).Mul(hundred).IntPart()
	if integer > maxWords {
		return FormatPLN(d)
	}

	var parts []string
	if negative {
		parts = append(parts, "minus")
	}
	if integer == 0 {
		parts = append(parts, "zero", formsZloty[2])
	} else {
		parts = append(parts, integerWords(integer), pluralForm(integer, formsZloty))
	}
	if cents > 0 {
		parts = append(parts, hundredsWords(cents), pluralForm(cents, formsGrosz))
	}
	return strings.Join(parts, " ")
}

func integerWords(n int64) string {
	var parts []string
	millions := n / 1_000_000
	thousands := (n / 1000) % 1000
	rest := n % 1000

	if millions > 0 {
		parts = append(parts, scaleWords(millions, formsMillion))
	}
	if thousands > 0 {
		parts = append(parts, scaleWords(thousands, formsThousand))
	}
	if rest > 0 {
		parts = append(parts, hundredsWords(rest))
	}
	return strings.Join(parts, " ")
}

// scaleWords: "tysiąc" y "milion" no llevan "jeden" delante.
func scaleWords(n int64, forms [3]string) string {
	if n == 1 {
		return forms[0]
	}
	return hundredsWords(n) + " " + pluralForm(n, forms)
}

func hundredsWords(n int64) string {
	var parts []string
	h, t, u := n/100, (n%100)/10, n%10
	if h > 0 {
		parts = append(parts, wordHundreds[h])
	}
	switch {
	case t == 1:
		parts = append(parts, wordTeens[u])
	default:
		if t > 0 {
			parts = append(parts, wordTens[t])
		}
		if u > 0 {
			parts = append(parts, wordUnits[u])
		}
	}
	return strings.Join(parts, " ")
}

// pluralForm aplica la regla polaca: 1 -> singular; termina en 2-4 (salvo 12-14) -> forma corta; resto -> genitivo plural.
func pluralForm(n int64, forms [3]string) string {
	if n == 1 {
		return forms[0]
	}
	lastDigit, lastTwo := n%10, n%100
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwo < 12 || lastTwo > 14) {
		return forms[1]
	}
	return forms[2]
}
