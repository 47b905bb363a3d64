// Package numbering formatea, interpreta y calcula los números de documento
// con el formato PREFIJO/AAAA/MM/NNNN (ej: FV/2025/01/0001).
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
)

// DocumentType tipo de documento numerado.
type DocumentType string

const (
	TypeVATInvoice DocumentType = "vat_invoice"
	TypeProforma   DocumentType = "proforma"
	TypeCorrective DocumentType = "corrective"
	TypeQuote      DocumentType = "quote"
)

var prefixes = map[DocumentType]string{
	TypeVATInvoice: "FV",
	TypeProforma:   "PF",
	TypeCorrective: "FK",
	TypeQuote:      "OF",
}

// Types lista los tipos de documento numerados.
func Types() []DocumentType {
	return []DocumentType{TypeVATInvoice, TypeProforma, TypeCorrective, TypeQuote}
}

// ParseType valida el tipo de documento. Acepta también el prefijo (FV, PF, FK, OF).
func ParseType(s string) (DocumentType, error) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := prefixes[t]; ok {
		return t, nil
	}
	if byPrefix, ok := TypeOfPrefix(strings.ToUpper(strings.TrimSpace(s))); ok {
		return byPrefix, nil
	}
	return "", fmt.Errorf("%w: tipo de documento desconocido %q", domain.ErrInvalidInput, s)
}

// Prefix devuelve el prefijo del tipo ("" si el tipo no existe).
func (t DocumentType) Prefix() string {
	return prefixes[t]
}

// TypeOfPrefix resuelve el tipo a partir del prefijo.
func TypeOfPrefix(prefix string) (DocumentType, bool) {
	for t, p := range prefixes {
		if p == prefix {
			return t, true
		}
	}
	return "", false
}

// Period mes contable de la numeración.
type Period struct {
	Year  int
	Month int
}

// PeriodOf devuelve el periodo de una fecha.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Valid indica si el periodo tiene año de 4 cifras y mes 1..12.
func (p Period) Valid() bool {
	return p.Year >= 1000 && p.Year <= 9999 && p.Month >= 1 && p.Month <= 12
}

func (p Period) String() string {
	return fmt.Sprintf("%04d/%02d", p.Year, p.Month)
}

// Number número de documento interpretado.
type Number struct {
	Prefix   string
	Year     int
	Month    int
	Sequence int
}

// Period devuelve el periodo del número.
func (n Number) Period() Period {
	return Period{Year: n.Year, Month: n.Month}
}

func (n Number) String() string {
	return fmt.Sprintf("%s/%04d/%02d/%04d", n.Prefix, n.Year, n.Month, n.Sequence)
}

var numberPattern = regexp.MustCompile(`^(FV|PF|FK|OF)/(\d{4})/(\d{2})/(\d{4,})$`)

// Format compone el número. La secuencia se rellena con ceros hasta 4 cifras.
func Format(prefix string, p Period, sequence int) string {
	return Number{Prefix: prefix, Year: p.Year, Month: p.Month, Sequence: sequence}.String()
}

// Parse interpreta un número. Devuelve false si el texto no tiene el formato esperado;
// los llamadores deciden si eso es un error.
func Parse(s string) (Number, bool) {
	m := numberPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Number{}, false
	}
	year, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[3])
	seq, err := strconv.Atoi(m[4])
	if err != nil || month < 1 || month > 12 || seq < 1 {
		return Number{}, false
	}
	return Number{Prefix: m[1], Year: year, Month: month, Sequence: seq}, true
}

// NextSequence devuelve max+1 entre los números existentes del mismo tipo y periodo
// (sigue huecos, no los rellena). Sin coincidencias devuelve 1.
func NextSequence(t DocumentType, p Period, existing []string) int {
	prefix := t.Prefix()
	highest := 0
	for _, s := range existing {
		base, _ := SplitRevision(s)
		n, ok := Parse(base)
		if !ok || n.Prefix != prefix || n.Period() != p {
			continue
		}
		if n.Sequence > highest {
			highest = n.Sequence
		}
	}
	return highest + 1
}

// Next devuelve el siguiente número formateado para el tipo y periodo.
func Next(t DocumentType, p Period, existing []string) string {
	return Format(t.Prefix(), p, NextSequence(t, p, existing))
}

const revisionSep = "-v"

// WithRevision añade el sufijo de revisión de ofertas (OF/2025/01/0001-v2).
// La revisión 1 es el número original sin sufijo.
func WithRevision(number string, revision int) string {
	base, _ := SplitRevision(number)
	if revision <= 1 {
		return base
	}
	return base + revisionSep + strconv.Itoa(revision)
}

// SplitRevision separa número base y revisión (1 si no tiene sufijo).
func SplitRevision(s string) (string, int) {
	i := strings.LastIndex(s, revisionSep)
	if i < 0 {
		return s, 1
	}
	rev, err := strconv.Atoi(s[i+len(revisionSep):])
	if err != nil || rev < 2 {
		return s, 1
	}
	return s[:i], rev
}

// Key identifica el contador de un tipo y periodo (ej: FV:2025:03).
func Key(t DocumentType, p Period) string {
	return fmt.Sprintf("%s:%04d:%02d", t.Prefix(), p.Year, p.Month)
}

// PeriodPrefix parte común de los números de un tipo y periodo (ej: FV/2025/03/).
func PeriodPrefix(prefix string, p Period) string {
	return fmt.Sprintf("%s/%04d/%02d/", prefix, p.Year, p.Month)
}
