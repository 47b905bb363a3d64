package vat

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
)

// Item es un par (neto, tasa) de entrada al resumen.
type Item struct {
	Net  decimal.Decimal
	Rate Rate
}

// BreakdownRow es una fila del registro de IVA (una por tasa).
type BreakdownRow struct {
	Rate      Rate
	Net       decimal.Decimal
	VAT       decimal.Decimal
	Gross     decimal.Decimal
	ItemCount int
}

// Summary es el resumen de IVA de un documento.
type Summary struct {
	TotalNet         decimal.Decimal
	TotalVAT         decimal.Decimal
	TotalGross       decimal.Decimal
	Breakdown        []BreakdownRow
	HasMultipleRates bool
}

// Title devuelve el encabezado del bloque de IVA del documento.
func (s Summary) Title() string {
	if s.HasMultipleRates {
		return "Podsumowanie VAT"
	}
	return "Wartość faktury"
}

// Aggregate agrupa los ítems por tasa (descendente). Cada grupo suma neto e IVA calculados
// línea a línea con FromNet y se redondea por separado; los totales son la suma de los
// grupos ya redondeados, como se presenta en el registro de IVA.
func Aggregate(items []Item) (Summary, error) {
	type group struct {
		net, vat decimal.Decimal
		count    int
	}
	groups := make(map[Rate]*group)
	for _, it := range items {
		calc, err := FromNet(it.Net, it.Rate)
		if err != nil {
			return Summary{}, err
		}
		g, ok := groups[it.Rate]
		if !ok {
			g = &group{}
			groups[it.Rate] = g
		}
		g.net = g.net.Add(calc.Net)
		g.vat = g.vat.Add(calc.VAT)
		g.count++
	}

	s := Summary{Breakdown: make([]BreakdownRow, 0, len(groups))}
	for rate, g := range groups {
		net, v := money.Round(g.net), money.Round(g.vat)
		s.Breakdown = append(s.Breakdown, BreakdownRow{
			Rate:      rate,
			Net:       net,
			VAT:       v,
			Gross:     money.Round(net.Add(v)),
			ItemCount: g.count,
		})
	}
	sort.Slice(s.Breakdown, func(i, j int) bool { return s.Breakdown[i].Rate > s.Breakdown[j].Rate })

	nets := make([]decimal.Decimal, 0, len(s.Breakdown))
	vats := make([]decimal.Decimal, 0, len(s.Breakdown))
	for _, row := range s.Breakdown {
		nets = append(nets, row.Net)
		vats = append(vats, row.VAT)
	}
	s.TotalNet = money.Sum(nets...)
	s.TotalVAT = money.Sum(vats...)
	s.TotalGross = money.Round(s.TotalNet.Add(s.TotalVAT))
	s.HasMultipleRates = len(s.Breakdown) > 1
	return s, nil
}
