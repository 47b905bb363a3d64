package billing

import (
	"context"
	"fmt"

	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/numbering"
	"github.com/thecactoos/enterprise-sub001/internal/domain/pricing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/totals"
)

// PricingUseCase expone el motor sin persistencia: cálculo de líneas sueltas, resumen de IVA,
// totales de una oferta rápida y consulta de numeración.
type PricingUseCase struct {
	numbering *NumberingUseCase
	recorder  Recorder
}

// NewPricingUseCase construye el caso de uso. numberingUC puede ser nil si no se usa Preview.
func NewPricingUseCase(numberingUC *NumberingUseCase, recorder Recorder) *PricingUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &PricingUseCase{numbering: numberingUC, recorder: recorder}
}

// PriceLine calcula una línea.
func (uc *PricingUseCase) PriceLine(in dto.PricingLineRequest) (*dto.PricedLineResponse, error) {
	p, err := pricing.Price(in.Line())
	if err != nil {
		uc.recorder.PricingRejected(errorKind(err))
		return nil, err
	}
	uc.recorder.LinePriced(string(p.Tier))
	out := dto.NewPricedLineResponse(p)
	return &out, nil
}

func (uc *PricingUseCase) priceAll(in []dto.PricingLineRequest) ([]pricing.PricedLine, error) {
	lines := make([]pricing.Line, 0, len(in))
	for _, l := range in {
		lines = append(lines, l.Line())
	}
	priced, err := pricing.PriceAll(lines)
	if err != nil {
		uc.recorder.PricingRejected(errorKind(err))
		return nil, err
	}
	for _, p := range priced {
		uc.recorder.LinePriced(string(p.Tier))
	}
	return priced, nil
}

// VATSummary calcula las líneas y devuelve el desglose de IVA por tasa.
func (uc *PricingUseCase) VATSummary(in dto.PricingLinesRequest) (*dto.VATSummaryResponse, error) {
	priced, err := uc.priceAll(in.Lines)
	if err != nil {
		return nil, err
	}
	summary, err := totals.Breakdown(priced)
	if err != nil {
		return nil, err
	}
	out := dto.NewVATSummaryResponse(summary)
	return &out, nil
}

// Quote calcula líneas, totales con ajustes de documento, desglose de IVA e importe en letras.
func (uc *PricingUseCase) Quote(in dto.PricingLinesRequest) (*dto.QuoteResponse, error) {
	priced, err := uc.priceAll(in.Lines)
	if err != nil {
		return nil, err
	}
	tot, err := totals.Aggregate(priced, in.Adjustment())
	if err != nil {
		uc.recorder.PricingRejected(errorKind(err))
		return nil, err
	}
	summary, err := totals.Breakdown(priced)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.PricedLineResponse, 0, len(priced))
	for _, p := range priced {
		lines = append(lines, dto.NewPricedLineResponse(p))
	}
	return &dto.QuoteResponse{
		Lines:      lines,
		Totals:     dto.NewTotalsResponse(tot),
		VATSummary: dto.NewVATSummaryResponse(summary),
		InWords:    money.InWords(tot.TotalGross),
	}, nil
}

// NextNumber muestra el número que recibiría el próximo documento del tipo, sin reservarlo.
func (uc *PricingUseCase) NextNumber(ctx context.Context, companyID, docType string, year, month int) (*dto.NumberResponse, error) {
	if uc.numbering == nil {
		return nil, fmt.Errorf("numeración no configurada")
	}
	t, err := numbering.ParseType(docType)
	if err != nil {
		return nil, err
	}
	p := numbering.Period{Year: year, Month: month}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: periodo %d/%d", domain.ErrInvalidInput, year, month)
	}
	number, err := uc.numbering.Preview(ctx, companyID, t, p)
	if err != nil {
		return nil, err
	}
	out, _ := ParseNumber(number)
	return out, nil
}

// ParseNumber interpreta un número de documento. ok es false si no tiene el formato esperado.
func ParseNumber(s string) (*dto.NumberResponse, bool) {
	base, revision := numbering.SplitRevision(s)
	n, ok := numbering.Parse(base)
	if !ok {
		return nil, false
	}
	out := &dto.NumberResponse{
		Number:   s,
		Prefix:   n.Prefix,
		Year:     n.Year,
		Month:    n.Month,
		Sequence: n.Sequence,
		Revision: revision,
	}
	if t, ok := numbering.TypeOfPrefix(n.Prefix); ok {
		out.Type = string(t)
	}
	return out, true
}
