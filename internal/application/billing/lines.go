package billing

import (
	"errors"

	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/pricing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
)

// copyServiceRates guarda en la línea la tarifa vigente del servicio.
func copyServiceRates(l *entity.DocumentLine, s *entity.Service) {
	l.ServiceID = s.ID
	if l.Description == "" {
		l.Description = s.Name
	}
	l.Unit = s.Unit
	l.BasePrice = s.BasePrice
	l.StandardPrice = s.StandardPrice
	l.PremiumPrice = s.PremiumPrice
	l.RegionalMultiplier = s.RegionalMultiplier
	l.MinimumCharge = s.MinimumCharge
	l.SeasonalActive = s.SeasonalActive
	l.SeasonalMultiplier = s.SeasonalMultiplier
	l.VolumeThreshold = s.VolumeThreshold
	l.VolumePercent = s.VolumePercent
	l.VATRate = s.VATRate
}

// copyRequestRates guarda en la línea una tarifa recibida en la petición.
func copyRequestRates(l *entity.DocumentLine, r dto.RatesRequest) {
	l.Unit = r.Unit
	l.BasePrice = r.BaseRate
	l.StandardPrice = r.StandardRate
	l.PremiumPrice = r.PremiumRate
	l.RegionalMultiplier = r.RegionalMultiplier
	l.MinimumCharge = r.MinimumCharge
	l.SeasonalActive = r.SeasonalActive
	l.SeasonalMultiplier = r.SeasonalMultiplier
	l.VolumeThreshold = r.VolumeThreshold
	l.VolumePercent = r.VolumeDiscountPercent
	l.VATRate = r.VATRate
}

// pricingLine reconstruye la entrada del motor a partir de la línea guardada.
// El ajuste estacional ya viene resuelto en SeasonalActive (override incluido).
func pricingLine(l *entity.DocumentLine) pricing.Line {
	return pricing.Line{
		Quantity: l.Quantity,
		Rates: pricing.ServiceRates{
			Unit:               l.Unit,
			BasePrice:          l.BasePrice,
			StandardPrice:      l.StandardPrice,
			PremiumPrice:       l.PremiumPrice,
			RegionalMultiplier: l.RegionalMultiplier,
			MinimumCharge:      l.MinimumCharge,
			Seasonal:           pricing.SeasonalAdjustment{Active: l.SeasonalActive, Multiplier: l.SeasonalMultiplier},
			Volume:             pricing.VolumeDiscount{Threshold: l.VolumeThreshold, Percent: l.VolumePercent},
			VATRate:            vat.Rate(l.VATRate),
		},
		Tier:            pricing.Tier(l.Tier),
		Zone:            pricing.Zone(l.Zone),
		FlatDiscount:    l.FlatDiscount,
		DiscountPercent: l.DiscountPercent,
	}
}

// applyPriced copia el resultado del motor en la línea.
func applyPriced(l *entity.DocumentLine, p pricing.PricedLine) {
	l.Tier = string(p.Tier)
	l.Zone = string(p.Zone)
	l.EffectiveRate = p.EffectiveRate
	l.DiscountApplied = p.DiscountApplied
	l.Net = p.Net
	l.VAT = p.VAT
	l.Gross = p.Gross
}

// priceLines calcula todas las líneas; el primer error aborta el documento.
func priceLines(lines []*entity.DocumentLine, rec Recorder) ([]pricing.PricedLine, error) {
	in := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		in = append(in, pricingLine(l))
	}
	priced, err := pricing.PriceAll(in)
	if err != nil {
		rec.PricingRejected(errorKind(err))
		return nil, err
	}
	for i, p := range priced {
		applyPriced(lines[i], p)
		rec.LinePriced(string(p.Tier))
	}
	return priced, nil
}

func summaryOf(lines []*entity.DocumentLine) (vat.Summary, error) {
	items := make([]vat.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, vat.Item{Net: l.Net, Rate: vat.Rate(l.VATRate)})
	}
	return vat.Aggregate(items)
}

// errorKind etiqueta estable del tipo de error de validación (métricas y códigos HTTP).
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidVATRate):
		return "invalid_vat_rate"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrInvalidPricingParameter):
		return "invalid_pricing_parameter"
	case errors.Is(err, domain.ErrInvalidDocumentAdjustment):
		return "invalid_document_adjustment"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	}
	return "other"
}

func lineResponse(l *entity.DocumentLine) dto.DocumentLineResponse {
	return dto.DocumentLineResponse{
		ID:              l.ID,
		Position:        l.Position,
		ServiceID:       l.ServiceID,
		Description:     l.Description,
		Unit:            l.Unit,
		Quantity:        l.Quantity.String(),
		Tier:            l.Tier,
		RegionalZone:    l.Zone,
		EffectiveRate:   money.Fixed(l.EffectiveRate),
		DiscountApplied: money.Fixed(l.DiscountApplied),
		VATRate:         l.VATRate,
		Net:             money.Fixed(l.Net),
		VAT:             money.Fixed(l.VAT),
		Gross:           money.Fixed(l.Gross),
	}
}
