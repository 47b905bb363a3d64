package dto

import (
	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/pricing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/totals"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
)

// RatesRequest tarifa de un servicio (catálogo o línea libre).
// Los importes se aceptan como número o como string JSON.
type RatesRequest struct {
	Unit                  string              `json:"unit" validate:"max=20"`
	BaseRate              decimal.Decimal     `json:"baseRate"`
	StandardRate          decimal.NullDecimal `json:"standardRate"`
	PremiumRate           decimal.NullDecimal `json:"premiumRate"`
	RegionalMultiplier    decimal.NullDecimal `json:"regionalMultiplier"`
	MinimumCharge         decimal.Decimal     `json:"minimumCharge"`
	SeasonalActive        bool                `json:"seasonalActive"`
	SeasonalMultiplier    decimal.Decimal     `json:"seasonalMultiplier"`
	VolumeThreshold       decimal.Decimal     `json:"volumeThreshold"`
	VolumeDiscountPercent decimal.Decimal     `json:"volumeDiscountPercent"`
	VATRate               int                 `json:"vatRate"`
}

// ServiceRates convierte la petición en parámetros del motor.
func (r RatesRequest) ServiceRates() pricing.ServiceRates {
	return pricing.ServiceRates{
		Unit:               r.Unit,
		BasePrice:          r.BaseRate,
		StandardPrice:      r.StandardRate,
		PremiumPrice:       r.PremiumRate,
		RegionalMultiplier: r.RegionalMultiplier,
		MinimumCharge:      r.MinimumCharge,
		Seasonal:           pricing.SeasonalAdjustment{Active: r.SeasonalActive, Multiplier: r.SeasonalMultiplier},
		Volume:             pricing.VolumeDiscount{Threshold: r.VolumeThreshold, Percent: r.VolumeDiscountPercent},
		VATRate:            vat.Rate(r.VATRate),
	}
}

// PricingLineRequest body para POST /api/pricing/lines (una línea con tarifa en línea).
type PricingLineRequest struct {
	RatesRequest
	Quantity           decimal.Decimal     `json:"quantity"`
	Tier               string              `json:"tier"`
	RegionalZone       string              `json:"regionalZone"`
	FlatDiscountAmount decimal.NullDecimal `json:"flatDiscountAmount"`
	DiscountPercent    decimal.NullDecimal `json:"discountPercent"`
}

// Line convierte la petición en la entrada del motor.
func (r PricingLineRequest) Line() pricing.Line {
	return pricing.Line{
		Quantity:        r.Quantity,
		Rates:           r.ServiceRates(),
		Tier:            pricing.Tier(r.Tier),
		Zone:            pricing.Zone(r.RegionalZone),
		FlatDiscount:    r.FlatDiscountAmount,
		DiscountPercent: r.DiscountPercent,
	}
}

// PricingLinesRequest body para /api/pricing/vat-summary y /api/pricing/totals.
type PricingLinesRequest struct {
	Lines           []PricingLineRequest `json:"lines" validate:"required,min=1,max=500,dive"`
	DiscountPercent decimal.Decimal      `json:"discountPercent"`
	DiscountAmount  decimal.Decimal      `json:"discountAmount"`
	DeliveryCost    decimal.Decimal      `json:"deliveryCost"`
}

// Adjustment ajustes de documento de la petición.
func (r PricingLinesRequest) Adjustment() totals.Adjustment {
	return totals.Adjustment{
		DiscountPercent: r.DiscountPercent,
		DiscountAmount:  r.DiscountAmount,
		DeliveryCost:    r.DeliveryCost,
	}
}

// StageResponse paso del cálculo de la tarifa efectiva.
type StageResponse struct {
	Name       string `json:"name"`
	Multiplier string `json:"multiplier"`
	Rate       string `json:"rate"`
}

// PricedLineResponse salida de una línea: importes siempre con 2 decimales.
type PricedLineResponse struct {
	Quantity             string          `json:"quantity"`
	Unit                 string          `json:"unit,omitempty"`
	Tier                 string          `json:"tier"`
	RegionalZone         string          `json:"regionalZone"`
	TierRate             string          `json:"tierRate"`
	EffectiveRate        string          `json:"effectiveRate"`
	Stages               []StageResponse `json:"stages"`
	NetBeforeDiscount    string          `json:"netBeforeDiscount"`
	DiscountApplied      string          `json:"discountApplied"`
	DiscountKind         string          `json:"discountKind,omitempty"`
	MinimumChargeApplied bool            `json:"minimumChargeApplied"`
	Net                  string          `json:"net"`
	VAT                  string          `json:"vat"`
	Gross                string          `json:"gross"`
	VATRate              int             `json:"vatRate"`
}

// NewPricedLineResponse construye la respuesta de una línea calculada.
func NewPricedLineResponse(p pricing.PricedLine) PricedLineResponse {
	stages := make([]StageResponse, 0, len(p.Steps))
	for _, s := range p.Steps {
		stages = append(stages, StageResponse{
			Name:       string(s.Name),
			Multiplier: s.Multiplier.String(),
			Rate:       money.Fixed(s.Rate),
		})
	}
	return PricedLineResponse{
		Quantity:             p.Quantity.String(),
		Unit:                 p.Unit,
		Tier:                 string(p.Tier),
		RegionalZone:         string(p.Zone),
		TierRate:             money.Fixed(p.TierRate),
		EffectiveRate:        money.Fixed(p.EffectiveRate),
		Stages:               stages,
		NetBeforeDiscount:    money.Fixed(p.NetBeforeDiscount),
		DiscountApplied:      money.Fixed(p.DiscountApplied),
		DiscountKind:         string(p.DiscountKind),
		MinimumChargeApplied: p.MinimumChargeApplied,
		Net:                  money.Fixed(p.Net),
		VAT:                  money.Fixed(p.VAT),
		Gross:                money.Fixed(p.Gross),
		VATRate:              int(p.VATRate),
	}
}

// VATBreakdownRow fila del desglose de IVA (nombres de campo fijos del contrato).
type VATBreakdownRow struct {
	VATRate     int    `json:"vatRate"`
	NetAmount   string `json:"netAmount"`
	VATAmount   string `json:"vatAmount"`
	GrossAmount string `json:"grossAmount"`
	ItemCount   int    `json:"itemCount"`
}

// VATSummaryResponse resumen de IVA de un documento.
type VATSummaryResponse struct {
	TotalNet         string            `json:"totalNet"`
	TotalVAT         string            `json:"totalVAT"`
	TotalGross       string            `json:"totalGross"`
	VATBreakdown     []VATBreakdownRow `json:"vatBreakdown"`
	HasMultipleRates bool              `json:"hasMultipleRates"`
	Title            string            `json:"title"`
}

// NewVATSummaryResponse construye la respuesta del resumen de IVA.
func NewVATSummaryResponse(s vat.Summary) VATSummaryResponse {
	rows := make([]VATBreakdownRow, 0, len(s.Breakdown))
	for _, r := range s.Breakdown {
		rows = append(rows, VATBreakdownRow{
			VATRate:     int(r.Rate),
			NetAmount:   money.Fixed(r.Net),
			VATAmount:   money.Fixed(r.VAT),
			GrossAmount: money.Fixed(r.Gross),
			ItemCount:   r.ItemCount,
		})
	}
	return VATSummaryResponse{
		TotalNet:         money.Fixed(s.TotalNet),
		TotalVAT:         money.Fixed(s.TotalVAT),
		TotalGross:       money.Fixed(s.TotalGross),
		VATBreakdown:     rows,
		HasMultipleRates: s.HasMultipleRates,
		Title:            s.Title(),
	}
}

// TotalsResponse totales del documento.
type TotalsResponse struct {
	SubtotalNet             string `json:"subtotalNet"`
	SubtotalGross           string `json:"subtotalGross"`
	DocumentDiscountAmount  string `json:"documentDiscountAmount"`
	DocumentDiscountPercent string `json:"documentDiscountPercent"`
	DeliveryCost            string `json:"deliveryCost"`
	TotalNet                string `json:"totalNet"`
	VATAmount               string `json:"vatAmount"`
	TotalGross              string `json:"totalGross"`
	Currency                string `json:"currency"`
}

// NewTotalsResponse construye la respuesta de totales.
func NewTotalsResponse(t totals.Totals) TotalsResponse {
	return TotalsResponse{
		SubtotalNet:             money.Fixed(t.SubtotalNet),
		SubtotalGross:           money.Fixed(t.SubtotalGross),
		DocumentDiscountAmount:  money.Fixed(t.DocumentDiscountAmount),
		DocumentDiscountPercent: money.Fixed(t.DocumentDiscountPercent),
		DeliveryCost:            money.Fixed(t.DeliveryCost),
		TotalNet:                money.Fixed(t.TotalNet),
		VATAmount:               money.Fixed(t.VATAmount),
		TotalGross:              money.Fixed(t.TotalGross),
		Currency:                t.Currency,
	}
}

// QuoteResponse respuesta de /api/pricing/totals: líneas, totales y desglose de IVA.
type QuoteResponse struct {
	Lines      []PricedLineResponse `json:"lines"`
	Totals     TotalsResponse       `json:"totals"`
	VATSummary VATSummaryResponse   `json:"vatSummary"`
	InWords    string               `json:"inWords"`
}

// NumberResponse número de documento interpretado.
type NumberResponse struct {
	Number   string `json:"number"`
	Type     string `json:"type,omitempty"`
	Prefix   string `json:"prefix"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Sequence int    `json:"sequence"`
	Revision int    `json:"revision"`
}
