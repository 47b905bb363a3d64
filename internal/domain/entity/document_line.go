package entity

import "github.com/shopspring/decimal"

// DocumentLine línea de un documento. Guarda los parámetros de precio usados
// (copia de la tarifa del servicio) para poder recalcular sin depender del catálogo.
type DocumentLine struct {
	ID          string
	DocumentID  string
	Position    int
	ServiceID   string // vacío para líneas libres
	Description string
	Unit        string
	Quantity    decimal.Decimal
	Tier        string
	Zone        string

	BasePrice          decimal.Decimal
	StandardPrice      decimal.NullDecimal
	PremiumPrice       decimal.NullDecimal
	RegionalMultiplier decimal.NullDecimal
	MinimumCharge      decimal.Decimal
	SeasonalActive     bool
	SeasonalMultiplier decimal.Decimal
	VolumeThreshold    decimal.Decimal
	VolumePercent      decimal.Decimal
	FlatDiscount       decimal.NullDecimal
	DiscountPercent    decimal.NullDecimal
	VATRate            int

	EffectiveRate   decimal.Decimal
	DiscountApplied decimal.Decimal
	Net             decimal.Decimal
	VAT             decimal.Decimal
	Gross           decimal.Decimal
}
