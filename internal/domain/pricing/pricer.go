package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
)

// ServiceRates parámetros de precio de un servicio del catálogo.
type ServiceRates struct {
	Unit               string
	BasePrice          decimal.Decimal
	StandardPrice      decimal.NullDecimal
	PremiumPrice       decimal.NullDecimal
	RegionalMultiplier decimal.NullDecimal
	MinimumCharge      decimal.Decimal
	Seasonal           SeasonalAdjustment
	Volume             VolumeDiscount
	VATRate            vat.Rate
}

// TierPrice devuelve la tarifa unitaria del nivel. Si el servicio no define precio
// explícito para standard o premium se deriva del precio base (x1.15 / x1.25), sin redondear.
func (r ServiceRates) TierPrice(t Tier) (decimal.Decimal, error) {
	tier, err := ParseTier(string(t))
	if err != nil {
		return decimal.Zero, err
	}
	switch tier {
	case TierStandard:
		if r.StandardPrice.Valid {
			return r.StandardPrice.Decimal, nil
		}
		return r.BasePrice.Mul(standardFactor), nil
	case TierPremium:
		if r.PremiumPrice.Valid {
			return r.PremiumPrice.Decimal, nil
		}
		return r.BasePrice.Mul(premiumFactor), nil
	}
	return r.BasePrice, nil
}

// Validate revisa los límites de los parámetros del servicio.
func (r ServiceRates) Validate() error {
	if r.BasePrice.IsNegative() {
		return fmt.Errorf("%w: precio base negativo", domain.ErrInvalidPricingParameter)
	}
	if r.StandardPrice.Valid && r.StandardPrice.Decimal.IsNegative() {
		return fmt.Errorf("%w: precio standard negativo", domain.ErrInvalidPricingParameter)
	}
	if r.PremiumPrice.Valid && r.PremiumPrice.Decimal.IsNegative() {
		return fmt.Errorf("%w: precio premium negativo", domain.ErrInvalidPricingParameter)
	}
	if r.MinimumCharge.IsNegative() {
		return fmt.Errorf("%w: cargo mínimo negativo", domain.ErrInvalidPricingParameter)
	}
	if r.RegionalMultiplier.Valid && !inRange(r.RegionalMultiplier.Decimal, RegionalMin, RegionalMax) {
		return fmt.Errorf("%w: multiplicador regional %s fuera de [%s, %s]",
			domain.ErrInvalidPricingParameter, r.RegionalMultiplier.Decimal, RegionalMin, RegionalMax)
	}
	if r.Seasonal.Active && !inRange(r.Seasonal.Multiplier, SeasonalMin, SeasonalMax) {
		return fmt.Errorf("%w: multiplicador estacional %s fuera de [%s, %s]",
			domain.ErrInvalidPricingParameter, r.Seasonal.Multiplier, SeasonalMin, SeasonalMax)
	}
	if !inRange(r.Volume.Percent, decimal.Zero, VolumePercentMax) {
		return fmt.Errorf("%w: descuento por volumen %s%% fuera de [0, %s]",
			domain.ErrInvalidPricingParameter, r.Volume.Percent, VolumePercentMax)
	}
	if !r.VATRate.Valid() {
		_, err := vat.ParseRate(int(r.VATRate))
		return err
	}
	return r.validateScale()
}

func (r ServiceRates) validateScale() error {
	checks := []error{
		checkScale("precio base", r.BasePrice, MoneyScale),
		checkNullScale("precio standard", r.StandardPrice, MoneyScale),
		checkNullScale("precio premium", r.PremiumPrice, MoneyScale),
		checkScale("cargo mínimo", r.MinimumCharge, MoneyScale),
		checkNullScale("multiplicador regional", r.RegionalMultiplier, MultiplierScale),
		checkScale("multiplicador estacional", r.Seasonal.Multiplier, MultiplierScale),
		checkScale("umbral de volumen", r.Volume.Threshold, QuantityScale),
		checkScale("descuento por volumen", r.Volume.Percent, PercentScale),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// Line entrada del cálculo de una línea.
type Line struct {
	Quantity         decimal.Decimal
	Rates            ServiceRates
	Tier             Tier
	Zone             Zone
	SeasonalOverride *bool
	FlatDiscount     decimal.NullDecimal
	DiscountPercent  decimal.NullDecimal
}

// DiscountKind origen del descuento aplicado a la línea.
type DiscountKind string

const (
	DiscountNone    DiscountKind = ""
	DiscountFlat    DiscountKind = "flat"
	DiscountPercent DiscountKind = "percent"
	DiscountVolume  DiscountKind = "volume"
)

// PricedLine resultado inmutable del cálculo de una línea. Todos los importes van redondeados.
type PricedLine struct {
	Quantity             decimal.Decimal
	Unit                 string
	Tier                 Tier
	Zone                 Zone
	TierRate             decimal.Decimal
	EffectiveRate        decimal.Decimal
	Steps                []Step
	NetBeforeDiscount    decimal.Decimal
	DiscountApplied      decimal.Decimal
	DiscountKind         DiscountKind
	MinimumChargeApplied bool
	Net                  decimal.Decimal
	VAT                  decimal.Decimal
	Gross                decimal.Decimal
	VATRate              vat.Rate
}

// Price calcula neto, IVA y bruto de una línea.
//
// La tarifa del nivel pasa por las etapas de StageOrder; el neto antes de descuento usa la
// tarifa efectiva sin redondear. El descuento explícito (importe o porcentaje) tiene prioridad
// sobre el de volumen y nunca supera el neto. El cargo mínimo se aplica al neto ya descontado.
func Price(line Line) (PricedLine, error) {
	if !line.Quantity.IsPositive() {
		return PricedLine{}, fmt.Errorf("%w: cantidad %s debe ser mayor que cero", domain.ErrInvalidQuantity, line.Quantity)
	}
	if !HasScale(line.Quantity, QuantityScale) {
		return PricedLine{}, fmt.Errorf("%w: cantidad %s admite como máximo %d decimales",
			domain.ErrInvalidQuantity, line.Quantity, QuantityScale)
	}
	if err := line.Rates.Validate(); err != nil {
		return PricedLine{}, err
	}
	if line.FlatDiscount.Valid && line.FlatDiscount.Decimal.IsNegative() {
		return PricedLine{}, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidPricingParameter)
	}
	if err := checkNullScale("descuento", line.FlatDiscount, MoneyScale); err != nil {
		return PricedLine{}, err
	}
	if err := checkNullScale("porcentaje de descuento", line.DiscountPercent, PercentScale); err != nil {
		return PricedLine{}, err
	}
	if line.DiscountPercent.Valid && !inRange(line.DiscountPercent.Decimal, decimal.Zero, LinePercentMax) {
		return PricedLine{}, fmt.Errorf("%w: porcentaje de descuento %s fuera de [0, %s]",
			domain.ErrInvalidPricingParameter, line.DiscountPercent.Decimal, LinePercentMax)
	}

	tier, err := ParseTier(string(line.Tier))
	if err != nil {
		return PricedLine{}, err
	}
	zone, err := ParseZone(string(line.Zone))
	if err != nil {
		return PricedLine{}, err
	}
	tierRate, err := line.Rates.TierPrice(tier)
	if err != nil {
		return PricedLine{}, err
	}
	stages, err := BuildStages(line, StageOrder)
	if err != nil {
		return PricedLine{}, err
	}
	effective, steps := Fold(tierRate, stages)

	netBefore := effective.Mul(line.Quantity)
	discount, kind := lineDiscount(line, netBefore)
	if roundedBefore := money.Round(netBefore); discount.GreaterThan(roundedBefore) {
		discount = roundedBefore
	}

	net := money.Round(netBefore.Sub(discount))
	floored := false
	if minimum := money.Round(line.Rates.MinimumCharge); minimum.IsPositive() && net.LessThan(minimum) {
		net, floored = minimum, true
	}

	calc, err := vat.FromNet(net, line.Rates.VATRate)
	if err != nil {
		return PricedLine{}, err
	}
	return PricedLine{
		Quantity:             line.Quantity,
		Unit:                 line.Rates.Unit,
		Tier:                 tier,
		Zone:                 zone,
		TierRate:             tierRate,
		EffectiveRate:        money.Round(effective),
		Steps:                steps,
		NetBeforeDiscount:    money.Round(netBefore),
		DiscountApplied:      discount,
		DiscountKind:         kind,
		MinimumChargeApplied: floored,
		Net:                  calc.Net,
		VAT:                  calc.VAT,
		Gross:                calc.Gross,
		VATRate:              calc.Rate,
	}, nil
}

func lineDiscount(line Line, netBefore decimal.Decimal) (decimal.Decimal, DiscountKind) {
	switch {
	case line.FlatDiscount.Valid && line.FlatDiscount.Decimal.IsPositive():
		return money.Round(line.FlatDiscount.Decimal), DiscountFlat
	case line.DiscountPercent.Valid && line.DiscountPercent.Decimal.IsPositive():
		return money.Round(money.Percent(netBefore, line.DiscountPercent.Decimal)), DiscountPercent
	case line.Rates.Volume.applies(line.Quantity):
		return money.Round(money.Percent(netBefore, line.Rates.Volume.Percent)), DiscountVolume
	}
	return decimal.Zero, DiscountNone
}

// PriceAll calcula todas las líneas; el primer error aborta el documento completo.
func PriceAll(lines []Line) ([]PricedLine, error) {
	out := make([]PricedLine, 0, len(lines))
	for i, l := range lines {
		p, err := Price(l)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}
