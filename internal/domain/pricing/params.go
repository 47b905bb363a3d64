// Package pricing calcula el precio de una línea de servicio: tarifa por nivel,
// multiplicadores regional y estacional, descuentos y cargo mínimo, con el IVA delegado al paquete vat.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
)

// Tier nivel de precio del servicio.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// DefaultTier se usa cuando la línea no indica nivel.
const DefaultTier = TierStandard

var (
	standardFactor = decimal.RequireFromString("1.15")
	premiumFactor  = decimal.RequireFromString("1.25")
)

// ParseTier valida el nivel; vacío equivale a DefaultTier.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case "":
		return DefaultTier, nil
	case TierBasic, TierStandard, TierPremium:
		return t, nil
	}
	return "", fmt.Errorf("%w: nivel desconocido %q", domain.ErrInvalidPricingParameter, s)
}

// Zone zona regional de precios.
type Zone string

const (
	ZoneWarsaw   Zone = "warsaw"
	ZoneKrakow   Zone = "krakow"
	ZoneGdansk   Zone = "gdansk"
	ZoneWroclaw  Zone = "wroclaw"
	ZonePoznan   Zone = "poznan"
	ZoneKatowice Zone = "katowice"
	ZoneLublin   Zone = "lublin"
	ZoneOther    Zone = "other"
)

// zoneMultipliers tabla fija de multiplicadores por zona (política comercial).
var zoneMultipliers = map[Zone]decimal.Decimal{
	ZoneWarsaw:   decimal.RequireFromString("1.25"),
	ZoneKrakow:   decimal.RequireFromString("1.15"),
	ZoneGdansk:   decimal.RequireFromString("1.15"),
	ZoneWroclaw:  decimal.RequireFromString("1.10"),
	ZonePoznan:   decimal.RequireFromString("1.10"),
	ZoneKatowice: decimal.RequireFromString("1.05"),
	ZoneLublin:   decimal.NewFromInt(1),
	ZoneOther:    decimal.NewFromInt(1),
}

// ParseZone valida la zona; vacío equivale a ZoneOther.
func ParseZone(s string) (Zone, error) {
	z := Zone(s)
	if z == "" {
		return ZoneOther, nil
	}
	if _, ok := zoneMultipliers[z]; !ok {
		return "", fmt.Errorf("%w: zona desconocida %q", domain.ErrInvalidPricingParameter, s)
	}
	return z, nil
}

// Multiplier devuelve el multiplicador de la tabla.
func (z Zone) Multiplier() (decimal.Decimal, bool) {
	m, ok := zoneMultipliers[z]
	return m, ok
}

// Zones lista todas las zonas conocidas.
func Zones() []Zone {
	return []Zone{ZoneWarsaw, ZoneKrakow, ZoneGdansk, ZoneWroclaw, ZonePoznan, ZoneKatowice, ZoneLublin, ZoneOther}
}

// Límites documentados de los parámetros.
var (
	SeasonalMin      = decimal.RequireFromString("0.8")
	SeasonalMax      = decimal.RequireFromString("1.3")
	RegionalMin      = decimal.RequireFromString("0.5")
	RegionalMax      = decimal.RequireFromString("2.0")
	VolumePercentMax = decimal.NewFromInt(30)
	LinePercentMax   = decimal.NewFromInt(100)
	BulkAdjustMin    = decimal.NewFromInt(-50)
	BulkAdjustMax    = decimal.NewFromInt(100)
)

// SeasonalAdjustment multiplicador estacional; solo se aplica si Active.
type SeasonalAdjustment struct {
	Active     bool
	Multiplier decimal.Decimal
}

// VolumeDiscount descuento porcentual cuando la cantidad alcanza el umbral.
// Un umbral <= 0 significa que el servicio no tiene descuento por volumen.
type VolumeDiscount struct {
	Threshold decimal.Decimal
	Percent   decimal.Decimal
}

func (v VolumeDiscount) applies(quantity decimal.Decimal) bool {
	return v.Threshold.IsPositive() && v.Percent.IsPositive() && quantity.GreaterThanOrEqual(v.Threshold)
}

// Decimales admitidos en las entradas; coinciden con las columnas donde se guardan,
// de modo que recalcular un documento leído de la base da el mismo resultado.
const (
	MoneyScale      int32 = 2
	QuantityScale   int32 = 3
	MultiplierScale int32 = 4
	PercentScale    int32 = 2
)

// HasScale indica si d no tiene más de places decimales significativos.
func HasScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

func checkScale(field string, d decimal.Decimal, places int32) error {
	if HasScale(d, places) {
		return nil
	}
	return fmt.Errorf("%w: %s %s admite como máximo %d decimales", domain.ErrInvalidPricingParameter, field, d, places)
}

func checkNullScale(field string, d decimal.NullDecimal, places int32) error {
	if !d.Valid {
		return nil
	}
	return checkScale(field, d.Decimal, places)
}

func inRange(d, lo, hi decimal.Decimal) bool {
	return d.GreaterThanOrEqual(lo) && d.LessThanOrEqual(hi)
}
