package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/pricing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

func boolPtr(b bool) *bool { return &b }

func flooring() pricing.ServiceRates {
	return pricing.ServiceRates{
		Unit:      "m2",
		BasePrice: d("100"),
		VATRate:   vat.RateStandard,
	}
}

func TestPrice_EjemploPanelStandard(t *testing.T) {
	rates := pricing.ServiceRates{
		Unit:          "m2",
		BasePrice:     d("45.50"),
		MinimumCharge: d("200"),
		VATRate:       vat.RateStandard,
	}
	p, err := pricing.Price(pricing.Line{Quantity: d("25.5"), Rates: rates, Tier: pricing.TierStandard})
	require.NoError(t, err)

	assert.True(t, p.TierRate.Equal(d("52.325")), "la tarifa interna no se redondea: %s", p.TierRate)
	assert.Equal(t, "52.33", money.Fixed(p.EffectiveRate))
	assert.Equal(t, "1334.29", money.Fixed(p.Net))
	assert.Equal(t, "306.89", money.Fixed(p.VAT))
	assert.Equal(t, "1641.18", money.Fixed(p.Gross))
	assert.Equal(t, "0.00", money.Fixed(p.DiscountApplied))
	assert.Equal(t, pricing.DiscountNone, p.DiscountKind)
	assert.False(t, p.MinimumChargeApplied)
	assert.Equal(t, "m2", p.Unit)
}

func TestPrice_NivelPorDefectoEsStandard(t *testing.T) {
	p, err := pricing.Price(pricing.Line{Quantity: d("1"), Rates: flooring()})
	require.NoError(t, err)
	assert.Equal(t, pricing.TierStandard, p.Tier)
	assert.Equal(t, "115.00", money.Fixed(p.Net))
}

func TestTierPrice(t *testing.T) {
	rates := pricing.ServiceRates{BasePrice: d("45.50"), StandardPrice: nd("50"), VATRate: vat.RateStandard}

	basic, err := rates.TierPrice(pricing.TierBasic)
	require.NoError(t, err)
	assert.True(t, basic.Equal(d("45.50")))

	standard, err := rates.TierPrice(pricing.TierStandard)
	require.NoError(t, err)
	assert.True(t, standard.Equal(d("50")), "precio explícito")

	premium, err := rates.TierPrice(pricing.TierPremium)
	require.NoError(t, err)
	assert.True(t, premium.Equal(d("56.875")), "premium derivado: %s", premium)

	_, err = rates.TierPrice("gold")
	assert.ErrorIs(t, err, domain.ErrInvalidPricingParameter)
}

func TestPrice_CargoMinimo(t *testing.T) {
	rates := flooring()
	rates.BasePrice = d("10")
	rates.MinimumCharge = d("200")

	p, err := pricing.Price(pricing.Line{Quantity: d("2"), Rates: rates, Tier: pricing.TierBasic})
	require.NoError(t, err)
	assert.True(t, p.MinimumChargeApplied)
	assert.Equal(t, "200.00", money.Fixed(p.Net))
	assert.Equal(t, "46.00", money.Fixed(p.VAT))
	assert.Equal(t, "246.00", money.Fixed(p.Gross))
}

func TestPrice_CargoMinimoAbsorbeDescuento(t *testing.T) {
	rates := flooring()
	rates.MinimumCharge = d("200")

	p, err := pricing.Price(pricing.Line{
		Quantity:     d("3"),
		Rates:        rates,
		Tier:         pricing.TierBasic,
		FlatDiscount: nd("250"),
	})
	require.NoError(t, err)
	assert.Equal(t, "250.00", money.Fixed(p.DiscountApplied))
	assert.Equal(t, "200.00", money.Fixed(p.Net))
	assert.True(t, p.MinimumChargeApplied)
}

func TestPrice_NetoNuncaMenorQueMinimo(t *testing.T) {
	rates := flooring()
	rates.MinimumCharge = d("150")
	rates.Volume = pricing.VolumeDiscount{Threshold: d("5"), Percent: d("30")}

	for _, qty := range []string{"0.5", "1", "1.49", "2", "5", "12.75"} {
		for _, flat := range []string{"0", "10", "99.99", "1000"} {
			p, err := pricing.Price(pricing.Line{
				Quantity:     d(qty),
				Rates:        rates,
				Tier:         pricing.TierBasic,
				FlatDiscount: nd(flat),
			})
			require.NoError(t, err)
			assert.True(t, p.Net.GreaterThanOrEqual(d("150")), "qty %s flat %s -> %s", qty, flat, p.Net)
			assert.True(t, p.Net.Add(p.VAT).Equal(p.Gross))
		}
	}
}

func TestPrice_DescuentoPorVolumen(t *testing.T) {
	rates := flooring()
	rates.Volume = pricing.VolumeDiscount{Threshold: d("10"), Percent: d("10")}

	p, err := pricing.Price(pricing.Line{Quantity: d("10"), Rates: rates, Tier: pricing.TierBasic})
	require.NoError(t, err)
	assert.Equal(t, pricing.DiscountVolume, p.DiscountKind)
	assert.Equal(t, "1000.00", money.Fixed(p.NetBeforeDiscount))
	assert.Equal(t, "100.00", money.Fixed(p.DiscountApplied))
	assert.Equal(t, "900.00", money.Fixed(p.Net))
	assert.Equal(t, "207.00", money.Fixed(p.VAT))

	p, err = pricing.Price(pricing.Line{Quantity: d("9"), Rates: rates, Tier: pricing.TierBasic})
	require.NoError(t, err)
	assert.Equal(t, pricing.DiscountNone, p.DiscountKind, "bajo el umbral")
	assert.Equal(t, "900.00", money.Fixed(p.Net))
}

func TestPrice_PrioridadDeDescuentos(t *testing.T) {
	rates := flooring()
	rates.Volume = pricing.VolumeDiscount{Threshold: d("10"), Percent: d("10")}

	tests := []struct {
		name     string
		line     pricing.Line
		kind     pricing.DiscountKind
		discount string
		net      string
	}{
		{
			name:     "importe fijo gana",
			line:     pricing.Line{FlatDiscount: nd("5"), DiscountPercent: nd("20")},
			kind:     pricing.DiscountFlat,
			discount: "5.00",
			net:      "995.00",
		},
		{
			name:     "porcentaje de línea antes que volumen",
			line:     pricing.Line{DiscountPercent: nd("20")},
			kind:     pricing.DiscountPercent,
			discount: "200.00",
			net:      "800.00",
		},
		{
			name:     "importe cero no cuenta",
			line:     pricing.Line{FlatDiscount: nd("0")},
			kind:     pricing.DiscountVolume,
			discount: "100.00",
			net:      "900.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := tt.line
			line.Quantity = d("10")
			line.Rates = rates
			line.Tier = pricing.TierBasic
			p, err := pricing.Price(line)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, p.DiscountKind)
			assert.Equal(t, tt.discount, money.Fixed(p.DiscountApplied))
			assert.Equal(t, tt.net, money.Fixed(p.Net))
		})
	}
}

func TestPrice_DescuentoLimitadoAlNeto(t *testing.T) {
	rates := flooring()
	rates.BasePrice = d("10")
	p, err := pricing.Price(pricing.Line{Quantity: d("1"), Rates: rates, Tier: pricing.TierBasic, FlatDiscount: nd("50")})
	require.NoError(t, err)
	assert.Equal(t, "10.00", money.Fixed(p.DiscountApplied))
	assert.True(t, p.Net.IsZero())
	assert.True(t, p.Gross.IsZero())
}

func TestPrice_EtapasRegionalYEstacional(t *testing.T) {
	rates := flooring()
	rates.Seasonal = pricing.SeasonalAdjustment{Active: true, Multiplier: d("1.2")}

	p, err := pricing.Price(pricing.Line{Quantity: d("1"), Rates: rates, Tier: pricing.TierBasic, Zone: pricing.ZoneWarsaw})
	require.NoError(t, err)
	require.Len(t, p.Steps, 2)
	assert.Equal(t, pricing.StageRegional, p.Steps[0].Name)
	assert.True(t, p.Steps[0].Rate.Equal(d("125")))
	assert.Equal(t, pricing.StageSeasonal, p.Steps[1].Name)
	assert.True(t, p.Steps[1].Rate.Equal(d("150")))
	assert.Equal(t, "150.00", money.Fixed(p.Net))

	p, err = pricing.Price(pricing.Line{
		Quantity:         d("1"),
		Rates:            rates,
		Tier:             pricing.TierBasic,
		Zone:             pricing.ZoneWarsaw,
		SeasonalOverride: boolPtr(false),
	})
	require.NoError(t, err)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, "125.00", money.Fixed(p.Net))
}

func TestPrice_MultiplicadorPropioDelServicio(t *testing.T) {
	rates := flooring()
	rates.RegionalMultiplier = nd("1.5")

	p, err := pricing.Price(pricing.Line{Quantity: d("1"), Rates: rates, Tier: pricing.TierBasic})
	require.NoError(t, err)
	assert.Equal(t, pricing.ZoneOther, p.Zone)
	assert.Equal(t, "150.00", money.Fixed(p.Net), "sin zona usa el multiplicador del servicio")

	p, err = pricing.Price(pricing.Line{Quantity: d("1"), Rates: rates, Tier: pricing.TierBasic, Zone: pricing.ZoneKrakow})
	require.NoError(t, err)
	assert.Equal(t, "115.00", money.Fixed(p.Net), "zona conocida usa la tabla")
}

func TestFold(t *testing.T) {
	rate, steps := pricing.Fold(d("100"), []pricing.Stage{
		{Name: pricing.StageRegional, Multiplier: d("1.25")},
		{Name: pricing.StageSeasonal, Multiplier: d("0.8")},
	})
	assert.True(t, rate.Equal(d("100")))
	require.Len(t, steps, 2)
	assert.True(t, steps[0].Rate.Equal(d("125")))
	assert.True(t, steps[1].Rate.Equal(d("100")))

	rate, steps = pricing.Fold(d("52.325"), nil)
	assert.True(t, rate.Equal(d("52.325")))
	assert.Empty(t, steps)
}

func TestBuildStages(t *testing.T) {
	rates := flooring()
	rates.Seasonal = pricing.SeasonalAdjustment{Active: true, Multiplier: d("0.9")}
	line := pricing.Line{Quantity: d("1"), Rates: rates, Zone: pricing.ZoneKatowice}

	stages, err := pricing.BuildStages(line, []pricing.StageName{pricing.StageSeasonal})
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.True(t, stages[0].Multiplier.Equal(d("0.9")))

	stages, err = pricing.BuildStages(line, []pricing.StageName{pricing.StageSeasonal, pricing.StageRegional})
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, pricing.StageRegional, stages[1].Name)
	assert.True(t, stages[1].Multiplier.Equal(d("1.05")))

	_, err = pricing.BuildStages(line, []pricing.StageName{"loyalty"})
	assert.ErrorIs(t, err, domain.ErrInvalidPricingParameter)
}

func TestPrice_Errores(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*pricing.Line)
		want   error
	}{
		{"cantidad cero", func(l *pricing.Line) { l.Quantity = decimal.Zero }, domain.ErrInvalidQuantity},
		{"cantidad negativa", func(l *pricing.Line) { l.Quantity = d("-1") }, domain.ErrInvalidQuantity},
		{"nivel desconocido", func(l *pricing.Line) { l.Tier = "gold" }, domain.ErrInvalidPricingParameter},
		{"zona desconocida", func(l *pricing.Line) { l.Zone = "berlin" }, domain.ErrInvalidPricingParameter},
		{"estacional fuera de rango", func(l *pricing.Line) {
			l.Rates.Seasonal = pricing.SeasonalAdjustment{Active: true, Multiplier: d("1.5")}
		}, domain.ErrInvalidPricingParameter},
		{"volumen fuera de rango", func(l *pricing.Line) {
			l.Rates.Volume = pricing.VolumeDiscount{Threshold: d("1"), Percent: d("31")}
		}, domain.ErrInvalidPricingParameter},
		{"regional fuera de rango", func(l *pricing.Line) { l.Rates.RegionalMultiplier = nd("2.5") }, domain.ErrInvalidPricingParameter},
		{"precio base negativo", func(l *pricing.Line) { l.Rates.BasePrice = d("-1") }, domain.ErrInvalidPricingParameter},
		{"descuento negativo", func(l *pricing.Line) { l.FlatDiscount = nd("-5") }, domain.ErrInvalidPricingParameter},
		{"porcentaje mayor que 100", func(l *pricing.Line) { l.DiscountPercent = nd("101") }, domain.ErrInvalidPricingParameter},
		{"tasa de IVA ilegal", func(l *pricing.Line) { l.Rates.VATRate = vat.Rate(7) }, domain.ErrInvalidVATRate},
		{"cantidad con cuatro decimales", func(l *pricing.Line) { l.Quantity = d("1.0005") }, domain.ErrInvalidQuantity},
		{"precio base con tres decimales", func(l *pricing.Line) { l.Rates.BasePrice = d("45.505") }, domain.ErrInvalidPricingParameter},
		{"precio premium con tres decimales", func(l *pricing.Line) { l.Rates.PremiumPrice = nd("99.999") }, domain.ErrInvalidPricingParameter},
		{"cargo mínimo con tres decimales", func(l *pricing.Line) { l.Rates.MinimumCharge = d("0.005") }, domain.ErrInvalidPricingParameter},
		{"regional con cinco decimales", func(l *pricing.Line) { l.Rates.RegionalMultiplier = nd("1.00001") }, domain.ErrInvalidPricingParameter},
		{"descuento con tres decimales", func(l *pricing.Line) { l.FlatDiscount = nd("1.001") }, domain.ErrInvalidPricingParameter},
		{"porcentaje con tres decimales", func(l *pricing.Line) { l.DiscountPercent = nd("10.125") }, domain.ErrInvalidPricingParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := pricing.Line{Quantity: d("1"), Rates: flooring()}
			tt.mutate(&line)
			_, err := pricing.Price(line)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestHasScale(t *testing.T) {
	assert.True(t, pricing.HasScale(d("45.50"), pricing.MoneyScale))
	assert.True(t, pricing.HasScale(d("45.5000"), pricing.MoneyScale))
	assert.False(t, pricing.HasScale(d("45.505"), pricing.MoneyScale))
	assert.True(t, pricing.HasScale(d("12.125"), pricing.QuantityScale))
	assert.True(t, pricing.HasScale(d("1.0725"), pricing.MultiplierScale))
	assert.False(t, pricing.HasScale(d("-0.00001"), pricing.MultiplierScale))
}

func TestPrice_EstacionalInactivoNoSeValida(t *testing.T) {
	rates := flooring()
	rates.Seasonal = pricing.SeasonalAdjustment{Active: false, Multiplier: d("5")}
	_, err := pricing.Price(pricing.Line{Quantity: d("1"), Rates: rates})
	assert.NoError(t, err)
}

func TestPriceAll_AbortaConNumeroDeLinea(t *testing.T) {
	lines := []pricing.Line{
		{Quantity: d("1"), Rates: flooring()},
		{Quantity: d("0"), Rates: flooring()},
	}
	out, err := pricing.PriceAll(lines)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Contains(t, err.Error(), "línea 2")

	out, err = pricing.PriceAll(lines[:1])
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
