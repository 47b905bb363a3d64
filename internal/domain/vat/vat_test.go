package vat_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseRate(t *testing.T) {
	for _, v := range []int{0, 5, 8, 23} {
		r, err := vat.ParseRate(v)
		require.NoError(t, err)
		assert.Equal(t, vat.Rate(v), r)
	}
	for _, v := range []int{-1, 7, 19, 22, 100} {
		_, err := vat.ParseRate(v)
		assert.ErrorIs(t, err, domain.ErrInvalidVATRate, "tasa %d", v)
	}
}

func TestRateFromDecimal_RechazaFracciones(t *testing.T) {
	r, err := vat.RateFromDecimal(d("23.00"))
	require.NoError(t, err)
	assert.Equal(t, vat.RateStandard, r)

	_, err = vat.RateFromDecimal(d("8.5"))
	assert.ErrorIs(t, err, domain.ErrInvalidVATRate)
}

func TestClosestRate(t *testing.T) {
	assert.Equal(t, vat.RateStandard, vat.ClosestRate(d("19")))
	assert.Equal(t, vat.RateReduced, vat.ClosestRate(d("7")))
	assert.Equal(t, vat.RateReduced, vat.ClosestRate(d("6.5")), "empate: gana la tasa más alta")
	assert.Equal(t, vat.RateZero, vat.ClosestRate(d("1")))
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Stawka podstawowa (23%)", vat.RateStandard.Description())
	assert.Equal(t, "Stawka obniżona (8%)", vat.RateReduced.Description())
	assert.Equal(t, "Stawka obniżona (5%)", vat.RateSuperReduced.Description())
	assert.Equal(t, "Stawka 0%", vat.RateZero.Description())
}

func TestFromNet(t *testing.T) {
	calc, err := vat.FromNet(d("1334.29"), vat.RateStandard)
	require.NoError(t, err)
	assert.Equal(t, "1334.29", money.Fixed(calc.Net))
	assert.Equal(t, "306.89", money.Fixed(calc.VAT))
	assert.Equal(t, "1641.18", money.Fixed(calc.Gross))
}

func TestFromNet_Errores(t *testing.T) {
	_, err := vat.FromNet(d("10"), vat.Rate(19))
	assert.ErrorIs(t, err, domain.ErrInvalidVATRate)

	_, err = vat.FromNet(d("-10"), vat.RateStandard)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFromGross(t *testing.T) {
	calc, err := vat.FromGross(d("123.00"), vat.RateStandard)
	require.NoError(t, err)
	assert.Equal(t, "100.00", money.Fixed(calc.Net))
	assert.Equal(t, "23.00", money.Fixed(calc.VAT))

	calc, err = vat.FromGross(d("54"), vat.RateReduced)
	require.NoError(t, err)
	assert.Equal(t, "50.00", money.Fixed(calc.Net))
	assert.Equal(t, "4.00", money.Fixed(calc.VAT))
}

// Para todo (neto, tasa) válido: neto + IVA == bruto exactamente, y el viaje de ida y vuelta
// bruto -> neto recupera el neto redondeado.
func TestFromNet_Propiedades(t *testing.T) {
	nets := []string{"0", "0.01", "0.05", "1.02", "9.99", "45.50", "52.325", "333.335", "1334.2875", "99999.99"}
	for _, rate := range vat.Rates {
		for _, s := range nets {
			calc, err := vat.FromNet(d(s), rate)
			require.NoError(t, err)
			assert.True(t, calc.Net.Add(calc.VAT).Equal(calc.Gross), "%s @ %s", s, rate)

			back, err := vat.FromGross(calc.Gross, rate)
			require.NoError(t, err)
			assert.True(t, money.Round(back.Net).Equal(money.Round(d(s))), "ida y vuelta %s @ %s -> %s", s, rate, back.Net)
		}
	}
}

func TestAggregate_DosTasas(t *testing.T) {
	s, err := vat.Aggregate([]vat.Item{
		{Net: d("100.00"), Rate: vat.RateStandard},
		{Net: d("50.00"), Rate: vat.RateReduced},
	})
	require.NoError(t, err)
	require.Len(t, s.Breakdown, 2)

	assert.Equal(t, vat.RateStandard, s.Breakdown[0].Rate)
	assert.Equal(t, "100.00", money.Fixed(s.Breakdown[0].Net))
	assert.Equal(t, "23.00", money.Fixed(s.Breakdown[0].VAT))
	assert.Equal(t, "123.00", money.Fixed(s.Breakdown[0].Gross))

	assert.Equal(t, vat.RateReduced, s.Breakdown[1].Rate)
	assert.Equal(t, "50.00", money.Fixed(s.Breakdown[1].Net))
	assert.Equal(t, "4.00", money.Fixed(s.Breakdown[1].VAT))
	assert.Equal(t, "54.00", money.Fixed(s.Breakdown[1].Gross))

	assert.Equal(t, "150.00", money.Fixed(s.TotalNet))
	assert.Equal(t, "27.00", money.Fixed(s.TotalVAT))
	assert.Equal(t, "177.00", money.Fixed(s.TotalGross))
	assert.True(t, s.HasMultipleRates)
	assert.Equal(t, "Podsumowanie VAT", s.Title())
}

func TestAggregate_OrdenDescendenteYConteo(t *testing.T) {
	s, err := vat.Aggregate([]vat.Item{
		{Net: d("10"), Rate: vat.RateZero},
		{Net: d("10"), Rate: vat.RateSuperReduced},
		{Net: d("10"), Rate: vat.RateStandard},
		{Net: d("0.10"), Rate: vat.RateStandard},
		{Net: d("10"), Rate: vat.RateReduced},
	})
	require.NoError(t, err)
	require.Len(t, s.Breakdown, 4)
	assert.Equal(t, []vat.Rate{23, 8, 5, 0}, []vat.Rate{
		s.Breakdown[0].Rate, s.Breakdown[1].Rate, s.Breakdown[2].Rate, s.Breakdown[3].Rate,
	})
	assert.Equal(t, 2, s.Breakdown[0].ItemCount)
	assert.Equal(t, "10.10", money.Fixed(s.Breakdown[0].Net))
	// 10 * 23% = 2.30 y 0.10 * 23% = 0.023 -> 0.02 (redondeo por línea)
	assert.Equal(t, "2.32", money.Fixed(s.Breakdown[0].VAT))
}

func TestAggregate_TotalBrutoEsSumaDeGrupos(t *testing.T) {
	items := []vat.Item{
		{Net: d("0.335"), Rate: vat.RateStandard},
		{Net: d("17.115"), Rate: vat.RateStandard},
		{Net: d("3.333"), Rate: vat.RateReduced},
		{Net: d("1.005"), Rate: vat.RateSuperReduced},
		{Net: d("7.77"), Rate: vat.RateZero},
	}
	s, err := vat.Aggregate(items)
	require.NoError(t, err)

	grossSum := decimal.Zero
	for _, row := range s.Breakdown {
		grossSum = grossSum.Add(row.Gross)
	}
	assert.True(t, s.TotalGross.Equal(money.Round(grossSum)))
}

func TestAggregate_ListaVacia(t *testing.T) {
	s, err := vat.Aggregate(nil)
	require.NoError(t, err)
	assert.True(t, s.TotalNet.IsZero())
	assert.True(t, s.TotalVAT.IsZero())
	assert.True(t, s.TotalGross.IsZero())
	assert.NotNil(t, s.Breakdown)
	assert.Empty(t, s.Breakdown)
	assert.False(t, s.HasMultipleRates)
	assert.Equal(t, "Wartość faktury", s.Title())
}

func TestAggregate_TasaInvalidaAbortaTodo(t *testing.T) {
	_, err := vat.Aggregate([]vat.Item{
		{Net: d("10"), Rate: vat.RateStandard},
		{Net: d("10"), Rate: vat.Rate(7)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidVATRate)
}

func TestValidate(t *testing.T) {
	_, err := vat.Validate(d("100"), d("23"), d("123"), vat.RateStandard)
	assert.NoError(t, err)

	expected, err := vat.Validate(d("100"), d("22"), d("122"), vat.RateStandard)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "23.00", money.Fixed(expected.VAT))
}
