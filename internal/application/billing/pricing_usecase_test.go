package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/memory"
)

func pricingLine(base string, qty string, vatRate int) dto.PricingLineRequest {
	return dto.PricingLineRequest{
		RatesRequest: dto.RatesRequest{BaseRate: d(base), VATRate: vatRate},
		Quantity:     d(qty),
		Tier:         "basic",
	}
}

func TestPriceLine(t *testing.T) {
	rec := &countingRecorder{}
	uc := billing.NewPricingUseCase(nil, rec)

	in := pricingLine("45.50", "25.5", 23)
	in.Tier = "standard"
	got, err := uc.PriceLine(in)
	require.NoError(t, err)
	assert.Equal(t, "1334.29", got.Net)
	assert.Equal(t, "306.89", got.VAT)
	assert.Equal(t, "1641.18", got.Gross)
	assert.Equal(t, "other", got.RegionalZone)
	assert.Equal(t, 1, rec.priced)

	_, err = uc.PriceLine(pricingLine("10", "1", 22))
	assert.ErrorIs(t, err, domain.ErrInvalidVATRate)
	assert.Equal(t, 1, rec.rejected)
}

func TestVATSummary_VariasTasas(t *testing.T) {
	uc := billing.NewPricingUseCase(nil, nil)
	got, err := uc.VATSummary(dto.PricingLinesRequest{Lines: []dto.PricingLineRequest{
		pricingLine("100", "1", 23),
		pricingLine("50", "1", 8),
		pricingLine("10", "1", 23),
	}})
	require.NoError(t, err)

	assert.True(t, got.HasMultipleRates)
	assert.Equal(t, "Podsumowanie VAT", got.Title)
	require.Len(t, got.VATBreakdown, 2)
	assert.Equal(t, 23, got.VATBreakdown[0].VATRate)
	assert.Equal(t, "110.00", got.VATBreakdown[0].NetAmount)
	assert.Equal(t, "25.30", got.VATBreakdown[0].VATAmount)
	assert.Equal(t, 2, got.VATBreakdown[0].ItemCount)
	assert.Equal(t, 8, got.VATBreakdown[1].VATRate)
	assert.Equal(t, "189.30", got.TotalGross)
}

func TestQuote_DescuentoNoReduceIVA(t *testing.T) {
	uc := billing.NewPricingUseCase(nil, nil)
	got, err := uc.Quote(dto.PricingLinesRequest{
		Lines:           []dto.PricingLineRequest{pricingLine("100", "1", 23)},
		DiscountPercent: d("10"),
		DeliveryCost:    d("20"),
	})
	require.NoError(t, err)

	assert.Equal(t, "10.00", got.Totals.DocumentDiscountAmount)
	assert.Equal(t, "110.00", got.Totals.TotalNet)
	assert.Equal(t, "23.00", got.Totals.VATAmount)
	assert.Equal(t, "133.00", got.Totals.TotalGross)
	require.Len(t, got.Lines, 1)
	assert.NotEmpty(t, got.InWords)
}

func TestNextNumber(t *testing.T) {
	store := memory.NewStore()
	numberingUC := billing.NewNumberingUseCase(store.Documents(), store.Sequences(), 3, nil, nil)
	uc := billing.NewPricingUseCase(numberingUC, nil)

	got, err := uc.NextNumber(context.Background(), "c1", "OF", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, "OF/2025/03/0001", got.Number)
	assert.Equal(t, "quote", got.Type)
	assert.Equal(t, 1, got.Sequence)

	_, err = uc.NextNumber(context.Background(), "c1", "XX", 2025, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseNumber(t *testing.T) {
	got, ok := billing.ParseNumber("OF/2025/01/0042-v3")
	require.True(t, ok)
	assert.Equal(t, "OF", got.Prefix)
	assert.Equal(t, 42, got.Sequence)
	assert.Equal(t, 3, got.Revision)
	assert.Equal(t, "quote", got.Type)

	_, ok = billing.ParseNumber("FV-2025-01-0001")
	assert.False(t, ok)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "faktura_FV_2025_01_0001.pdf", billing.FileName("FV/2025/01/0001", "pdf"))
}
