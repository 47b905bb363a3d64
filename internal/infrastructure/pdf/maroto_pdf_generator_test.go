package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/pdf"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleView(t *testing.T, docType string) *appbilling.DocumentView {
	t.Helper()
	lines := []*entity.DocumentLine{
		{Position: 1, Description: "Montaż paneli", Unit: "m2", Quantity: d("25.5"), EffectiveRate: d("52.33"),
			Net: d("1334.29"), VAT: d("306.89"), Gross: d("1641.18"), VATRate: 23},
		{Position: 2, Description: "Listwy przypodłogowe", Unit: "mb", Quantity: d("12"), EffectiveRate: d("15"),
			Net: d("180"), VAT: d("14.40"), Gross: d("194.40"), VATRate: 8},
	}
	summary, err := vat.Aggregate([]vat.Item{{Net: d("1334.29"), Rate: 23}, {Net: d("180"), Rate: 8}})
	require.NoError(t, err)
	doc := &entity.Document{
		Type: docType, Number: "FV/2025/03/0001", CustomerName: "Jan Kowalski",
		IssueDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Currency: "PLN",
		SubtotalNet: d("1514.29"), VATAmount: d("321.29"), TotalNet: d("1514.29"), TotalGross: d("1835.58"),
	}
	return &appbilling.DocumentView{Document: doc, Lines: lines, Summary: summary, InWords: money.InWords(doc.TotalGross)}
}

func TestGenerateDocumentPDF(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator(config.SellerConfig{Name: "Parkiet Sp. z o.o.", NIP: "5260250274"})

	for _, docType := range []string{"vat_invoice", "proforma", "quote"} {
		t.Run(docType, func(t *testing.T) {
			out, err := gen.GenerateDocumentPDF(context.Background(), sampleView(t, docType))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateDocumentPDF_SinDocumento(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator(config.SellerConfig{})
	_, err := gen.GenerateDocumentPDF(context.Background(), &appbilling.DocumentView{})
	assert.Error(t, err)
}
