package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/metrics"
)

func TestRecorder_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder("pricing", reg)

	rec.LinePriced("standard")
	rec.LinePriced("standard")
	rec.LinePriced("premium")
	rec.PricingRejected("invalid_vat_rate")
	rec.SequenceReserved("FV")
	rec.SequenceConflict("FV")
	rec.DocumentIssued("vat_invoice")

	count, err := testutil.GatherAndCount(reg, "pricing_lines_priced_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestRecorder_RegistroRepetidoReutiliza(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := metrics.NewRecorder("pricing", reg)
	second := metrics.NewRecorder("pricing", reg)

	first.DocumentIssued("quote")
	second.DocumentIssued("quote")

	count, err := testutil.GatherAndCount(reg, "pricing_documents_issued_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotPanics(t, func() { second.LinePriced("basic") })
}
