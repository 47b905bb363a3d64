// Package metrics publica en Prometheus los eventos del motor de precios y numeración.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
)

var _ billing.Recorder = (*Recorder)(nil)

// Recorder implementa billing.Recorder con contadores Prometheus.
type Recorder struct {
	linesPriced       *prometheus.CounterVec
	pricingRejected   *prometheus.CounterVec
	sequenceReserved  *prometheus.CounterVec
	sequenceConflicts *prometheus.CounterVec
	documentsIssued   *prometheus.CounterVec
}

// NewRecorder crea y registra los contadores. Con reg nil usa prometheus.DefaultRegisterer.
// Si ya estaban registrados (p. ej. dos instancias en el mismo proceso) reutiliza los existentes.
func NewRecorder(namespace string, reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		linesPriced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_priced_total",
			Help:      "Count of priced service lines by tier.",
		}, []string{"tier"}),
		pricingRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_rejected_total",
			Help:      "Count of pricing requests rejected by validation kind.",
		}, []string{"kind"}),
		sequenceReserved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequence_reserved_total",
			Help:      "Count of document numbers reserved by prefix.",
		}, []string{"prefix"}),
		sequenceConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequence_conflicts_total",
			Help:      "Count of reserved numbers rejected by the unique constraint.",
		}, []string{"prefix"}),
		documentsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_issued_total",
			Help:      "Count of stored documents by type.",
		}, []string{"type"}),
	}
	r.linesPriced = mustRegister(reg, r.linesPriced)
	r.pricingRejected = mustRegister(reg, r.pricingRejected)
	r.sequenceReserved = mustRegister(reg, r.sequenceReserved)
	r.sequenceConflicts = mustRegister(reg, r.sequenceConflicts)
	r.documentsIssued = mustRegister(reg, r.documentsIssued)
	return r
}

func mustRegister(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (r *Recorder) LinePriced(tier string)         { r.linesPriced.WithLabelValues(tier).Inc() }
func (r *Recorder) PricingRejected(kind string)    { r.pricingRejected.WithLabelValues(kind).Inc() }
func (r *Recorder) SequenceReserved(prefix string) { r.sequenceReserved.WithLabelValues(prefix).Inc() }
func (r *Recorder) SequenceConflict(prefix string) { r.sequenceConflicts.WithLabelValues(prefix).Inc() }
func (r *Recorder) DocumentIssued(docType string)  { r.documentsIssued.WithLabelValues(docType).Inc() }
