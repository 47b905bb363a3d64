package billing

import (
	"context"

	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
)

// DocumentTxRunner ejecuta una función dentro de una transacción con el repositorio de documentos.
// Si fn devuelve error se hace rollback.
type DocumentTxRunner interface {
	RunDocuments(ctx context.Context, fn func(docs repository.DocumentRepository) error) error
}

// DocumentView documento completo listo para representar (PDF, XML, respuesta HTTP).
type DocumentView struct {
	Document *entity.Document
	Lines    []*entity.DocumentLine
	Summary  vat.Summary
	InWords  string
}

// DocumentPDFGenerator genera la representación PDF de un documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, view *DocumentView) ([]byte, error)
}

// DocumentXMLExporter construye el XML estructurado del documento y su huella.
type DocumentXMLExporter interface {
	ExportXML(ctx context.Context, view *DocumentView) (xml []byte, digest string, err error)
}

// Recorder recibe los eventos del motor para métricas.
type Recorder interface {
	LinePriced(tier string)
	PricingRejected(kind string)
	SequenceReserved(prefix string)
	SequenceConflict(prefix string)
	DocumentIssued(docType string)
}

// NopRecorder descarta los eventos.
type NopRecorder struct{}

func (NopRecorder) LinePriced(string)       {}
func (NopRecorder) PricingRejected(string)  {}
func (NopRecorder) SequenceReserved(string) {}
func (NopRecorder) SequenceConflict(string) {}
func (NopRecorder) DocumentIssued(string)   {}
