package billing

import (
	"context"
	"fmt"

	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
)

// ExportUseCase construye el XML estructurado del documento para archivo.
type ExportUseCase struct {
	docs     repository.DocumentRepository
	exporter DocumentXMLExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(docs repository.DocumentRepository, exporter DocumentXMLExporter) *ExportUseCase {
	return &ExportUseCase{docs: docs, exporter: exporter}
}

// Export devuelve el XML y la huella SHA-256 (base64) de su forma canónica.
func (uc *ExportUseCase) Export(ctx context.Context, companyID, id string) (*dto.DocumentExportResponse, error) {
	view, err := loadView(ctx, uc.docs, companyID, id)
	if err != nil {
		return nil, err
	}
	xml, digest, err := uc.exporter.ExportXML(ctx, view)
	if err != nil {
		return nil, fmt.Errorf("xml: exportación fallida: %w", err)
	}
	return &dto.DocumentExportResponse{
		Number: view.Document.Number,
		Digest: digest,
		XML:    string(xml),
	}, nil
}
