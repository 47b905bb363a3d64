package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
)

// PDFUseCase genera la representación PDF de un documento.
type PDFUseCase struct {
	docs      repository.DocumentRepository
	generator DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(docs repository.DocumentRepository, generator DocumentPDFGenerator) *PDFUseCase {
	return &PDFUseCase{docs: docs, generator: generator}
}

// Download carga el documento con sus líneas y resumen de IVA y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
//   - domain.ErrForbidden        si el documento no pertenece a la empresa del token.
func (uc *PDFUseCase) Download(ctx context.Context, companyID, id string) (pdfBytes []byte, filename string, err error) {
	view, err := loadView(ctx, uc.docs, companyID, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, view)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, FileName(view.Document.Number, "pdf"), nil
}

// FileName nombre de archivo para un número de documento (FV/2025/01/0001 -> faktura_FV_2025_01_0001.pdf).
func FileName(number, ext string) string {
	safe := strings.NewReplacer("/", "_", " ", "_").Replace(number)
	return fmt.Sprintf("faktura_%s.%s", safe, ext)
}
