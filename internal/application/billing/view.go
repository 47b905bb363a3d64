package billing

import (
	"context"
	"fmt"

	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
	"github.com/thecactoos/enterprise-sub001/internal/domain/totals"
)

// loadDocument carga cabecera y líneas verificando que el documento pertenece a la empresa.
func loadDocument(ctx context.Context, docs repository.DocumentRepository, companyID, id string) (*entity.Document, []*entity.DocumentLine, error) {
	doc, err := docs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("documento %s: %w", id, err)
	}
	if doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	lines, err := docs.GetLines(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("líneas de %s: %w", id, err)
	}
	return doc, lines, nil
}

func loadView(ctx context.Context, docs repository.DocumentRepository, companyID, id string) (*DocumentView, error) {
	doc, lines, err := loadDocument(ctx, docs, companyID, id)
	if err != nil {
		return nil, err
	}
	return newView(doc, lines)
}

func newView(doc *entity.Document, lines []*entity.DocumentLine) (*DocumentView, error) {
	summary, err := summaryOf(lines)
	if err != nil {
		return nil, err
	}
	return &DocumentView{
		Document: doc,
		Lines:    lines,
		Summary:  summary,
		InWords:  money.InWords(doc.TotalGross),
	}, nil
}

func viewResponse(v *DocumentView) *dto.DocumentResponse {
	doc := v.Document
	lines := make([]dto.DocumentLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, lineResponse(l))
	}
	return &dto.DocumentResponse{
		ID:           doc.ID,
		Type:         doc.Type,
		Number:       doc.Number,
		Revision:     doc.Revision,
		ParentID:     doc.ParentID,
		Status:       doc.Status,
		CustomerName: doc.CustomerName,
		CustomerNIP:  doc.CustomerNIP,
		IssueDate:    doc.IssueDate.Format("2006-01-02"),
		Notes:        doc.Notes,
		Lines:        lines,
		Totals: dto.NewTotalsResponse(totals.Totals{
			SubtotalNet:             doc.SubtotalNet,
			SubtotalGross:           doc.SubtotalGross,
			DocumentDiscountAmount:  doc.DocumentDiscountAmount,
			DocumentDiscountPercent: doc.DiscountPercent,
			DeliveryCost:            doc.DeliveryCost,
			TotalNet:                doc.TotalNet,
			VATAmount:               doc.VATAmount,
			TotalGross:              doc.TotalGross,
			Currency:                doc.Currency,
		}),
		VATSummary: dto.NewVATSummaryResponse(v.Summary),
		InWords:    v.InWords,
	}
}
