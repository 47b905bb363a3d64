package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/numbering"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
	"github.com/thecactoos/enterprise-sub001/internal/domain/totals"
	"github.com/thecactoos/enterprise-sub001/pkg/logger"
	"github.com/thecactoos/enterprise-sub001/pkg/nip"
)

// DocumentUseCase crea y recalcula facturas, proformas, correcciones y ofertas.
type DocumentUseCase struct {
	txRunner  DocumentTxRunner
	docs      repository.DocumentRepository
	services  repository.ServiceRepository
	numbering *NumberingUseCase
	recorder  Recorder
	log       *logger.Logger
	now       func() time.Time
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner DocumentTxRunner,
	docs repository.DocumentRepository,
	services repository.ServiceRepository,
	numberingUC *NumberingUseCase,
	recorder Recorder,
	log *logger.Logger,
) *DocumentUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{
		txRunner:  txRunner,
		docs:      docs,
		services:  services,
		numbering: numberingUC,
		recorder:  recorder,
		log:       log.WithComponent("documents"),
		now:       time.Now,
	}
}

// Create valida y calcula las líneas, agrega totales, asigna número y guarda el documento.
func (uc *DocumentUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	docType, err := numbering.ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: el documento necesita al menos una línea", domain.ErrInvalidInput)
	}
	now := uc.now()
	issueDate := now
	if in.IssueDate != "" {
		issueDate, err = time.Parse("2006-01-02", in.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: issueDate debe ser AAAA-MM-DD", domain.ErrInvalidInput)
		}
	}
	customerNIP := strings.TrimSpace(in.CustomerNIP)
	if customerNIP != "" {
		if customerNIP, err = nip.Normalize(customerNIP); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}
	if docType == numbering.TypeCorrective && in.ParentID == "" {
		return nil, fmt.Errorf("%w: una corrección debe indicar el documento corregido", domain.ErrInvalidInput)
	}
	if in.ParentID != "" {
		parent, err := uc.docs.GetByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	lines, err := uc.buildLines(ctx, companyID, in.Lines)
	if err != nil {
		return nil, err
	}
	priced, err := priceLines(lines, uc.recorder)
	if err != nil {
		return nil, err
	}
	adj := totals.Adjustment{DiscountPercent: in.DiscountPercent, DiscountAmount: in.DiscountAmount, DeliveryCost: in.DeliveryCost}
	tot, err := totals.Aggregate(priced, adj)
	if err != nil {
		uc.recorder.PricingRejected(errorKind(err))
		return nil, err
	}

	doc := &entity.Document{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Type:            string(docType),
		Revision:        1,
		ParentID:        in.ParentID,
		Status:          entity.DocumentStatusDraft,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerNIP:     customerNIP,
		IssueDate:       issueDate,
		Notes:           in.Notes,
		DiscountPercent: in.DiscountPercent,
		DiscountAmount:  in.DiscountAmount,
		DeliveryCost:    in.DeliveryCost,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	applyTotals(doc, tot)

	number, err := uc.numbering.IssueWithRetry(ctx, companyID, docType, issueDate, func(ctx context.Context, number string) error {
		doc.Number = number
		return uc.txRunner.RunDocuments(ctx, func(docs repository.DocumentRepository) error {
			return saveDocument(ctx, docs, doc, lines)
		})
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.DocumentIssued(string(docType))
	uc.log.Info().
		Str("company_id", companyID).
		Str("number", number).
		Str("total_gross", money.Fixed(doc.TotalGross)).
		Msg("documento creado")

	return uc.response(doc, lines)
}

func (uc *DocumentUseCase) buildLines(ctx context.Context, companyID string, in []dto.DocumentLineRequest) ([]*entity.DocumentLine, error) {
	lines := make([]*entity.DocumentLine, 0, len(in))
	for i, item := range in {
		l := &entity.DocumentLine{
			ID:              uuid.New().String(),
			Position:        i + 1,
			Description:     strings.TrimSpace(item.Description),
			Quantity:        item.Quantity,
			Tier:            item.Tier,
			Zone:            item.RegionalZone,
			FlatDiscount:    item.FlatDiscountAmount,
			DiscountPercent: item.DiscountPercent,
		}
		switch {
		case item.ServiceID != "":
			svc, err := uc.services.GetByID(ctx, item.ServiceID)
			if err != nil {
				return nil, err
			}
			if svc == nil || !svc.Active {
				return nil, fmt.Errorf("línea %d: servicio %s: %w", i+1, item.ServiceID, domain.ErrNotFound)
			}
			if svc.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
			copyServiceRates(l, svc)
		case item.Rates != nil:
			copyRequestRates(l, *item.Rates)
		default:
			return nil, fmt.Errorf("línea %d: %w: indique serviceId o rates", i+1, domain.ErrInvalidInput)
		}
		if item.SeasonalActive != nil {
			l.SeasonalActive = *item.SeasonalActive
		}
		if l.Description == "" {
			return nil, fmt.Errorf("línea %d: %w: descripción requerida", i+1, domain.ErrInvalidInput)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func saveDocument(ctx context.Context, docs repository.DocumentRepository, doc *entity.Document, lines []*entity.DocumentLine) error {
	if err := docs.Create(ctx, doc); err != nil {
		return err
	}
	for _, l := range lines {
		l.DocumentID = doc.ID
		if err := docs.CreateLine(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func applyTotals(doc *entity.Document, t totals.Totals) {
	doc.SubtotalNet = t.SubtotalNet
	doc.SubtotalGross = t.SubtotalGross
	doc.DocumentDiscountAmount = t.DocumentDiscountAmount
	doc.TotalNet = t.TotalNet
	doc.VATAmount = t.VATAmount
	doc.TotalGross = t.TotalGross
	doc.Currency = t.Currency
}

// Get devuelve el documento con líneas, totales y resumen de IVA.
func (uc *DocumentUseCase) Get(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	view, err := loadView(ctx, uc.docs, companyID, id)
	if err != nil {
		return nil, err
	}
	return viewResponse(view), nil
}

// Recalculate vuelve a calcular las líneas guardadas con sus parámetros y reagrega los totales.
// Llamarlo dos veces sin cambios produce exactamente los mismos importes.
func (uc *DocumentUseCase) Recalculate(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, lines, err := loadDocument(ctx, uc.docs, companyID, id)
	if err != nil {
		return nil, err
	}
	priced, err := priceLines(lines, uc.recorder)
	if err != nil {
		return nil, err
	}
	tot, err := totals.Aggregate(priced, totals.Adjustment{
		DiscountPercent: doc.DiscountPercent,
		DiscountAmount:  doc.DiscountAmount,
		DeliveryCost:    doc.DeliveryCost,
	})
	if err != nil {
		return nil, err
	}
	applyTotals(doc, tot)
	doc.UpdatedAt = uc.now()

	err = uc.txRunner.RunDocuments(ctx, func(docs repository.DocumentRepository) error {
		for _, l := range lines {
			if err := docs.UpdateLine(ctx, l); err != nil {
				return err
			}
		}
		return docs.UpdateTotals(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(doc, lines)
}

// Revise crea una nueva revisión de una oferta (OF/2025/03/0001 -> OF/2025/03/0001-v2).
// La revisión copia líneas y ajustes y recalcula con los parámetros guardados; la oferta
// anterior queda en estado revised.
func (uc *DocumentUseCase) Revise(ctx context.Context, companyID, userID, id string) (*dto.DocumentResponse, error) {
	prev, prevLines, err := loadDocument(ctx, uc.docs, companyID, id)
	if err != nil {
		return nil, err
	}
	if prev.Type != string(numbering.TypeQuote) {
		return nil, fmt.Errorf("%w: solo las ofertas admiten revisiones", domain.ErrInvalidInput)
	}
	if prev.Status == entity.DocumentStatusRevised || prev.Status == entity.DocumentStatusCanceled {
		return nil, fmt.Errorf("%w: la oferta %s ya fue %s", domain.ErrConflict, prev.Number, prev.Status)
	}
	base, _ := numbering.SplitRevision(prev.Number)
	parsed, ok := numbering.Parse(base)
	if !ok {
		return nil, fmt.Errorf("%w: número de oferta ilegible %q", domain.ErrConflict, prev.Number)
	}
	existing, err := uc.docs.ListNumbers(ctx, companyID, parsed.Prefix, parsed.Year, parsed.Month)
	if err != nil {
		return nil, err
	}
	revision := 1
	for _, n := range existing {
		if b, r := numbering.SplitRevision(n); b == base && r > revision {
			revision = r
		}
	}
	revision++

	now := uc.now()
	doc := *prev
	doc.ID = uuid.New().String()
	doc.Number = numbering.WithRevision(base, revision)
	doc.Revision = revision
	doc.ParentID = prev.ID
	doc.Status = entity.DocumentStatusDraft
	doc.CreatedBy = userID
	doc.CreatedAt = now
	doc.UpdatedAt = now

	lines := make([]*entity.DocumentLine, 0, len(prevLines))
	for _, pl := range prevLines {
		l := *pl
		l.ID = uuid.New().String()
		lines = append(lines, &l)
	}
	priced, err := priceLines(lines, uc.recorder)
	if err != nil {
		return nil, err
	}
	tot, err := totals.Aggregate(priced, totals.Adjustment{
		DiscountPercent: doc.DiscountPercent,
		DiscountAmount:  doc.DiscountAmount,
		DeliveryCost:    doc.DeliveryCost,
	})
	if err != nil {
		return nil, err
	}
	applyTotals(&doc, tot)

	prev.Status = entity.DocumentStatusRevised
	prev.UpdatedAt = now
	err = uc.txRunner.RunDocuments(ctx, func(docs repository.DocumentRepository) error {
		if err := saveDocument(ctx, docs, &doc, lines); err != nil {
			return err
		}
		return docs.UpdateTotals(ctx, prev)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, fmt.Errorf("%w: la revisión %s ya existe", domain.ErrConflict, doc.Number)
	}
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("number", doc.Number).Msg("revisión de oferta creada")
	return uc.response(&doc, lines)
}

func (uc *DocumentUseCase) response(doc *entity.Document, lines []*entity.DocumentLine) (*dto.DocumentResponse, error) {
	view, err := newView(doc, lines)
	if err != nil {
		return nil, err
	}
	return viewResponse(view), nil
}
