package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/numbering"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, company_id, type, number, revision, parent_id, status, customer_name, customer_nip,
	issue_date, notes, discount_percent, discount_amount, delivery_cost, subtotal_net, subtotal_gross,
	document_discount_amount, total_net, vat_amount, total_gross, currency, created_by, created_at, updated_at`

// Create persiste la cabecera. Un número repetido en la empresa devuelve domain.ErrDuplicate.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CompanyID, d.Type, d.Number, d.Revision, nullString(d.ParentID), d.Status, d.CustomerName, d.CustomerNIP,
		d.IssueDate, d.Notes, d.DiscountPercent, d.DiscountAmount, d.DeliveryCost, d.SubtotalNet, d.SubtotalGross,
		d.DocumentDiscountAmount, d.TotalNet, d.VATAmount, d.TotalGross, d.Currency, d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número %s", domain.ErrDuplicate, d.Number)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

const lineColumns = `id, document_id, position, service_id, description, unit, quantity, tier, zone,
	base_price, standard_price, premium_price, regional_multiplier, minimum_charge, seasonal_active,
	seasonal_multiplier, volume_threshold, volume_percent, flat_discount, discount_percent, vat_rate,
	effective_rate, discount_applied, net, vat, gross`

// CreateLine persiste una línea con la tarifa usada y los importes calculados.
func (r *DocumentRepo) CreateLine(ctx context.Context, l *entity.DocumentLine) error {
	query := `INSERT INTO document_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.DocumentID, l.Position, nullString(l.ServiceID), l.Description, l.Unit, l.Quantity, l.Tier, l.Zone,
		l.BasePrice, l.StandardPrice, l.PremiumPrice, l.RegionalMultiplier, l.MinimumCharge, l.SeasonalActive,
		l.SeasonalMultiplier, l.VolumeThreshold, l.VolumePercent, l.FlatDiscount, l.DiscountPercent, l.VATRate,
		l.EffectiveRate, l.DiscountApplied, l.Net, l.VAT, l.Gross,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// UpdateTotals guarda estado y totales de la cabecera.
func (r *DocumentRepo) UpdateTotals(ctx context.Context, d *entity.Document) error {
	query := `
		UPDATE documents SET status = $2, subtotal_net = $3, subtotal_gross = $4, document_discount_amount = $5,
			total_net = $6, vat_amount = $7, total_gross = $8, currency = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.Status, d.SubtotalNet, d.SubtotalGross, d.DocumentDiscountAmount,
		d.TotalNet, d.VATAmount, d.TotalGross, d.Currency, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLine guarda los importes recalculados de una línea.
func (r *DocumentRepo) UpdateLine(ctx context.Context, l *entity.DocumentLine) error {
	query := `
		UPDATE document_lines SET tier = $2, zone = $3, effective_rate = $4, discount_applied = $5,
			net = $6, vat = $7, gross = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, l.ID, l.Tier, l.Zone, l.EffectiveRate, l.DiscountApplied, l.Net, l.VAT, l.Gross)
	if err != nil {
		return fmt.Errorf("update document line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera; nil, nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	var d entity.Document
	var parentID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CompanyID, &d.Type, &d.Number, &d.Revision, &parentID, &d.Status, &d.CustomerName, &d.CustomerNIP,
		&d.IssueDate, &d.Notes, &d.DiscountPercent, &d.DiscountAmount, &d.DeliveryCost, &d.SubtotalNet, &d.SubtotalGross,
		&d.DocumentDiscountAmount, &d.TotalNet, &d.VATAmount, &d.TotalGross, &d.Currency, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	if parentID != nil {
		d.ParentID = *parentID
	}
	return &d, nil
}

// GetLines devuelve las líneas ordenadas por posición.
func (r *DocumentRepo) GetLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error) {
	query := `SELECT ` + lineColumns + ` FROM document_lines WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		var serviceID *string
		if err := rows.Scan(
			&l.ID, &l.DocumentID, &l.Position, &serviceID, &l.Description, &l.Unit, &l.Quantity, &l.Tier, &l.Zone,
			&l.BasePrice, &l.StandardPrice, &l.PremiumPrice, &l.RegionalMultiplier, &l.MinimumCharge, &l.SeasonalActive,
			&l.SeasonalMultiplier, &l.VolumeThreshold, &l.VolumePercent, &l.FlatDiscount, &l.DiscountPercent, &l.VATRate,
			&l.EffectiveRate, &l.DiscountApplied, &l.Net, &l.VAT, &l.Gross,
		); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		if serviceID != nil {
			l.ServiceID = *serviceID
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListNumbers devuelve los números del periodo (incluidas revisiones -vN).
func (r *DocumentRepo) ListNumbers(ctx context.Context, companyID, prefix string, year, month int) ([]string, error) {
	head := numbering.PeriodPrefix(prefix, numbering.Period{Year: year, Month: month})
	query := `SELECT number FROM documents WHERE company_id = $1 AND number LIKE $2 ORDER BY number`
	rows, err := r.q.Query(ctx, query, companyID, head+"%")
	if err != nil {
		return nil, fmt.Errorf("list document numbers: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan document number: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
