package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/numbering"
)

// DocumentRepository implementación en memoria de repository.DocumentRepository.
type DocumentRepository struct {
	a access
}

func (r *DocumentRepository) Create(_ context.Context, doc *entity.Document) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.documents[doc.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range d.documents {
			if other.CompanyID == doc.CompanyID && other.Number == doc.Number {
				return domain.ErrDuplicate
			}
		}
		d.documents[doc.ID] = *doc
		return nil
	})
}

func (r *DocumentRepository) CreateLine(_ context.Context, line *entity.DocumentLine) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.documents[line.DocumentID]; !ok {
			return domain.ErrNotFound
		}
		d.lines[line.DocumentID] = append(d.lines[line.DocumentID], *line)
		return nil
	})
}

func (r *DocumentRepository) UpdateTotals(_ context.Context, doc *entity.Document) error {
	return r.a.write(func(d *data) error {
		cur, ok := d.documents[doc.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = doc.Status
		cur.SubtotalNet = doc.SubtotalNet
		cur.SubtotalGross = doc.SubtotalGross
		cur.DocumentDiscountAmount = doc.DocumentDiscountAmount
		cur.TotalNet = doc.TotalNet
		cur.VATAmount = doc.VATAmount
		cur.TotalGross = doc.TotalGross
		cur.Currency = doc.Currency
		cur.UpdatedAt = doc.UpdatedAt
		d.documents[doc.ID] = cur
		return nil
	})
}

func (r *DocumentRepository) UpdateLine(_ context.Context, line *entity.DocumentLine) error {
	return r.a.write(func(d *data) error {
		lines := d.lines[line.DocumentID]
		for i := range lines {
			if lines[i].ID == line.ID {
				lines[i] = *line
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// GetByID devuelve nil, nil si no existe.
func (r *DocumentRepository) GetByID(_ context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	r.a.read(func(d *data) {
		if doc, ok := d.documents[id]; ok {
			out = &doc
		}
	})
	return out, nil
}

func (r *DocumentRepository) GetLines(_ context.Context, documentID string) ([]*entity.DocumentLine, error) {
	var out []*entity.DocumentLine
	r.a.read(func(d *data) {
		src := d.lines[documentID]
		out = make([]*entity.DocumentLine, 0, len(src))
		for i := range src {
			l := src[i]
			out = append(out, &l)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *DocumentRepository) ListNumbers(_ context.Context, companyID, prefix string, year, month int) ([]string, error) {
	head := numbering.PeriodPrefix(prefix, numbering.Period{Year: year, Month: month})
	var out []string
	r.a.read(func(d *data) {
		for _, doc := range d.documents {
			if doc.CompanyID == companyID && strings.HasPrefix(doc.Number, head) {
				out = append(out, doc.Number)
			}
		}
	})
	sort.Strings(out)
	return out, nil
}
