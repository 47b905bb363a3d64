package repository

import (
	"context"

	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para documentos y sus líneas.
type DocumentRepository interface {
	// Create persiste la cabecera. Devuelve domain.ErrDuplicate si el número ya existe en la empresa.
	Create(ctx context.Context, doc *entity.Document) error
	CreateLine(ctx context.Context, line *entity.DocumentLine) error
	// UpdateTotals guarda los totales recalculados y el estado de la cabecera.
	UpdateTotals(ctx context.Context, doc *entity.Document) error
	UpdateLine(ctx context.Context, line *entity.DocumentLine) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error)

	// ListNumbers devuelve los números emitidos por la empresa con ese prefijo en el periodo
	// (incluidas revisiones). Es la instantánea que usa la numeración.
	ListNumbers(ctx context.Context, companyID, prefix string, year, month int) ([]string, error)
}
