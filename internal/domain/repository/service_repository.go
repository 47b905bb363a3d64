package repository

import (
	"context"

	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
)

// ServiceRepository define el puerto de persistencia para el catálogo de servicios.
type ServiceRepository interface {
	Create(ctx context.Context, s *entity.Service) error
	Update(ctx context.Context, s *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Service, error)
}

// PriceHistoryRepository define el puerto de persistencia para el historial de precios.
type PriceHistoryRepository interface {
	Create(ctx context.Context, h *entity.PriceHistory) error
	ListByService(ctx context.Context, serviceID string) ([]*entity.PriceHistory, error)
}
