package memory

import (
	"context"
	"sort"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
)

// ServiceRepository implementación en memoria de repository.ServiceRepository.
type ServiceRepository struct {
	a access
}

func (r *ServiceRepository) Create(_ context.Context, s *entity.Service) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.services[s.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range d.services {
			if other.CompanyID == s.CompanyID && other.Code == s.Code {
				return domain.ErrDuplicate
			}
		}
		d.services[s.ID] = *s
		return nil
	})
}

func (r *ServiceRepository) Update(_ context.Context, s *entity.Service) error {
	return r.a.write(func(d *data) error {
		if _, ok := d.services[s.ID]; !ok {
			return domain.ErrNotFound
		}
		d.services[s.ID] = *s
		return nil
	})
}

// GetByID devuelve nil, nil si no existe.
func (r *ServiceRepository) GetByID(_ context.Context, id string) (*entity.Service, error) {
	var out *entity.Service
	r.a.read(func(d *data) {
		if s, ok := d.services[id]; ok {
			out = &s
		}
	})
	return out, nil
}

// ListByCompany ordena por nombre, como la consulta de PostgreSQL.
func (r *ServiceRepository) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Service, error) {
	var all []*entity.Service
	r.a.read(func(d *data) {
		for _, s := range d.services {
			if s.CompanyID == companyID {
				s := s
				all = append(all, &s)
			}
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	if offset >= len(all) {
		return []*entity.Service{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// PriceHistoryRepository implementación en memoria de repository.PriceHistoryRepository.
type PriceHistoryRepository struct {
	a access
}

func (r *PriceHistoryRepository) Create(_ context.Context, h *entity.PriceHistory) error {
	return r.a.write(func(d *data) error {
		d.history[h.ServiceID] = append(d.history[h.ServiceID], *h)
		return nil
	})
}

// ListByService devuelve del cambio más reciente al más antiguo.
func (r *PriceHistoryRepository) ListByService(_ context.Context, serviceID string) ([]*entity.PriceHistory, error) {
	var out []*entity.PriceHistory
	r.a.read(func(d *data) {
		src := d.history[serviceID]
		out = make([]*entity.PriceHistory, 0, len(src))
		for i := len(src) - 1; i >= 0; i-- {
			h := src[i]
			out = append(out, &h)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangedAt.After(out[j].ChangedAt) })
	return out, nil
}
