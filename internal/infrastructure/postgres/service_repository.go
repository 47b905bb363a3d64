package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)
var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// ServiceRepo implementación de ServiceRepository (usable con pool o tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `id, company_id, code, name, category, unit, base_price, standard_price, premium_price,
	regional_multiplier, minimum_charge, seasonal_active, seasonal_multiplier, volume_threshold, volume_percent,
	vat_rate, active, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Code, &s.Name, &s.Category, &s.Unit, &s.BasePrice, &s.StandardPrice, &s.PremiumPrice,
		&s.RegionalMultiplier, &s.MinimumCharge, &s.SeasonalActive, &s.SeasonalMultiplier, &s.VolumeThreshold, &s.VolumePercent,
		&s.VATRate, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un servicio. Código repetido en la empresa devuelve domain.ErrDuplicate.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Code, s.Name, s.Category, s.Unit, s.BasePrice, s.StandardPrice, s.PremiumPrice,
		s.RegionalMultiplier, s.MinimumCharge, s.SeasonalActive, s.SeasonalMultiplier, s.VolumeThreshold, s.VolumePercent,
		s.VATRate, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, s.Code)
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// Update sustituye tarifa y datos descriptivos.
func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services SET name = $2, category = $3, unit = $4, base_price = $5, standard_price = $6,
			premium_price = $7, regional_multiplier = $8, minimum_charge = $9, seasonal_active = $10,
			seasonal_multiplier = $11, volume_threshold = $12, volume_percent = $13, vat_rate = $14,
			active = $15, updated_at = $16
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Category, s.Unit, s.BasePrice, s.StandardPrice,
		s.PremiumPrice, s.RegionalMultiplier, s.MinimumCharge, s.SeasonalActive,
		s.SeasonalMultiplier, s.VolumeThreshold, s.VolumePercent, s.VATRate,
		s.Active, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un servicio; nil, nil si no existe.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	s, err := scanService(r.q.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

// ListByCompany lista servicios de la empresa con paginación, por nombre.
func (r *ServiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE company_id = $1 ORDER BY name, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// PriceHistoryRepo implementación de PriceHistoryRepository.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador.
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create registra un cambio de precio.
func (r *PriceHistoryRepo) Create(ctx context.Context, h *entity.PriceHistory) error {
	query := `
		INSERT INTO price_history (id, service_id, company_id, old_price, new_price, change_percent, reason, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.ServiceID, h.CompanyID, h.OldPrice, h.NewPrice, h.ChangePercent, h.Reason, h.ChangedBy, h.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

// ListByService devuelve el historial del más reciente al más antiguo.
func (r *PriceHistoryRepo) ListByService(ctx context.Context, serviceID string) ([]*entity.PriceHistory, error) {
	query := `
		SELECT id, service_id, company_id, old_price, new_price, change_percent, reason, changed_by, changed_at
		FROM price_history WHERE service_id = $1 ORDER BY changed_at DESC`
	rows, err := r.q.Query(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()

	var list []*entity.PriceHistory
	for rows.Next() {
		var h entity.PriceHistory
		if err := rows.Scan(&h.ID, &h.ServiceID, &h.CompanyID, &h.OldPrice, &h.NewPrice, &h.ChangePercent,
			&h.Reason, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
