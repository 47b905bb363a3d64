// Package catalog gestiona el catálogo de servicios con tarifa y su historial de precios.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/money"
	"github.com/thecactoos/enterprise-sub001/internal/domain/pricing"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
	"github.com/thecactoos/enterprise-sub001/internal/domain/vat"
	"github.com/thecactoos/enterprise-sub001/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios del catálogo.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(services repository.ServiceRepository, history repository.PriceHistoryRepository) error) error
}

// UseCase casos de uso del catálogo.
type UseCase struct {
	txRunner TxRunner
	services repository.ServiceRepository
	history  repository.PriceHistoryRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, services repository.ServiceRepository, history repository.PriceHistoryRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner: txRunner,
		services: services,
		history:  history,
		log:      log.WithComponent("catalog"),
		now:      time.Now,
	}
}

var hundred = decimal.NewFromInt(100)

// Create da de alta un servicio validando su tarifa.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := in.ServiceRates().Validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	s := &entity.Service{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      strings.TrimSpace(in.Code),
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyRates(s, in.RatesRequest)
	if err := uc.services.Create(ctx, s); err != nil {
		return nil, err
	}
	out := ToServiceResponse(s)
	return &out, nil
}

// Get devuelve un servicio de la empresa.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.ServiceResponse, error) {
	s, err := uc.load(ctx, uc.services, companyID, id)
	if err != nil {
		return nil, err
	}
	out := ToServiceResponse(s)
	return &out, nil
}

// List devuelve los servicios de la empresa paginados.
func (uc *UseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ServiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.services.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToServiceResponse(s))
	}
	return &dto.ServiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateRates sustituye la tarifa del servicio. Si cambia el precio base se guarda el historial.
func (uc *UseCase) UpdateRates(ctx context.Context, companyID, userID, id string, in dto.UpdateRatesRequest) (*dto.ServiceResponse, error) {
	if err := in.ServiceRates().Validate(); err != nil {
		return nil, err
	}
	var updated *entity.Service
	err := uc.txRunner.RunCatalog(ctx, func(services repository.ServiceRepository, history repository.PriceHistoryRepository) error {
		s, err := uc.load(ctx, services, companyID, id)
		if err != nil {
			return err
		}
		old := s.BasePrice
		applyRates(s, in.RatesRequest)
		s.UpdatedAt = uc.now()
		if err := services.Update(ctx, s); err != nil {
			return err
		}
		updated = s
		return uc.recordChange(ctx, history, s, old, in.Reason, userID)
	})
	if err != nil {
		return nil, err
	}
	out := ToServiceResponse(updated)
	return &out, nil
}

// BulkAdjust aplica un porcentaje a los precios base y explícitos de varios servicios,
// y opcionalmente una nueva tasa de IVA y multiplicador estacional. Todo o nada.
func (uc *UseCase) BulkAdjust(ctx context.Context, companyID, userID string, in dto.BulkAdjustRequest) (*dto.BulkAdjustResponse, error) {
	if in.Percent.LessThan(pricing.BulkAdjustMin) || in.Percent.GreaterThan(pricing.BulkAdjustMax) {
		return nil, fmt.Errorf("%w: ajuste %s%% fuera de [%s, %s]",
			domain.ErrInvalidPricingParameter, in.Percent, pricing.BulkAdjustMin, pricing.BulkAdjustMax)
	}
	if !pricing.HasScale(in.Percent, pricing.PercentScale) {
		return nil, fmt.Errorf("%w: ajuste %s%% admite como máximo %d decimales",
			domain.ErrInvalidPricingParameter, in.Percent, pricing.PercentScale)
	}
	if in.NewSeasonalMultiplier.Valid && !pricing.HasScale(in.NewSeasonalMultiplier.Decimal, pricing.MultiplierScale) {
		return nil, fmt.Errorf("%w: multiplicador estacional %s admite como máximo %d decimales",
			domain.ErrInvalidPricingParameter, in.NewSeasonalMultiplier.Decimal, pricing.MultiplierScale)
	}
	if in.NewVATRate != nil {
		if _, err := vat.ParseRate(*in.NewVATRate); err != nil {
			return nil, err
		}
	}
	if in.NewSeasonalMultiplier.Valid &&
		(in.NewSeasonalMultiplier.Decimal.LessThan(pricing.SeasonalMin) || in.NewSeasonalMultiplier.Decimal.GreaterThan(pricing.SeasonalMax)) {
		return nil, fmt.Errorf("%w: multiplicador estacional %s fuera de [%s, %s]",
			domain.ErrInvalidPricingParameter, in.NewSeasonalMultiplier.Decimal, pricing.SeasonalMin, pricing.SeasonalMax)
	}
	factor := decimal.NewFromInt(1).Add(in.Percent.Div(hundred))
	scale := func(d decimal.Decimal) decimal.Decimal { return money.Round(d.Mul(factor)) }

	out := &dto.BulkAdjustResponse{Updated: make([]dto.ServiceResponse, 0, len(in.ServiceIDs))}
	err := uc.txRunner.RunCatalog(ctx, func(services repository.ServiceRepository, history repository.PriceHistoryRepository) error {
		for _, id := range in.ServiceIDs {
			s, err := uc.load(ctx, services, companyID, id)
			if err != nil {
				return fmt.Errorf("servicio %s: %w", id, err)
			}
			old := s.BasePrice
			s.BasePrice = scale(s.BasePrice)
			if s.StandardPrice.Valid {
				s.StandardPrice.Decimal = scale(s.StandardPrice.Decimal)
			}
			if s.PremiumPrice.Valid {
				s.PremiumPrice.Decimal = scale(s.PremiumPrice.Decimal)
			}
			if in.NewVATRate != nil {
				s.VATRate = *in.NewVATRate
			}
			if in.NewSeasonalMultiplier.Valid {
				s.SeasonalMultiplier = in.NewSeasonalMultiplier.Decimal
			}
			s.UpdatedAt = uc.now()
			if err := services.Update(ctx, s); err != nil {
				return err
			}
			if err := uc.recordChange(ctx, history, s, old, in.Reason, userID); err != nil {
				return err
			}
			out.Updated = append(out.Updated, ToServiceResponse(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Int("services", len(out.Updated)).
		Str("percent", in.Percent.String()).
		Msg("ajuste masivo de precios aplicado")
	return out, nil
}

// History devuelve los cambios de precio del servicio, del más reciente al más antiguo.
func (uc *UseCase) History(ctx context.Context, companyID, id string) ([]dto.PriceHistoryResponse, error) {
	if _, err := uc.load(ctx, uc.services, companyID, id); err != nil {
		return nil, err
	}
	list, err := uc.history.ListByService(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.PriceHistoryResponse{
			ID:            h.ID,
			ServiceID:     h.ServiceID,
			OldPrice:      money.Fixed(h.OldPrice),
			NewPrice:      money.Fixed(h.NewPrice),
			ChangePercent: money.Fixed(h.ChangePercent),
			Reason:        h.Reason,
			ChangedBy:     h.ChangedBy,
			ChangedAt:     h.ChangedAt,
		})
	}
	return out, nil
}

func (uc *UseCase) load(ctx context.Context, services repository.ServiceRepository, companyID, id string) (*entity.Service, error) {
	s, err := services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

// recordChange guarda el historial solo si el precio base cambió.
func (uc *UseCase) recordChange(ctx context.Context, history repository.PriceHistoryRepository, s *entity.Service, old decimal.Decimal, reason, userID string) error {
	if old.Equal(s.BasePrice) {
		return nil
	}
	change := decimal.Zero
	if !old.IsZero() {
		change = money.Round(s.BasePrice.Sub(old).Div(old).Mul(hundred))
	}
	return history.Create(ctx, &entity.PriceHistory{
		ID:            uuid.New().String(),
		ServiceID:     s.ID,
		CompanyID:     s.CompanyID,
		OldPrice:      old,
		NewPrice:      s.BasePrice,
		ChangePercent: change,
		Reason:        reason,
		ChangedBy:     userID,
		ChangedAt:     uc.now(),
	})
}

func applyRates(s *entity.Service, r dto.RatesRequest) {
	s.Unit = r.Unit
	s.BasePrice = r.BaseRate
	s.StandardPrice = r.StandardRate
	s.PremiumPrice = r.PremiumRate
	s.RegionalMultiplier = r.RegionalMultiplier
	s.MinimumCharge = r.MinimumCharge
	s.SeasonalActive = r.SeasonalActive
	s.SeasonalMultiplier = r.SeasonalMultiplier
	s.VolumeThreshold = r.VolumeThreshold
	s.VolumePercent = r.VolumeDiscountPercent
	s.VATRate = r.VATRate
}

// ToServiceResponse convierte la entidad a su respuesta con los precios por nivel resueltos.
func ToServiceResponse(s *entity.Service) dto.ServiceResponse {
	rates := pricing.ServiceRates{
		BasePrice:     s.BasePrice,
		StandardPrice: s.StandardPrice,
		PremiumPrice:  s.PremiumPrice,
	}
	standard, _ := rates.TierPrice(pricing.TierStandard)
	premium, _ := rates.TierPrice(pricing.TierPremium)
	out := dto.ServiceResponse{
		ID:                    s.ID,
		Code:                  s.Code,
		Name:                  s.Name,
		Category:              s.Category,
		Unit:                  s.Unit,
		BaseRate:              money.Fixed(s.BasePrice),
		StandardRate:          money.Fixed(standard),
		PremiumRate:           money.Fixed(premium),
		MinimumCharge:         money.Fixed(s.MinimumCharge),
		SeasonalActive:        s.SeasonalActive,
		SeasonalMultiplier:    s.SeasonalMultiplier.String(),
		VolumeThreshold:       s.VolumeThreshold.String(),
		VolumeDiscountPercent: s.VolumePercent.String(),
		VATRate:               s.VATRate,
		Active:                s.Active,
		UpdatedAt:             s.UpdatedAt,
	}
	if s.RegionalMultiplier.Valid {
		out.RegionalMultiplier = s.RegionalMultiplier.Decimal.String()
	}
	return out
}
