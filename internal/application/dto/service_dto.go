package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequest body para POST /api/services.
type CreateServiceRequest struct {
	RatesRequest
	Code     string `json:"code" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category" validate:"max=100"`
}

// UpdateRatesRequest body para PUT /api/services/:id/rates.
type UpdateRatesRequest struct {
	RatesRequest
	Reason string `json:"reason" validate:"max=500"`
}

// BulkAdjustRequest body para POST /api/services/bulk-adjust.
// Percent en [-50, 100]: 10 sube un 10 % los precios, -5 los baja un 5 %.
// NewVATRate y NewSeasonalMultiplier son opcionales y se aplican a todos los servicios.
type BulkAdjustRequest struct {
	ServiceIDs            []string            `json:"serviceIds" validate:"required,min=1,max=200,dive,uuid"`
	Percent               decimal.Decimal     `json:"percent"`
	NewVATRate            *int                `json:"newVatRate"`
	NewSeasonalMultiplier decimal.NullDecimal `json:"newSeasonalMultiplier"`
	Reason                string              `json:"reason" validate:"max=500"`
}

// ServiceResponse servicio del catálogo.
type ServiceResponse struct {
	ID                    string    `json:"id"`
	Code                  string    `json:"code"`
	Name                  string    `json:"name"`
	Category              string    `json:"category,omitempty"`
	Unit                  string    `json:"unit"`
	BaseRate              string    `json:"baseRate"`
	StandardRate          string    `json:"standardRate"`
	PremiumRate           string    `json:"premiumRate"`
	RegionalMultiplier    string    `json:"regionalMultiplier,omitempty"`
	MinimumCharge         string    `json:"minimumCharge"`
	SeasonalActive        bool      `json:"seasonalActive"`
	SeasonalMultiplier    string    `json:"seasonalMultiplier"`
	VolumeThreshold       string    `json:"volumeThreshold"`
	VolumeDiscountPercent string    `json:"volumeDiscountPercent"`
	VATRate               int       `json:"vatRate"`
	Active                bool      `json:"active"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ServiceListResponse lista paginada de servicios.
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PriceHistoryResponse cambio de precio registrado.
type PriceHistoryResponse struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"serviceId"`
	OldPrice      string    `json:"oldPrice"`
	NewPrice      string    `json:"newPrice"`
	ChangePercent string    `json:"changePercent"`
	Reason        string    `json:"reason,omitempty"`
	ChangedBy     string    `json:"changedBy,omitempty"`
	ChangedAt     time.Time `json:"changedAt"`
}

// BulkAdjustResponse resultado del ajuste masivo.
type BulkAdjustResponse struct {
	Updated []ServiceResponse `json:"updated"`
}
