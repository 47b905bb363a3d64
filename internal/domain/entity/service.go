package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service servicio del catálogo (instalación de suelo, lijado, rodapié...) con su tarifa.
type Service struct {
	ID                 string
	CompanyID          string
	Code               string
	Name               string
	Category           string
	Unit               string // m2, mb, szt
	BasePrice          decimal.Decimal
	StandardPrice      decimal.NullDecimal
	PremiumPrice       decimal.NullDecimal
	RegionalMultiplier decimal.NullDecimal
	MinimumCharge      decimal.Decimal
	SeasonalActive     bool
	SeasonalMultiplier decimal.Decimal
	VolumeThreshold    decimal.Decimal
	VolumePercent      decimal.Decimal
	VATRate            int
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
