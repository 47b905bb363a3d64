package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory registro antes/después de un cambio de precio base de un servicio.
type PriceHistory struct {
	ID            string
	ServiceID     string
	CompanyID     string
	OldPrice      decimal.Decimal
	NewPrice      decimal.Decimal
	ChangePercent decimal.Decimal
	Reason        string
	ChangedBy     string
	ChangedAt     time.Time
}
