package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un documento.
const (
	DocumentStatusDraft    = "draft"    // Creado, aún editable
	DocumentStatusIssued   = "issued"   // Emitido al cliente
	DocumentStatusRevised  = "revised"  // Oferta sustituida por una revisión posterior
	DocumentStatusCanceled = "canceled" // Anulado; el número no se reutiliza
)

// Document cabecera de factura, proforma, corrección u oferta.
// Los totales se derivan de las líneas y se recalculan cuando estas cambian.
type Document struct {
	ID           string
	CompanyID    string
	Type         string // vat_invoice | proforma | corrective | quote
	Number       string // FV/2025/01/0001, OF/2025/01/0001-v2
	Revision     int
	ParentID     string // documento original (revisiones de oferta, correcciones)
	Status       string
	CustomerName string
	CustomerNIP  string
	IssueDate    time.Time
	Notes        string

	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	DeliveryCost    decimal.Decimal

	SubtotalNet            decimal.Decimal
	SubtotalGross          decimal.Decimal
	DocumentDiscountAmount decimal.Decimal
	TotalNet               decimal.Decimal
	VATAmount              decimal.Decimal
	TotalGross             decimal.Decimal
	Currency               string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
