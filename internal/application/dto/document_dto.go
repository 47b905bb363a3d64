package dto

import "github.com/shopspring/decimal"

// CreateDocumentRequest body para POST /api/documents.
// Type: vat_invoice | proforma | corrective | quote (o el prefijo FV, PF, FK, OF).
type CreateDocumentRequest struct {
	Type            string                `json:"type" validate:"required"`
	CustomerName    string                `json:"customerName" validate:"required,max=255"`
	CustomerNIP     string                `json:"customerNip" validate:"omitempty,max=20"`
	IssueDate       string                `json:"issueDate" validate:"omitempty,datetime=2006-01-02"`
	Notes           string                `json:"notes" validate:"max=2000"`
	ParentID        string                `json:"parentId" validate:"omitempty,uuid"`
	DiscountPercent decimal.Decimal       `json:"discountPercent"`
	DiscountAmount  decimal.Decimal       `json:"discountAmount"`
	DeliveryCost    decimal.Decimal       `json:"deliveryCost"`
	Lines           []DocumentLineRequest `json:"lines" validate:"required,min=1,max=500,dive"`
}

// DocumentLineRequest línea de documento: servicio del catálogo (ServiceID) o tarifa en línea (Rates).
type DocumentLineRequest struct {
	ServiceID          string              `json:"serviceId" validate:"omitempty,uuid"`
	Description        string              `json:"description" validate:"max=500"`
	Quantity           decimal.Decimal     `json:"quantity"`
	Tier               string              `json:"tier"`
	RegionalZone       string              `json:"regionalZone"`
	SeasonalActive     *bool               `json:"seasonalActive"`
	FlatDiscountAmount decimal.NullDecimal `json:"flatDiscountAmount"`
	DiscountPercent    decimal.NullDecimal `json:"discountPercent"`
	Rates              *RatesRequest       `json:"rates" validate:"required_without=ServiceID"`
}

// DocumentLineResponse línea de documento en respuestas.
type DocumentLineResponse struct {
	ID              string `json:"id"`
	Position        int    `json:"position"`
	ServiceID       string `json:"serviceId,omitempty"`
	Description     string `json:"description"`
	Unit            string `json:"unit,omitempty"`
	Quantity        string `json:"quantity"`
	Tier            string `json:"tier"`
	RegionalZone    string `json:"regionalZone"`
	EffectiveRate   string `json:"effectiveRate"`
	DiscountApplied string `json:"discountApplied"`
	VATRate         int    `json:"vatRate"`
	Net             string `json:"net"`
	VAT             string `json:"vat"`
	Gross           string `json:"gross"`
}

// DocumentResponse documento completo para GET /api/documents/:id.
type DocumentResponse struct {
	ID           string                 `json:"id"`
	Type         string                 `json:"type"`
	Number       string                 `json:"number"`
	Revision     int                    `json:"revision"`
	ParentID     string                 `json:"parentId,omitempty"`
	Status       string                 `json:"status"`
	CustomerName string                 `json:"customerName"`
	CustomerNIP  string                 `json:"customerNip,omitempty"`
	IssueDate    string                 `json:"issueDate"`
	Notes        string                 `json:"notes,omitempty"`
	Lines        []DocumentLineResponse `json:"lines"`
	Totals       TotalsResponse         `json:"totals"`
	VATSummary   VATSummaryResponse     `json:"vatSummary"`
	InWords      string                 `json:"inWords"`
}

// DocumentExportResponse XML del documento con su huella SHA-256 (base64) sobre la forma canónica.
type DocumentExportResponse struct {
	Number string `json:"number"`
	Digest string `json:"digest"`
	XML    string `json:"xml"`
}
