package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del motor de precios, IVA y numeración.
// Son fallos de validación locales: abortan el cálculo completo de la línea o del documento.
var (
	ErrInvalidVATRate            = errors.New("tasa de IVA inválida (permitidas: 0, 5, 8, 23)")
	ErrInvalidQuantity           = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidPricingParameter   = errors.New("parámetro de precio inválido")
	ErrInvalidDocumentAdjustment = errors.New("ajuste de documento inválido")
	ErrSequenceExhausted         = errors.New("no se pudo reservar un consecutivo libre")
)

// IsValidation indica si err es un fallo de validación del motor (se traduce a 400 en HTTP).
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidVATRate) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidPricingParameter) ||
		errors.Is(err, ErrInvalidDocumentAdjustment) ||
		errors.Is(err, ErrInvalidInput)
}
