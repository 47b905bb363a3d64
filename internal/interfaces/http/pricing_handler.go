package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
)

// PricingHandler cálculos sin persistencia y consulta de numeración.
type PricingHandler struct {
	uc  *billing.PricingUseCase
	now func() time.Time
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *billing.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc, now: time.Now}
}

// Line godoc
// @Summary      Calcular una línea
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PricingLineRequest  true  "Tarifa, cantidad y descuentos"
// @Success      200   {object}  dto.PricedLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/lines [post]
func (h *PricingHandler) Line(c *fiber.Ctx) error {
	var in dto.PricingLineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.PriceLine(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VATSummary godoc
// @Summary      Resumen de IVA por tasa
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PricingLinesRequest  true  "Líneas"
// @Success      200   {object}  dto.VATSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/vat-summary [post]
func (h *PricingHandler) VATSummary(c *fiber.Ctx) error {
	var in dto.PricingLinesRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.VATSummary(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Totals godoc
// @Summary      Totales de documento para líneas ad hoc
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PricingLinesRequest  true  "Líneas y ajustes de documento"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/totals [post]
func (h *PricingHandler) Totals(c *fiber.Ctx) error {
	var in dto.PricingLinesRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Quote(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextNumber godoc
// @Summary      Próximo número (sin reservar)
// @Tags         numbers
// @Security     Bearer
// @Produce      json
// @Param        type   path   string  true   "vat_invoice | proforma | corrective | quote | FV | PF | FK | OF"
// @Param        year   query  int     false  "Año (por defecto el actual)"
// @Param        month  query  int     false  "Mes (por defecto el actual)"
// @Success      200    {object}  dto.NumberResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/numbers/{type}/next [get]
func (h *PricingHandler) NextNumber(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	now := h.now()
	year, ok := queryInt(c, "year", now.Year())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "year debe ser un número entero"})
	}
	month, ok := queryInt(c, "month", int(now.Month()))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "month debe ser un número entero"})
	}
	out, err := h.uc.NextNumber(c.Context(), companyID, c.Params("type"), year, month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// queryInt lee un entero opcional; a diferencia de c.QueryInt, un valor no numérico no cae al defecto.
func queryInt(c *fiber.Ctx, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

// ParseNumber godoc
// @Summary      Interpretar un número de documento
// @Tags         numbers
// @Security     Bearer
// @Produce      json
// @Param        number  query  string  true  "FV/2025/01/0001 u OF/2025/01/0001-v2"
// @Success      200     {object}  dto.NumberResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/numbers/parse [get]
func (h *PricingHandler) ParseNumber(c *fiber.Ctx) error {
	out, ok := billing.ParseNumber(c.Query("number"))
	if !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_NUMBER", Message: "número con formato inválido"})
	}
	return c.JSON(out)
}
