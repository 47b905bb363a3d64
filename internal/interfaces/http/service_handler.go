package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thecactoos/enterprise-sub001/internal/application/catalog"
	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
)

// ServiceHandler catálogo de servicios y tarifas.
type ServiceHandler struct {
	uc *catalog.UseCase
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *catalog.UseCase) *ServiceHandler {
	return &ServiceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear servicio
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequest  true  "Servicio y tarifa"
// @Success      201   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateServiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar servicios
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (1-100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200     {object}  dto.ServiceListResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	if err := validate.Struct(page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	out, err := h.uc.List(c.Context(), companyID, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener servicio
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del servicio"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [get]
func (h *ServiceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRates godoc
// @Summary      Actualizar tarifa
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del servicio"
// @Param        body  body  dto.UpdateRatesRequest  true  "Nueva tarifa"
// @Success      200   {object}  dto.ServiceResponse
// @Router       /api/services/{id}/rates [put]
func (h *ServiceHandler) UpdateRates(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateRatesRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateRates(c.Context(), companyID, GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkAdjust godoc
// @Summary      Ajuste masivo de precios
// @Description  Todo o nada: si un servicio falla no se modifica ninguno.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustRequest  true  "Servicios y porcentaje [-50, 100]"
// @Success      200   {object}  dto.BulkAdjustResponse
// @Router       /api/services/bulk-adjust [post]
func (h *ServiceHandler) BulkAdjust(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.BulkAdjustRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.BulkAdjust(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de precios
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del servicio"
// @Success      200  {array}  dto.PriceHistoryResponse
// @Router       /api/services/{id}/history [get]
func (h *ServiceHandler) History(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.History(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
