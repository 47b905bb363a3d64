package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
)

// DocumentHandler facturas, proformas, correcciones y ofertas (protegido).
type DocumentHandler struct {
	docs   *billing.DocumentUseCase
	pdf    *billing.PDFUseCase
	export *billing.ExportUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(docs *billing.DocumentUseCase, pdf *billing.PDFUseCase, export *billing.ExportUseCase) *DocumentHandler {
	return &DocumentHandler{docs: docs, pdf: pdf, export: export}
}

// Create godoc
// @Summary      Emitir documento
// @Description  Calcula líneas y totales y asigna el siguiente número del periodo.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "Documento"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateDocumentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.docs.Create(c.Context(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.docs.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recalculate godoc
// @Summary      Recalcular importes
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Router       /api/documents/{id}/recalculate [post]
func (h *DocumentHandler) Recalculate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.docs.Recalculate(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Revise godoc
// @Summary      Nueva revisión de oferta (-vN)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/revisions [post]
func (h *DocumentHandler) Revise(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	out, err := h.docs.Revise(c.Context(), companyID, userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, filename, err := h.pdf.Download(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

// ExportXML godoc
// @Summary      XML estructurado y huella SHA-256
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentExportResponse
// @Router       /api/documents/{id}/xml [get]
func (h *DocumentHandler) ExportXML(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.export.Export(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
