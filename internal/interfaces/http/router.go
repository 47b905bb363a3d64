package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/catalog"
	"github.com/thecactoos/enterprise-sub001/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Pricing   *billing.PricingUseCase
	Documents *billing.DocumentUseCase
	PDF       *billing.PDFUseCase
	Export    *billing.ExportUseCase
	Catalog   *catalog.UseCase
	Metrics   prometheus.Gatherer // nil desactiva /metrics
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// Todo /api requiere Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleSales, jwt.RoleViewer)
	issuers := RequireRole(jwt.RoleAdmin, jwt.RoleSales)
	admins := RequireRole(jwt.RoleAdmin)

	pricingHandler := NewPricingHandler(deps.Pricing)
	pricing := api.Group("/pricing", anyRole)
	pricing.Post("/lines", pricingHandler.Line)
	pricing.Post("/vat-summary", pricingHandler.VATSummary)
	pricing.Post("/totals", pricingHandler.Totals)

	numbers := api.Group("/numbers", anyRole)
	numbers.Get("/parse", pricingHandler.ParseNumber)
	numbers.Get("/:type/next", pricingHandler.NextNumber)

	documentHandler := NewDocumentHandler(deps.Documents, deps.PDF, deps.Export)
	documents := api.Group("/documents")
	documents.Post("/", issuers, documentHandler.Create)
	documents.Get("/:id", anyRole, documentHandler.GetByID)
	documents.Post("/:id/recalculate", issuers, documentHandler.Recalculate)
	documents.Post("/:id/revisions", issuers, documentHandler.Revise)
	documents.Get("/:id/pdf", anyRole, documentHandler.DownloadPDF)
	documents.Get("/:id/xml", anyRole, documentHandler.ExportXML)

	serviceHandler := NewServiceHandler(deps.Catalog)
	services := api.Group("/services")
	services.Get("/", anyRole, serviceHandler.List)
	services.Post("/", admins, serviceHandler.Create)
	services.Post("/bulk-adjust", admins, serviceHandler.BulkAdjust)
	services.Get("/:id", anyRole, serviceHandler.GetByID)
	services.Put("/:id/rates", admins, serviceHandler.UpdateRates)
	services.Get("/:id/history", anyRole, serviceHandler.History)
}
