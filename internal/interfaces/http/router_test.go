package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/catalog"
	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/ksef"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/memory"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/metrics"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/pdf"
	apphttp "github.com/thecactoos/enterprise-sub001/internal/interfaces/http"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
	pkgjwt "github.com/thecactoos/enterprise-sub001/pkg/jwt"
)

func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder("test", reg)
	seller := config.SellerConfig{Name: "Parkiet Sp. z o.o.", NIP: "5260250274"}

	numberingUC := billing.NewNumberingUseCase(store.Documents(), store.Sequences(), 3, rec, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:   "pricing-test",
		Pricing:   billing.NewPricingUseCase(numberingUC, rec),
		Documents: billing.NewDocumentUseCase(store, store.Documents(), store.Services(), numberingUC, rec, nil),
		PDF:       billing.NewPDFUseCase(store.Documents(), pdf.NewMarotoPDFGenerator(seller)),
		Export:    billing.NewExportUseCase(store.Documents(), ksef.NewExporter(seller, "pricing-test")),
		Catalog:   catalog.NewUseCase(store, store.Services(), store.PriceHistory(), nil),
		Metrics:   reg,
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, out
}

func invoiceBody() map[string]interface{} {
	return map[string]interface{}{
		"type":         "FV",
		"customerName": "Jan Kowalski",
		"issueDate":    "2025-03-14",
		"lines": []map[string]interface{}{{
			"description": "Montaż paneli",
			"quantity":    "25.5",
			"tier":        "standard",
			"rates":       map[string]interface{}{"unit": "m2", "baseRate": "45.50", "vatRate": 23},
		}},
	}
}

func TestDocuments_RechazaNIPYDecimalesInvalidos(t *testing.T) {
	app := newAPI(t)

	badNIP := invoiceBody()
	badNIP["customerNip"] = "526-025-02-75"
	resp, body := call(t, app, http.MethodPost, "/api/documents", pkgjwt.RoleSales, badNIP)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "VALIDATION")

	badRate := invoiceBody()
	badRate["lines"].([]map[string]interface{})[0]["rates"] = map[string]interface{}{"baseRate": "45.505", "vatRate": 23}
	resp, body = call(t, app, http.MethodPost, "/api/documents", pkgjwt.RoleSales, badRate)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

	ok := invoiceBody()
	ok["customerNip"] = "526 025 02 74"
	resp, body = call(t, app, http.MethodPost, "/api/documents", pkgjwt.RoleSales, ok)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var doc dto.DocumentResponse
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "FV/2025/03/0001", doc.Number, "los intentos rechazados no consumen número")
	assert.Equal(t, "5260250274", doc.CustomerNIP)
}

func TestHealth_SinToken(t *testing.T) {
	resp, body := call(t, newAPI(t), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "pricing-test")
}

func TestAPI_RequiereToken(t *testing.T) {
	resp, _ := call(t, newAPI(t), http.MethodPost, "/api/pricing/lines", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPricingLines(t *testing.T) {
	app := newAPI(t)
	resp, body := call(t, app, http.MethodPost, "/api/pricing/lines", pkgjwt.RoleViewer, map[string]interface{}{
		"unit": "m2", "baseRate": 45.5, "vatRate": 23, "quantity": 25.5, "tier": "standard",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var line dto.PricedLineResponse
	require.NoError(t, json.Unmarshal(body, &line))
	assert.Equal(t, "52.33", line.EffectiveRate)
	assert.Equal(t, "1334.29", line.Net)
	assert.Equal(t, "306.89", line.VAT)
	assert.Equal(t, "1641.18", line.Gross)
}

func TestPricingLines_TasaIVAInvalida400(t *testing.T) {
	resp, body := call(t, newAPI(t), http.MethodPost, "/api/pricing/lines", pkgjwt.RoleViewer, map[string]interface{}{
		"baseRate": "10", "vatRate": 7, "quantity": "1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestPricingVATSummary(t *testing.T) {
	resp, body := call(t, newAPI(t), http.MethodPost, "/api/pricing/vat-summary", pkgjwt.RoleViewer, map[string]interface{}{
		"lines": []map[string]interface{}{
			{"baseRate": "100", "vatRate": 23, "quantity": "1", "tier": "basic"},
			{"baseRate": "50", "vatRate": 8, "quantity": "1", "tier": "basic"},
			{"baseRate": "10", "vatRate": 23, "quantity": "1", "tier": "basic"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var s dto.VATSummaryResponse
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, "189.30", s.TotalGross)
	assert.True(t, s.HasMultipleRates)
	require.Len(t, s.VATBreakdown, 2)
	assert.Equal(t, 23, s.VATBreakdown[0].VATRate)
}

func TestPricingTotals_SinLineas400(t *testing.T) {
	resp, _ := call(t, newAPI(t), http.MethodPost, "/api/pricing/totals", pkgjwt.RoleViewer, map[string]interface{}{"lines": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNumbers_NextYParse(t *testing.T) {
	app := newAPI(t)
	resp, body := call(t, app, http.MethodGet, "/api/numbers/FV/next?year=2025&month=3", pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var n dto.NumberResponse
	require.NoError(t, json.Unmarshal(body, &n))
	assert.Equal(t, "FV/2025/03/0001", n.Number)

	resp, body = call(t, app, http.MethodGet, "/api/numbers/parse?number=OF/2025/01/0007-v2", pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &n))
	assert.Equal(t, "quote", n.Type)
	assert.Equal(t, 7, n.Sequence)
	assert.Equal(t, 2, n.Revision)

	resp, _ = call(t, app, http.MethodGet, "/api/numbers/parse?number=FV-2025-1", pkgjwt.RoleViewer, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/numbers/XX/next", pkgjwt.RoleViewer, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, query := range []string{"year=abc&month=3", "year=2025&month=marzo", "year=2025.5"} {
		resp, body = call(t, app, http.MethodGet, "/api/numbers/FV/next?"+query, pkgjwt.RoleViewer, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
		assert.Contains(t, string(body), "INVALID_QUERY", query)
	}
}

func TestDocuments_CicloCompleto(t *testing.T) {
	app := newAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/documents", pkgjwt.RoleViewer, invoiceBody())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "viewer no emite documentos")

	resp, body = call(t, app, http.MethodPost, "/api/documents", pkgjwt.RoleSales, invoiceBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var doc dto.DocumentResponse
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "FV/2025/03/0001", doc.Number)
	assert.Equal(t, "1641.18", doc.Totals.TotalGross)

	resp, body = call(t, app, http.MethodGet, "/api/documents/"+doc.ID, pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodPost, "/api/documents/"+doc.ID+"/recalculate", pkgjwt.RoleSales, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var again dto.DocumentResponse
	require.NoError(t, json.Unmarshal(body, &again))
	assert.Equal(t, doc.Totals, again.Totals)

	resp, body = call(t, app, http.MethodGet, "/api/documents/"+doc.ID+"/pdf", pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "faktura_FV_2025_03_0001.pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, body = call(t, app, http.MethodGet, "/api/documents/"+doc.ID+"/xml", pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var exp dto.DocumentExportResponse
	require.NoError(t, json.Unmarshal(body, &exp))
	assert.Equal(t, "FV/2025/03/0001", exp.Number)
	assert.NotEmpty(t, exp.Digest)
	assert.True(t, strings.Contains(exp.XML, "<P_2>FV/2025/03/0001</P_2>"))

	resp, _ = call(t, app, http.MethodPost, "/api/documents/"+doc.ID+"/revisions", pkgjwt.RoleSales, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "solo las ofertas admiten revisiones")

	resp, _ = call(t, app, http.MethodGet, "/api/documents/no-existe", pkgjwt.RoleViewer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocuments_RevisionDeOferta(t *testing.T) {
	app := newAPI(t)
	in := invoiceBody()
	in["type"] = "quote"

	resp, body := call(t, app, http.MethodPost, "/api/documents", pkgjwt.RoleSales, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var quote dto.DocumentResponse
	require.NoError(t, json.Unmarshal(body, &quote))
	assert.Equal(t, "OF/2025/03/0001", quote.Number)

	resp, body = call(t, app, http.MethodPost, "/api/documents/"+quote.ID+"/revisions", pkgjwt.RoleSales, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var v2 dto.DocumentResponse
	require.NoError(t, json.Unmarshal(body, &v2))
	assert.Equal(t, "OF/2025/03/0001-v2", v2.Number)

	resp, _ = call(t, app, http.MethodPost, "/api/documents/"+quote.ID+"/revisions", pkgjwt.RoleSales, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "una oferta ya revisada no admite otra revisión")
}

func TestServices_CatalogoEHistorial(t *testing.T) {
	app := newAPI(t)
	create := map[string]interface{}{
		"code": "MP", "name": "Montaż paneli", "unit": "m2", "baseRate": "45.50", "vatRate": 8,
	}

	resp, _ := call(t, app, http.MethodPost, "/api/services", pkgjwt.RoleSales, create)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/services", pkgjwt.RoleAdmin, create)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var svc dto.ServiceResponse
	require.NoError(t, json.Unmarshal(body, &svc))
	assert.Equal(t, "45.50", svc.BaseRate)

	resp, _ = call(t, app, http.MethodPost, "/api/services", pkgjwt.RoleAdmin, create)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = call(t, app, http.MethodPost, "/api/services/bulk-adjust", pkgjwt.RoleAdmin, map[string]interface{}{
		"serviceIds": []string{svc.ID}, "percent": "10", "reason": "inflacja",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var adj dto.BulkAdjustResponse
	require.NoError(t, json.Unmarshal(body, &adj))
	require.Len(t, adj.Updated, 1)
	assert.Equal(t, "50.05", adj.Updated[0].BaseRate)

	resp, _ = call(t, app, http.MethodPost, "/api/services/bulk-adjust", pkgjwt.RoleAdmin, map[string]interface{}{
		"serviceIds": []string{svc.ID}, "percent": "150",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/services/"+svc.ID+"/history", pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var hist []dto.PriceHistoryResponse
	require.NoError(t, json.Unmarshal(body, &hist))
	require.Len(t, hist, 1)
	assert.Equal(t, "45.50", hist[0].OldPrice)
	assert.Equal(t, "50.05", hist[0].NewPrice)

	resp, body = call(t, app, http.MethodGet, "/api/services?limit=10", pkgjwt.RoleViewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var list dto.ServiceListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 1)
}

func TestMetrics_ExponeContadores(t *testing.T) {
	app := newAPI(t)
	resp, _ := call(t, app, http.MethodPost, "/api/pricing/lines", pkgjwt.RoleViewer, map[string]interface{}{
		"baseRate": "10", "vatRate": 23, "quantity": "1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	defer mresp.Body.Close()
	body, _ := io.ReadAll(mresp.Body)
	assert.Contains(t, string(body), "test_lines_priced_total")
}
