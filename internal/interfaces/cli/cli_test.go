package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecactoos/enterprise-sub001/internal/app"
	"github.com/thecactoos/enterprise-sub001/internal/application/dto"
	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/memory"
	"github.com/thecactoos/enterprise-sub001/internal/interfaces/cli"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
	"github.com/thecactoos/enterprise-sub001/pkg/jwt"
)

func run(t *testing.T, opts cli.Options, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLine_Flags(t *testing.T) {
	out, err := run(t, cli.Options{}, "", "line", "--base", "45,50", "--qty", "25.5", "--tier", "standard", "--vat", "23", "-o", "json")
	require.NoError(t, err)

	var line dto.PricedLineResponse
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.Equal(t, "52.33", line.EffectiveRate)
	assert.Equal(t, "1334.29", line.Net)
	assert.Equal(t, "1641.18", line.Gross)
}

func TestLine_Texto(t *testing.T) {
	out, err := run(t, cli.Options{}, "", "line", "--base", "80", "--qty", "3", "--min", "300", "--vat", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Cargo mínimo aplicado")
	assert.Contains(t, out, "300.00")
}

func TestLine_DesdeStdin(t *testing.T) {
	stdin := `{"baseRate":"100","vatRate":23,"quantity":"2","tier":"basic","discountPercent":"10"}`
	out, err := run(t, cli.Options{}, stdin, "line", "-f", "-", "-o", "json")
	require.NoError(t, err)

	var line dto.PricedLineResponse
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.Equal(t, "180.00", line.Net)
	assert.Equal(t, "20.00", line.DiscountApplied)
}

func TestLine_Errores(t *testing.T) {
	_, err := run(t, cli.Options{}, "", "line", "--base", "abc")
	assert.Error(t, err)

	_, err = run(t, cli.Options{}, "", "line", "--base", "10", "--vat", "7")
	assert.Error(t, err)
}

func TestVAT(t *testing.T) {
	stdin := `{"lines":[
		{"baseRate":"100","vatRate":23,"quantity":"1","tier":"basic"},
		{"baseRate":"50","vatRate":8,"quantity":"1","tier":"basic"},
		{"baseRate":"10","vatRate":23,"quantity":"1","tier":"basic"}]}`
	out, err := run(t, cli.Options{}, stdin, "vat", "-o", "json")
	require.NoError(t, err)

	var q dto.QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, "189.30", q.Totals.TotalGross)
	assert.Len(t, q.VATSummary.VATBreakdown, 2)

	text, err := run(t, cli.Options{}, stdin, "vat")
	require.NoError(t, err)
	assert.Contains(t, text, "Słownie")
	assert.Contains(t, text, "23%")
}

func TestParseNumber(t *testing.T) {
	out, err := run(t, cli.Options{}, "", "parse-number", "OF/2025/01/0007-v2", "-o", "json")
	require.NoError(t, err)

	var n dto.NumberResponse
	require.NoError(t, json.Unmarshal([]byte(out), &n))
	assert.Equal(t, "quote", n.Type)
	assert.Equal(t, 7, n.Sequence)
	assert.Equal(t, 2, n.Revision)

	_, err = run(t, cli.Options{}, "", "parse-number", "FV-2025")
	assert.Error(t, err)
}

func TestWords(t *testing.T) {
	out, err := run(t, cli.Options{}, "", "words", "1 641,18")
	require.NoError(t, err)
	assert.Contains(t, out, "osiemnaście groszy")
}

func TestNextNumber_UsaAlmacenamiento(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Documents().Create(context.Background(), &entity.Document{
		ID: "d1", CompanyID: "c1", Type: "vat_invoice", Number: "FV/2025/03/0007",
	}))
	opts := cli.Options{OpenStorage: func(context.Context) (*app.Storage, error) {
		return &app.Storage{Tx: store, Documents: store.Documents(), Services: store.Services(),
			History: store.PriceHistory(), Sequences: store.Sequences()}, nil
	}}

	out, err := run(t, opts, "", "next-number", "--company", "c1", "--type", "FV", "--year", "2025", "--month", "3")
	require.NoError(t, err)
	assert.Equal(t, "FV/2025/03/0008", strings.TrimSpace(out))

	_, err = run(t, opts, "", "next-number", "--type", "FV")
	assert.Error(t, err, "sin --company")
}

func TestToken(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "s3cret", Issuer: "pricing-engine", Expiration: 5}}
	out, err := run(t, cli.Options{Config: cfg}, "", "token", "--user", "u1", "--company", "c1", "--role", "admin")
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse("s3cret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "c1", companyID)
	assert.Equal(t, jwt.RoleAdmin, role)

	_, err = run(t, cli.Options{Config: cfg}, "", "token", "--user", "u1", "--company", "c1", "--role", "root")
	assert.Error(t, err)
	_, err = run(t, cli.Options{}, "", "token", "--user", "u1", "--company", "c1")
	assert.Error(t, err)
}
