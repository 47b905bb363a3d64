package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecactoos/enterprise-sub001/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := jwt.Generate("secreto", "u-1", "c-1", jwt.RoleSales, "pricing-engine", 5)
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "c-1", companyID)
	assert.Equal(t, jwt.RoleSales, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("secreto", "u-1", "c-1", jwt.RoleAdmin, "pricing-engine", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestGenerate_Errores(t *testing.T) {
	_, err := jwt.Generate("", "u", "c", jwt.RoleAdmin, "i", 5)
	assert.Error(t, err)
	_, err = jwt.Generate("s", "u", "c", jwt.RoleAdmin, "i", 0)
	assert.Error(t, err)
}
