package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecactoos/enterprise-sub001/pkg/config"
	"github.com/thecactoos/enterprise-sub001/pkg/nip"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.BackendPostgres, cfg.App.Storage)
	assert.Equal(t, config.BackendPostgres, cfg.Sequence.Backend)
	assert.Equal(t, 3, cfg.Sequence.MaxAttempts)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/flooring_crm?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SEQUENCE_BACKEND", "Redis")
	t.Setenv("SEQUENCE_MAX_ATTEMPTS", "5")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("SELLER_NIP", "526-025-02-74")
	t.Setenv("SELLER_REGON", "123456785")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.App.Storage)
	assert.Equal(t, config.BackendRedis, cfg.Sequence.Backend)
	assert.Equal(t, 5, cfg.Sequence.MaxAttempts)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.Equal(t, "5260250274", cfg.Seller.NIP, "el NIP se guarda solo con dígitos")
	assert.Equal(t, "123456785", cfg.Seller.REGON)
}

func TestLoad_CombinacionesInvalidas(t *testing.T) {
	t.Run("backend desconocido", func(t *testing.T) {
		t.Setenv("SEQUENCE_BACKEND", "etcd")
		_, err := config.Load()
		assert.Error(t, err)
	})
	t.Run("contador postgres sin almacenamiento postgres", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("SEQUENCE_BACKEND", "postgres")
		_, err := config.Load()
		assert.Error(t, err)
	})
	t.Run("NIP del vendedor con dígito de control incorrecto", func(t *testing.T) {
		t.Setenv("SELLER_NIP", "5260250275")
		_, err := config.Load()
		assert.ErrorIs(t, err, nip.ErrInvalid)
	})
	t.Run("REGON del vendedor incorrecto", func(t *testing.T) {
		t.Setenv("SELLER_REGON", "123456784")
		_, err := config.Load()
		assert.ErrorIs(t, err, nip.ErrInvalid)
	})
	t.Run("cero intentos", func(t *testing.T) {
		t.Setenv("SEQUENCE_MAX_ATTEMPTS", "0")
		_, err := config.Load()
		assert.Error(t, err)
	})
}
