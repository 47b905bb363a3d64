// Package app arma repositorios y contador de numeración según la configuración.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/catalog"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/memory"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/postgres"
	"github.com/thecactoos/enterprise-sub001/internal/infrastructure/redisseq"
	"github.com/thecactoos/enterprise-sub001/pkg/config"
	"github.com/thecactoos/enterprise-sub001/pkg/logger"
)

// TxRunner transacciones de documentos y de catálogo.
type TxRunner interface {
	billing.DocumentTxRunner
	catalog.TxRunner
}

// Storage repositorios y contador según STORAGE_BACKEND y SEQUENCE_BACKEND.
type Storage struct {
	Tx        TxRunner
	Documents repository.DocumentRepository
	Services  repository.ServiceRepository
	History   repository.PriceHistoryRepository
	Sequences repository.SequenceStore
	closers   []func()
}

// Close libera conexiones en orden inverso de apertura.
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStorage abre el backend configurado. En PostgreSQL aplica las migraciones.
func OpenStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Storage, error) {
	st := &Storage{}

	switch cfg.App.Storage {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		st.closers = append(st.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool); err != nil {
			st.Close()
			return nil, err
		}
		st.Tx = postgres.NewTxRunner(pool)
		st.Documents = postgres.NewDocumentRepository(pool)
		st.Services = postgres.NewServiceRepository(pool)
		st.History = postgres.NewPriceHistoryRepository(pool)
		if cfg.Sequence.Backend == config.BackendPostgres {
			st.Sequences = postgres.NewSequenceStore(pool)
		}
	default:
		store := memory.NewStore()
		st.Tx = store
		st.Documents = store.Documents()
		st.Services = store.Services()
		st.History = store.PriceHistory()
		if cfg.Sequence.Backend == config.BackendMemory {
			st.Sequences = store.Sequences()
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	}

	switch cfg.Sequence.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		st.closers = append(st.closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			st.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		st.Sequences = redisseq.New(client)
	case config.BackendMemory:
		if st.Sequences == nil {
			st.Sequences = memory.NewSequenceStore()
		}
	}
	return st, nil
}
