package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thecactoos/enterprise-sub001/internal/application/billing"
	"github.com/thecactoos/enterprise-sub001/internal/application/catalog"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
)

// Ensure TxRunner implements billing.DocumentTxRunner and catalog.TxRunner.
var _ billing.DocumentTxRunner = (*TxRunner)(nil)
var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocuments inicia una transacción con el repositorio de documentos (cabecera + líneas).
// Tras una violación de unicidad la transacción queda abortada, por eso cada intento de
// numeración llama a RunDocuments de nuevo.
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(docs repository.DocumentRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewDocumentRepository(q))
	})
}

// RunCatalog inicia una transacción con los repositorios de servicios e historial de precios.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	services repository.ServiceRepository,
	history repository.PriceHistoryRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewServiceRepository(q), NewPriceHistoryRepository(q))
	})
}
