package postgres

import (
	"context"
	"fmt"

	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
)

var _ repository.SequenceStore = (*SequenceStore)(nil)

// SequenceStore contador de numeración en la tabla document_sequences (SEQUENCE_BACKEND=postgres).
type SequenceStore struct {
	q Querier
}

// NewSequenceStore construye el contador. Debe recibir el pool: la reserva se confirma
// fuera de la transacción del documento para que el número no vuelva atrás si esta falla.
func NewSequenceStore(q Querier) *SequenceStore {
	return &SequenceStore{q: q}
}

// Reserve incrementa el contador en una sola sentencia; el bloqueo de fila del upsert
// serializa reservas concurrentes de la misma clave.
func (s *SequenceStore) Reserve(ctx context.Context, key string, floor int) (int, error) {
	query := `
		INSERT INTO document_sequences (key, last_value, updated_at)
		VALUES ($1, GREATEST($2::int, 0) + 1, now())
		ON CONFLICT (key) DO UPDATE
			SET last_value = GREATEST(document_sequences.last_value + 1, $2::int + 1),
			    updated_at = now()
		RETURNING last_value`
	var next int
	if err := s.q.QueryRow(ctx, query, key, floor).Scan(&next); err != nil {
		return 0, fmt.Errorf("reserve sequence %s: %w", key, err)
	}
	return next, nil
}

// Peek devuelve el último valor reservado (0 si la clave no existe).
func (s *SequenceStore) Peek(ctx context.Context, key string) (int, error) {
	var last int
	err := s.q.QueryRow(ctx, `SELECT COALESCE(MAX(last_value), 0) FROM document_sequences WHERE key = $1`, key).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("peek sequence %s: %w", key, err)
	}
	return last, nil
}
