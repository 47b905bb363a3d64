package repository

import "context"

// SequenceStore reserva consecutivos de forma atómica.
//
// Reserve incrementa el contador de key y devuelve max(último+1, floor+1), dejando ese valor
// como último emitido. Un valor devuelto no se vuelve a entregar nunca, aunque el documento
// que lo usó no llegue a guardarse.
type SequenceStore interface {
	Reserve(ctx context.Context, key string, floor int) (int, error)
	// Peek devuelve el último valor reservado (0 si no hay ninguno) sin modificarlo.
	Peek(ctx context.Context, key string) (int, error)
}
