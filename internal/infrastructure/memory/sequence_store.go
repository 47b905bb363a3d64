package memory

import (
	"context"
	"sync"
)

// SequenceStore contador de numeración en memoria (SEQUENCE_BACKEND=memory).
type SequenceStore struct {
	mu   sync.Mutex
	last map[string]int
}

// NewSequenceStore crea un contador vacío.
func NewSequenceStore() *SequenceStore {
	return &SequenceStore{last: make(map[string]int)}
}

// Reserve devuelve max(último+1, floor+1) y lo guarda como último valor.
func (s *SequenceStore) Reserve(ctx context.Context, key string, floor int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.last[key] + 1
	if floor+1 > next {
		next = floor + 1
	}
	s.last[key] = next
	return next, nil
}

// Peek devuelve el último valor reservado (0 si no hay ninguno).
func (s *SequenceStore) Peek(ctx context.Context, key string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last[key], nil
}
