// Package memory implementa los repositorios en memoria (STORAGE_BACKEND=memory).
// Se usa en desarrollo y en tests; las transacciones trabajan sobre una copia del estado
// que se publica solo si fn termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/thecactoos/enterprise-sub001/internal/domain/entity"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
)

type data struct {
	documents map[string]entity.Document
	lines     map[string][]entity.DocumentLine
	services  map[string]entity.Service
	history   map[string][]entity.PriceHistory
}

func newData() *data {
	return &data{
		documents: make(map[string]entity.Document),
		lines:     make(map[string][]entity.DocumentLine),
		services:  make(map[string]entity.Service),
		history:   make(map[string][]entity.PriceHistory),
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.documents {
		c.documents[k] = v
	}
	for k, v := range d.lines {
		c.lines[k] = append([]entity.DocumentLine(nil), v...)
	}
	for k, v := range d.services {
		c.services[k] = v
	}
	for k, v := range d.history {
		c.history[k] = append([]entity.PriceHistory(nil), v...)
	}
	return c
}

// Store estado compartido por los repositorios en memoria.
type Store struct {
	tx   sync.Mutex   // serializa escrituras y transacciones
	mu   sync.RWMutex // protege data
	data *data
	seq  *SequenceStore
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newData(), seq: NewSequenceStore()}
}

// access da acceso a los datos con o sin transacción en curso.
type access struct {
	s  *Store
	tx *data // copia privada de la transacción; nil fuera de transacción
}

func (a access) read(fn func(d *data)) {
	if a.tx != nil {
		fn(a.tx)
		return
	}
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(a.s.data)
}

func (a access) write(fn func(d *data) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.s.tx.Lock()
	defer a.s.tx.Unlock()
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.data)
}

// Documents repositorio de documentos fuera de transacción.
func (s *Store) Documents() repository.DocumentRepository { return &DocumentRepository{a: access{s: s}} }

// Services repositorio de servicios fuera de transacción.
func (s *Store) Services() repository.ServiceRepository { return &ServiceRepository{a: access{s: s}} }

// PriceHistory repositorio del historial de precios fuera de transacción.
func (s *Store) PriceHistory() repository.PriceHistoryRepository {
	return &PriceHistoryRepository{a: access{s: s}}
}

// Sequences contador de numeración en memoria asociado al almacén.
func (s *Store) Sequences() *SequenceStore { return s.seq }

func (s *Store) run(ctx context.Context, fn func(a access) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.tx.Lock()
	defer s.tx.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn(access{s: s, tx: work}); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

// RunDocuments ejecuta fn en una transacción; si devuelve error no se publica ningún cambio.
func (s *Store) RunDocuments(ctx context.Context, fn func(docs repository.DocumentRepository) error) error {
	return s.run(ctx, func(a access) error {
		return fn(&DocumentRepository{a: a})
	})
}

// RunCatalog ejecuta fn en una transacción sobre servicios e historial.
func (s *Store) RunCatalog(ctx context.Context, fn func(services repository.ServiceRepository, history repository.PriceHistoryRepository) error) error {
	return s.run(ctx, func(a access) error {
		return fn(&ServiceRepository{a: a}, &PriceHistoryRepository{a: a})
	})
}
