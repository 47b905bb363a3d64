// Package redisseq implementa el contador de numeración sobre Redis (SEQUENCE_BACKEND=redis).
package redisseq

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
)

var _ repository.SequenceStore = (*SequenceStore)(nil)

// KeyPrefix se antepone a las claves de los contadores.
const KeyPrefix = "seq:"

// reserveScript devuelve max(último+1, floor+1) y lo guarda en la misma operación atómica.
var reserveScript = redis.NewScript(`
local last = tonumber(redis.call("GET", KEYS[1]) or "0")
local floor = tonumber(ARGV[1])
local nxt = last + 1
if floor + 1 > nxt then
  nxt = floor + 1
end
redis.call("SET", KEYS[1], nxt)
return nxt
`)

// SequenceStore contador de numeración en Redis.
type SequenceStore struct {
	R *redis.Client
}

// New construye el contador con el cliente dado.
func New(client *redis.Client) *SequenceStore {
	return &SequenceStore{R: client}
}

// Reserve reserva el siguiente consecutivo de key respetando el mínimo floor+1.
func (s *SequenceStore) Reserve(ctx context.Context, key string, floor int) (int, error) {
	if s.R == nil {
		return 0, errors.New("redisseq: redis client not configured")
	}
	n, err := reserveScript.Run(ctx, s.R, []string{KeyPrefix + key}, floor).Int()
	if err != nil {
		return 0, fmt.Errorf("redisseq: reservar %s: %w", key, err)
	}
	return n, nil
}

// Peek devuelve el último valor reservado (0 si la clave no existe).
func (s *SequenceStore) Peek(ctx context.Context, key string) (int, error) {
	if s.R == nil {
		return 0, errors.New("redisseq: redis client not configured")
	}
	n, err := s.R.Get(ctx, KeyPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redisseq: consultar %s: %w", key, err)
	}
	return n, nil
}
