package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
	"github.com/thecactoos/enterprise-sub001/internal/domain/numbering"
	"github.com/thecactoos/enterprise-sub001/internal/domain/repository"
	"github.com/thecactoos/enterprise-sub001/pkg/logger"
)

// DefaultMaxAttempts intentos de IssueWithRetry si no se configura otro valor.
const DefaultMaxAttempts = 3

// NumberingUseCase asigna números de documento únicos por empresa, tipo y mes.
//
// La reserva es atómica en el SequenceStore; la instantánea de números existentes solo
// fija un mínimo para no repetir números emitidos antes de que existiera el contador.
type NumberingUseCase struct {
	docs        repository.DocumentRepository
	store       repository.SequenceStore
	maxAttempts int
	recorder    Recorder
	log         *logger.Logger
}

// NewNumberingUseCase construye el caso de uso. maxAttempts < 1 usa DefaultMaxAttempts.
func NewNumberingUseCase(
	docs repository.DocumentRepository,
	store repository.SequenceStore,
	maxAttempts int,
	recorder Recorder,
	log *logger.Logger,
) *NumberingUseCase {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &NumberingUseCase{
		docs:        docs,
		store:       store,
		maxAttempts: maxAttempts,
		recorder:    recorder,
		log:         log.WithComponent("numbering"),
	}
}

func sequenceKey(companyID string, t numbering.DocumentType, p numbering.Period) string {
	return companyID + ":" + numbering.Key(t, p)
}

// Allocate reserva el siguiente número del tipo para el mes de issuedAt.
// El número queda consumido aunque el documento no llegue a guardarse.
func (uc *NumberingUseCase) Allocate(ctx context.Context, companyID string, t numbering.DocumentType, issuedAt time.Time) (string, error) {
	prefix := t.Prefix()
	if prefix == "" || companyID == "" {
		return "", domain.ErrInvalidInput
	}
	p := numbering.PeriodOf(issuedAt)
	existing, err := uc.docs.ListNumbers(ctx, companyID, prefix, p.Year, p.Month)
	if err != nil {
		return "", fmt.Errorf("numeración: leer números de %s %s: %w", prefix, p, err)
	}
	floor := numbering.NextSequence(t, p, existing) - 1
	seq, err := uc.store.Reserve(ctx, sequenceKey(companyID, t, p), floor)
	if err != nil {
		return "", fmt.Errorf("numeración: reservar %s %s: %w", prefix, p, err)
	}
	uc.recorder.SequenceReserved(prefix)
	return numbering.Format(prefix, p, seq), nil
}

// Preview devuelve el número que recibiría el próximo documento sin reservarlo.
func (uc *NumberingUseCase) Preview(ctx context.Context, companyID string, t numbering.DocumentType, p numbering.Period) (string, error) {
	prefix := t.Prefix()
	if prefix == "" || companyID == "" || !p.Valid() {
		return "", domain.ErrInvalidInput
	}
	existing, err := uc.docs.ListNumbers(ctx, companyID, prefix, p.Year, p.Month)
	if err != nil {
		return "", fmt.Errorf("numeración: leer números de %s %s: %w", prefix, p, err)
	}
	next := numbering.NextSequence(t, p, existing)
	last, err := uc.store.Peek(ctx, sequenceKey(companyID, t, p))
	if err != nil {
		return "", fmt.Errorf("numeración: consultar contador: %w", err)
	}
	if last+1 > next {
		next = last + 1
	}
	return numbering.Format(prefix, p, next), nil
}

// IssueWithRetry reserva un número y llama a save con él. Si save devuelve domain.ErrDuplicate
// (restricción única sobre el número) reserva otro y reintenta, hasta maxAttempts veces.
// save debe ser una unidad completa (su propia transacción).
func (uc *NumberingUseCase) IssueWithRetry(
	ctx context.Context,
	companyID string,
	t numbering.DocumentType,
	issuedAt time.Time,
	save func(ctx context.Context, number string) error,
) (string, error) {
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		number, err := uc.Allocate(ctx, companyID, t, issuedAt)
		if err != nil {
			return "", err
		}
		err = save(ctx, number)
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return "", err
		}
		uc.recorder.SequenceConflict(t.Prefix())
		uc.log.Warn().
			Str("company_id", companyID).
			Str("number", number).
			Int("attempt", attempt).
			Msg("número ya usado, se reserva otro")
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s tras %d intentos", domain.ErrSequenceExhausted, t.Prefix(), uc.maxAttempts)
}
