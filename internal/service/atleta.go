package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/lib/job"
	"github.com/deppfellow/workout-api/internal/metrics"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/model/atleta"
	"github.com/deppfellow/workout-api/internal/pagination"
	"github.com/deppfellow/workout-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// AtletaRepository persists athletes. Every mutating call is atomic.
type AtletaRepository interface {
	Create(ctx context.Context, a *atleta.Atleta) error
	GetByID(ctx context.Context, id uuid.UUID) (*atleta.Atleta, error)
	List(ctx context.Context, f atleta.Filter, p pagination.Params) ([]atleta.Atleta, int, error)
	Update(ctx context.Context, id uuid.UUID, patch atleta.Patch) (*atleta.Atleta, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher is notified after an athlete is committed.
type EventPublisher interface {
	EnqueueAtletaRegistered(ctx context.Context, p job.AtletaRegisteredPayload) error
}

type AtletaService struct {
	repo      AtletaRepository
	resolver  *ReferenceResolver
	publisher EventPublisher
	clock     clockwork.Clock
	metrics   *metrics.Metrics
}

// NewAtletaService builds the service. publisher and m may be nil.
func NewAtletaService(
	repo AtletaRepository,
	resolver *ReferenceResolver,
	publisher EventPublisher,
	clock clockwork.Clock,
	m *metrics.Metrics,
) *AtletaService {
	return &AtletaService{
		repo:      repo,
		resolver:  resolver,
		publisher: publisher,
		clock:     clock,
		metrics:   m,
	}
}

// Create registers a new athlete after both references resolve.
func (s *AtletaService) Create(ctx context.Context, req *atleta.CreateAtletaRequest) (a *atleta.Atleta, err error) {
	defer s.observe("create", time.Now(), &err)

	cat, centro, err := s.resolver.Resolve(ctx, req.Categoria.Nome, req.CentroTreinamento.Nome)
	if err != nil {
		return nil, err
	}

	a = &atleta.Atleta{
		Base:              model.NewBase(s.clock),
		Nome:              req.Nome,
		CPF:               req.CPF,
		Idade:             *req.Idade,
		Peso:              req.Peso,
		Altura:            req.Altura,
		Sexo:              req.Sexo,
		Categoria:         *cat,
		CentroTreinamento: *centro,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, translateWriteError(err, req.CPF, atleta.PersistError)
	}

	zerolog.Ctx(ctx).Info().
		Str("atleta_id", a.ID.String()).
		Str("categoria", cat.Nome).
		Str("centro_treinamento", centro.Nome).
		Msg("atleta created")

	s.publishRegistered(ctx, a)

	return a, nil
}

func (s *AtletaService) publishRegistered(ctx context.Context, a *atleta.Atleta) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.EnqueueAtletaRegistered(ctx, job.AtletaRegisteredPayload{
		AtletaID:          a.ID.String(),
		Nome:              a.Nome,
		Categoria:         a.Categoria.Nome,
		CentroTreinamento: a.CentroTreinamento.Nome,
		CreatedAt:         a.CreatedAt,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("atleta_id", a.ID.String()).
			Msg("failed to enqueue atleta registered task")
	}
}

// GetByID returns the athlete with the given public id.
func (s *AtletaService) GetByID(ctx context.Context, id string) (a *atleta.Atleta, err error) {
	defer s.observe("get", time.Now(), &err)

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, atleta.NotFoundError(id)
	}

	a, err = s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return a, nil
}

// List returns one page of athletes matching the request filters.
func (s *AtletaService) List(ctx context.Context, req *atleta.ListAtletasRequest) (page pagination.Page[atleta.Atleta], err error) {
	defer s.observe("list", time.Now(), &err)

	params := req.Params()

	items, total, err := s.repo.List(ctx, req.Filter(), params)
	if err != nil {
		return pagination.Page[atleta.Atleta]{}, sqlerr.HandleError(err)
	}

	return pagination.NewPage(items, total, params), nil
}

// Update applies the supplied fields only. References are not part of
// the update surface.
func (s *AtletaService) Update(ctx context.Context, req *atleta.UpdateAtletaRequest) (a *atleta.Atleta, err error) {
	defer s.observe("update", time.Now(), &err)

	uid, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, atleta.NotFoundError(req.ID)
	}

	patch := req.Patch()
	a, err = s.repo.Update(ctx, uid, patch)
	if err != nil {
		return nil, translateWriteError(err, patch.CPF.Value, atleta.UpdateError)
	}

	zerolog.Ctx(ctx).Info().Str("atleta_id", req.ID).Msg("atleta updated")
	return a, nil
}

// Delete removes the athlete permanently.
func (s *AtletaService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe("delete", time.Now(), &err)

	uid, err := uuid.Parse(id)
	if err != nil {
		return atleta.NotFoundError(id)
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		return sqlerr.HandleError(err)
	}

	zerolog.Ctx(ctx).Info().Str("atleta_id", id).Msg("atleta deleted")
	return nil
}

// translateWriteError maps a failed write: a unique violation is a
// duplicate CPF and anything unexpected becomes the generic 500 built by
// internal.
func translateWriteError(err error, cpf string, internal func() *errs.HTTPError) error {
	err = sqlerr.HandleError(err)

	if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
		return atleta.DuplicateCPFError(cpf).WithCause(errors.Unwrap(err))
	}

	if httpErr, ok := errs.As(err); ok && httpErr.Status == http.StatusInternalServerError {
		return internal().WithCause(httpErr.Cause())
	}

	return err
}

func (s *AtletaService) observe(operation string, start time.Time, err *error) {
	s.metrics.ObserveAtleta(operation, outcomeOf(*err), time.Since(start))
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch errs.StatusOf(err) {
	case http.StatusNotFound:
		return metrics.OutcomeNotFound
	case http.StatusConflict:
		return metrics.OutcomeConflict
	case http.StatusBadRequest:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
