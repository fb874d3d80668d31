package service

import (
	"context"
	"errors"

	"github.com/deppfellow/workout-api/internal/cache"
	"github.com/deppfellow/workout-api/internal/metrics"
	"github.com/deppfellow/workout-api/internal/model/categoria"
	"github.com/deppfellow/workout-api/internal/model/centrotreinamento"
	"github.com/deppfellow/workout-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

// ReferenciaRepository looks reference entities up by exact name and
// returns (nil, nil) when none matches.
type ReferenciaRepository interface {
	GetCategoriaByNome(ctx context.Context, nome string) (*categoria.Categoria, error)
	GetCentroTreinamentoByNome(ctx context.Context, nome string) (*centrotreinamento.CentroTreinamento, error)
}

// ReferenceResolver validates the categoria and centro de treinamento an
// athlete points at. Found records are cached; misses always hit the
// database so a newly created reference is seen immediately.
type ReferenceResolver struct {
	repo    ReferenciaRepository
	cache   cache.Cache
	metrics *metrics.Metrics
}

// NewReferenceResolver builds a resolver. c may be nil to disable caching.
func NewReferenceResolver(repo ReferenciaRepository, c cache.Cache, m *metrics.Metrics) *ReferenceResolver {
	return &ReferenceResolver{repo: repo, cache: c, metrics: m}
}

const (
	kindCategoria         = "categoria"
	kindCentroTreinamento = "centro_treinamento"
)

// ResolveCategoria returns the categoria named nome or a 400 naming it.
func (r *ReferenceResolver) ResolveCategoria(ctx context.Context, nome string) (*categoria.Categoria, error) {
	return resolve(ctx, r, kindCategoria, nome, r.repo.GetCategoriaByNome, func() error {
		return categoria.NotFoundError(nome)
	})
}

// ResolveCentroTreinamento returns the centro named nome or a 400 naming it.
func (r *ReferenceResolver) ResolveCentroTreinamento(ctx context.Context, nome string) (*centrotreinamento.CentroTreinamento, error) {
	return resolve(ctx, r, kindCentroTreinamento, nome, r.repo.GetCentroTreinamentoByNome, func() error {
		return centrotreinamento.NotFoundError(nome)
	})
}

// Resolve checks the categoria first, then the centro de treinamento.
func (r *ReferenceResolver) Resolve(ctx context.Context, categoriaNome, centroNome string) (*categoria.Categoria, *centrotreinamento.CentroTreinamento, error) {
	cat, err := r.ResolveCategoria(ctx, categoriaNome)
	if err != nil {
		return nil, nil, err
	}

	centro, err := r.ResolveCentroTreinamento(ctx, centroNome)
	if err != nil {
		return nil, nil, err
	}

	return cat, centro, nil
}

func resolve[T any](
	ctx context.Context,
	r *ReferenceResolver,
	kind, nome string,
	lookup func(context.Context, string) (*T, error),
	notFound func() error,
) (*T, error) {
	logger := zerolog.Ctx(ctx)
	key := kind + ":" + nome

	if r.cache != nil {
		var cached T
		err := r.cache.GetJSON(ctx, key, &cached)
		switch {
		case err == nil:
			r.metrics.ObserveReference(kind, "cache")
			return &cached, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			logger.Warn().Err(err).Str("key", key).Msg("reference cache read failed")
		}
	}

	found, err := lookup(ctx, nome)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if found == nil {
		r.metrics.ObserveReference(kind, "not_found")
		return nil, notFound()
	}
	r.metrics.ObserveReference(kind, "database")

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, key, found); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("reference cache write failed")
		}
	}

	return found, nil
}
