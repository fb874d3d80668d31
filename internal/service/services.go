package service

import (
	"time"

	"github.com/deppfellow/workout-api/internal/cache"
	"github.com/deppfellow/workout-api/internal/lib/job"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/jonboulle/clockwork"
)

// ReferenceCachePrefix namespaces the reference cache keys in Redis.
const ReferenceCachePrefix = "ref:"

type Services struct {
	Referencia *ReferenceResolver
	Atleta     *AtletaService
	Job        *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var refCache cache.Cache
	if ttl := s.Config.Cache.ReferenceTTL; ttl > 0 && s.Redis != nil {
		refCache = cache.NewRedisCache(s.Redis, ReferenceCachePrefix, time.Duration(ttl)*time.Second)
	}

	resolver := NewReferenceResolver(repos.Referencia, refCache, s.Metrics)

	var publisher EventPublisher
	if s.Job != nil {
		publisher = s.Job
	}

	return &Services{
		Referencia: resolver,
		Atleta:     NewAtletaService(repos.Atleta, resolver, publisher, clockwork.NewRealClock(), s.Metrics),
		Job:        s.Job,
	}, nil
}
