// Package repository runs the SQL behind every entity.
//
// Each repository receives the shared *database.Database and scopes its
// statements to a transaction per operation.
package repository

import (
	"github.com/deppfellow/workout-api/internal/server"
)

// Repositories groups every repository instance.
type Repositories struct {
	Atleta     *AtletaRepository
	Referencia *ReferenciaRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Atleta:     NewAtletaRepository(s.DB),
		Referencia: NewReferenciaRepository(s.DB),
	}
}
