// Package servicetest provides in-memory repositories for service and
// handler tests. They follow the same contracts as the Postgres ones:
// writes are all-or-nothing, CPF is unique, and listing is in insertion
// order.
package servicetest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/deppfellow/workout-api/internal/lib/job"
	"github.com/deppfellow/workout-api/internal/model/atleta"
	"github.com/deppfellow/workout-api/internal/model/categoria"
	"github.com/deppfellow/workout-api/internal/model/centrotreinamento"
	"github.com/deppfellow/workout-api/internal/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// AtletaRepository stores athletes in a slice ordered by PkID.
type AtletaRepository struct {
	mu     sync.Mutex
	rows   []atleta.Atleta
	nextPk int

	// FailWith, when set, is returned by every write.
	FailWith error
}

func NewAtletaRepository() *AtletaRepository {
	return &AtletaRepository{nextPk: 1}
}

func uniqueCPFViolation() error {
	return &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "atletas_cpf_key"`,
		TableName:      "atletas",
		ConstraintName: "atletas_cpf_key",
	}
}

func (r *AtletaRepository) cpfTaken(cpf string, exceptPk int) bool {
	for _, row := range r.rows {
		if row.CPF == cpf && row.PkID != exceptPk {
			return true
		}
	}
	return false
}

func (r *AtletaRepository) Create(_ context.Context, a *atleta.Atleta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return fmt.Errorf("failed to insert atleta: %w", r.FailWith)
	}
	if r.cpfTaken(a.CPF, 0) {
		return fmt.Errorf("failed to insert atleta: %w", uniqueCPFViolation())
	}

	a.PkID = r.nextPk
	r.nextPk++
	r.rows = append(r.rows, *a)
	return nil
}

func (r *AtletaRepository) index(id uuid.UUID) int {
	return slices.IndexFunc(r.rows, func(a atleta.Atleta) bool { return a.ID == id })
}

func (r *AtletaRepository) GetByID(_ context.Context, id uuid.UUID) (*atleta.Atleta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, atleta.NotFoundError(id.String())
	}
	a := r.rows[i]
	return &a, nil
}

func (r *AtletaRepository) List(_ context.Context, f atleta.Filter, p pagination.Params) ([]atleta.Atleta, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []atleta.Atleta
	for _, row := range r.rows {
		if f.Nome != "" && !strings.Contains(strings.ToLower(row.Nome), strings.ToLower(f.Nome)) {
			continue
		}
		if f.CPF != "" && row.CPF != f.CPF {
			continue
		}
		matched = append(matched, row)
	}

	page := pagination.Paginate(matched, p)
	return page.Items, page.Total, nil
}

func (r *AtletaRepository) Update(_ context.Context, id uuid.UUID, patch atleta.Patch) (*atleta.Atleta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, atleta.NotFoundError(id.String())
	}
	if r.FailWith != nil {
		return nil, fmt.Errorf("failed to update atleta id=%s: %w", id, r.FailWith)
	}

	updated := r.rows[i]
	patch.Apply(&updated)
	if r.cpfTaken(updated.CPF, updated.PkID) {
		return nil, fmt.Errorf("failed to update atleta id=%s: %w", id, uniqueCPFViolation())
	}

	r.rows[i] = updated
	return &updated, nil
}

func (r *AtletaRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return fmt.Errorf("failed to delete atleta id=%s: %w", id, r.FailWith)
	}

	i := r.index(id)
	if i < 0 {
		return atleta.NotFoundError(id.String())
	}
	r.rows = slices.Delete(r.rows, i, i+1)
	return nil
}

// Count returns the number of stored athletes.
func (r *AtletaRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// CountCPF returns how many stored athletes carry cpf.
func (r *AtletaRepository) CountCPF(cpf string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, row := range r.rows {
		if row.CPF == cpf {
			n++
		}
	}
	return n
}

// ReferenciaRepository holds categorias and centros by name.
type ReferenciaRepository struct {
	mu         sync.Mutex
	categorias map[string]categoria.Categoria
	centros    map[string]centrotreinamento.CentroTreinamento

	// Calls counts lookups that reached the repository.
	Calls int
}

func NewReferenciaRepository() *ReferenciaRepository {
	return &ReferenciaRepository{
		categorias: map[string]categoria.Categoria{},
		centros:    map[string]centrotreinamento.CentroTreinamento{},
	}
}

func (r *ReferenciaRepository) AddCategoria(nome string) categoria.Categoria {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := categoria.Categoria{PkID: len(r.categorias) + 1, Nome: nome}
	c.ID = uuid.New()
	r.categorias[nome] = c
	return c
}

func (r *ReferenciaRepository) AddCentroTreinamento(nome string) centrotreinamento.CentroTreinamento {
	r.mu.Lock()
	defer r.mu.Unlock()

	ct := centrotreinamento.CentroTreinamento{
		PkID:         len(r.centros) + 1,
		Nome:         nome,
		Endereco:     "Rua X, Q02",
		Proprietario: "Marcos",
	}
	ct.ID = uuid.New()
	r.centros[nome] = ct
	return ct
}

func (r *ReferenciaRepository) GetCategoriaByNome(_ context.Context, nome string) (*categoria.Categoria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	c, ok := r.categorias[nome]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ReferenciaRepository) GetCentroTreinamentoByNome(_ context.Context, nome string) (*centrotreinamento.CentroTreinamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	ct, ok := r.centros[nome]
	if !ok {
		return nil, nil
	}
	return &ct, nil
}

// Publisher records enqueued registration events.
type Publisher struct {
	mu     sync.Mutex
	Events []job.AtletaRegisteredPayload
	Err    error
}

func (p *Publisher) EnqueueAtletaRegistered(_ context.Context, payload job.AtletaRegisteredPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, payload)
	return nil
}

// ErrConnectionLost mimics a datastore failure unrelated to constraints.
var ErrConnectionLost = errors.New("conn closed")
