package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/model/categoria"
	"github.com/deppfellow/workout-api/internal/model/centrotreinamento"
	"github.com/jackc/pgx/v5"
)

// ReferenciaRepository reads the categoria and centro de treinamento
// tables. Both are managed elsewhere; nothing here writes to them.
//
// Lookups return (nil, nil) when the name does not exist.
type ReferenciaRepository struct {
	db *database.Database
}

func NewReferenciaRepository(db *database.Database) *ReferenciaRepository {
	return &ReferenciaRepository{db: db}
}

func (r *ReferenciaRepository) GetCategoriaByNome(ctx context.Context, nome string) (*categoria.Categoria, error) {
	const query = `SELECT pk_id, id, nome, created_at FROM categorias WHERE nome = $1`

	var c categoria.Categoria
	err := r.db.Pool.QueryRow(ctx, query, nome).Scan(&c.PkID, &c.ID, &c.Nome, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get categoria nome=%s: %w", nome, err)
	}

	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *ReferenciaRepository) GetCentroTreinamentoByNome(ctx context.Context, nome string) (*centrotreinamento.CentroTreinamento, error) {
	const query = `
SELECT pk_id, id, nome, endereco, proprietario, created_at
FROM centros_treinamento
WHERE nome = $1`

	var ct centrotreinamento.CentroTreinamento
	err := r.db.Pool.QueryRow(ctx, query, nome).
		Scan(&ct.PkID, &ct.ID, &ct.Nome, &ct.Endereco, &ct.Proprietario, &ct.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get centro de treinamento nome=%s: %w", nome, err)
	}

	ct.CreatedAt = ct.CreatedAt.UTC()
	return &ct, nil
}
