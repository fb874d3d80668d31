package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/model/atleta"
	"github.com/deppfellow/workout-api/internal/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AtletaRepository struct {
	db *database.Database
}

func NewAtletaRepository(db *database.Database) *AtletaRepository {
	return &AtletaRepository{db: db}
}

const selectAtleta = `
SELECT
	a.pk_id, a.id, a.nome, a.cpf, a.idade, a.peso, a.altura, a.sexo, a.created_at,
	c.pk_id, c.id, c.nome, c.created_at,
	ct.pk_id, ct.id, ct.nome, ct.endereco, ct.proprietario, ct.created_at
FROM atletas a
JOIN categorias c ON c.pk_id = a.categoria_id
JOIN centros_treinamento ct ON ct.pk_id = a.centro_treinamento_id`

func scanAtleta(row pgx.Row) (*atleta.Atleta, error) {
	var a atleta.Atleta
	err := row.Scan(
		&a.PkID, &a.ID, &a.Nome, &a.CPF, &a.Idade, &a.Peso, &a.Altura, &a.Sexo, &a.CreatedAt,
		&a.Categoria.PkID, &a.Categoria.ID, &a.Categoria.Nome, &a.Categoria.CreatedAt,
		&a.CentroTreinamento.PkID, &a.CentroTreinamento.ID, &a.CentroTreinamento.Nome,
		&a.CentroTreinamento.Endereco, &a.CentroTreinamento.Proprietario, &a.CentroTreinamento.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = a.CreatedAt.UTC()
	a.Categoria.CreatedAt = a.Categoria.CreatedAt.UTC()
	a.CentroTreinamento.CreatedAt = a.CentroTreinamento.CreatedAt.UTC()

	return &a, nil
}

// Create inserts a and sets its PkID. The categoria and centro references
// must already carry their PkID.
func (r *AtletaRepository) Create(ctx context.Context, a *atleta.Atleta) error {
	const stmt = `
INSERT INTO atletas (
	id, nome, cpf, idade, peso, altura, sexo, created_at, categoria_id, centro_treinamento_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING pk_id`

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, stmt,
			a.ID, a.Nome, a.CPF, a.Idade, a.Peso, a.Altura, a.Sexo, a.CreatedAt,
			a.Categoria.PkID, a.CentroTreinamento.PkID,
		).Scan(&a.PkID)
		if err != nil {
			return fmt.Errorf("failed to insert atleta: %w", err)
		}
		return nil
	})
}

// GetByID returns the athlete with the given public id.
func (r *AtletaRepository) GetByID(ctx context.Context, id uuid.UUID) (*atleta.Atleta, error) {
	a, err := scanAtleta(r.db.Pool.QueryRow(ctx, selectAtleta+` WHERE a.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, atleta.NotFoundError(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get atleta by id=%s: %w", id, err)
	}
	return a, nil
}

// List returns one page of athletes matching f, in insertion order, and
// the total number of matches. Both come from the same snapshot.
func (r *AtletaRepository) List(ctx context.Context, f atleta.Filter, p pagination.Params) ([]atleta.Atleta, int, error) {
	where, args := filterClause(f)

	var (
		items []atleta.Atleta
		total int
	)
	err := r.db.WithReadTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM atletas a`+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count atletas: %w", err)
		}
		if total == 0 {
			return nil
		}

		pageArgs := append(append([]any{}, args...), p.Limit(), p.Offset())
		query := fmt.Sprintf("%s%s ORDER BY a.pk_id ASC LIMIT $%d OFFSET $%d",
			selectAtleta, where, len(args)+1, len(args)+2)

		rows, err := tx.Query(ctx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to list atletas: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanAtleta(rows)
			if err != nil {
				return fmt.Errorf("failed to scan atleta: %w", err)
			}
			items = append(items, *a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func filterClause(f atleta.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Nome != "" {
		args = append(args, "%"+escapeLike(f.Nome)+"%")
		conds = append(conds, fmt.Sprintf("a.nome ILIKE $%d", len(args)))
	}
	if f.CPF != "" {
		args = append(args, f.CPF)
		conds = append(conds, fmt.Sprintf("a.cpf = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Update locks the row, applies patch and writes the result back.
func (r *AtletaRepository) Update(ctx context.Context, id uuid.UUID, patch atleta.Patch) (*atleta.Atleta, error) {
	const stmt = `
UPDATE atletas
SET nome = $2, cpf = $3, idade = $4, peso = $5, altura = $6, sexo = $7
WHERE pk_id = $1`

	var updated *atleta.Atleta
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		a, err := scanAtleta(tx.QueryRow(ctx, selectAtleta+` WHERE a.id = $1 FOR UPDATE OF a`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return atleta.NotFoundError(id.String())
		}
		if err != nil {
			return fmt.Errorf("failed to lock atleta id=%s: %w", id, err)
		}

		if !patch.IsEmpty() {
			patch.Apply(a)
			if _, err := tx.Exec(ctx, stmt, a.PkID, a.Nome, a.CPF, a.Idade, a.Peso, a.Altura, a.Sexo); err != nil {
				return fmt.Errorf("failed to update atleta id=%s: %w", id, err)
			}
		}

		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the athlete permanently.
func (r *AtletaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM atletas WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete atleta id=%s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return atleta.NotFoundError(id.String())
		}
		return nil
	})
}
