package repository

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/model/atleta"
	"github.com/deppfellow/workout-api/internal/model/categoria"
	"github.com/deppfellow/workout-api/internal/model/centrotreinamento"
	"github.com/deppfellow/workout-api/internal/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDatabaseURLEnv points the integration tests at a disposable
// database. The tests truncate every table they touch.
const TestDatabaseURLEnv = "WORKOUT_TEST_DATABASE_URL"

type fixture struct {
	db     *database.Database
	atleta *AtletaRepository
	refs   *ReferenciaRepository
	cat    categoria.Categoria
	centro centrotreinamento.CentroTreinamento
	clock  *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	url := os.Getenv(TestDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set", TestDatabaseURLEnv)
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	conn, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	require.NoError(t, database.MigrateConn(ctx, &logger, conn))
	_, err = conn.Exec(ctx, `TRUNCATE atletas, categorias, centros_treinamento RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	require.NoError(t, conn.Close(ctx))

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := database.NewFromPool(pool, &logger)

	f := &fixture{
		db:     db,
		atleta: NewAtletaRepository(db),
		refs:   NewReferenciaRepository(db),
		clock:  clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC)),
	}
	f.cat = f.seedCategoria(t, "Scale")
	f.centro = f.seedCentro(t, "CT King")
	return f
}

func (f *fixture) seedCategoria(t *testing.T, nome string) categoria.Categoria {
	t.Helper()
	c := categoria.Categoria{Base: model.NewBase(f.clock), Nome: nome}
	err := f.db.Pool.QueryRow(context.Background(),
		`INSERT INTO categorias (id, nome, created_at) VALUES ($1, $2, $3) RETURNING pk_id`,
		c.ID, c.Nome, c.CreatedAt,
	).Scan(&c.PkID)
	require.NoError(t, err)
	return c
}

func (f *fixture) seedCentro(t *testing.T, nome string) centrotreinamento.CentroTreinamento {
	t.Helper()
	ct := centrotreinamento.CentroTreinamento{
		Base:         model.NewBase(f.clock),
		Nome:         nome,
		Endereco:     "Rua X, Q02",
		Proprietario: "Marcos",
	}
	err := f.db.Pool.QueryRow(context.Background(),
		`INSERT INTO centros_treinamento (id, nome, endereco, proprietario, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING pk_id`,
		ct.ID, ct.Nome, ct.Endereco, ct.Proprietario, ct.CreatedAt,
	).Scan(&ct.PkID)
	require.NoError(t, err)
	return ct
}

func (f *fixture) newAtleta(nome, cpf string) *atleta.Atleta {
	return &atleta.Atleta{
		Base:              model.NewBase(f.clock),
		Nome:              nome,
		CPF:               cpf,
		Idade:             25,
		Peso:              75.5,
		Altura:            1.70,
		Sexo:              "M",
		Categoria:         f.cat,
		CentroTreinamento: f.centro,
	}
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM atletas`).Scan(&n))
	return n
}

func requirePgCode(t *testing.T, err error, code string) {
	t.Helper()
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr), "expected *pgconn.PgError, got %v", err)
	assert.Equal(t, code, pgErr.Code)
}

func TestAtletaCreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.newAtleta("Joao", "12345678900")
	require.NoError(t, f.atleta.Create(ctx, a))
	assert.NotZero(t, a.PkID)

	got, err := f.atleta.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestAtletaGetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.atleta.GetByID(context.Background(), uuid.New())

	httpErr, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, atleta.CodeNotFound, httpErr.Code)
}

func TestAtletaCreateDuplicateCPF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.atleta.Create(ctx, f.newAtleta("Joao", "12345678900")))

	err := f.atleta.Create(ctx, f.newAtleta("Maria", "12345678900"))
	requirePgCode(t, err, "23505")
	assert.Equal(t, 1, f.count(t))
}

func TestAtletaCreateRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.newAtleta("Joao", "12345678900")
	a.Categoria.PkID = 9999

	err := f.atleta.Create(ctx, a)
	requirePgCode(t, err, "23503")
	assert.Zero(t, f.count(t))
}

func TestAtletaList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, a := range []*atleta.Atleta{
		f.newAtleta("Joao", "11111111111"),
		f.newAtleta("Maria", "22222222222"),
		f.newAtleta("JOANA", "33333333333"),
		f.newAtleta("100% Jo", "44444444444"),
	} {
		require.NoError(t, f.atleta.Create(ctx, a))
	}

	items, total, err := f.atleta.List(ctx, atleta.Filter{}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, items, 4)
	assert.Equal(t, "Joao", items[0].Nome)
	assert.Equal(t, "100% Jo", items[3].Nome)

	items, total, err = f.atleta.List(ctx, atleta.Filter{Nome: "jo"}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"Joao", "JOANA", "100% Jo"}, names(items))

	items, _, err = f.atleta.List(ctx, atleta.Filter{Nome: "%"}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Jo"}, names(items))

	items, total, err = f.atleta.List(ctx, atleta.Filter{CPF: "22222222222"}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"Maria"}, names(items))

	items, total, err = f.atleta.List(ctx, atleta.Filter{}, pagination.Params{Page: 2, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []string{"100% Jo"}, names(items))

	items, total, err = f.atleta.List(ctx, atleta.Filter{Nome: "xyz"}, pagination.Params{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func names(items []atleta.Atleta) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Nome)
	}
	return out
}

func TestAtletaUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.newAtleta("Joao", "12345678900")
	require.NoError(t, f.atleta.Create(ctx, a))

	updated, err := f.atleta.Update(ctx, a.ID, atleta.Patch{Idade: model.Some(30)})
	require.NoError(t, err)

	want := *a
	want.Idade = 30
	assert.Equal(t, &want, updated)

	got, err := f.atleta.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, &want, got)

	unchanged, err := f.atleta.Update(ctx, a.ID, atleta.Patch{})
	require.NoError(t, err)
	assert.Equal(t, &want, unchanged)
}

func TestAtletaUpdateCPFCollision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.atleta.Create(ctx, f.newAtleta("Joao", "12345678900")))
	maria := f.newAtleta("Maria", "98765432100")
	require.NoError(t, f.atleta.Create(ctx, maria))

	_, err := f.atleta.Update(ctx, maria.ID, atleta.Patch{
		Nome: model.Some("Maria Silva"),
		CPF:  model.Some("12345678900"),
	})
	requirePgCode(t, err, "23505")

	got, err := f.atleta.GetByID(ctx, maria.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Nome)
	assert.Equal(t, "98765432100", got.CPF)
}

func TestAtletaUpdateNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.atleta.Update(context.Background(), uuid.New(), atleta.Patch{Idade: model.Some(30)})
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))
}

func TestAtletaDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.newAtleta("Joao", "12345678900")
	require.NoError(t, f.atleta.Create(ctx, a))

	require.NoError(t, f.atleta.Delete(ctx, a.ID))
	assert.Zero(t, f.count(t))

	err := f.atleta.Delete(ctx, a.ID)
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))
}

func TestReferenciaLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.refs.GetCategoriaByNome(ctx, "Scale")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, f.cat, *c)

	c, err = f.refs.GetCategoriaByNome(ctx, "scale")
	require.NoError(t, err)
	assert.Nil(t, c)

	ct, err := f.refs.GetCentroTreinamentoByNome(ctx, "CT King")
	require.NoError(t, err)
	require.NotNil(t, ct)
	assert.Equal(t, f.centro, *ct)

	ct, err = f.refs.GetCentroTreinamentoByNome(ctx, "CT Queen")
	require.NoError(t, err)
	assert.Nil(t, ct)
}
