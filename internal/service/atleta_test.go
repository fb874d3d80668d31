package service_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/model/atleta"
	"github.com/deppfellow/workout-api/internal/model/categoria"
	"github.com/deppfellow/workout-api/internal/model/centrotreinamento"
	"github.com/deppfellow/workout-api/internal/service"
	"github.com/deppfellow/workout-api/internal/service/servicetest"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       *service.AtletaService
	repo      *servicetest.AtletaRepository
	refs      *servicetest.ReferenciaRepository
	publisher *servicetest.Publisher
	clock     *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	refs := servicetest.NewReferenciaRepository()
	refs.AddCategoria("CrossFit")
	refs.AddCentroTreinamento("CT Central")

	f := &fixture{
		repo:      servicetest.NewAtletaRepository(),
		refs:      refs,
		publisher: &servicetest.Publisher{},
		clock:     clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC)),
	}
	resolver := service.NewReferenceResolver(refs, nil, nil)
	f.svc = service.NewAtletaService(f.repo, resolver, f.publisher, f.clock, nil)
	return f
}

func joao(cpf string) *atleta.CreateAtletaRequest {
	return &atleta.CreateAtletaRequest{
		Nome:              "Joao",
		CPF:               cpf,
		Idade:             model.Some(25).Ptr(),
		Peso:              75.5,
		Altura:            1.70,
		Sexo:              "M",
		Categoria:         categoria.Summary{Nome: "CrossFit"},
		CentroTreinamento: centrotreinamento.Summary{Nome: "CT Central"},
	}
}

func requireHTTPError(t *testing.T, err error, status int, code string) *errs.HTTPError {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := errs.As(err)
	require.True(t, ok, "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
	return httpErr
}

func TestCreateAtleta(t *testing.T) {
	f := newFixture(t)

	a, err := f.svc.Create(context.Background(), joao("12345678900"))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC), a.CreatedAt)
	assert.Equal(t, "CrossFit", a.Categoria.Nome)
	assert.Equal(t, "CT Central", a.CentroTreinamento.Nome)
	assert.Equal(t, 1, f.repo.Count())

	resp := atleta.NewResponse(a)
	assert.Equal(t, "CrossFit", resp.Categoria.Nome)
	assert.Equal(t, "CT Central", resp.CentroTreinamento.Nome)

	require.Len(t, f.publisher.Events, 1)
	assert.Equal(t, a.ID.String(), f.publisher.Events[0].AtletaID)
}

func TestCreateAtletaUnknownCategoria(t *testing.T) {
	f := newFixture(t)
	req := joao("12345678900")
	req.Categoria.Nome = "Scale"

	_, err := f.svc.Create(context.Background(), req)

	httpErr := requireHTTPError(t, err, http.StatusBadRequest, categoria.CodeNotFound)
	assert.Equal(t, "A categoria Scale não foi encontrada.", httpErr.Message)
	assert.Equal(t, 0, f.repo.Count())
	assert.Empty(t, f.publisher.Events)
}

func TestCreateAtletaUnknownCentroTreinamento(t *testing.T) {
	f := newFixture(t)
	req := joao("12345678900")
	req.CentroTreinamento.Nome = "CT Norte"

	_, err := f.svc.Create(context.Background(), req)

	httpErr := requireHTTPError(t, err, http.StatusBadRequest, centrotreinamento.CodeNotFound)
	assert.Equal(t, "O centro de treinamento CT Norte não foi encontrado.", httpErr.Message)
	assert.Equal(t, 0, f.repo.Count())
}

func TestCreateAtletaDuplicateCPF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, joao("12345678900"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, joao("12345678900"))

	httpErr := requireHTTPError(t, err, http.StatusConflict, atleta.CodeAlreadyExists)
	assert.Equal(t, "Já existe um atleta cadastrado com o cpf: 12345678900", httpErr.Message)
	assert.Equal(t, 1, f.repo.Count())
	assert.Equal(t, 1, f.repo.CountCPF("12345678900"))
	assert.Len(t, f.publisher.Events, 1)
}

func TestCreateAtletaConcurrentSameCPF(t *testing.T) {
	f := newFixture(t)

	const attempts = 8
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = f.svc.Create(context.Background(), joao("98765432100"))
		}()
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if errs.StatusOf(err) == http.StatusConflict {
			conflicts++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, f.repo.CountCPF("98765432100"))
}

func TestCreateAtletaInternalFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.FailWith = servicetest.ErrConnectionLost

	_, err := f.svc.Create(context.Background(), joao("12345678900"))

	httpErr := requireHTTPError(t, err, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR")
	assert.Equal(t, "Ocorreu um erro ao inserir os dados no banco", httpErr.Message)
	assert.ErrorIs(t, err, servicetest.ErrConnectionLost)
	assert.Equal(t, 0, f.repo.Count())
}

func TestCreateAtletaPublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.publisher.Err = fmt.Errorf("redis down")

	a, err := f.svc.Create(context.Background(), joao("12345678900"))

	require.NoError(t, err)
	assert.NotNil(t, a)
	assert.Equal(t, 1, f.repo.Count())
}

func TestGetAtletaRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, joao("12345678900"))
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, created.ID.String())

	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetAtletaNotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.NewString()

	_, err := f.svc.GetByID(context.Background(), id)

	httpErr := requireHTTPError(t, err, http.StatusNotFound, atleta.CodeNotFound)
	assert.Equal(t, "Atleta não encontrado no id: "+id, httpErr.Message)
}

func TestUpdateAtletaSparse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, joao("12345678900"))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, &atleta.UpdateAtletaRequest{
		ID:    created.ID.String(),
		Idade: model.Some(30),
	})
	require.NoError(t, err)

	want := *created
	want.Idade = 30
	assert.Equal(t, &want, updated)

	got, err := f.svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, &want, got)
}

func TestUpdateAtletaEmptyPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, joao("12345678900"))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, &atleta.UpdateAtletaRequest{ID: created.ID.String()})

	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestUpdateAtletaNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Update(context.Background(), &atleta.UpdateAtletaRequest{
		ID:   uuid.NewString(),
		Nome: model.Some("Maria"),
	})

	requireHTTPError(t, err, http.StatusNotFound, atleta.CodeNotFound)
}

func TestUpdateAtletaInternalFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, joao("12345678900"))
	require.NoError(t, err)
	f.repo.FailWith = servicetest.ErrConnectionLost

	_, err = f.svc.Update(ctx, &atleta.UpdateAtletaRequest{
		ID:    created.ID.String(),
		Idade: model.Some(30),
	})

	httpErr := requireHTTPError(t, err, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR")
	assert.Equal(t, "Ocorreu um erro ao atualizar os dados no banco", httpErr.Message)
	assert.ErrorIs(t, err, servicetest.ErrConnectionLost)
}

func TestUpdateAtletaCPFCollision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, joao("11111111111"))
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, joao("22222222222"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, &atleta.UpdateAtletaRequest{
		ID:  second.ID.String(),
		CPF: model.Some("11111111111"),
	})

	httpErr := requireHTTPError(t, err, http.StatusConflict, atleta.CodeAlreadyExists)
	assert.Equal(t, "Já existe um atleta cadastrado com o cpf: 11111111111", httpErr.Message)

	got, err := f.svc.GetByID(ctx, second.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "22222222222", got.CPF)
}

func TestDeleteAtleta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, joao("12345678900"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID.String()))

	_, err = f.svc.GetByID(ctx, created.ID.String())
	requireHTTPError(t, err, http.StatusNotFound, atleta.CodeNotFound)

	err = f.svc.Delete(ctx, created.ID.String())
	requireHTTPError(t, err, http.StatusNotFound, atleta.CodeNotFound)
}

func TestListAtletasNomeFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	names := []string{"Joao", "JOANA", "Marjorie", "Pedro", "Ana"}
	for i, nome := range names {
		req := joao(fmt.Sprintf("%011d", i+1))
		req.Nome = nome
		_, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
	}

	page, err := f.svc.List(ctx, &atleta.ListAtletasRequest{Nome: "jo"})
	require.NoError(t, err)

	var got []string
	for _, a := range page.Items {
		got = append(got, a.Nome)
	}
	assert.Equal(t, []string{"Joao", "JOANA", "Marjorie"}, got)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.Size)
}

func TestListAtletasCPFFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, cpf := range []string{"11111111111", "22222222222"} {
		_, err := f.svc.Create(ctx, joao(cpf))
		require.NoError(t, err)
	}

	page, err := f.svc.List(ctx, &atleta.ListAtletasRequest{CPF: "22222222222"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "22222222222", page.Items[0].CPF)

	none, err := f.svc.List(ctx, &atleta.ListAtletasRequest{CPF: "33333333333"})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Equal(t, 0, none.Total)
}

func TestListAtletasPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := range 5 {
		_, err := f.svc.Create(ctx, joao(fmt.Sprintf("%011d", i+1)))
		require.NoError(t, err)
	}

	second, err := f.svc.List(ctx, &atleta.ListAtletasRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "00000000003", second.Items[0].CPF)
	assert.Equal(t, 5, second.Total)
	assert.Equal(t, 3, second.Pages)

	beyond, err := f.svc.List(ctx, &atleta.ListAtletasRequest{Page: 10, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 5, beyond.Total)
}
