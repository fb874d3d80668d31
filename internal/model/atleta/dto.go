package atleta

import (
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/model/categoria"
	"github.com/deppfellow/workout-api/internal/model/centrotreinamento"
	"github.com/deppfellow/workout-api/internal/pagination"
	"github.com/deppfellow/workout-api/internal/validation"
)

// ------------------------------------------------------------

type CreateAtletaRequest struct {
	Nome   string  `json:"nome" validate:"required,max=50"`
	CPF    string  `json:"cpf" validate:"required,len=11"`
	Idade  *int    `json:"idade" validate:"required,gte=0"`
	Peso   float64 `json:"peso" validate:"gt=0"`
	Altura float64 `json:"altura" validate:"gt=0"`
	Sexo   string  `json:"sexo" validate:"required,len=1"`

	Categoria         categoria.Summary         `json:"categoria"`
	CentroTreinamento centrotreinamento.Summary `json:"centro_treinamento"`
}

func (r *CreateAtletaRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

// UpdateAtletaRequest is a merge-patch: fields left out of the body are
// not changed. Explicit nulls are rejected since every column is required.
type UpdateAtletaRequest struct {
	ID     string                  `param:"id" json:"-"`
	Nome   model.Optional[string]  `json:"nome"`
	CPF    model.Optional[string]  `json:"cpf"`
	Idade  model.Optional[int]     `json:"idade"`
	Peso   model.Optional[float64] `json:"peso"`
	Altura model.Optional[float64] `json:"altura"`
	Sexo   model.Optional[string]  `json:"sexo"`
}

type updateAtletaFields struct {
	ID     string   `json:"id" validate:"required,uuid"`
	Nome   *string  `json:"nome" validate:"omitnil,min=1,max=50"`
	CPF    *string  `json:"cpf" validate:"omitnil,len=11"`
	Idade  *int     `json:"idade" validate:"omitnil,gte=0"`
	Peso   *float64 `json:"peso" validate:"omitnil,gt=0"`
	Altura *float64 `json:"altura" validate:"omitnil,gt=0"`
	Sexo   *string  `json:"sexo" validate:"omitnil,len=1"`
}

func (r *UpdateAtletaRequest) Validate() error {
	var nulls validation.CustomValidationErrors
	for _, f := range []struct {
		name   string
		isNull bool
	}{
		{"nome", r.Nome.Null},
		{"cpf", r.CPF.Null},
		{"idade", r.Idade.Null},
		{"peso", r.Peso.Null},
		{"altura", r.Altura.Null},
		{"sexo", r.Sexo.Null},
	} {
		if f.isNull {
			nulls = append(nulls, validation.CustomValidationError{Field: f.name, Message: "must not be null"})
		}
	}
	if len(nulls) > 0 {
		return nulls
	}

	return validation.Struct(&updateAtletaFields{
		ID:     r.ID,
		Nome:   r.Nome.Ptr(),
		CPF:    r.CPF.Ptr(),
		Idade:  r.Idade.Ptr(),
		Peso:   r.Peso.Ptr(),
		Altura: r.Altura.Ptr(),
		Sexo:   r.Sexo.Ptr(),
	})
}

// Patch returns the merge-patch carried by the request.
func (r *UpdateAtletaRequest) Patch() Patch {
	return Patch{
		Nome:   r.Nome,
		CPF:    r.CPF,
		Idade:  r.Idade,
		Peso:   r.Peso,
		Altura: r.Altura,
		Sexo:   r.Sexo,
	}
}

// ------------------------------------------------------------

// ListAtletasRequest filters are free-form: a filter that matches nothing
// yields an empty page rather than a validation error.
type ListAtletasRequest struct {
	Nome string `query:"nome"`
	CPF  string `query:"cpf"`
	Page int    `query:"page" validate:"gte=0"`
	Size int    `query:"size" validate:"gte=0,lte=100"`
}

func (r *ListAtletasRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ListAtletasRequest) Filter() Filter {
	return Filter{Nome: r.Nome, CPF: r.CPF}
}

// Params returns the normalized page request.
func (r *ListAtletasRequest) Params() pagination.Params {
	return pagination.Params{Page: r.Page, Size: r.Size}.Normalize()
}

// ------------------------------------------------------------

type GetAtletaRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetAtletaRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

type DeleteAtletaRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteAtletaRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

// Response is the client representation of an athlete.
type Response struct {
	model.Base
	Nome   string  `json:"nome"`
	CPF    string  `json:"cpf"`
	Idade  int     `json:"idade"`
	Peso   float64 `json:"peso"`
	Altura float64 `json:"altura"`
	Sexo   string  `json:"sexo"`

	Categoria         categoria.Summary         `json:"categoria"`
	CentroTreinamento centrotreinamento.Summary `json:"centro_treinamento"`
}

func NewResponse(a *Atleta) Response {
	return Response{
		Base:              a.Base,
		Nome:              a.Nome,
		CPF:               a.CPF,
		Idade:             a.Idade,
		Peso:              a.Peso,
		Altura:            a.Altura,
		Sexo:              a.Sexo,
		Categoria:         a.Categoria.Summary(),
		CentroTreinamento: a.CentroTreinamento.Summary(),
	}
}
