// Package centrotreinamento models the training center reference entity.
package centrotreinamento

import (
	"fmt"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
)

// CodeNotFound is returned when a training center name does not resolve.
const CodeNotFound = "CENTRO_TREINAMENTO_NOT_FOUND"

// CentroTreinamento is the stored entity. Clients only ever see Summary; the
// full entity is serialized for the reference cache.
type CentroTreinamento struct {
	PkID int `json:"pk_id"`
	model.Base
	Nome         string `json:"nome"`
	Endereco     string `json:"endereco"`
	Proprietario string `json:"proprietario"`
}

// Summary is the embedded form used in athlete payloads.
type Summary struct {
	Nome string `json:"nome" validate:"required,max=20"`
}

func (c *CentroTreinamento) Summary() Summary {
	return Summary{Nome: c.Nome}
}

// NotFoundError reports an unresolved training center reference.
func NotFoundError(nome string) *errs.HTTPError {
	code := CodeNotFound
	return errs.NewBadRequestError(
		fmt.Sprintf("O centro de treinamento %s não foi encontrado.", nome),
		true,
		&code,
		[]errs.FieldError{{Field: "centro_treinamento.nome", Error: "not found"}},
		nil,
	)
}
