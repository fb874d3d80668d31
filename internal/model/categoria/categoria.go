// Package categoria models the athlete category reference entity.
package categoria

import (
	"fmt"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
)

// CodeNotFound is returned when a category name does not resolve.
const CodeNotFound = "CATEGORIA_NOT_FOUND"

// Categoria is the stored entity. Clients only ever see Summary; the full
// entity is serialized for the reference cache.
type Categoria struct {
	PkID int `json:"pk_id"`
	model.Base
	Nome string `json:"nome"`
}

// Summary is the embedded form used in athlete payloads.
type Summary struct {
	Nome string `json:"nome" validate:"required,max=10"`
}

func (c *Categoria) Summary() Summary {
	return Summary{Nome: c.Nome}
}

// NotFoundError reports an unresolved category reference.
func NotFoundError(nome string) *errs.HTTPError {
	code := CodeNotFound
	return errs.NewBadRequestError(
		fmt.Sprintf("A categoria %s não foi encontrada.", nome),
		true,
		&code,
		[]errs.FieldError{{Field: "categoria.nome", Error: "not found"}},
		nil,
	)
}
