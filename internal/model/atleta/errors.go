package atleta

import (
	"fmt"

	"github.com/deppfellow/workout-api/internal/errs"
)

const (
	CodeNotFound      = "ATLETA_NOT_FOUND"
	CodeAlreadyExists = "ATLETA_ALREADY_EXISTS"
)

// NotFoundError reports an id that does not resolve to an athlete.
func NotFoundError(id string) *errs.HTTPError {
	code := CodeNotFound
	return errs.NewNotFoundError(fmt.Sprintf("Atleta não encontrado no id: %s", id), true, &code)
}

// DuplicateCPFError reports a CPF already registered to another athlete.
func DuplicateCPFError(cpf string) *errs.HTTPError {
	code := CodeAlreadyExists
	return errs.NewConflictError(fmt.Sprintf("Já existe um atleta cadastrado com o cpf: %s", cpf), true, &code)
}

// PersistError is the generic failure reported when an insert fails for a
// reason the client cannot act on.
func PersistError() *errs.HTTPError {
	return errs.NewInternalServerError().WithMessage("Ocorreu um erro ao inserir os dados no banco")
}

// UpdateError is the update counterpart of PersistError.
func UpdateError() *errs.HTTPError {
	return errs.NewInternalServerError().WithMessage("Ocorreu um erro ao atualizar os dados no banco")
}
