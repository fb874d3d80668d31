// Package atleta models the athlete entity, its request payloads and the
// representation returned to clients.
package atleta

import (
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/model/categoria"
	"github.com/deppfellow/workout-api/internal/model/centrotreinamento"
)

// Atleta is a persisted athlete.
//
// PkID is the storage key and never leaves the service; ID (from Base)
// is the only externally addressable identity.
type Atleta struct {
	PkID int `json:"-"`
	model.Base
	Nome   string  `json:"nome"`
	CPF    string  `json:"cpf"`
	Idade  int     `json:"idade"`
	Peso   float64 `json:"peso"`
	Altura float64 `json:"altura"`
	Sexo   string  `json:"sexo"`

	Categoria         categoria.Categoria                 `json:"categoria"`
	CentroTreinamento centrotreinamento.CentroTreinamento `json:"centro_treinamento"`
}

// Patch is a merge-patch over the mutable athlete fields. Only fields
// that were supplied are applied.
type Patch struct {
	Nome   model.Optional[string]
	CPF    model.Optional[string]
	Idade  model.Optional[int]
	Peso   model.Optional[float64]
	Altura model.Optional[float64]
	Sexo   model.Optional[string]
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return !p.Nome.Present() &&
		!p.CPF.Present() &&
		!p.Idade.Present() &&
		!p.Peso.Present() &&
		!p.Altura.Present() &&
		!p.Sexo.Present()
}

// Apply overwrites the supplied fields on a. Identity, creation time and
// references are never touched.
func (p Patch) Apply(a *Atleta) {
	p.Nome.ApplyTo(&a.Nome)
	p.CPF.ApplyTo(&a.CPF)
	p.Idade.ApplyTo(&a.Idade)
	p.Peso.ApplyTo(&a.Peso)
	p.Altura.ApplyTo(&a.Altura)
	p.Sexo.ApplyTo(&a.Sexo)
}

// Filter narrows a listing. Empty fields are ignored.
type Filter struct {
	// Nome matches case-insensitively anywhere in the name.
	Nome string
	// CPF matches exactly.
	CPF string
}
