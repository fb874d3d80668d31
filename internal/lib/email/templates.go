package email

// Template names an embedded template under templates/.
type Template string

const (
	TemplateAtletaRegistered Template = "atleta_registered"
)

// AtletaRegisteredData fills the atleta_registered template.
type AtletaRegisteredData struct {
	AtletaID          string
	Nome              string
	Categoria         string
	CentroTreinamento string
	CreatedAt         string
}
