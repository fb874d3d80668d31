package email

import (
	"context"
	"fmt"
)

// SendAtletaRegisteredEmail notifies `to` that a new athlete was registered.
func (c *Client) SendAtletaRegisteredEmail(ctx context.Context, to string, data AtletaRegisteredData) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("Novo atleta cadastrado: %s", data.Nome),
		TemplateAtletaRegistered,
		data,
	)
}
