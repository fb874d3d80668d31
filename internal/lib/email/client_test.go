package email

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/deppfellow/workout-api/internal/config"
	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resendEmailsURL = "https://api.resend.com/emails"

func newTestClient(t *testing.T) *Client {
	t.Helper()

	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	cfg := &config.Config{Integration: config.IntegrationConfig{
		ResendAPIKey: "re_test",
		EmailFrom:    "noreply@workout.test",
	}}
	logger := zerolog.Nop()

	return NewClient(cfg, &logger, WithHTTPClient(hc))
}

func TestRenderAtletaRegistered(t *testing.T) {
	html, err := Render(TemplateAtletaRegistered, AtletaRegisteredData{
		AtletaID:          "0b5c1f0e-8f7b-4a55-9e51-6a0c3f3f7a10",
		Nome:              "Joao",
		Categoria:         "CrossFit",
		CentroTreinamento: "CT Central",
		CreatedAt:         "2024-05-01T10:00:00Z",
	})

	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Joao</strong>")
	assert.Contains(t, html, "CT Central")
}

func TestSendAtletaRegisteredEmail(t *testing.T) {
	c := newTestClient(t)

	var sent map[string]any
	httpmock.RegisterResponder(http.MethodPost, resendEmailsURL,
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&sent); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]string{"id": "email_123"})
		})

	err := c.SendAtletaRegisteredEmail(context.Background(), "coach@workout.test", AtletaRegisteredData{Nome: "Joao"})

	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
	assert.Equal(t, "Novo atleta cadastrado: Joao", sent["subject"])
	assert.Equal(t, "Workout API <noreply@workout.test>", sent["from"])
}

func TestSendEmailProviderError(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, resendEmailsURL,
		httpmock.NewJsonResponderOrPanic(http.StatusUnprocessableEntity, map[string]any{
			"statusCode": 422,
			"name":       "validation_error",
			"message":    "invalid from address",
		}))

	err := c.SendAtletaRegisteredEmail(context.Background(), "coach@workout.test", AtletaRegisteredData{Nome: "Joao"})

	assert.Error(t, err)
}
