package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/workout-api/internal/lib/email"
	"github.com/hibiken/asynq"
)

func (j *JobService) handleAtletaRegisteredTask(ctx context.Context, t *asynq.Task) error {
	var p AtletaRegisteredPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a bad payload.
		return fmt.Errorf("failed to unmarshal %s payload: %v: %w", TaskAtletaRegistered, err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("task", TaskAtletaRegistered).
		Str("atleta_id", p.AtletaID).
		Logger()

	logger.Info().Msg("processing atleta registered task")

	if j.emailClient == nil {
		return nil
	}

	err := j.emailClient.SendAtletaRegisteredEmail(ctx, j.notifyTo, email.AtletaRegisteredData{
		AtletaID:          p.AtletaID,
		Nome:              p.Nome,
		Categoria:         p.Categoria,
		CentroTreinamento: p.CentroTreinamento,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send registration email")
		return err
	}

	logger.Info().Msg("sent registration email")
	return nil
}
