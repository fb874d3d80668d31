package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskAtletaRegistered is emitted after an athlete is committed.
const TaskAtletaRegistered = "atleta:registered"

type AtletaRegisteredPayload struct {
	AtletaID          string    `json:"atleta_id"`
	Nome              string    `json:"nome"`
	Categoria         string    `json:"categoria"`
	CentroTreinamento string    `json:"centro_treinamento"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewAtletaRegisteredTask(p AtletaRegisteredPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskAtletaRegistered,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueAtletaRegistered queues the registration task.
func (j *JobService) EnqueueAtletaRegistered(ctx context.Context, p AtletaRegisteredPayload) error {
	task, err := NewAtletaRegisteredTask(p)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskAtletaRegistered, err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskAtletaRegistered, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("atleta_id", p.AtletaID).
		Msg("enqueued task")

	return nil
}
