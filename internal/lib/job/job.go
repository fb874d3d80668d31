// Package job runs background tasks on Asynq.
//
// Asynq is a Redis-backed queue: the Client enqueues tasks and the server
// runs the registered handlers.
package job

import (
	"github.com/deppfellow/workout-api/internal/config"
	"github.com/deppfellow/workout-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// emailClient and notifyTo are nil/empty when notifications are off.
	emailClient *email.Client
	notifyTo    string
}

// NewJobService creates a JobService backed by the configured Redis.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers wires the dependencies task handlers need. Registration
// emails are only sent when both an API key and a recipient are set.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, opts ...email.Option) {
	if cfg.Integration.ResendAPIKey == "" || cfg.Integration.NotificationEmail == "" {
		logger.Info().Msg("registration emails disabled")
		return
	}
	j.emailClient = email.NewClient(cfg, logger, opts...)
	j.notifyTo = cfg.Integration.NotificationEmail
}

// Mux returns the task router.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskAtletaRegistered, j.handleAtletaRegisteredTask)
	return mux
}

// Start launches the workers. It does not block.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for running tasks and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
