package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/minutia-ai/minutia/internal/config"
)

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueTranscriptProcess queues a transcription run. MaxRetry is zero:
// a failed run is failed; the job is not silently retried behind the
// caller's back.
func (c *Client) EnqueueTranscriptProcess(payload TranscriptProcessPayload) error {
	return c.enqueue(TypeTranscriptProcess, payload, asynq.MaxRetry(0), asynq.Timeout(2*time.Hour))
}

func (c *Client) EnqueueMinutesGenerate(payload MinutesGeneratePayload) error {
	return c.enqueue(TypeMinutesGenerate, payload, asynq.MaxRetry(0), asynq.Timeout(10*time.Minute))
}

func (c *Client) enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(taskType, data)
	if _, err = c.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}
