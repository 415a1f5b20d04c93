package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/minutia-ai/minutia/internal/minutes"
	"github.com/minutia-ai/minutia/internal/models"
	"github.com/minutia-ai/minutia/internal/queue"
	"github.com/minutia-ai/minutia/internal/store"
)

// MinutesWorker generates a minutes document from a completed transcript.
type MinutesWorker struct {
	transcripts *store.Transcripts
	minutes     *store.MinutesStore
	svc         *minutes.Service
}

func NewMinutesWorker(transcripts *store.Transcripts, minutesStore *store.MinutesStore, svc *minutes.Service) *MinutesWorker {
	return &MinutesWorker{
		transcripts: transcripts,
		minutes:     minutesStore,
		svc:         svc,
	}
}

func (w *MinutesWorker) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.MinutesGeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	minutesID, err := uuid.Parse(payload.MinutesID)
	if err != nil {
		return fmt.Errorf("invalid minutes ID %q: %w", payload.MinutesID, err)
	}
	transcriptID, err := uuid.Parse(payload.TranscriptID)
	if err != nil {
		return fmt.Errorf("invalid transcript ID %q: %w", payload.TranscriptID, err)
	}

	transcript, err := w.transcripts.GetByID(ctx, transcriptID)
	if err != nil {
		return err
	}
	if transcript.Status != models.TranscriptStatusCompleted {
		if ferr := w.minutes.Fail(ctx, minutesID, "transcript is not completed"); ferr != nil {
			return ferr
		}
		return nil
	}

	resp, err := w.svc.Generate(ctx, minutes.GenerateRequest{
		Transcript:   transcript.Text,
		TemplateName: payload.TemplateName,
		TemplateBody: payload.TemplateBody,
		Provider:     payload.Provider,
		Model:        payload.Model,
	})
	if err != nil {
		slog.Error("minutes generation failed", "minutes_id", minutesID, "error", err)
		if ferr := w.minutes.Fail(ctx, minutesID, err.Error()); ferr != nil {
			return fmt.Errorf("record failure: %w", ferr)
		}
		return nil
	}

	if err := w.minutes.Complete(ctx, minutesID, resp.Content, resp.Provider, resp.Model); err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	slog.Info("minutes generated", "minutes_id", minutesID, "tokens", resp.TotalTokens)
	return nil
}
