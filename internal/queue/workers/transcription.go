package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/minutia-ai/minutia/internal/audio"
	"github.com/minutia-ai/minutia/internal/queue"
	"github.com/minutia-ai/minutia/internal/store"
	"github.com/minutia-ai/minutia/internal/transcribe"
)

// TranscriptionWorker decodes an uploaded recording, runs the chunked
// transcription over it and stores the merged text. The uploaded file is
// removed once the run finishes, in either direction.
type TranscriptionWorker struct {
	transcripts   *store.Transcripts
	loader        *transcribe.Loader
	windowSeconds int
	language      string
}

func NewTranscriptionWorker(transcripts *store.Transcripts, loader *transcribe.Loader, windowSeconds int, language string) *TranscriptionWorker {
	return &TranscriptionWorker{
		transcripts:   transcripts,
		loader:        loader,
		windowSeconds: windowSeconds,
		language:      language,
	}
}

func (w *TranscriptionWorker) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.TranscriptProcessPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	id, err := uuid.Parse(payload.TranscriptID)
	if err != nil {
		return fmt.Errorf("invalid transcript ID %q: %w", payload.TranscriptID, err)
	}

	defer os.Remove(payload.FilePath)

	if err := w.transcripts.MarkProcessing(ctx, id); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	text, durationSeconds, chunkCount, err := w.run(ctx, payload)
	if err != nil {
		slog.Error("transcription run failed", "transcript_id", id, "error", err)
		if ferr := w.transcripts.Fail(ctx, id, err.Error()); ferr != nil {
			return fmt.Errorf("record failure: %w", ferr)
		}
		return nil // failure is recorded on the transcript, not retried
	}

	if err := w.transcripts.Complete(ctx, id, text, durationSeconds, chunkCount); err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	slog.Info("transcription completed",
		"transcript_id", id,
		"duration_seconds", durationSeconds,
		"chunks", chunkCount,
	)
	return nil
}

func (w *TranscriptionWorker) run(ctx context.Context, payload queue.TranscriptProcessPayload) (string, float64, int, error) {
	stream, err := audio.Decode(ctx, payload.FilePath)
	if err != nil {
		return "", 0, 0, err
	}

	backend, err := w.loader.Load(payload.Model)
	if err != nil {
		return "", 0, 0, err
	}

	windowSeconds := payload.WindowSeconds
	if windowSeconds <= 0 {
		windowSeconds = w.windowSeconds
	}
	language := payload.Language
	if language == "" {
		language = w.language
	}

	chunked := transcribe.NewChunked(backend,
		transcribe.WithWindowSeconds(windowSeconds),
		transcribe.WithLanguage(language),
		transcribe.WithProgress(func(p transcribe.Progress) {
			slog.Debug("transcription progress",
				"chunk", p.ChunkIndex+1,
				"of", p.ChunkCount,
				"completed", fmt.Sprintf("%.1f%%", p.Completed*100),
				"eta", p.ETA.Round(time.Second),
			)
		}),
	)

	text, err := chunked.Run(ctx, stream)
	if err != nil {
		return "", 0, 0, err
	}
	return text, stream.DurationSeconds(), len(stream.Windows(windowSeconds)), nil
}
