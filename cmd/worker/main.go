package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/minutia-ai/minutia/internal/audio"
	"github.com/minutia-ai/minutia/internal/config"
	"github.com/minutia-ai/minutia/internal/database"
	"github.com/minutia-ai/minutia/internal/llm"
	"github.com/minutia-ai/minutia/internal/minutes"
	"github.com/minutia-ai/minutia/internal/queue"
	"github.com/minutia-ai/minutia/internal/queue/workers"
	"github.com/minutia-ai/minutia/internal/store"
	"github.com/minutia-ai/minutia/internal/transcribe"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if !audio.CheckFFmpeg(ctx) {
		slog.Warn("ffmpeg not found on PATH, audio uploads will fail to decode")
	}

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	transcripts := store.NewTranscripts(db)
	minutesStore := store.NewMinutes(db)

	loader := transcribe.NewLoader(func(model string) (transcribe.Transcriber, error) {
		if cfg.STT.Backend == "local" {
			return transcribe.NewLocal(transcribe.LocalConfig{
				BaseURL: cfg.STT.LocalBaseURL,
				Model:   model,
			}), nil
		}
		return transcribe.NewWhisperAPI(transcribe.WhisperAPIConfig{
			APIKey:  cfg.STT.APIKey,
			BaseURL: cfg.STT.BaseURL,
			Model:   model,
		}), nil
	})

	gateway := llm.NewGateway(cfg.LLM)
	minutesSvc := minutes.NewService(gateway, minutes.NewRegistry())

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			// Speech backends are single-instance: one task at a time.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	transcriptionWorker := workers.NewTranscriptionWorker(transcripts, loader, cfg.Transcribe.WindowSeconds, cfg.Transcribe.Language)
	minutesWorker := workers.NewMinutesWorker(transcripts, minutesStore, minutesSvc)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeTranscriptProcess, transcriptionWorker.ProcessTask)
	mux.HandleFunc(queue.TypeMinutesGenerate, minutesWorker.ProcessTask)

	slog.Info("starting worker", "stt_backend", cfg.STT.Backend, "window_seconds", cfg.Transcribe.WindowSeconds)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
