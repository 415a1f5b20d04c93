package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minutia-ai/minutia/internal/models"
)

// Transcripts persists transcript records and their job lifecycle.
type Transcripts struct {
	db *pgxpool.Pool
}

func NewTranscripts(db *pgxpool.Pool) *Transcripts {
	return &Transcripts{db: db}
}

const transcriptColumns = `id, title, source_type, language, text, duration_seconds, chunk_count, status, error, created_at, updated_at`

func scanTranscript(row interface{ Scan(...any) error }) (*models.Transcript, error) {
	var t models.Transcript
	err := row.Scan(&t.ID, &t.Title, &t.SourceType, &t.Language, &t.Text,
		&t.DurationSeconds, &t.ChunkCount, &t.Status, &t.Error, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type CreateTranscript struct {
	Title      string
	SourceType string
	Language   string
	Text       string // already-extracted sources; empty for queued audio
	Status     string
}

func (s *Transcripts) Create(ctx context.Context, req CreateTranscript) (*models.Transcript, error) {
	id := uuid.New()
	row := s.db.QueryRow(ctx,
		`INSERT INTO transcripts (id, title, source_type, language, text, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+transcriptColumns,
		id, req.Title, req.SourceType, req.Language, req.Text, req.Status,
	)
	t, err := scanTranscript(row)
	if err != nil {
		return nil, fmt.Errorf("insert transcript: %w", err)
	}
	return t, nil
}

func (s *Transcripts) GetByID(ctx context.Context, id uuid.UUID) (*models.Transcript, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+transcriptColumns+` FROM transcripts WHERE id = $1`, id)
	t, err := scanTranscript(row)
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	return t, nil
}

func (s *Transcripts) List(ctx context.Context, limit, offset int) ([]models.Transcript, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+transcriptColumns+` FROM transcripts
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var out []models.Transcript
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *Transcripts) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM transcripts WHERE id = $1`, id)
	return err
}

// MarkProcessing flips a pending transcript to processing.
func (s *Transcripts) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE transcripts SET status = $1, updated_at = now() WHERE id = $2`,
		models.TranscriptStatusProcessing, id)
	return err
}

// Complete stores the merged transcript text and run stats.
func (s *Transcripts) Complete(ctx context.Context, id uuid.UUID, text string, durationSeconds float64, chunkCount int) error {
	_, err := s.db.Exec(ctx,
		`UPDATE transcripts
		 SET status = $1, text = $2, duration_seconds = $3, chunk_count = $4, error = '', updated_at = now()
		 WHERE id = $5`,
		models.TranscriptStatusCompleted, text, durationSeconds, chunkCount, id)
	return err
}

// Fail records the failure; no partial text is kept.
func (s *Transcripts) Fail(ctx context.Context, id uuid.UUID, cause string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE transcripts SET status = $1, text = '', error = $2, updated_at = now() WHERE id = $3`,
		models.TranscriptStatusFailed, cause, id)
	return err
}
