package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minutia-ai/minutia/internal/models"
)

// MinutesStore persists generated minutes documents.
type MinutesStore struct {
	db *pgxpool.Pool
}

func NewMinutes(db *pgxpool.Pool) *MinutesStore {
	return &MinutesStore{db: db}
}

const minutesColumns = `id, transcript_id, template_name, provider, model, content, status, error, created_at, updated_at`

func scanMinutes(row interface{ Scan(...any) error }) (*models.Minutes, error) {
	var m models.Minutes
	err := row.Scan(&m.ID, &m.TranscriptID, &m.TemplateName, &m.Provider, &m.Model,
		&m.Content, &m.Status, &m.Error, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MinutesStore) Create(ctx context.Context, transcriptID uuid.UUID, templateName, provider, model string) (*models.Minutes, error) {
	id := uuid.New()
	row := s.db.QueryRow(ctx,
		`INSERT INTO minutes (id, transcript_id, template_name, provider, model, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+minutesColumns,
		id, transcriptID, templateName, provider, model, models.MinutesStatusPending,
	)
	m, err := scanMinutes(row)
	if err != nil {
		return nil, fmt.Errorf("insert minutes: %w", err)
	}
	return m, nil
}

func (s *MinutesStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Minutes, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+minutesColumns+` FROM minutes WHERE id = $1`, id)
	m, err := scanMinutes(row)
	if err != nil {
		return nil, fmt.Errorf("get minutes: %w", err)
	}
	return m, nil
}

func (s *MinutesStore) ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]models.Minutes, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+minutesColumns+` FROM minutes
		 WHERE transcript_id = $1 ORDER BY created_at DESC`, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("list minutes: %w", err)
	}
	defer rows.Close()

	var out []models.Minutes
	for rows.Next() {
		m, err := scanMinutes(rows)
		if err != nil {
			return nil, fmt.Errorf("scan minutes: %w", err)
		}
		out = append(out, *m)
	}
	return out, nil
}

func (s *MinutesStore) Complete(ctx context.Context, id uuid.UUID, content, provider, model string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE minutes
		 SET status = $1, content = $2, provider = $3, model = $4, error = '', updated_at = now()
		 WHERE id = $5`,
		models.MinutesStatusCompleted, content, provider, model, id)
	return err
}

func (s *MinutesStore) Fail(ctx context.Context, id uuid.UUID, cause string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE minutes SET status = $1, error = $2, updated_at = now() WHERE id = $3`,
		models.MinutesStatusFailed, cause, id)
	return err
}
