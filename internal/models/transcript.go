package models

import (
	"time"

	"github.com/google/uuid"
)

// Transcript is a stored transcription result, from either the audio
// pipeline or a document/subtitle extraction.
type Transcript struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	SourceType      string    `json:"source_type" db:"source_type"` // audio, vtt, docx, pdf, txt
	Language        string    `json:"language,omitempty" db:"language"`
	Text            string    `json:"text,omitempty" db:"text"`
	DurationSeconds float64   `json:"duration_seconds,omitempty" db:"duration_seconds"`
	ChunkCount      int       `json:"chunk_count,omitempty" db:"chunk_count"`
	Status          string    `json:"status" db:"status"`
	Error           string    `json:"error,omitempty" db:"error"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

const (
	TranscriptStatusPending    = "pending"
	TranscriptStatusProcessing = "processing"
	TranscriptStatusCompleted  = "completed"
	TranscriptStatusFailed     = "failed"
)

// Minutes is a generated minutes document tied to a transcript.
type Minutes struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TranscriptID uuid.UUID `json:"transcript_id" db:"transcript_id"`
	TemplateName string    `json:"template_name" db:"template_name"`
	Provider     string    `json:"provider" db:"provider"`
	Model        string    `json:"model" db:"model"`
	Content      string    `json:"content,omitempty" db:"content"`
	Status       string    `json:"status" db:"status"`
	Error        string    `json:"error,omitempty" db:"error"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

const (
	MinutesStatusPending   = "pending"
	MinutesStatusCompleted = "completed"
	MinutesStatusFailed    = "failed"
)
