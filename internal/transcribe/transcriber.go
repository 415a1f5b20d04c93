package transcribe

import (
	"context"
	"fmt"
)

// Request holds the parameters for transcribing a single audio file.
type Request struct {
	FilePath string `json:"file_path"`
	Language string `json:"language,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
}

// Response holds the recognized text for one audio file.
type Response struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// Transcriber is the interface for speech-to-text backends. Backends are
// assumed single-instance; callers must not invoke one concurrently.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (*Response, error)
	Name() string
}

// ChunkError reports a failed capability call for one window. The whole run
// aborts on the first one; no partial transcript is kept.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("transcribe chunk %d: %v", e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }
