package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/minutia-ai/minutia/internal/audio"
)

// Progress is emitted after each window completes.
type Progress struct {
	ChunkIndex int           // index of the window that just finished
	ChunkCount int
	Completed  float64       // (index+1) / count
	ETA        time.Duration // zero until at least one window has finished
}

// Chunked transcribes a long stream by splitting it into fixed-length
// windows and feeding them to a backend one at a time, in order. The backend
// sees each window in isolation, so words straddling a boundary can come out
// truncated or doubled; that is the accepted cost of bounded window size.
type Chunked struct {
	backend       Transcriber
	windowSeconds int
	language      string
	onProgress    func(Progress)
	tmpDir        string
	now           func() time.Time
}

type Option func(*Chunked)

// WithWindowSeconds overrides the default 10 second window.
func WithWindowSeconds(n int) Option {
	return func(c *Chunked) { c.windowSeconds = n }
}

// WithLanguage sets the language hint passed through to the backend.
func WithLanguage(lang string) Option {
	return func(c *Chunked) { c.language = lang }
}

// WithProgress registers a callback invoked after every completed window.
func WithProgress(fn func(Progress)) Option {
	return func(c *Chunked) { c.onProgress = fn }
}

// WithTempDir sets the directory for per-window scratch files.
func WithTempDir(dir string) Option {
	return func(c *Chunked) { c.tmpDir = dir }
}

func withClock(now func() time.Time) Option {
	return func(c *Chunked) { c.now = now }
}

func NewChunked(backend Transcriber, opts ...Option) *Chunked {
	c := &Chunked{
		backend:       backend,
		windowSeconds: audio.DefaultWindowSeconds,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run transcribes the whole stream and returns the merged transcript:
// per-window texts joined with a single space, in window order, trailing
// space trimmed. Empty window texts stay in the sequence. The first backend
// failure aborts the run; no partial transcript is returned.
func (c *Chunked) Run(ctx context.Context, stream *audio.Stream) (string, error) {
	if stream == nil || len(stream.Samples) == 0 {
		return "", fmt.Errorf("empty audio stream")
	}

	windows := stream.Windows(c.windowSeconds)
	segments := make([]string, 0, len(windows))
	started := c.now()

	for _, w := range windows {
		text, err := c.transcribeWindow(ctx, stream, w)
		if err != nil {
			return "", &ChunkError{Index: w.Index, Err: err}
		}
		segments = append(segments, text)

		completed := float64(w.Index+1) / float64(len(windows))
		var eta time.Duration
		if completed > 0 {
			elapsed := c.now().Sub(started)
			eta = time.Duration(float64(elapsed)/completed) - elapsed
		}
		if c.onProgress != nil {
			c.onProgress(Progress{
				ChunkIndex: w.Index,
				ChunkCount: len(windows),
				Completed:  completed,
				ETA:        eta,
			})
		}
	}

	return strings.TrimSpace(strings.Join(segments, " ")), nil
}

// transcribeWindow exports one window to a scratch WAV, runs the backend on
// it, and removes the scratch file whether or not the call succeeded.
func (c *Chunked) transcribeWindow(ctx context.Context, stream *audio.Stream, w audio.Window) (string, error) {
	f, err := os.CreateTemp(c.tmpDir, "chunk-*.wav")
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if err := audio.WriteWAV(f, stream.Slice(w), stream.SampleRate); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close scratch file: %w", err)
	}

	resp, err := c.backend.Transcribe(ctx, Request{
		FilePath: path,
		Language: c.language,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
