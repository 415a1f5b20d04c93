package transcribe

import "context"

// LocalConfig holds configuration for the local whisper.cpp backend.
type LocalConfig struct {
	BaseURL string // default: "http://localhost:8178"
	Model   string
}

// Local wraps WhisperAPI pointing at a local whisper.cpp server.
// Start the server with: ./server -m models/ggml-base.bin --port 8178
type Local struct {
	*WhisperAPI
}

// NewLocal creates a Local backend backed by a whisper.cpp HTTP server.
func NewLocal(cfg LocalConfig) *Local {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8178"
	}
	return &Local{
		WhisperAPI: NewWhisperAPI(WhisperAPIConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
			// No API key needed for local server
		}),
	}
}

func (l *Local) Name() string { return "local-whisper" }

func (l *Local) Transcribe(ctx context.Context, req Request) (*Response, error) {
	return l.WhisperAPI.Transcribe(ctx, req)
}
