package transcribe

import (
	"fmt"
	"sync"
)

// Loader memoizes backend construction per model identifier. Speech backends
// can be expensive to set up (model load on the serving side), so a handle is
// built once and reused for every run that names the same model.
type Loader struct {
	mu      sync.Mutex
	factory func(model string) (Transcriber, error)
	handles map[string]Transcriber
}

func NewLoader(factory func(model string) (Transcriber, error)) *Loader {
	return &Loader{
		factory: factory,
		handles: make(map[string]Transcriber),
	}
}

// Load returns the backend for model, constructing it on first use.
func (l *Loader) Load(model string) (Transcriber, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.handles[model]; ok {
		return t, nil
	}
	t, err := l.factory(model)
	if err != nil {
		return nil, fmt.Errorf("load backend for model %q: %w", model, err)
	}
	l.handles[model] = t
	return t, nil
}
