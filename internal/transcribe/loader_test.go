package transcribe

import (
	"errors"
	"testing"
)

func TestLoader_MemoizesPerModel(t *testing.T) {
	built := map[string]int{}
	loader := NewLoader(func(model string) (Transcriber, error) {
		built[model]++
		return newFakeBackend(), nil
	})

	a1, err := loader.Load("base")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a2, err := loader.Load("base")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a1 != a2 {
		t.Error("same model returned distinct handles")
	}
	if built["base"] != 1 {
		t.Errorf("factory ran %d times for one model", built["base"])
	}

	if _, err := loader.Load("large"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if built["large"] != 1 {
		t.Errorf("factory ran %d times for second model", built["large"])
	}
}

func TestLoader_FactoryErrorNotCached(t *testing.T) {
	boom := errors.New("no such model")
	calls := 0
	loader := NewLoader(func(model string) (Transcriber, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return newFakeBackend(), nil
	})

	if _, err := loader.Load("base"); !errors.Is(err, boom) {
		t.Fatalf("first Load error: %v", err)
	}
	// A failed construction must not poison the slot.
	if _, err := loader.Load("base"); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if calls != 2 {
		t.Errorf("factory ran %d times, want 2", calls)
	}
}
