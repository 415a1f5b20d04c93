package transcribe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"github.com/minutia-ai/minutia/internal/audio"
)

// fakeBackend returns canned texts in call order and records every request it
// saw, so tests can check sequencing and scratch-file handling.
type fakeBackend struct {
	texts    []string
	failAt   int // -1 to never fail
	failWith error
	requests []Request
}

func newFakeBackend(texts ...string) *fakeBackend {
	return &fakeBackend{texts: texts, failAt: -1}
}

func (f *fakeBackend) Transcribe(_ context.Context, req Request) (*Response, error) {
	call := len(f.requests)
	f.requests = append(f.requests, req)
	if call == f.failAt {
		return nil, f.failWith
	}
	if call >= len(f.texts) {
		return nil, fmt.Errorf("unexpected call %d", call)
	}
	return &Response{Text: f.texts[call]}, nil
}

func (f *fakeBackend) Name() string { return "fake" }

func testStream(t *testing.T, seconds int) *audio.Stream {
	t.Helper()
	s, err := audio.NewStream(make([]int16, seconds*16000), 16000)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	return s
}

func TestRun_MergesInOrder(t *testing.T) {
	backend := newFakeBackend("first chunk", "second chunk", "third")
	c := NewChunked(backend, WithWindowSeconds(10))

	got, err := c.Run(context.Background(), testStream(t, 25))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := "first chunk second chunk third"; got != want {
		t.Errorf("merged transcript:\n got %q\nwant %q", got, want)
	}
	if len(backend.requests) != 3 {
		t.Errorf("backend called %d times, want 3", len(backend.requests))
	}
}

func TestRun_EmptySegmentsKeptInSequence(t *testing.T) {
	backend := newFakeBackend("hello", "", "world")
	c := NewChunked(backend, WithWindowSeconds(10))

	got, err := c.Run(context.Background(), testStream(t, 30))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The empty middle segment leaves its separators behind.
	if want := "hello  world"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRun_TrailingEmptySegmentTrimmed(t *testing.T) {
	backend := newFakeBackend("hello", "")
	c := NewChunked(backend, WithWindowSeconds(10))

	got, err := c.Run(context.Background(), testStream(t, 20))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestRun_FailFast(t *testing.T) {
	backend := newFakeBackend("one", "two", "three", "four", "five")
	backend.failAt = 2
	backend.failWith = errors.New("backend down")
	c := NewChunked(backend, WithWindowSeconds(10))

	got, err := c.Run(context.Background(), testStream(t, 50))
	if err == nil {
		t.Fatal("expected error")
	}
	if got != "" {
		t.Errorf("partial transcript returned: %q", got)
	}

	var chunkErr *ChunkError
	if !errors.As(err, &chunkErr) {
		t.Fatalf("error is %T, want *ChunkError", err)
	}
	if chunkErr.Index != 2 {
		t.Errorf("failed chunk index %d, want 2", chunkErr.Index)
	}
	if !errors.Is(err, backend.failWith) {
		t.Error("cause not preserved through Unwrap")
	}
	// No call past the failing window.
	if len(backend.requests) != 3 {
		t.Errorf("backend called %d times after failure at chunk 2, want 3", len(backend.requests))
	}
}

func TestRun_ScratchFilesRemoved(t *testing.T) {
	backend := newFakeBackend("a", "b", "c")
	c := NewChunked(backend, WithWindowSeconds(10), WithTempDir(t.TempDir()))

	if _, err := c.Run(context.Background(), testStream(t, 25)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, req := range backend.requests {
		if _, err := os.Stat(req.FilePath); !os.IsNotExist(err) {
			t.Errorf("scratch file for chunk %d still exists: %s", i, req.FilePath)
		}
	}
}

func TestRun_ScratchFileRemovedOnFailure(t *testing.T) {
	backend := newFakeBackend("a")
	backend.failAt = 0
	backend.failWith = errors.New("boom")
	c := NewChunked(backend, WithTempDir(t.TempDir()))

	if _, err := c.Run(context.Background(), testStream(t, 5)); err == nil {
		t.Fatal("expected error")
	}
	if len(backend.requests) != 1 {
		t.Fatalf("backend called %d times", len(backend.requests))
	}
	if _, err := os.Stat(backend.requests[0].FilePath); !os.IsNotExist(err) {
		t.Error("scratch file survived a failed window")
	}
}

func TestRun_ProgressAndETA(t *testing.T) {
	backend := newFakeBackend("a", "b", "c", "d")

	// Deterministic clock: every call advances 30 seconds.
	var tick int
	clock := func() time.Time {
		tick++
		return time.Unix(0, 0).Add(time.Duration(tick) * 30 * time.Second)
	}

	var events []Progress
	c := NewChunked(backend,
		WithWindowSeconds(10),
		WithProgress(func(p Progress) { events = append(events, p) }),
		withClock(clock),
	)

	if _, err := c.Run(context.Background(), testStream(t, 40)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d progress events, want 4", len(events))
	}

	for i, p := range events {
		if p.ChunkIndex != i {
			t.Errorf("event %d: chunk index %d", i, p.ChunkIndex)
		}
		if p.ChunkCount != 4 {
			t.Errorf("event %d: chunk count %d", i, p.ChunkCount)
		}
		want := float64(i+1) / 4
		if math.Abs(p.Completed-want) > 1e-9 {
			t.Errorf("event %d: completed %f, want %f", i, p.Completed, want)
		}
	}

	// After the first of four windows (30s elapsed on the fake clock) the
	// remaining three should project to 90s.
	if events[0].ETA != 90*time.Second {
		t.Errorf("first ETA %v, want 90s", events[0].ETA)
	}
	// Finished: nothing remains.
	if events[3].ETA != 0 {
		t.Errorf("final ETA %v, want 0", events[3].ETA)
	}
}

func TestRun_WindowLanguagePassedThrough(t *testing.T) {
	backend := newFakeBackend("hola")
	c := NewChunked(backend, WithLanguage("es"))

	if _, err := c.Run(context.Background(), testStream(t, 5)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if backend.requests[0].Language != "es" {
		t.Errorf("language %q, want es", backend.requests[0].Language)
	}
}

func TestRun_EmptyStream(t *testing.T) {
	c := NewChunked(newFakeBackend())
	if _, err := c.Run(context.Background(), nil); err == nil {
		t.Error("expected error for nil stream")
	}
}
