package audio

import (
	"fmt"
	"math"
	"time"
)

// Stream is a decoded audio track: mono PCM samples at a known sample rate.
// Immutable once built; consumers slice it by window, they never mutate it.
type Stream struct {
	Samples    []int16
	SampleRate int
}

// Window is one half-open interval [StartMS, EndMS) over a Stream.
type Window struct {
	Index   int
	StartMS int64
	EndMS   int64
}

func NewStream(samples []int16, sampleRate int) (*Stream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("empty audio stream")
	}
	return &Stream{Samples: samples, SampleRate: sampleRate}, nil
}

// DurationMS returns the total length in milliseconds, rounded up so that
// the final partial millisecond of audio is never lost from the last window.
func (s *Stream) DurationMS() int64 {
	return int64(math.Ceil(float64(len(s.Samples)) * 1000 / float64(s.SampleRate)))
}

// DurationSeconds returns the total length in seconds.
func (s *Stream) DurationSeconds() float64 {
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

func (s *Stream) Duration() time.Duration {
	return time.Duration(s.DurationMS()) * time.Millisecond
}

// Windows splits the stream into fixed-length windows of windowSeconds each.
// Windows are contiguous, non-overlapping and cover exactly [0, DurationMS).
// The last window may be shorter than windowSeconds but is never empty.
func (s *Stream) Windows(windowSeconds int) []Window {
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}
	totalMS := s.DurationMS()
	windowMS := int64(windowSeconds) * 1000

	count := int(math.Ceil(float64(totalMS) / float64(windowMS)))
	windows := make([]Window, 0, count)
	for i := 0; i < count; i++ {
		start := int64(i) * windowMS
		end := start + windowMS
		if end > totalMS {
			end = totalMS
		}
		windows = append(windows, Window{Index: i, StartMS: start, EndMS: end})
	}
	return windows
}

// DefaultWindowSeconds is the transcription window used when none is configured.
const DefaultWindowSeconds = 10

// Slice returns the samples covered by w. The window's millisecond bounds are
// converted to sample offsets and clamped to the stream length.
func (s *Stream) Slice(w Window) []int16 {
	start := msToSamples(w.StartMS, s.SampleRate)
	end := msToSamples(w.EndMS, s.SampleRate)
	if start > len(s.Samples) {
		start = len(s.Samples)
	}
	if end > len(s.Samples) {
		end = len(s.Samples)
	}
	return s.Samples[start:end]
}

func msToSamples(ms int64, rate int) int {
	return int(ms * int64(rate) / 1000)
}
