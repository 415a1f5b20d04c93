package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func sineStream(t *testing.T, seconds float64, rate int) *Stream {
	t.Helper()
	s, err := NewStream(make([]int16, int(seconds*float64(rate))), rate)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	return s
}

func TestWindows_ExactDivision(t *testing.T) {
	s := sineStream(t, 20, 16000)

	windows := s.Windows(10)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[0].StartMS != 0 || windows[0].EndMS != 10000 {
		t.Errorf("window 0: got [%d,%d)", windows[0].StartMS, windows[0].EndMS)
	}
	if windows[1].StartMS != 10000 || windows[1].EndMS != 20000 {
		t.Errorf("window 1: got [%d,%d)", windows[1].StartMS, windows[1].EndMS)
	}
}

func TestWindows_ShortLastWindow(t *testing.T) {
	// 25s at 10s windows: 3 windows, last one 5s.
	s := sineStream(t, 25, 16000)

	windows := s.Windows(10)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	expected := [][2]int64{{0, 10000}, {10000, 20000}, {20000, 25000}}
	for i, w := range windows {
		if w.StartMS != expected[i][0] || w.EndMS != expected[i][1] {
			t.Errorf("window %d: expected [%d,%d), got [%d,%d)",
				i, expected[i][0], expected[i][1], w.StartMS, w.EndMS)
		}
		if w.Index != i {
			t.Errorf("window %d: index %d", i, w.Index)
		}
	}
}

func TestWindows_Coverage(t *testing.T) {
	// Windows must be contiguous, non-overlapping, and cover [0, duration).
	durations := []float64{0.5, 1, 9.99, 10, 10.01, 61.37, 600}
	for _, dur := range durations {
		s := sineStream(t, dur, 16000)
		windows := s.Windows(10)

		if len(windows) == 0 {
			t.Fatalf("duration %.2fs: no windows", dur)
		}
		if windows[0].StartMS != 0 {
			t.Errorf("duration %.2fs: first window starts at %d", dur, windows[0].StartMS)
		}
		for i := 1; i < len(windows); i++ {
			if windows[i].StartMS != windows[i-1].EndMS {
				t.Errorf("duration %.2fs: gap between window %d and %d", dur, i-1, i)
			}
		}
		last := windows[len(windows)-1]
		if last.EndMS != s.DurationMS() {
			t.Errorf("duration %.2fs: last window ends at %d, want %d", dur, last.EndMS, s.DurationMS())
		}
		if last.EndMS <= last.StartMS {
			t.Errorf("duration %.2fs: empty last window [%d,%d)", dur, last.StartMS, last.EndMS)
		}
	}
}

func TestSlice_SampleBounds(t *testing.T) {
	s := sineStream(t, 25, 16000)
	windows := s.Windows(10)

	total := 0
	for _, w := range windows {
		total += len(s.Slice(w))
	}
	if total != len(s.Samples) {
		t.Errorf("window slices cover %d samples, stream has %d", total, len(s.Samples))
	}

	// 5s tail at 16kHz.
	last := s.Slice(windows[2])
	if len(last) != 5*16000 {
		t.Errorf("last slice has %d samples, want %d", len(last), 5*16000)
	}
}

func TestNewStream_Validation(t *testing.T) {
	if _, err := NewStream(nil, 16000); err == nil {
		t.Error("expected error for empty samples")
	}
	if _, err := NewStream(make([]int16, 10), 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestWriteWAV_Header(t *testing.T) {
	samples := []int16{0, 100, -100, 32767, -32768}
	var buf bytes.Buffer
	if err := WriteWAV(&buf, samples, 16000); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	data := buf.Bytes()
	if len(data) != 44+len(samples)*2 {
		t.Fatalf("expected %d bytes, got %d", 44+len(samples)*2, len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 16000 {
		t.Errorf("sample rate in header: %d", rate)
	}
	if dataLen := binary.LittleEndian.Uint32(data[40:44]); dataLen != uint32(len(samples)*2) {
		t.Errorf("data length in header: %d", dataLen)
	}
	if got := int16(binary.LittleEndian.Uint16(data[46:48])); got != 100 {
		t.Errorf("second sample: %d", got)
	}
}
