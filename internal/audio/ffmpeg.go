package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os/exec"
	"time"
)

// DecodeSampleRate is the rate all uploads are resampled to before
// transcription. 16 kHz mono is what whisper-family models expect.
const DecodeSampleRate = 16000

// CheckFFmpeg reports whether an ffmpeg binary is available on PATH.
func CheckFFmpeg(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "ffmpeg", "-version").Run() == nil
}

// Decode converts any audio or video file ffmpeg understands into a mono
// 16 kHz Stream. The whole decoded track is held in memory; the upload size
// guard upstream keeps that bounded.
func Decode(ctx context.Context, path string) (*Stream, error) {
	// ffmpeg -i input -ac 1 -ar 16000 -f s16le -
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-ac", "1", "-ar", fmt.Sprint(DecodeSampleRate),
		"-f", "s16le", "-",
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode %s: %w: %s", path, err, stderr.String())
	}

	raw := out.Bytes()
	if len(raw) < 2 {
		return nil, fmt.Errorf("ffmpeg decode %s: no audio data", path)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return NewStream(samples, DecodeSampleRate)
}
