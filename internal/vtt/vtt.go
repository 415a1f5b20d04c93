package vtt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Cue is one timed entry from a WebVTT cue sheet, in order of appearance.
type Cue struct {
	ID    string
	Start string
	End   string
	Lines []string
}

// ErrNoHeader marks input that is not a recognizable cue sheet: neither the
// structured parser nor the fallback classifier found a WEBVTT header.
var ErrNoHeader = errors.New("no WEBVTT header")

var timingPattern = regexp.MustCompile(`^(\d{2}:)?\d{2}:\d{2}[.,]\d{3}$`)

// Parse is the structured cue-sheet parser. It requires the WEBVTT header
// and well-formed timing lines; anything else is an error so the caller can
// drop to the lenient line classifier.
func Parse(content string) ([]Cue, error) {
	lines := splitLines(content)
	if !HasHeader(content) {
		return nil, ErrNoHeader
	}

	var cues []Cue
	i := 1 // past the header line
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		// Metadata blocks are skipped wholesale.
		if hasMetadataPrefix(line) {
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			continue
		}

		var cue Cue
		if !strings.Contains(line, "-->") {
			// Optional identifier line before the timing line.
			cue.ID = line
			i++
			if i >= len(lines) {
				return nil, fmt.Errorf("cue %q: missing timing line", cue.ID)
			}
			line = strings.TrimSpace(lines[i])
		}

		start, end, err := parseTiming(line)
		if err != nil {
			return nil, err
		}
		cue.Start, cue.End = start, end
		i++

		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			cue.Lines = append(cue.Lines, strings.TrimSpace(lines[i]))
			i++
		}
		cues = append(cues, cue)
	}

	return cues, nil
}

func parseTiming(line string) (start, end string, err error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed timing line %q", line)
	}
	start = strings.TrimSpace(parts[0])
	// Cue settings may follow the end timestamp.
	endFields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endFields) == 0 {
		return "", "", fmt.Errorf("malformed timing line %q", line)
	}
	end = endFields[0]
	if !timingPattern.MatchString(start) || !timingPattern.MatchString(end) {
		return "", "", fmt.Errorf("malformed cue timestamps %q", line)
	}
	return start, end, nil
}

// HasHeader reports whether the input begins with the WEBVTT header token.
func HasHeader(content string) bool {
	content = strings.TrimPrefix(content, "\ufeff")
	return strings.HasPrefix(strings.TrimLeft(content, " \t\r\n"), "WEBVTT")
}

func splitLines(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

var metadataPrefixes = []string{"WEBVTT", "NOTE", "STYLE", "REGION"}

func hasMetadataPrefix(line string) bool {
	for _, p := range metadataPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
