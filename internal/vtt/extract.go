package vtt

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Result is the flattened transcript extracted from a cue sheet.
type Result struct {
	Text         string
	UsedFallback bool // the structured parser failed and the line classifier ran
}

// ExtractText flattens a cue sheet into a single transcript string: cue text
// in document order, angle-bracket tags stripped, lines joined with single
// spaces. Timing and cue identity are discarded.
//
// The structured parser runs first; if it rejects the input but a WEBVTT
// header is present, the lenient line classifier takes over and the result is
// flagged so callers can surface a warning. Input with no header at all is a
// format error. Plain text therefore never passes: re-extracting an
// extractor's own output yields ErrNoHeader.
func ExtractText(content string) (Result, error) {
	cues, err := Parse(content)
	if err == nil {
		return Result{Text: flatten(cues)}, nil
	}

	if !HasHeader(content) {
		return Result{}, ErrNoHeader
	}
	return Result{Text: classifyLines(content), UsedFallback: true}, nil
}

func flatten(cues []Cue) string {
	var out []string
	for _, cue := range cues {
		for _, line := range cue.Lines {
			// A metadata keyword inside a cue body is still treated as
			// metadata and dropped, even when it is legitimate cue text.
			// Inherited behavior, kept as-is for output compatibility.
			if hasMetadataPrefix(line) {
				continue
			}
			clean := strings.TrimSpace(tagPattern.ReplaceAllString(line, ""))
			if clean != "" {
				out = append(out, clean)
			}
		}
	}
	return strings.Join(out, " ")
}

// classifyLines is the lenient fallback: a per-line state machine that keys
// cue membership off timing lines and blank lines.
func classifyLines(content string) string {
	var out []string
	inCue := false

	for _, line := range splitLines(content) {
		line = strings.TrimSpace(line)

		if strings.Contains(line, "-->") {
			inCue = true
			continue
		}
		if line == "" {
			inCue = false
			continue
		}
		if isDigits(line) {
			continue
		}
		if hasMetadataPrefix(line) {
			continue
		}
		if inCue {
			clean := strings.TrimSpace(tagPattern.ReplaceAllString(line, ""))
			if clean != "" {
				out = append(out, clean)
			}
		}
	}
	return strings.Join(out, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
