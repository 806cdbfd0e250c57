package transcript

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrNoValidTimestamps is returned when a transcript yields no caption pairs.
var ErrNoValidTimestamps = errors.New(
	"no valid timestamps found (format mm:ss or hh:mm:ss, minutes/seconds <= 59)",
)

// shape only; range checks belong to ParseTimestamp
var candidateRegex = regexp.MustCompile(`^\d{1,2}:\d{2}(?::\d{2})?$`)

// represents a timestamp line and the caption line that follows it
type Pair struct {
	// Raw is the trimmed timestamp line as written in the transcript.
	Raw string
	// Start is the value Raw parsed to during extraction. It is informational:
	// subtitle.Build parses Raw again instead of reading it.
	Start time.Duration
	Text  string
}

// IsTimestampCandidate reports whether line looks like a timestamp,
// regardless of whether its fields are in range. Any Unicode decimal digit
// counts, so "００:０５" is a candidate.
func IsTimestampCandidate(line string) bool {
	return candidateRegex.MatchString(asciiDigits(strings.TrimSpace(line)))
}

// ExtractPairs walks lines once, pairing every valid timestamp line with the
// line right after it. A line taken as caption text is never looked at again
// as a timestamp, and an out-of-range timestamp line is dropped on its own.
func ExtractPairs(lines []string) ([]Pair, error) {
	var pairs []Pair

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		if !IsTimestampCandidate(line) {
			i++
			continue
		}

		start, err := ParseTimestamp(line)
		if err != nil {
			i++
			continue
		}

		text := ""
		if i+1 < len(lines) {
			text = strings.TrimSpace(lines[i+1])
		}
		pairs = append(pairs, Pair{Raw: line, Start: start, Text: text})
		i += 2
	}

	if len(pairs) == 0 {
		return nil, ErrNoValidTimestamps
	}
	return pairs, nil
}
