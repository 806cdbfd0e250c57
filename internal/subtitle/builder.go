package subtitle

import (
	"fmt"

	"github.com/mgpai22/txt2srt/internal/transcript"
)

// Build turns caption pairs into numbered entries. Each entry ends where the
// next one starts, except when that would not move forward in time (or there
// is no next entry), in which case it lasts TrailingDuration.
func Build(pairs []transcript.Pair) (*Subtitle, error) {
	entries := make([]Entry, 0, len(pairs))

	for i, pair := range pairs {
		start, err := transcript.ParseTimestamp(pair.Raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		end := start + TrailingDuration
		if i+1 < len(pairs) {
			// re-validated here rather than trusting pairs[i+1].Start
			end, err = transcript.ParseTimestamp(pairs[i+1].Raw)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i+2, err)
			}
		}

		if end <= start {
			end = start + TrailingDuration
		}

		entries = append(entries, Entry{
			Index:     i + 1,
			StartTime: start,
			EndTime:   end,
			Text:      pair.Text,
		})
	}

	return &Subtitle{Entries: entries}, nil
}

// Convert runs the whole pipeline over transcript lines and returns SRT text.
func Convert(lines []string) (string, error) {
	return ConvertTo(lines, FormatSRT)
}

// ConvertTo is Convert with a selectable output format.
func ConvertTo(lines []string, format Format) (string, error) {
	pairs, err := transcript.ExtractPairs(lines)
	if err != nil {
		return "", err
	}

	sub, err := Build(pairs)
	if err != nil {
		return "", err
	}

	return Render(sub, format)
}
