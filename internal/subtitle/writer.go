package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgpai22/txt2srt/internal/textfile"
)

// ASS script metadata used when rendering FormatASS
type ASSStyle struct {
	Title    string
	FontName string
	FontSize int
}

func DefaultASSStyle() ASSStyle {
	return ASSStyle{
		Title:    "txt2srt Converted Subtitles",
		FontName: "Arial",
		FontSize: 20,
	}
}

var _ Writer = (*FileWriter)(nil)

// FileWriter renders a subtitle and saves it in the given text encoding.
type FileWriter struct {
	Format   Format
	Encoding string
	Style    ASSStyle
}

func NewWriter(format Format, encoding string) (*FileWriter, error) {
	switch format {
	case FormatSRT, FormatVTT, FormatASS:
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if _, err := textfile.LookupEncoding(encoding); err != nil {
		return nil, err
	}
	return &FileWriter{
		Format:   format,
		Encoding: encoding,
		Style:    DefaultASSStyle(),
	}, nil
}

// renders the subtitle and writes it to path
func (w *FileWriter) Write(sub *Subtitle, path string) error {
	content, err := render(sub, w.Format, w.Style)
	if err != nil {
		return err
	}
	return textfile.WriteText(path, content, w.Encoding)
}

// Render formats sub without touching the filesystem.
func Render(sub *Subtitle, format Format) (string, error) {
	return render(sub, format, DefaultASSStyle())
}

func render(sub *Subtitle, format Format, style ASSStyle) (string, error) {
	switch format {
	case FormatSRT:
		return RenderSRT(sub), nil
	case FormatVTT:
		return RenderVTT(sub), nil
	case FormatASS:
		return RenderASS(sub, style), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// RenderSRT writes index, time range, text and a blank separator per entry.
// Trailing newlines are trimmed from the result.
func RenderSRT(sub *Subtitle) string {
	var sb strings.Builder
	for _, entry := range sub.Entries {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", entry.Index))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(entry.StartTime),
			formatSRTTime(entry.EndTime)))

		// text
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func RenderVTT(sub *Subtitle) string {
	var sb strings.Builder

	// VTT header
	sb.WriteString("WEBVTT\n\n")

	for _, entry := range sub.Entries {
		// optional cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", entry.Index))

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatVTTTime(entry.StartTime),
			formatVTTTime(entry.EndTime)))

		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func RenderASS(sub *Subtitle, style ASSStyle) string {
	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", style.Title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
		style.FontName, style.FontSize))

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, entry := range sub.Entries {
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(entry.StartTime),
			formatASSTime(entry.EndTime),
			escapeASSText(entry.Text)))
	}

	return sb.String()
}

// splits d into whole hours, minutes, seconds and truncated milliseconds;
// hours keep counting past 24
func clockParts(d time.Duration) (h, m, s, ms int64) {
	total := d.Milliseconds()
	ms = total % 1000
	secs := total / 1000
	return secs / 3600, (secs % 3600) / 60, secs % 60, ms
}

func formatSRTTime(d time.Duration) string {
	h, m, s, ms := clockParts(d)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func formatVTTTime(d time.Duration) string {
	h, m, s, ms := clockParts(d)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func formatASSTime(d time.Duration) string {
	h, m, s, ms := clockParts(d)
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, ms/10)
}

func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}

// subtitle format based on file extension
func FormatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt":
		return FormatVTT
	case ".ass", ".ssa":
		return FormatASS
	default:
		return FormatSRT
	}
}

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	case "ass", "ssa":
		return FormatASS, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use srt, vtt, or ass", name)
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}
