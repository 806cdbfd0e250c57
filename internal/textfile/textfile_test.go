package textfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestLookupEncoding(t *testing.T) {
	tests := []string{"utf-8", "UTF-8", "utf8", "utf_8", "", "gbk", "GB18030", "big5", "latin1", "windows-1252", "shift_jis"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			enc, err := LookupEncoding(name)
			if err != nil {
				t.Fatalf("LookupEncoding(%q) returned error: %v", name, err)
			}
			if enc == nil {
				t.Fatalf("LookupEncoding(%q) returned nil encoding", name)
			}
		})
	}
}

func TestLookupEncodingUnknown(t *testing.T) {
	_, err := LookupEncoding("klingon-8")
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Fatalf("expected ErrUnknownEncoding, got %v", err)
	}
	if !errors.Is(err, ErrResourceAccess) {
		t.Errorf("expected ErrResourceAccess, got %v", err)
	}
}

func TestReadLinesUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	content := "\ufeff00:05\r\n第一句字幕\r\n\r\n00:10\n第二句字幕\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	lines, err := ReadLines(path, "utf-8")
	if err != nil {
		t.Fatalf("ReadLines returned error: %v", err)
	}

	want := []string{"00:05", "第一句字幕", "", "00:10", "第二句字幕"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("ReadLines = %q, want %q", lines, want)
	}
}

func TestReadLinesGBK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	encoded, err := simplifiedchinese.GBK.NewEncoder().String("00:05\n有文本的字幕")
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	if err := os.WriteFile(path, []byte(encoded), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	lines, err := ReadLines(path, "gbk")
	if err != nil {
		t.Fatalf("ReadLines returned error: %v", err)
	}

	want := []string{"00:05", "有文本的字幕"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("ReadLines = %q, want %q", lines, want)
	}
}

func TestReadLinesRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte{0x30, 0x30, 0x3a, 0x30, 0x35, 0x0a, 0xff, 0xfe, 0x0a}, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := ReadLines(path, "utf-8")
	if !errors.Is(err, ErrResourceAccess) {
		t.Fatalf("expected ErrResourceAccess, got %v", err)
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "missing.txt"), "utf-8")
	if !errors.Is(err, ErrResourceAccess) {
		t.Fatalf("expected ErrResourceAccess, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestWriteTextVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.srt")
	content := "1\n00:00:05,000 --> 00:00:08,000\n字幕"

	if err := WriteText(path, content, "utf-8"); err != nil {
		t.Fatalf("WriteText returned error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(got) != content {
		t.Errorf("file content = %q, want %q", got, content)
	}
}

func TestWriteTextEncodesGBK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")

	if err := WriteText(path, "有文本的字幕", "gbk"); err != nil {
		t.Fatalf("WriteText returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if string(decoded) != "有文本的字幕" {
		t.Errorf("decoded content = %q, want %q", decoded, "有文本的字幕")
	}
}

func TestWriteTextUnencodableLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")

	err := WriteText(path, "第一句字幕", "latin1")
	if !errors.Is(err, ErrResourceAccess) {
		t.Fatalf("expected ErrResourceAccess, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("expected no output file, stat returned %v", statErr)
	}
}

func TestReadLinesLineEndings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"lf", "00:05\n字幕\n\n00:10\nb\n", []string{"00:05", "字幕", "", "00:10", "b"}},
		{"crlf", "00:05\r\n字幕\r\n\r\n00:10\r\nb", []string{"00:05", "字幕", "", "00:10", "b"}},
		{"cr only", "00:05\r字幕\r\r00:10\rb\r", []string{"00:05", "字幕", "", "00:10", "b"}},
		{"mixed", "00:05\r字幕\n\r\n00:10\r\n\rb", []string{"00:05", "字幕", "", "00:10", "", "b"}},
		{"no terminator", "00:05", []string{"00:05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "in.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			lines, err := ReadLines(path, "utf-8")
			if err != nil {
				t.Fatalf("ReadLines returned error: %v", err)
			}
			if !reflect.DeepEqual(lines, tt.want) {
				t.Errorf("ReadLines = %q, want %q", lines, tt.want)
			}
		})
	}
}
