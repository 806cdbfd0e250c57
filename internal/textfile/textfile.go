// Package textfile reads and writes whole text files in a named character
// encoding. Names are resolved through the IANA registry first and the WHATWG
// (HTML) index second, so both "gbk" and "windows-1252" style labels work.
package textfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when the caller does not name one.
const DefaultEncoding = "utf-8"

const maxLineBytes = 16 * 1024 * 1024

var (
	// ErrResourceAccess wraps every failure to read, decode, encode or write.
	ErrResourceAccess = errors.New("resource access failed")

	ErrUnknownEncoding = errors.New("unknown encoding")
)

// LookupEncoding resolves an encoding label such as "utf-8", "utf_8", "gbk"
// or "big5".
func LookupEncoding(name string) (encoding.Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if label == "" {
		label = DefaultEncoding
	}

	for _, l := range []string{label, strings.ReplaceAll(label, "_", "-")} {
		if enc, err := ianaindex.IANA.Encoding(l); err == nil && enc != nil {
			return enc, nil
		}
		if enc, err := htmlindex.Get(l); err == nil {
			return enc, nil
		}
	}
	return nil, fmt.Errorf("%w: %w %q", ErrResourceAccess, ErrUnknownEncoding, name)
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8 || enc == encoding.Nop
}

// ReadLines decodes the file at path and splits it into lines on "\n", "\r\n"
// or "\r", with the terminators removed. A final newline does not produce an
// extra empty line.
func ReadLines(path, encName string) ([]string, error) {
	enc, err := LookupEncoding(encName)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrResourceAccess, path, err)
	}

	if isUTF8(enc) {
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf(
				"%w: %s is not valid %s",
				ErrResourceAccess,
				path,
				encName,
			)
		}
	} else {
		raw, _, err = transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: decode %s as %s: %w",
				ErrResourceAccess,
				path,
				encName,
				err,
			)
		}
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrResourceAccess, path, err)
	}

	return lines, nil
}

// scanLines is bufio.ScanLines that also ends a line at a lone '\r', so
// "\n", "\r\n" and classic Mac "\r" files split the same way.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need the next byte to tell "\r" from "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// WriteText encodes content and writes it verbatim to path. Encoding happens
// before the file is opened, so a failure leaves no file behind.
func WriteText(path, content, encName string) error {
	enc, err := LookupEncoding(encName)
	if err != nil {
		return err
	}

	data := []byte(content)
	if !isUTF8(enc) {
		data, _, err = transform.Bytes(enc.NewEncoder(), data)
		if err != nil {
			return fmt.Errorf(
				"%w: encode %s as %s: %w",
				ErrResourceAccess,
				path,
				encName,
				err,
			)
		}
	}

	if err := ensureDir(path); err != nil {
		return fmt.Errorf("%w: %w", ErrResourceAccess, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrResourceAccess, path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
