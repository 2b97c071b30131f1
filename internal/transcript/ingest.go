package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/pders01/factorlab/internal/workspace"
)

// Encoding selects how raw transcript bytes are decoded
type Encoding string

const (
	EncodingAuto   Encoding = "auto"
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
)

// ParseEncoding validates a configured encoding name
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin-1", "latin1", "iso-8859-1":
		return EncodingLatin1, nil
	default:
		return "", fmt.Errorf("unknown encoding: %s (must be: auto, utf-8, latin-1)", s)
	}
}

// Loader reads transcripts from the workspace raw folder
type Loader struct {
	ws       *workspace.Workspace
	encoding Encoding
}

// NewLoader creates a loader decoding files with enc
func NewLoader(ws *workspace.Workspace, enc Encoding) *Loader {
	return &Loader{ws: ws, encoding: enc}
}

// FindTranscripts lists the *.txt files of the raw folder in name order
func (l *Loader) FindTranscripts() ([]string, error) {
	return l.ws.FindFiles(l.ws.RawDir, ".txt")
}

// Load returns the cleaned, non-empty lines of a transcript
func (l *Loader) Load(name string) ([]string, error) {
	raw, err := l.ws.ReadFile(l.ws.RawDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	text, err := Decode(raw, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	return CleanLines(text)
}

// Decode converts raw bytes to a UTF-8 string
func Decode(raw []byte, enc Encoding) (string, error) {
	if enc == EncodingUTF8 || (enc == EncodingAuto && utf8.Valid(raw)) {
		return string(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))), nil
	}

	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// CleanLines drops double quotes and surrounding whitespace from every line
// and discards lines left empty
func CleanLines(text string) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ReplaceAll(scanner.Text(), `"`, ""))
		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan lines: %w", err)
	}

	return lines, nil
}
