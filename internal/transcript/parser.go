// Package transcript reads raw annotated transcripts and parses them into records.
package transcript

import (
	"strings"
	"unicode"

	"github.com/pders01/factorlab/internal/models"
)

// ParseLines folds one file's cleaned lines into records.
// The topic starts empty and only changes on a marker line.
func ParseLines(lines []string) []models.Record {
	records := make([]models.Record, 0, len(lines))
	topic := ""

	for _, line := range lines {
		if next, ok := ParseTopic(line); ok {
			topic = next
			continue
		}

		fields, text := SplitAnnotation(line, len(models.LineFields))
		records = append(records, models.Record{
			Topic:  topic,
			Fields: fields,
			Text:   text,
		})
	}

	return records
}

// ParseTopic returns the topic named by a marker line
func ParseTopic(line string) (string, bool) {
	if !strings.HasPrefix(line, models.TopicPrefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(models.TopicPrefix):]), true
}

// SplitAnnotation separates an optional leading [f1,f2,...] prefix from the text.
// Fields are right-padded with empty strings to width but never truncated.
// Only the first bracket pair is considered.
func SplitAnnotation(line string, width int) ([]string, string) {
	var fields []string
	text := line

	if strings.HasPrefix(line, "[") {
		if end := strings.Index(line, "]"); end >= 0 {
			fields = strings.Split(line[1:end], ",")
			text = strings.TrimLeftFunc(line[end+1:], unicode.IsSpace)
		}
	}

	for len(fields) < width {
		fields = append(fields, "")
	}

	return fields, text
}
