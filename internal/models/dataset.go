package models

import "strings"

// Header is the fixed CSV column order
var Header = append(append([]string{"group", "datatype", "topic"}, LineFields...), "text")

// HeaderLine returns the header row as written to disk
func HeaderLine() string {
	return strings.Join(Header, ",")
}

// DatasetRow is one output line of a built dataset.
// Fields holds at least len(LineFields) values; surplus bracket values are kept.
type DatasetRow struct {
	Group    string   `json:"group"`
	Datatype Datatype `json:"datatype"`
	Topic    string   `json:"topic"`
	Fields   []string `json:"fields"`
	Text     string   `json:"text"`
}

// Name returns the speaker field
func (r DatasetRow) Name() string {
	return r.field(0)
}

// Timestamp returns the timestamp field
func (r DatasetRow) Timestamp() string {
	return r.field(1)
}

// Overflow reports whether the row carries more fields than the header names
func (r DatasetRow) Overflow() bool {
	return len(r.Fields) > len(LineFields)
}

func (r DatasetRow) field(i int) string {
	if i < len(r.Fields) {
		return r.Fields[i]
	}
	return ""
}

// Dataset is an ordered snapshot of rows, written as one CSV file
type Dataset []DatasetRow
