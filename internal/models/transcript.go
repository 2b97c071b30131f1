package models

// Datatype is the source medium of a transcript
type Datatype string

const (
	DatatypeAudio Datatype = "audio"
	DatatypeChat  Datatype = "chat"
)

// Datatypes lists the selectable datatypes in prompt order
var Datatypes = []Datatype{DatatypeAudio, DatatypeChat}

// TopicPrefix marks a line that sets the active topic
const TopicPrefix = "TOPIC:"

// LineFields names the bracketed metadata slots of an annotated line
var LineFields = []string{"name", "timestamp"}

// SourceFile is one ingested transcript with its prompted labels
type SourceFile struct {
	Name     string
	Lines    []string
	Group    string
	Datatype Datatype
}

// Record is a parsed non-marker line, before group and datatype are attached
type Record struct {
	Topic  string
	Fields []string
	Text   string
}
