package dataset

import (
	"reflect"
	"testing"

	"github.com/pders01/factorlab/internal/models"
)

func TestAssembleOrderAndLabels(t *testing.T) {
	files := []models.SourceFile{
		{
			Name:     "a.txt",
			Group:    "g1",
			Datatype: models.DatatypeAudio,
			Lines:    []string{"TOPIC: Intro", "[Ann,00:01] hello", "bye"},
		},
		{
			Name:     "b.txt",
			Group:    "g2",
			Datatype: models.DatatypeChat,
			Lines:    []string{"[Bo] chat line"},
		},
	}

	ds := Assemble(files)

	want := models.Dataset{
		{Group: "g1", Datatype: models.DatatypeAudio, Topic: "Intro", Fields: []string{"Ann", "00:01"}, Text: "hello"},
		{Group: "g1", Datatype: models.DatatypeAudio, Topic: "Intro", Fields: []string{"", ""}, Text: "bye"},
		{Group: "g2", Datatype: models.DatatypeChat, Topic: "", Fields: []string{"Bo", ""}, Text: "chat line"},
	}
	if !reflect.DeepEqual(ds, want) {
		t.Errorf("expected %+v, got %+v", want, ds)
	}
}

func TestAssembleTopicDoesNotLeak(t *testing.T) {
	files := []models.SourceFile{
		{Group: "g", Datatype: models.DatatypeChat, Lines: []string{"TOPIC: Only here", "x"}},
		{Group: "g", Datatype: models.DatatypeChat, Lines: []string{"y"}},
	}

	ds := Assemble(files)
	if len(ds) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ds))
	}
	if ds[1].Topic != "" {
		t.Errorf("expected empty topic for second file, got %q", ds[1].Topic)
	}
}

func TestAssembleEmpty(t *testing.T) {
	if ds := Assemble(nil); len(ds) != 0 {
		t.Errorf("expected no rows, got %d", len(ds))
	}

	files := []models.SourceFile{{Group: "g", Lines: []string{"TOPIC: marker only"}}}
	if ds := Assemble(files); len(ds) != 0 {
		t.Errorf("expected no rows for marker-only file, got %d", len(ds))
	}
}
