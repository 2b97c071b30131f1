package dataset

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pders01/factorlab/internal/models"
	"github.com/pders01/factorlab/internal/prompt"
	"github.com/pders01/factorlab/internal/testutil"
	"github.com/pders01/factorlab/internal/transcript"
	"github.com/pders01/factorlab/internal/ui"
)

func newTestConsole() (*ui.Console, *bytes.Buffer) {
	var out bytes.Buffer
	return &ui.Console{Out: &out, Err: &out}, &out
}

func TestCollect(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	ws.CreateFile(ws.RawDir, "b.txt", "TOPIC: Pay\n[Bob] fine\n")
	ws.CreateFile(ws.RawDir, "a.txt", "\"hello\"\n\n")
	ws.CreateFile(ws.OutputDir, "taken.csv", "x")

	p := testutil.NewScriptedPrompter(t,
		"g1", "audio",
		"bad name", "g2", "chat",
		"taken", "study",
	)
	console, _ := newTestConsole()

	c, err := Collect(context.Background(), transcript.NewLoader(ws.Workspace, transcript.EncodingAuto), ws.Workspace, p, console)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	if c.Name != "study" {
		t.Errorf("expected name study, got %s", c.Name)
	}
	want := []models.SourceFile{
		{Name: "a.txt", Lines: []string{"hello"}, Group: "g1", Datatype: models.DatatypeAudio},
		{Name: "b.txt", Lines: []string{"TOPIC: Pay", "[Bob] fine"}, Group: "g2", Datatype: models.DatatypeChat},
	}
	if !reflect.DeepEqual(c.Files, want) {
		t.Errorf("expected %+v, got %+v", want, c.Files)
	}
	if !reflect.DeepEqual(p.Rejected, []string{"bad name", "taken"}) {
		t.Errorf("unexpected rejected answers: %v", p.Rejected)
	}
}

func TestCollectAborted(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	ws.CreateFile(ws.RawDir, "a.txt", "hello\n")

	p := testutil.NewScriptedPrompter(t, "g1", testutil.Interrupt)
	console, _ := newTestConsole()

	_, err := Collect(context.Background(), transcript.NewLoader(ws.Workspace, transcript.EncodingAuto), ws.Workspace, p, console)
	if !errors.Is(err, prompt.ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}
