package cmd

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pders01/factorlab/internal/keywords"
)

// lengthEmbedder embeds the first text at [1 0] and every other text at
// [1 1/len], so longer words rank closer to the document
type lengthEmbedder struct{}

func (lengthEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if i == 0 {
			out[i] = []float64{1, 0}
			continue
		}
		out[i] = []float64{1, 1 / float64(len(text))}
	}
	return out, nil
}

func useEmbedder(t *testing.T, e keywords.Embedder, err error) {
	t.Helper()
	old := newEmbedder
	newEmbedder = func(context.Context) (keywords.Embedder, error) { return e, err }
	t.Cleanup(func() { newEmbedder = old })
}

func TestKeywordsCommand(t *testing.T) {
	ws, _, out := setupSession(t, "study.csv", "study")
	useEmbedder(t, lengthEmbedder{}, nil)
	ws.CreateFile(ws.OutputDir, "study.csv",
		"group,datatype,topic,name,timestamp,text\n"+
			"g,audio,Budget,Ann,,\"the budget allocation\"\n"+
			"g,audio,Staff,Ann,,\"hiring freeze\"\n")

	if err := runKeywords(nil, nil); err != nil {
		t.Fatalf("keywords command failed: %v", err)
	}

	want := "topic,rank,keyword,score\n" +
		"Budget,1,allocation,"
	got := ws.FileContent(ws.ResultsDir, "study_keywords.csv")
	if !strings.HasPrefix(got, want) {
		t.Errorf("expected keywords to start with %q, got:\n%s", want, got)
	}
	if !strings.Contains(got, "Staff,1,hiring,") {
		t.Errorf("expected Staff keywords, got:\n%s", got)
	}
	if !strings.Contains(out.String(), "KEYWORD") {
		t.Error("expected keyword table in output")
	}
}

func TestKeywordsCommandEmbedderUnavailable(t *testing.T) {
	ws, _, _ := setupSession(t, "study.csv")
	useEmbedder(t, nil, errors.New("ollama is not reachable"))
	ws.CreateFile(ws.OutputDir, "study.csv", "group,datatype,topic,name,timestamp,text\ng,audio,,,,\"words here\"\n")

	err := runKeywords(nil, nil)
	if err == nil || !strings.Contains(err.Error(), "ollama is not reachable") {
		t.Errorf("expected embedder error, got %v", err)
	}
}

func TestDatasetFilesSkipsKeywordTables(t *testing.T) {
	ws, _, _ := setupSession(t)
	ws.CreateFile(ws.OutputDir, "study.csv", "group,datatype,topic,name,timestamp,text\n")
	ws.CreateFile(ws.ResultsDir, "study"+keywords.Suffix, "topic,rank,keyword,score\n")

	files, err := datasetFiles(ws.Workspace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"study.csv"}) {
		t.Errorf("expected only the dataset, got %v", files)
	}
}
