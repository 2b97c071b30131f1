package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

const inspectCSV = "group,datatype,topic,name,timestamp,text\n" +
	"g1,audio,Budget,Ann,,\"a\"\n" +
	"g1,audio,Budget,Bob,,\"b\"\n" +
	"g2,chat,Staff,Ann,1,x,\"c\"\n"

func resetInspectFlags(t *testing.T) {
	t.Helper()
	inspectJSON, inspectToon = false, false
	t.Cleanup(func() { inspectJSON, inspectToon = false, false })
}

func TestInspectCommandJSON(t *testing.T) {
	ws, _, out := setupSession(t)
	resetInspectFlags(t)
	inspectJSON = true
	ws.CreateFile(ws.OutputDir, "study.csv", inspectCSV)

	if err := runInspect(nil, []string{"study.csv"}); err != nil {
		t.Fatalf("inspect command failed: %v", err)
	}

	var stats datasetStats
	if err := json.Unmarshal(out.Bytes(), &stats); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if stats.TotalRows != 3 || stats.TotalTopics != 2 || stats.OverflowRows != 1 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.ByName[0] != (countStat{Value: "Ann", Count: 2}) {
		t.Errorf("expected Ann first, got %+v", stats.ByName[0])
	}
	if stats.ByDatatype[0] != (countStat{Value: "audio", Count: 2}) {
		t.Errorf("expected audio first, got %+v", stats.ByDatatype[0])
	}
}

func TestInspectCommandFormats(t *testing.T) {
	tests := []struct {
		name string
		toon bool
		want string
	}{
		{name: "human readable", want: "Total Rows:    3"},
		{name: "toon", toon: true, want: "Budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, _, out := setupSession(t)
			resetInspectFlags(t)
			inspectToon = tt.toon
			ws.CreateFile(ws.DataDir, "copy.csv", inspectCSV)

			// not in the output folder, so resolved as a path
			if err := runInspect(nil, []string{ws.Path(ws.DataDir, "copy.csv")}); err != nil {
				t.Fatalf("inspect command failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestInspectCommandMissingFile(t *testing.T) {
	setupSession(t)
	resetInspectFlags(t)

	if err := runInspect(nil, []string{"missing.csv"}); err == nil {
		t.Error("expected error for missing file")
	}
}
