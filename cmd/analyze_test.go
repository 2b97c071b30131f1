package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/pders01/factorlab/internal/efa"
	"github.com/pders01/factorlab/internal/plot"
)

// twoFactorCSV renders n rows of six variables driven by two latent factors
func twoFactorCSV(n int) string {
	rng := rand.New(rand.NewPCG(1, 2))

	var b strings.Builder
	b.WriteString("a1,a2,a3,b1,b2,b3\n")
	for i := 0; i < n; i++ {
		f1, f2 := rng.NormFloat64(), rng.NormFloat64()
		cells := make([]string, 6)
		for j := 0; j < 3; j++ {
			cells[j] = fmt.Sprintf("%.5f", 0.8*f1+0.6*rng.NormFloat64())
			cells[j+3] = fmt.Sprintf("%.5f", 0.8*f2+0.6*rng.NormFloat64())
		}
		b.WriteString(strings.Join(cells, ",") + "\n")
	}
	return b.String()
}

func TestAnalyzeCommand(t *testing.T) {
	ws, p, out := setupSession(t,
		"survey.csv", "Minimum Residual", "Promax",
		"0", "7", "2",
		"bad name!", "run1",
	)
	viper.Set("analysis.horn_iterations", 10)
	ws.CreateFile(ws.DataDir, "survey.csv", twoFactorCSV(200))

	if err := runAnalyze(nil, nil); err != nil {
		t.Fatalf("analyze command failed: %v", err)
	}

	for _, suffix := range []string{plot.EigenSuffix, plot.ScreeSuffix, plot.HornSuffix, plot.LoadingsSuffix} {
		if !strings.HasPrefix(ws.FileContent(ws.ResultsDir, "run1"+suffix), "\x89PNG") {
			t.Errorf("expected PNG for %s", suffix)
		}
	}

	report := ws.FileContent(ws.ResultsDir, "run1.txt")
	for _, want := range []string{"SETTINGS", "survey.csv", "method:", "minres", "promax", "EFA RESULTS", "Factor B", "factor correlations:"} {
		if !strings.Contains(report, want) {
			t.Errorf("expected report to contain %q", want)
		}
	}

	if strings.Count(out.String(), "Suggested topics: 2") != 2 {
		t.Errorf("expected both analyses to suggest 2 topics:\n%s", out.String())
	}
	if !reflect.DeepEqual(p.Rejected, []string{"0", "7", "bad name!"}) {
		t.Errorf("unexpected rejected answers: %v", p.Rejected)
	}
}

func TestAnalyzeCommandOrphanedPlot(t *testing.T) {
	ws, p, _ := setupSession(t,
		"survey.csv", "Minimum Residual", "Varimax", "2",
		"run1", "run2",
	)
	viper.Set("analysis.horn_iterations", 10)
	ws.CreateFile(ws.DataDir, "survey.csv", twoFactorCSV(200))
	ws.CreateFile(ws.ResultsDir, "run1"+plot.EigenSuffix, "partial")

	if err := runAnalyze(nil, nil); err != nil {
		t.Fatalf("analyze command failed: %v", err)
	}

	if !reflect.DeepEqual(p.Rejected, []string{"run1"}) {
		t.Errorf("expected run1 to be rejected, got %v", p.Rejected)
	}
	if got := ws.FileContent(ws.ResultsDir, "run1"+plot.EigenSuffix); got != "partial" {
		t.Errorf("expected orphaned plot to be untouched, got %q", got)
	}
	for _, suffix := range resultSuffixes {
		if !ws.Exists(ws.ResultsDir, "run2"+suffix) {
			t.Errorf("expected run2%s to be written", suffix)
		}
	}
}

func TestAnalyzeCommandNonNumeric(t *testing.T) {
	ws, _, _ := setupSession(t, "words.csv")
	ws.CreateFile(ws.DataDir, "words.csv", "x,y\n1,2\n3,four\n5,6\n")

	err := runAnalyze(nil, nil)
	if !errors.Is(err, efa.ErrNonNumeric) {
		t.Fatalf("expected ErrNonNumeric, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "EFA analysis failed:") {
		t.Errorf("expected analysis failure prefix, got %v", err)
	}
}

func TestAnalyzeCommandNoData(t *testing.T) {
	setupSession(t)

	if err := runAnalyze(nil, nil); err == nil {
		t.Error("expected error for empty data folder")
	}
}

func TestChoose(t *testing.T) {
	_, p, _ := setupSession(t, "Geomin Oblique")

	got, err := choose(p, "rotation", efa.Rotations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != efa.RotationGeominObl {
		t.Errorf("expected %s, got %s", efa.RotationGeominObl, got)
	}
}
