package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/pders01/factorlab/internal/prompt"
	"github.com/pders01/factorlab/internal/testutil"
)

func TestMenuReturnsAfterAbort(t *testing.T) {
	ws, p, out := setupSession(t,
		"Build CSV", testutil.Interrupt,
		"Exit",
	)
	ws.CreateFile(ws.RawDir, "one.txt", "hello\n")

	if err := runMenu(nil, nil); err != nil {
		t.Fatalf("menu failed: %v", err)
	}

	for _, msg := range []string{"[-] Build CSV selected...", "[!] Aborting Build CSV..."} {
		if !strings.Contains(out.String(), msg) {
			t.Errorf("expected output to contain %q, got:\n%s", msg, out.String())
		}
	}
	if p.Remaining() != 0 {
		t.Errorf("expected all answers used, %d left", p.Remaining())
	}
}

func TestMenuRunsWorkflows(t *testing.T) {
	ws, _, _ := setupSession(t,
		"Build CSV", "g", "chat", "first",
		"Build CSV", "g", "audio", "second",
		testutil.Interrupt,
	)
	ws.CreateFile(ws.RawDir, "one.txt", "hello\n")

	if err := runMenu(nil, nil); err != nil {
		t.Fatalf("menu failed: %v", err)
	}

	for _, name := range []string{"first.csv", "second.csv"} {
		if !ws.Exists(ws.OutputDir, name) {
			t.Errorf("expected %s to be built", name)
		}
	}
}

func TestMenuStopsOnFailure(t *testing.T) {
	setupSession(t, "EFA Analysis")

	err := runMenu(nil, nil)
	if err == nil || !strings.HasPrefix(err.Error(), "EFA analysis failed:") {
		t.Errorf("expected analysis failure, got %v", err)
	}
}

func TestFailed(t *testing.T) {
	if failed("X", nil) != nil {
		t.Error("expected nil for nil error")
	}
	if err := failed("X", prompt.ErrAborted); err != prompt.ErrAborted {
		t.Errorf("expected abort to pass through, got %v", err)
	}
	cause := errors.New("boom")
	if err := failed("X", cause); !errors.Is(err, cause) || err.Error() != "X failed: boom" {
		t.Errorf("unexpected wrapped error: %v", err)
	}
}
