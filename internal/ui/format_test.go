package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormats(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "status", got: Status("Processing a.txt"), want: "\n[-] Processing a.txt..."},
		{name: "question", got: Question("Group"), want: "\n[?] Group: "},
		{name: "alert", got: Alert("Aborting Build CSV"), want: "\n[!] Aborting Build CSV..."},
		{name: "info", got: Info("Suggested factors: 3"), want: "\n[i] Suggested factors: 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

func TestConsoleRoutesAlertsToErr(t *testing.T) {
	color.NoColor = true

	var out, errOut bytes.Buffer
	c := &Console{Out: &out, Err: &errOut}

	c.Statusf("Found %d textfiles", 2)
	c.Alertf("CSV construction failed")

	if !strings.Contains(out.String(), "[-] Found 2 textfiles...") {
		t.Errorf("unexpected stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[!] CSV construction failed...") {
		t.Errorf("unexpected stderr: %q", errOut.String())
	}
}
