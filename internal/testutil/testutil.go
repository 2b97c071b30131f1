// Package testutil provides an in-memory workspace and a scripted prompter
// for workflow tests.
package testutil

import (
	"fmt"
	"slices"
	"testing"

	"github.com/spf13/afero"

	"github.com/pders01/factorlab/internal/prompt"
	"github.com/pders01/factorlab/internal/workspace"
)

// Interrupt, used as a scripted answer, aborts the prompt like Ctrl-C
const Interrupt = "\x03"

// TempWorkspace is a workspace over an in-memory filesystem
type TempWorkspace struct {
	*workspace.Workspace
	T *testing.T
}

// NewTempWorkspace creates the default folders on a fresh in-memory filesystem
func NewTempWorkspace(t *testing.T) *TempWorkspace {
	t.Helper()

	ws := &workspace.Workspace{
		Fs:         afero.NewMemMapFs(),
		RawDir:     "Raw_Data",
		OutputDir:  "Results",
		DataDir:    "Data",
		ResultsDir: "Results",
	}
	if err := ws.EnsureDirs(); err != nil {
		t.Fatalf("failed to create workspace dirs: %v", err)
	}

	return &TempWorkspace{Workspace: ws, T: t}
}

// CreateFile writes content to dir/name
func (w *TempWorkspace) CreateFile(dir, name, content string) {
	w.T.Helper()
	if err := afero.WriteFile(w.Fs, w.Path(dir, name), []byte(content), 0644); err != nil {
		w.T.Fatalf("failed to create file: %v", err)
	}
}

// FileContent reads dir/name, failing the test if it is missing
func (w *TempWorkspace) FileContent(dir, name string) string {
	w.T.Helper()
	data, err := w.ReadFile(dir, name)
	if err != nil {
		w.T.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// ScriptedPrompter answers prompts from a fixed script. Text answers are run
// through the validator; rejected answers are recorded and the next answer
// is tried, as a terminal would re-prompt. An exhausted script aborts.
type ScriptedPrompter struct {
	T        *testing.T
	answers  []string
	Labels   []string
	Rejected []string
}

// NewScriptedPrompter returns a prompter that replays answers in order
func NewScriptedPrompter(t *testing.T, answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{T: t, answers: answers}
}

// Text implements prompt.Prompter
func (p *ScriptedPrompter) Text(label string, validate func(string) error) (string, error) {
	p.Labels = append(p.Labels, label)
	for {
		answer, err := p.next()
		if err != nil {
			return "", err
		}
		if validate != nil {
			if verr := validate(answer); verr != nil {
				p.Rejected = append(p.Rejected, answer)
				continue
			}
		}
		return answer, nil
	}
}

// Select implements prompt.Prompter
func (p *ScriptedPrompter) Select(label string, items []string) (string, error) {
	p.Labels = append(p.Labels, label)
	answer, err := p.next()
	if err != nil {
		return "", err
	}
	if !slices.Contains(items, answer) {
		p.T.Errorf("scripted answer %q is not one of %v", answer, items)
		return "", fmt.Errorf("invalid selection %q", answer)
	}
	return answer, nil
}

// Remaining returns the number of unused answers
func (p *ScriptedPrompter) Remaining() int {
	return len(p.answers)
}

func (p *ScriptedPrompter) next() (string, error) {
	if len(p.answers) == 0 {
		return "", prompt.ErrAborted
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	if answer == Interrupt {
		return "", prompt.ErrAborted
	}
	return answer, nil
}
