package cmd

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/pders01/factorlab/internal/config"
	"github.com/pders01/factorlab/internal/testutil"
	"github.com/pders01/factorlab/internal/ui"
)

// setupSession points every workflow at an in-memory workspace and a
// scripted prompter, with viper reset to the defaults
func setupSession(t *testing.T, answers ...string) (*testutil.TempWorkspace, *testutil.ScriptedPrompter, *bytes.Buffer) {
	t.Helper()

	ws := testutil.NewTempWorkspace(t)
	p := testutil.NewScriptedPrompter(t, answers...)
	out := &bytes.Buffer{}

	oldSession := newSession
	newSession = func() *session {
		return &session{ws: ws.Workspace, prompts: p, console: &ui.Console{Out: out, Err: out}}
	}

	oldNoColor := color.NoColor
	color.NoColor = true

	viper.Reset()
	config.SetDefaults()

	t.Cleanup(func() {
		newSession = oldSession
		color.NoColor = oldNoColor
		viper.Reset()
	})

	return ws, p, out
}
