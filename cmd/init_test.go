package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestInitCommand(t *testing.T) {
	ws, _, out := setupSession(t)

	oldCfg := cfgFile
	cfgFile = filepath.Join(t.TempDir(), "factorlab", "config.toml")
	t.Cleanup(func() { cfgFile = oldCfg })

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	for _, dir := range ws.Dirs() {
		if !ws.Exists(dir, "") {
			t.Errorf("folder %s was not created", dir)
		}
	}

	var cfg map[string]map[string]any
	if _, err := toml.DecodeFile(cfgFile, &cfg); err != nil {
		t.Fatalf("failed to decode config: %v", err)
	}
	if cfg["paths"]["raw_dir"] != "Raw_Data" {
		t.Errorf("expected raw_dir Raw_Data, got %v", cfg["paths"]["raw_dir"])
	}
	if cfg["keywords"]["model"] != "nomic-embed-text" {
		t.Errorf("expected default model, got %v", cfg["keywords"]["model"])
	}
	if cfg["analysis"]["horn_iterations"] != int64(100) {
		t.Errorf("expected 100 horn iterations, got %v", cfg["analysis"]["horn_iterations"])
	}

	out.Reset()
	if err := runInit(nil, nil); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Config already exists") {
		t.Error("expected existing config to be kept")
	}
	if !strings.Contains(out.String(), "Folder already exists") {
		t.Error("expected existing folders to be reported")
	}
}
