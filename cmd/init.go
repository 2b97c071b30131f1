package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/pders01/factorlab/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the working folders and a default config",
	Long: `Prepare the current directory for factorlab.

This command:
  - Creates the raw, output, data and results folders
  - Creates a default config file if it doesn't exist

Run this once per project directory.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	s := newSession()

	for _, dir := range s.ws.Dirs() {
		if s.ws.Exists(dir, "") {
			fmt.Fprintf(s.console.Out, "Folder already exists: %s\n", dir)
			continue
		}
		if err := s.ws.Fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create folder %s: %w", dir, err)
		}
		fmt.Fprintf(s.console.Out, "✓ Created folder: %s\n", dir)
	}

	configPath := cfgFile
	if configPath == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(s.console.Out, "Config already exists: %s\n", configPath)
	} else {
		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}
		fmt.Fprintf(s.console.Out, "✓ Created default config: %s\n", configPath)
	}

	fmt.Fprintln(s.console.Out, "\n✓ factorlab initialized successfully!")
	fmt.Fprintf(s.console.Out, "  Put transcripts in %s and run: factorlab build\n", s.ws.RawDir)

	return nil
}

// defaultTables nests the dotted default keys into TOML tables
func defaultTables() map[string]map[string]any {
	tables := make(map[string]map[string]any)
	for key, value := range config.Defaults {
		table, name, _ := strings.Cut(key, ".")
		if tables[table] == nil {
			tables[table] = make(map[string]any)
		}
		tables[table][name] = value
	}
	return tables
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(defaultTables()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
