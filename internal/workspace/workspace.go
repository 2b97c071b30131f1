// Package workspace resolves the raw, output, data and results folders
// over an afero filesystem.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// AnyExtension matches every file in FindFiles
const AnyExtension = "*"

// Workspace groups the folders a session reads from and writes to
type Workspace struct {
	Fs afero.Fs

	RawDir     string // transcripts (*.txt)
	OutputDir  string // built datasets (*.csv)
	DataDir    string // analysis input tables (*.csv)
	ResultsDir string // plots, reports and keyword tables
}

// New returns a workspace over the OS filesystem
func New(rawDir, outputDir, dataDir, resultsDir string) *Workspace {
	return &Workspace{
		Fs:         afero.NewOsFs(),
		RawDir:     rawDir,
		OutputDir:  outputDir,
		DataDir:    dataDir,
		ResultsDir: resultsDir,
	}
}

// Dirs returns every configured folder, without duplicates
func (w *Workspace) Dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, d := range []string{w.RawDir, w.OutputDir, w.DataDir, w.ResultsDir} {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		dirs = append(dirs, d)
	}
	return dirs
}

// EnsureDirs creates any missing folder
func (w *Workspace) EnsureDirs() error {
	for _, d := range w.Dirs() {
		if err := w.Fs.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return nil
}

// FindFiles lists regular file names in dir ending with ext, sorted by name
func (w *Workspace) FindFiles(dir, ext string) ([]string, error) {
	entries, err := afero.ReadDir(w.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext == AnyExtension || strings.HasSuffix(entry.Name(), ext) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// Exists reports whether dir/name is present
func (w *Workspace) Exists(dir, name string) bool {
	_, err := w.Fs.Stat(filepath.Join(dir, name))
	return err == nil
}

// ReadFile returns the contents of dir/name
func (w *Workspace) ReadFile(dir, name string) ([]byte, error) {
	return afero.ReadFile(w.Fs, filepath.Join(dir, name))
}

// CreateExclusive creates dir/name, failing if it already exists
func (w *Workspace) CreateExclusive(dir, name string) (afero.File, error) {
	if err := w.Fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return w.Fs.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
}

// Path joins dir and name
func (w *Workspace) Path(dir, name string) string {
	return filepath.Join(dir, name)
}
