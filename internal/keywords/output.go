package keywords

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pders01/factorlab/internal/workspace"
)

// Suffix appended to the result name of a keywords file
const Suffix = "_keywords.csv"

// Header of a keywords file
var Header = []string{"topic", "rank", "keyword", "score"}

// Write serializes keywords as CSV with Header
func Write(w io.Writer, keywords []Keyword) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, k := range keywords {
		record := []string{k.Topic, strconv.Itoa(k.Rank), k.Word, strconv.FormatFloat(k.Score, 'f', 4, 64)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write keyword %q: %w", k.Word, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Create writes keywords to the results folder as name_keywords.csv,
// refusing to overwrite an existing file
func Create(ws *workspace.Workspace, name string, keywords []Keyword) (string, error) {
	filename := name + Suffix

	f, err := ws.CreateExclusive(ws.ResultsDir, filename)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := Write(f, keywords); err != nil {
		return "", err
	}

	return ws.Path(ws.ResultsDir, filename), nil
}
