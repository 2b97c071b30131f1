package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pders01/factorlab/internal/models"
	"github.com/pders01/factorlab/internal/workspace"
)

// Extension of built dataset files
const Extension = ".csv"

// Write serializes ds with the fixed header.
// The text cell is always quoted; other cells are quoted only when they
// contain a comma, a double quote or a line break.
func Write(w io.Writer, ds models.Dataset) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(models.HeaderLine() + "\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range ds {
		cells := make([]string, 0, 4+len(row.Fields))
		cells = append(cells, bare(row.Group), bare(string(row.Datatype)), bare(row.Topic))
		for _, f := range row.Fields {
			cells = append(cells, bare(f))
		}
		cells = append(cells, quote(row.Text))

		if _, err := bw.WriteString(strings.Join(cells, ",") + "\n"); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return bw.Flush()
}

// Create writes ds to dir/name.csv, refusing to overwrite an existing file.
// A failed write leaves the partial file in place.
func Create(ws *workspace.Workspace, name string, ds models.Dataset) (string, error) {
	filename := name + Extension

	f, err := ws.CreateExclusive(ws.OutputDir, filename)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := Write(f, ds); err != nil {
		return "", err
	}

	return ws.Path(ws.OutputDir, filename), nil
}

// Read parses a dataset written by Write. Rows wider than the header keep
// their surplus fields.
func Read(r io.Reader) (models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty dataset: missing header")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if strings.Join(header, ",") != models.HeaderLine() {
		return nil, fmt.Errorf("unexpected header: %s", strings.Join(header, ","))
	}

	var ds models.Dataset
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if len(record) < len(header) {
			return nil, fmt.Errorf("line %d: expected at least %d cells, got %d", line, len(header), len(record))
		}

		last := len(record) - 1
		ds = append(ds, models.DatasetRow{
			Group:    record[0],
			Datatype: models.Datatype(record[1]),
			Topic:    record[2],
			Fields:   append([]string(nil), record[3:last]...),
			Text:     record[last],
		})
	}

	return ds, nil
}

// Load reads dir/name from the workspace
func Load(ws *workspace.Workspace, dir, name string) (models.Dataset, error) {
	f, err := ws.Fs.Open(ws.Path(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ds, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func bare(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}
