// Package dataset assembles parsed transcripts into rows and serializes them as CSV.
package dataset

import (
	"github.com/pders01/factorlab/internal/models"
	"github.com/pders01/factorlab/internal/transcript"
)

// Assemble flattens files into rows: files in the given order, lines in file order.
// Each file is parsed independently, so topics never carry across files.
func Assemble(files []models.SourceFile) models.Dataset {
	var ds models.Dataset

	for _, file := range files {
		for _, rec := range transcript.ParseLines(file.Lines) {
			ds = append(ds, models.DatasetRow{
				Group:    file.Group,
				Datatype: file.Datatype,
				Topic:    rec.Topic,
				Fields:   rec.Fields,
				Text:     rec.Text,
			})
		}
	}

	return ds
}
