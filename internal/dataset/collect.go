package dataset

import (
	"context"
	"fmt"

	"github.com/pders01/factorlab/internal/models"
	"github.com/pders01/factorlab/internal/prompt"
	"github.com/pders01/factorlab/internal/transcript"
	"github.com/pders01/factorlab/internal/ui"
	"github.com/pders01/factorlab/internal/workspace"
)

// Collection holds the labeled transcripts and the chosen dataset name
type Collection struct {
	Files []models.SourceFile
	Name  string
}

// Collect discovers the transcripts, asks for each file's group and datatype,
// loads its lines, and finally asks for the dataset name.
func Collect(ctx context.Context, loader *transcript.Loader, ws *workspace.Workspace, p prompt.Prompter, console *ui.Console) (*Collection, error) {
	names, err := loader.FindTranscripts()
	if err != nil {
		return nil, fmt.Errorf("failed to find transcripts: %w", err)
	}
	console.Statusf("Found %d textfiles", len(names))

	datatypes := make([]string, len(models.Datatypes))
	for i, d := range models.Datatypes {
		datatypes[i] = string(d)
	}

	c := &Collection{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		console.Statusf("Processing %s", name)

		group, err := p.Text(fmt.Sprintf("Please enter group name for %s", name), prompt.ValidName)
		if err != nil {
			return nil, err
		}
		datatype, err := p.Select(fmt.Sprintf("Please select datatype for %s", name), datatypes)
		if err != nil {
			return nil, err
		}

		lines, err := loader.Load(name)
		if err != nil {
			return nil, err
		}

		c.Files = append(c.Files, models.SourceFile{
			Name:     name,
			Lines:    lines,
			Group:    group,
			Datatype: models.Datatype(datatype),
		})
	}

	c.Name, err = p.Text("Please enter a CSV filename", prompt.NewFileName(ws, ws.OutputDir, Extension))
	if err != nil {
		return nil, err
	}

	return c, nil
}
