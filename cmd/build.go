package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/factorlab/internal/config"
	"github.com/pders01/factorlab/internal/dataset"
	"github.com/pders01/factorlab/internal/transcript"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a CSV dataset from annotated transcripts",
	Long: `Read every .txt transcript in the raw folder, ask for each file's
group and datatype, and write one CSV with the columns
group,datatype,topic,name,timestamp,text to the output folder.

Transcript lines may start with a [name,timestamp] annotation; a line
starting with TOPIC: sets the topic for the following lines of that file.

Examples:
  factorlab build
  factorlab build --config ./study.toml`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	return failed("CSV construction", build(contextOf(cmd), newSession()))
}

func build(ctx context.Context, s *session) error {
	enc, err := transcript.ParseEncoding(config.GetEncoding())
	if err != nil {
		return err
	}

	c, err := dataset.Collect(ctx, transcript.NewLoader(s.ws, enc), s.ws, s.prompts, s.console)
	if err != nil {
		return err
	}

	s.console.Statusf("Creating CSV output")
	path, err := dataset.Create(s.ws, c.Name, dataset.Assemble(c.Files))
	if err != nil {
		return err
	}

	fmt.Fprintf(s.console.Out, "✓ Dataset written: %s\n", path)
	return nil
}
