package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pders01/factorlab/internal/config"
	"github.com/pders01/factorlab/internal/dataset"
	"github.com/pders01/factorlab/internal/keywords"
	"github.com/pders01/factorlab/internal/ollama"
	"github.com/pders01/factorlab/internal/prompt"
	"github.com/pders01/factorlab/internal/workspace"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract keywords per topic from a built dataset",
	Long: `Select a dataset from the output folder, group its text by topic and
rank each topic's words by embedding similarity to the whole topic text.

Requires a running Ollama server with the configured embedding model:
  ollama pull nomic-embed-text

Examples:
  factorlab keywords`,
	RunE: runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
}

// newEmbedder is replaced in tests
var newEmbedder = func(ctx context.Context) (keywords.Embedder, error) {
	client, err := ollama.NewClient(config.GetOllamaURL(), config.GetKeywordModel())
	if err != nil {
		return nil, err
	}
	if !client.IsAvailable(ctx) {
		return nil, fmt.Errorf("ollama is not reachable at %s", config.GetOllamaURL())
	}
	if err := client.CheckModel(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func runKeywords(cmd *cobra.Command, args []string) error {
	return failed("Keyword extraction", extractKeywords(contextOf(cmd), newSession()))
}

func extractKeywords(ctx context.Context, s *session) error {
	files, err := datasetFiles(s.ws)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no datasets found in %s", s.ws.OutputDir)
	}

	datafile, err := s.prompts.Select("Please select a dataset", files)
	if err != nil {
		return err
	}
	ds, err := dataset.Load(s.ws, s.ws.OutputDir, datafile)
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(ctx)
	if err != nil {
		return err
	}

	s.console.Statusf("Extracting keywords")
	kws, err := keywords.ExtractAll(ctx, embedder, ds, config.GetKeywordCount())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(s.console.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOPIC\tRANK\tKEYWORD\tSCORE")
	for _, k := range kws {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.4f\n", k.Topic, k.Rank, k.Word, k.Score)
	}
	tw.Flush()

	name, err := s.prompts.Text("Please enter a name for results", prompt.NewFileName(s.ws, s.ws.ResultsDir, keywords.Suffix))
	if err != nil {
		return err
	}
	path, err := keywords.Create(s.ws, name, kws)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.console.Out, "✓ Keywords written: %s\n", path)
	return nil
}

// datasetFiles lists the built datasets, leaving out keyword tables that
// share the folder when output and results point to the same place
func datasetFiles(ws *workspace.Workspace) ([]string, error) {
	files, err := ws.FindFiles(ws.OutputDir, dataset.Extension)
	if err != nil {
		return nil, err
	}

	datasets := files[:0]
	for _, f := range files {
		if !strings.HasSuffix(f, keywords.Suffix) {
			datasets = append(datasets, f)
		}
	}
	return datasets, nil
}
