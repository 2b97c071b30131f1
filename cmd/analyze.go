package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pders01/factorlab/internal/config"
	"github.com/pders01/factorlab/internal/efa"
	"github.com/pders01/factorlab/internal/plot"
	"github.com/pders01/factorlab/internal/prompt"
	"github.com/pders01/factorlab/internal/workspace"
)

// ReportExtension of the analysis text report
const ReportExtension = ".txt"

// resultSuffixes lists every file an analysis writes for one result name
var resultSuffixes = []string{
	plot.EigenSuffix,
	plot.ScreeSuffix,
	plot.HornSuffix,
	plot.LoadingsSuffix,
	ReportExtension,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run exploratory factor analysis on a numeric CSV",
	Long: `Select a numeric CSV from the data folder, an extraction method and a
rotation, then run:
  - Bartlett's test of sphericity and the KMO measure
  - eigenvalue analysis with a Kaiser suggestion
  - Horn parallel analysis with a suggestion
  - the final EFA with the chosen number of factors

Plots and a text report are written to the results folder.

Examples:
  factorlab analyze`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	return failed("EFA analysis", analyze(contextOf(cmd), newSession()))
}

func analyze(ctx context.Context, s *session) error {
	files, err := s.ws.FindFiles(s.ws.DataDir, ".csv")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found in %s", s.ws.DataDir)
	}

	datafile, err := s.prompts.Select("Please select a CSV for analysis", files)
	if err != nil {
		return err
	}
	raw, err := s.ws.ReadFile(s.ws.DataDir, datafile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", datafile, err)
	}
	table, err := efa.ReadTable(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", datafile, err)
	}

	method, err := choose(s.prompts, "Please select the EFA method", efa.Methods)
	if err != nil {
		return err
	}
	rotation, err := choose(s.prompts, "Please select EFA rotation", efa.Rotations)
	if err != nil {
		return err
	}

	analyzer, err := efa.NewAnalyzer(efa.Settings{
		RunID:          uuid.NewString(),
		DataFile:       datafile,
		Method:         method,
		Rotation:       rotation,
		HornIterations: config.GetHornIterations(),
		Seed:           config.GetSeed(),
		ObliminGamma:   config.GetObliminGamma(),
	}, table)
	if err != nil {
		return err
	}

	report := &efa.Report{Settings: analyzer.Settings()}

	s.console.Statusf("Calculating data factorability")
	if report.Factorability, err = analyzer.Factorability(); err != nil {
		return err
	}

	s.console.Statusf("Performing eigenvalue analysis")
	if report.Eigen, err = analyzer.Eigen(); err != nil {
		return err
	}
	s.console.Infof("Suggested topics: %d", report.Eigen.Suggested)

	if err := ctx.Err(); err != nil {
		return err
	}
	s.console.Statusf("Performing horn parallel analysis")
	if report.Horn, err = analyzer.Horn(); err != nil {
		return err
	}
	s.console.Infof("Suggested topics: %d", report.Horn.Suggested)

	_, variables := table.Dims()
	answer, err := s.prompts.Text("Please select a number of topics", prompt.NumberInRange(1, variables))
	if err != nil {
		return err
	}
	factors, err := strconv.Atoi(answer)
	if err != nil {
		return fmt.Errorf("invalid number of topics: %w", err)
	}

	s.console.Statusf("Performing the defined EFA")
	if report.Result, err = analyzer.Fit(factors); err != nil {
		return err
	}

	name, err := s.prompts.Text("Please enter a name for results", prompt.NewFileName(s.ws, s.ws.ResultsDir, resultSuffixes...))
	if err != nil {
		return err
	}

	s.console.Statusf("Saving results")
	if err := saveResults(s.ws, name, report); err != nil {
		return err
	}

	fmt.Fprintf(s.console.Out, "✓ Results written: %s\n", s.ws.Path(s.ws.ResultsDir, name+ReportExtension))
	return nil
}

// choose asks for one of choices by label and returns its value
func choose[T any](p prompt.Prompter, label string, choices []efa.Choice[T]) (T, error) {
	var zero T

	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}

	picked, err := p.Select(label, labels)
	if err != nil {
		return zero, err
	}
	for _, c := range choices {
		if c.Label == picked {
			return c.Value, nil
		}
	}
	return zero, fmt.Errorf("unknown choice: %s", picked)
}

// saveResults writes the four plots, then the report
func saveResults(ws *workspace.Workspace, name string, r *efa.Report) error {
	outputs := []struct {
		suffix string
		write  func(io.Writer) error
	}{
		{plot.EigenSuffix, func(w io.Writer) error { return plot.Eigen(w, r.Eigen.Eigenvalues) }},
		{plot.ScreeSuffix, func(w io.Writer) error { return plot.Scree(w, r.Eigen.Proportional) }},
		{plot.HornSuffix, func(w io.Writer) error { return plot.Horn(w, r.Horn.Eigenvalues, r.Horn.RandomEigenvalues) }},
		{plot.LoadingsSuffix, func(w io.Writer) error {
			labels := efa.FactorLabels(r.Result.Factors)
			return plot.Loadings(w, r.Result.Loadings, r.Settings.Headings, labels)
		}},
		{ReportExtension, func(w io.Writer) error { return efa.WriteReport(w, r) }},
	}

	for _, o := range outputs {
		if err := writeResult(ws, name+o.suffix, o.write); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(ws *workspace.Workspace, filename string, write func(io.Writer) error) error {
	f, err := ws.CreateExclusive(ws.ResultsDir, filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
