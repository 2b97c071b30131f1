package efa

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"
)

// Report bundles every analysis step for the text summary
type Report struct {
	Settings      Settings
	Factorability *Factorability
	Eigen         *EigenAnalysis
	Horn          *HornAnalysis
	Result        *Result
}

// WriteReport writes the five labeled report sections
func WriteReport(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	sections := []struct {
		title string
		body  func(io.Writer)
	}{
		{"SETTINGS", r.writeSettings},
		{"FACTORABILITY", r.writeFactorability},
		{"EIGEN VALUE ANALYSIS", r.writeEigen},
		{"HORN PARALLEL ANALYSIS", r.writeHorn},
		{"EFA RESULTS", r.writeResult},
	}

	for _, s := range sections {
		fmt.Fprintf(bw, "%s\n\n", s.title)
		s.body(bw)
		fmt.Fprint(bw, "\n\n")
	}

	return bw.Flush()
}

func (r *Report) writeSettings(w io.Writer) {
	s := r.Settings
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run_id:\t%s\n", s.RunID)
	fmt.Fprintf(tw, "datafile:\t%s\n", s.DataFile)
	fmt.Fprintf(tw, "method:\t%s\n", s.Method)
	fmt.Fprintf(tw, "rotation:\t%s\n", s.Rotation)
	fmt.Fprintf(tw, "observations:\t%d\n", s.Observations)
	fmt.Fprintf(tw, "topics:\t%d\n", s.Variables)
	fmt.Fprintf(tw, "headings:\t%s\n", strings.Join(s.Headings, ", "))
	fmt.Fprintf(tw, "horn_iterations:\t%d\n", s.HornIterations)
	fmt.Fprintf(tw, "seed:\t%d", s.Seed)
	tw.Flush()
}

func (r *Report) writeFactorability(w io.Writer) {
	f := r.Factorability
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "bartlett_chi_square_score:\t%.6f\n", f.BartlettChiSquare)
	fmt.Fprintf(tw, "bartlett_p_value:\t%.6g\n", f.BartlettPValue)
	fmt.Fprintf(tw, "kmo_score:\t%.6f\n", f.KMO)
	fmt.Fprintf(tw, "kmo_per_variable:\t%s", formatVector(f.KMOPerVariable))
	tw.Flush()
}

func (r *Report) writeEigen(w io.Writer) {
	e := r.Eigen
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "variance:\t%s\n", formatVector(e.Variance))
	fmt.Fprintf(tw, "proportional_variance:\t%s\n", formatVector(e.Proportional))
	fmt.Fprintf(tw, "cumulative_variance:\t%s\n", formatVector(e.Cumulative))
	fmt.Fprintf(tw, "eigenvalues:\t%s\n", formatVector(e.Eigenvalues))
	fmt.Fprintf(tw, "suggested:\t%d", e.Suggested)
	tw.Flush()
}

func (r *Report) writeHorn(w io.Writer) {
	h := r.Horn
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "random_eigenvalues:\t%s\n", formatVector(h.RandomEigenvalues))
	fmt.Fprintf(tw, "eigenvalues:\t%s\n", formatVector(h.Eigenvalues))
	fmt.Fprintf(tw, "suggested:\t%d", h.Suggested)
	tw.Flush()
}

func (r *Report) writeResult(w io.Writer) {
	res := r.Result
	fmt.Fprintf(w, "topics: %d\n\n", res.Factors)

	labels := FactorLabels(res.Factors)
	fmt.Fprintln(w, "loadings:")
	writeMatrix(w, r.Settings.Headings, labels, res.Loadings)

	if res.Phi != nil {
		fmt.Fprintln(w, "\nfactor correlations:")
		writeMatrix(w, labels, labels, res.Phi)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "communality:\t%s\n", formatVector(res.Communalities))
	fmt.Fprintf(tw, "uniqueness:\t%s\n", formatVector(res.Uniquenesses))
	fmt.Fprintf(tw, "variance:\t%s\n", formatVector(res.Variance))
	fmt.Fprintf(tw, "proportional_variance:\t%s\n", formatVector(res.Proportional))
	fmt.Fprintf(tw, "cumulative_variance:\t%s", formatVector(res.Cumulative))
	tw.Flush()
}

func writeMatrix(w io.Writer, rowLabels, colLabels []string, m mat.Matrix) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(colLabels, "\t"))
	for i, row := range rowsOf(m) {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", rowLabels[i], strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func formatVector(v []float64) string {
	cells := make([]string, len(v))
	for i, x := range v {
		cells[i] = fmt.Sprintf("%.4f", x)
	}
	return "[" + strings.Join(cells, " ") + "]"
}
