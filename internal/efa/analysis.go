package efa

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Settings describes one analysis run
type Settings struct {
	RunID        string
	DataFile     string
	Method       Method
	Rotation     Rotation
	Observations int
	Variables    int
	Headings     []string

	HornIterations int
	Seed           uint64
	ObliminGamma   float64
}

// Factorability holds the Bartlett sphericity and KMO results
type Factorability struct {
	BartlettChiSquare float64
	BartlettPValue    float64
	KMO               float64
	KMOPerVariable    []float64
}

// EigenAnalysis holds correlation eigenvalues and unrotated factor variance
type EigenAnalysis struct {
	Eigenvalues  []float64
	Variance     []float64
	Proportional []float64
	Cumulative   []float64
	Suggested    int
}

// HornAnalysis compares data eigenvalues against the average of random tables
type HornAnalysis struct {
	Eigenvalues       []float64
	RandomEigenvalues []float64
	Suggested         int
}

// Result is the final rotated factor solution
type Result struct {
	Factors       int
	Loadings      *mat.Dense
	Phi           *mat.Dense // nil for orthogonal rotations
	Communalities []float64
	Uniquenesses  []float64
	Variance      []float64
	Proportional  []float64
	Cumulative    []float64
}

// Analyzer runs the analysis steps over one table
type Analyzer struct {
	settings Settings
	table    *Table
	corr     *mat.SymDense
}

// NewAnalyzer computes the correlation matrix and fills the table-derived settings
func NewAnalyzer(settings Settings, table *Table) (*Analyzer, error) {
	corr, err := Correlation(table)
	if err != nil {
		return nil, err
	}

	settings.Observations, settings.Variables = table.Dims()
	settings.Headings = table.Headings
	if settings.HornIterations < 1 {
		settings.HornIterations = 100
	}

	return &Analyzer{settings: settings, table: table, corr: corr}, nil
}

// Settings returns the resolved run settings
func (a *Analyzer) Settings() Settings {
	return a.settings
}

// Correlation returns the table's correlation matrix
func (a *Analyzer) Correlation() *mat.SymDense {
	return a.corr
}

// Factorability runs Bartlett's test of sphericity and the KMO measure
func (a *Analyzer) Factorability() (*Factorability, error) {
	chi, p, err := Bartlett(a.corr, a.settings.Observations)
	if err != nil {
		return nil, fmt.Errorf("bartlett sphericity: %w", err)
	}
	perVar, overall, err := KMO(a.corr)
	if err != nil {
		return nil, fmt.Errorf("kmo: %w", err)
	}

	return &Factorability{
		BartlettChiSquare: chi,
		BartlettPValue:    p,
		KMO:               overall,
		KMOPerVariable:    perVar,
	}, nil
}

// Eigen extracts as many unrotated factors as there are variables and
// suggests the number of eigenvalues preceding the first one below 1
func (a *Analyzer) Eigen() (*EigenAnalysis, error) {
	vals, _, err := eigenDesc(a.corr)
	if err != nil {
		return nil, err
	}

	loadings, err := Extract(a.corr, a.settings.Variables, a.settings.Method)
	if err != nil {
		return nil, err
	}
	variance, proportional, cumulative := FactorVariance(loadings)

	return &EigenAnalysis{
		Eigenvalues:  vals,
		Variance:     variance,
		Proportional: proportional,
		Cumulative:   cumulative,
		Suggested:    KaiserCount(vals),
	}, nil
}

// KaiserCount returns the index of the first eigenvalue below 1, or len(vals)
func KaiserCount(vals []float64) int {
	for i, v := range vals {
		if v < 1 {
			return i
		}
	}
	return len(vals)
}

// Horn runs parallel analysis: correlation eigenvalues of standard normal
// tables with the same shape, averaged over the configured iterations
func (a *Analyzer) Horn() (*HornAnalysis, error) {
	rows, cols := a.table.Dims()
	rng := rand.New(rand.NewPCG(a.settings.Seed, a.settings.Seed^0x9e3779b97f4a7c15))

	random := make([]float64, cols)
	sample := mat.NewDense(rows, cols, nil)
	for iter := 0; iter < a.settings.HornIterations; iter++ {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				sample.Set(i, j, rng.NormFloat64())
			}
		}

		corr, err := Correlation(&Table{Headings: a.table.Headings, Data: sample})
		if err != nil {
			return nil, fmt.Errorf("random table %d: %w", iter+1, err)
		}
		vals, _, err := eigenDesc(corr)
		if err != nil {
			return nil, err
		}
		for j, v := range vals {
			random[j] += v
		}
	}
	for j := range random {
		random[j] /= float64(a.settings.HornIterations)
	}

	vals, _, err := eigenDesc(a.corr)
	if err != nil {
		return nil, err
	}

	suggested := 0
	for j := range vals {
		if vals[j] > random[j] {
			suggested++
		}
	}

	return &HornAnalysis{
		Eigenvalues:       vals,
		RandomEigenvalues: random,
		Suggested:         suggested,
	}, nil
}

// Fit extracts k factors with the configured method and rotation
func (a *Analyzer) Fit(k int) (*Result, error) {
	loadings, err := Extract(a.corr, k, a.settings.Method)
	if err != nil {
		return nil, err
	}

	rotated, err := Rotate(loadings, a.settings.Rotation, RotateOptions{ObliminGamma: a.settings.ObliminGamma})
	if err != nil {
		return nil, fmt.Errorf("%s rotation: %w", a.settings.Rotation, err)
	}

	communalities := rowSumSquares(rotated.Loadings)
	uniquenesses := make([]float64, len(communalities))
	for i, h := range communalities {
		uniquenesses[i] = 1 - h
	}
	variance, proportional, cumulative := FactorVariance(rotated.Loadings)

	return &Result{
		Factors:       k,
		Loadings:      rotated.Loadings,
		Phi:           rotated.Phi,
		Communalities: communalities,
		Uniquenesses:  uniquenesses,
		Variance:      variance,
		Proportional:  proportional,
		Cumulative:    cumulative,
	}, nil
}
