package efa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Method is a factor extraction method
type Method string

const (
	MethodPrincipal Method = "principal"
	MethodML        Method = "ml"
	MethodMinres    Method = "minres"
)

// Methods maps menu labels to extraction methods, in menu order
var Methods = []Choice[Method]{
	{Label: "Principal Axis Factoring", Value: MethodPrincipal},
	{Label: "Maximum Likelihood", Value: MethodML},
	{Label: "Minimum Residual", Value: MethodMinres},
}

// Choice pairs a menu label with its value
type Choice[T any] struct {
	Label string
	Value T
}

// maxIterations bounds the minres and ml iterations
var maxIterations = 1000

const (
	convergenceTol   = 1e-6
	minUniqueness    = 0.005
	maxCommunality   = 1 - minUniqueness
	heywoodTolerance = 1e-12
)

// Extract returns an unrotated p x k loadings matrix. Column signs are
// flipped so every column sums to a non-negative value.
func Extract(corr *mat.SymDense, k int, method Method) (*mat.Dense, error) {
	p := corr.SymmetricDim()
	if k < 1 || k > p {
		return nil, fmt.Errorf("factor count %d outside 1-%d", k, p)
	}

	var (
		loadings *mat.Dense
		err      error
	)
	switch method {
	case MethodPrincipal:
		loadings, err = extractPrincipal(corr, k)
	case MethodMinres:
		loadings, err = extractMinres(corr, k)
	case MethodML:
		loadings, err = extractML(corr, k)
	default:
		return nil, fmt.Errorf("unknown extraction method: %s", method)
	}
	if err != nil {
		return nil, fmt.Errorf("%s extraction: %w", method, err)
	}

	alignSigns(loadings)
	return loadings, nil
}

// extractPrincipal scales the leading eigenvectors of corr by the root of their eigenvalues
func extractPrincipal(corr mat.Symmetric, k int) (*mat.Dense, error) {
	vals, vecs, err := eigenDesc(corr)
	if err != nil {
		return nil, err
	}
	return scaleVectors(vecs, vals, k, func(v float64) float64 { return v }), nil
}

// extractMinres iterates principal axes with communalities on the diagonal
// until they stop changing, which converges on the least squares solution.
func extractMinres(corr *mat.SymDense, k int) (*mat.Dense, error) {
	p := corr.SymmetricDim()
	h2 := initialCommunalities(corr)

	for iter := 0; iter < maxIterations; iter++ {
		reduced := mat.NewSymDense(p, nil)
		reduced.CopySym(corr)
		for i := 0; i < p; i++ {
			reduced.SetSym(i, i, h2[i])
		}

		vals, vecs, err := eigenDesc(reduced)
		if err != nil {
			return nil, err
		}
		loadings := scaleVectors(vecs, vals, k, func(v float64) float64 { return v })

		next := rowSumSquares(loadings)
		for i := range next {
			next[i] = clamp(next[i], 0, maxCommunality)
		}
		if maxAbsDiff(next, h2) < convergenceTol {
			return loadings, nil
		}
		h2 = next
	}

	return nil, fmt.Errorf("communalities after %d iterations: %w", maxIterations, ErrNotConverged)
}

// extractML uses the fixed-point iteration for maximum likelihood uniquenesses:
// the leading eigenvectors of Psi^-1/2 R Psi^-1/2 give the loadings for the next Psi.
func extractML(corr *mat.SymDense, k int) (*mat.Dense, error) {
	p := corr.SymmetricDim()
	h2 := initialCommunalities(corr)
	psi := make([]float64, p)
	for i := range psi {
		psi[i] = clamp(1-h2[i], minUniqueness, 1)
	}

	for iter := 0; iter < maxIterations; iter++ {
		scaledCorr := mat.NewSymDense(p, nil)
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				scaledCorr.SetSym(i, j, corr.At(i, j)/math.Sqrt(psi[i]*psi[j]))
			}
		}

		vals, vecs, err := eigenDesc(scaledCorr)
		if err != nil {
			return nil, err
		}
		loadings := scaleVectors(vecs, vals, k, func(v float64) float64 { return v - 1 })
		for i := 0; i < p; i++ {
			s := math.Sqrt(psi[i])
			for j := 0; j < k; j++ {
				loadings.Set(i, j, loadings.At(i, j)*s)
			}
		}

		next := rowSumSquares(loadings)
		for i := range next {
			next[i] = clamp(1-next[i], minUniqueness, 1)
		}
		if maxAbsDiff(next, psi) < convergenceTol {
			return loadings, nil
		}
		psi = next
	}

	return nil, fmt.Errorf("uniquenesses after %d iterations: %w", maxIterations, ErrNotConverged)
}

// initialCommunalities returns squared multiple correlations, falling back to
// the largest absolute off-diagonal correlation when corr is singular
func initialCommunalities(corr *mat.SymDense) []float64 {
	p := corr.SymmetricDim()
	h2 := make([]float64, p)

	if inv, err := inverse(corr); err == nil {
		for i := 0; i < p; i++ {
			if d := inv.At(i, i); d > heywoodTolerance {
				h2[i] = clamp(1-1/d, 0, maxCommunality)
			}
		}
		return h2
	}

	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			if i != j {
				h2[i] = math.Max(h2[i], math.Abs(corr.At(i, j)))
			}
		}
		h2[i] = clamp(h2[i], 0, maxCommunality)
	}
	return h2
}

// scaleVectors builds loadings from the first k eigenvectors, each multiplied by
// sqrt(max(weight(eigenvalue), 0))
func scaleVectors(vecs *mat.Dense, vals []float64, k int, weight func(float64) float64) *mat.Dense {
	p, _ := vecs.Dims()
	loadings := mat.NewDense(p, k, nil)
	for j := 0; j < k; j++ {
		s := math.Sqrt(math.Max(weight(vals[j]), 0))
		for i := 0; i < p; i++ {
			loadings.Set(i, j, vecs.At(i, j)*s)
		}
	}
	return loadings
}

func alignSigns(loadings *mat.Dense) {
	p, k := loadings.Dims()
	for j := 0; j < k; j++ {
		sum := 0.0
		for i := 0; i < p; i++ {
			sum += loadings.At(i, j)
		}
		if sum < 0 {
			for i := 0; i < p; i++ {
				loadings.Set(i, j, -loadings.At(i, j))
			}
		}
	}
}

// FactorVariance returns SS loadings, proportion of total variance and
// cumulative proportion per factor
func FactorVariance(loadings mat.Matrix) (variance, proportional, cumulative []float64) {
	p, _ := loadings.Dims()
	variance = colSumSquares(loadings)
	proportional = make([]float64, len(variance))
	cumulative = make([]float64, len(variance))

	total := 0.0
	for j, v := range variance {
		proportional[j] = v / float64(p)
		total += proportional[j]
		cumulative[j] = total
	}
	return variance, proportional, cumulative
}
