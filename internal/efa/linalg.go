package efa

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var errEigen = errors.New("eigendecomposition did not converge")

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func mul(a, b mat.Matrix) *mat.Dense {
	var m mat.Dense
	m.Mul(a, b)
	return &m
}

func sub(a, b mat.Matrix) *mat.Dense {
	var m mat.Dense
	m.Sub(a, b)
	return &m
}

func scaled(f float64, a mat.Matrix) *mat.Dense {
	var m mat.Dense
	m.Scale(f, a)
	return &m
}

func inverse(a mat.Matrix) (*mat.Dense, error) {
	var m mat.Dense
	if err := m.Inverse(a); err != nil {
		return nil, ErrSingular
	}
	return &m, nil
}

// symmetric copies a square matrix that is symmetric up to rounding
func symmetric(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, (a.At(i, j)+a.At(j, i))/2)
		}
	}
	return s
}

// eigenDesc returns eigenvalues in descending order with matching eigenvector columns
func eigenDesc(s mat.Symmetric) ([]float64, *mat.Dense, error) {
	var es mat.EigenSym
	if !es.Factorize(s, true) {
		return nil, nil, errEigen
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	n := len(vals)
	outVals := make([]float64, n)
	outVecs := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		j := n - 1 - i
		outVals[i] = vals[j]
		for r := 0; r < n; r++ {
			outVecs.Set(r, i, vecs.At(r, j))
		}
	}
	return outVals, outVecs, nil
}

// polar returns the orthogonal factor U*V' of a's singular value decomposition
func polar(a mat.Matrix) (*mat.Dense, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.New("singular value decomposition failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	return mul(&u, v.T()), nil
}

// rowSumSquares returns the sum of squared entries per row
func rowSumSquares(a mat.Matrix) []float64 {
	r, c := a.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			out[i] += v * v
		}
	}
	return out
}

// colSumSquares returns the sum of squared entries per column
func colSumSquares(a mat.Matrix) []float64 {
	r, c := a.Dims()
	out := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			out[j] += v * v
		}
	}
	return out
}

func maxAbsDiff(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func rowsOf(a mat.Matrix) [][]float64 {
	r, c := a.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = a.At(i, j)
		}
	}
	return out
}
