package efa

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation returns the Pearson correlation matrix of the table's columns
func Correlation(t *Table) (*mat.SymDense, error) {
	_, cols := t.Dims()
	for j := 0; j < cols; j++ {
		if stat.Variance(mat.Col(nil, j, t.Data), nil) == 0 {
			return nil, &ColumnError{Column: t.Headings[j], Err: ErrConstantColumn}
		}
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, t.Data, nil)
	return &corr, nil
}

// Bartlett tests the null hypothesis that corr is an identity matrix.
// n is the number of observations.
func Bartlett(corr mat.Symmetric, n int) (chiSquare, pValue float64, err error) {
	p := corr.SymmetricDim()

	logDet, sign := mat.LogDet(corr)
	if sign <= 0 || math.IsInf(logDet, 0) || math.IsNaN(logDet) {
		return 0, 0, ErrSingular
	}

	chiSquare = -(float64(n) - 1 - float64(2*p+5)/6) * logDet
	df := float64(p*(p-1)) / 2
	pValue = distuv.ChiSquared{K: df}.Survival(chiSquare)

	return chiSquare, pValue, nil
}

// KMO returns the per-variable and overall Kaiser-Meyer-Olkin sampling adequacy
func KMO(corr mat.Symmetric) (perVariable []float64, overall float64, err error) {
	p := corr.SymmetricDim()

	inv, err := inverse(corr)
	if err != nil {
		return nil, 0, err
	}

	perVariable = make([]float64, p)
	var sumR, sumA float64
	for i := 0; i < p; i++ {
		var rowR, rowA float64
		for j := 0; j < p; j++ {
			if i == j {
				continue
			}
			r := corr.At(i, j)
			a := -inv.At(i, j) / math.Sqrt(inv.At(i, i)*inv.At(j, j))
			rowR += r * r
			rowA += a * a
		}
		perVariable[i] = rowR / (rowR + rowA)
		sumR += rowR
		sumA += rowA
	}

	return perVariable, sumR / (sumR + sumA), nil
}
