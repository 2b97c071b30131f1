package efa

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rotation is a factor rotation method
type Rotation string

const (
	RotationNone      Rotation = ""
	RotationVarimax   Rotation = "varimax"
	RotationPromax    Rotation = "promax"
	RotationOblimin   Rotation = "oblimin"
	RotationOblimax   Rotation = "oblimax"
	RotationQuartimin Rotation = "quartimin"
	RotationQuartimax Rotation = "quartimax"
	RotationEquamax   Rotation = "equamax"
	RotationGeominObl Rotation = "geomin_obl"
	RotationGeominOrt Rotation = "geomin_ort"
)

// Rotations maps menu labels to rotations, in menu order
var Rotations = []Choice[Rotation]{
	{Label: "Varimax", Value: RotationVarimax},
	{Label: "Promax", Value: RotationPromax},
	{Label: "Oblimin", Value: RotationOblimin},
	{Label: "Oblimax", Value: RotationOblimax},
	{Label: "Quartimin", Value: RotationQuartimin},
	{Label: "Quartimax", Value: RotationQuartimax},
	{Label: "Equamax", Value: RotationEquamax},
	{Label: "Geomin Oblique", Value: RotationGeominObl},
	{Label: "Geomin Orthogonal", Value: RotationGeominOrt},
}

// Oblique reports whether the rotation allows correlated factors
func (r Rotation) Oblique() bool {
	switch r {
	case RotationPromax, RotationOblimin, RotationQuartimin, RotationGeominObl:
		return true
	default:
		return false
	}
}

const (
	rotationMaxIter = 500
	rotationTol     = 1e-5
	promaxPower     = 4
	geominEpsilon   = 0.01
)

// RotateOptions tunes the rotation criteria
type RotateOptions struct {
	ObliminGamma float64
}

// Rotated holds rotated loadings and, for oblique rotations, the factor correlations
type Rotated struct {
	Loadings *mat.Dense
	Phi      *mat.Dense
}

// Rotate applies rotation to loadings. Single-factor solutions are returned unchanged.
func Rotate(loadings *mat.Dense, rotation Rotation, opts RotateOptions) (*Rotated, error) {
	p, k := loadings.Dims()
	if rotation == RotationNone || k < 2 {
		return &Rotated{Loadings: mat.DenseCopyOf(loadings)}, nil
	}

	switch rotation {
	case RotationVarimax:
		l, err := withKaiser(loadings, func(a *mat.Dense) (*mat.Dense, error) {
			l, _, err := gpaOrthogonal(a, varimaxCriterion)
			return l, err
		})
		if err != nil {
			return nil, err
		}
		return &Rotated{Loadings: l}, nil
	case RotationQuartimax:
		return orthogonal(loadings, quartimaxCriterion)
	case RotationEquamax:
		return orthogonal(loadings, crawfordFerguson(float64(k)/(2*float64(p))))
	case RotationOblimax:
		return orthogonal(loadings, oblimaxCriterion)
	case RotationGeominOrt:
		return orthogonal(loadings, geominCriterion)
	case RotationOblimin:
		return oblique(loadings, obliminCriterion(opts.ObliminGamma))
	case RotationQuartimin:
		return oblique(loadings, obliminCriterion(0))
	case RotationGeominObl:
		return oblique(loadings, geominCriterion)
	case RotationPromax:
		return promax(loadings)
	default:
		return nil, fmt.Errorf("unknown rotation: %s", rotation)
	}
}

// criterion returns the rotation objective and its gradient for loadings L
type criterion func(l *mat.Dense) (float64, *mat.Dense)

func orthogonal(a *mat.Dense, vgQ criterion) (*Rotated, error) {
	l, _, err := gpaOrthogonal(a, vgQ)
	if err != nil {
		return nil, err
	}
	return &Rotated{Loadings: l}, nil
}

func oblique(a *mat.Dense, vgQ criterion) (*Rotated, error) {
	l, t, err := gpaOblique(a, vgQ)
	if err != nil {
		return nil, err
	}
	return &Rotated{Loadings: l, Phi: mul(t.T(), t)}, nil
}

// gpaOrthogonal is the gradient projection algorithm over orthogonal matrices
func gpaOrthogonal(a *mat.Dense, vgQ criterion) (*mat.Dense, *mat.Dense, error) {
	_, k := a.Dims()
	t := identity(k)
	f, gq := vgQ(mul(a, t))
	g := mul(a.T(), gq)

	alpha := 1.0
	for iter := 0; iter < rotationMaxIter; iter++ {
		m := mul(t.T(), g)
		gp := sub(g, mul(t, symmetric(m)))
		s := mat.Norm(gp, 2)
		if s < rotationTol {
			break
		}

		alpha *= 2
		var (
			tt  *mat.Dense
			ft  float64
			gqt *mat.Dense
		)
		for i := 0; i <= 10; i++ {
			var err error
			tt, err = polar(sub(t, scaled(alpha, gp)))
			if err != nil {
				return nil, nil, err
			}
			ft, gqt = vgQ(mul(a, tt))
			if ft < f-0.5*s*s*alpha {
				break
			}
			alpha /= 2
		}

		t, f = tt, ft
		g = mul(a.T(), gqt)
	}

	return mul(a, t), t, nil
}

// gpaOblique is the gradient projection algorithm over matrices with unit-length columns
func gpaOblique(a *mat.Dense, vgQ criterion) (*mat.Dense, *mat.Dense, error) {
	_, k := a.Dims()
	t := identity(k)

	loadingsFor := func(t *mat.Dense) (*mat.Dense, *mat.Dense, error) {
		ti, err := inverse(t)
		if err != nil {
			return nil, nil, err
		}
		return mul(a, ti.T()), ti, nil
	}
	gradient := func(l, gq, ti *mat.Dense) *mat.Dense {
		g := mul(mul(l.T(), gq), ti)
		return scaled(-1, g.T())
	}

	l, ti, err := loadingsFor(t)
	if err != nil {
		return nil, nil, err
	}
	f, gq := vgQ(l)
	g := gradient(l, gq, ti)

	alpha := 1.0
	for iter := 0; iter < rotationMaxIter; iter++ {
		gp := mat.DenseCopyOf(g)
		for j := 0; j < k; j++ {
			c := 0.0
			for i := 0; i < k; i++ {
				c += t.At(i, j) * g.At(i, j)
			}
			for i := 0; i < k; i++ {
				gp.Set(i, j, g.At(i, j)-t.At(i, j)*c)
			}
		}
		s := mat.Norm(gp, 2)
		if s < rotationTol {
			break
		}

		alpha *= 2
		var (
			tt, lt, tit *mat.Dense
			ft          float64
			gqt         *mat.Dense
		)
		for i := 0; i <= 10; i++ {
			x := sub(t, scaled(alpha, gp))
			norms := colSumSquares(x)
			for j := 0; j < k; j++ {
				v := 1 / math.Sqrt(norms[j])
				for r := 0; r < k; r++ {
					x.Set(r, j, x.At(r, j)*v)
				}
			}
			tt = x
			lt, tit, err = loadingsFor(tt)
			if err != nil {
				return nil, nil, err
			}
			ft, gqt = vgQ(lt)
			if ft < f-0.5*s*s*alpha {
				break
			}
			alpha /= 2
		}

		t, f = tt, ft
		g = gradient(lt, gqt, tit)
	}

	l, _, err = loadingsFor(t)
	if err != nil {
		return nil, nil, err
	}
	return l, t, nil
}

// withKaiser row-normalizes a before rotating and restores the row lengths after
func withKaiser(a *mat.Dense, rotate func(*mat.Dense) (*mat.Dense, error)) (*mat.Dense, error) {
	p, k := a.Dims()
	h := rowSumSquares(a)
	for i := range h {
		h[i] = math.Sqrt(h[i])
		if h[i] == 0 {
			h[i] = 1
		}
	}

	normalized := mat.NewDense(p, k, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < k; j++ {
			normalized.Set(i, j, a.At(i, j)/h[i])
		}
	}

	rotated, err := rotate(normalized)
	if err != nil {
		return nil, err
	}
	for i := 0; i < p; i++ {
		for j := 0; j < k; j++ {
			rotated.Set(i, j, rotated.At(i, j)*h[i])
		}
	}
	return rotated, nil
}

// promax raises row-normalized varimax loadings to a power and fits an oblique
// target by least squares
func promax(a *mat.Dense) (*Rotated, error) {
	var phi *mat.Dense
	loadings, err := withKaiser(a, func(n *mat.Dense) (*mat.Dense, error) {
		x, _, err := gpaOrthogonal(n, varimaxCriterion)
		if err != nil {
			return nil, err
		}

		p, k := x.Dims()
		y := mat.NewDense(p, k, nil)
		for i := 0; i < p; i++ {
			for j := 0; j < k; j++ {
				v := x.At(i, j)
				y.Set(i, j, v*math.Pow(math.Abs(v), promaxPower-1))
			}
		}

		var coef mat.Dense
		if err := coef.Solve(x, y); err != nil {
			return nil, fmt.Errorf("promax target fit: %w", err)
		}

		ctc, err := inverse(mul(coef.T(), &coef))
		if err != nil {
			return nil, err
		}
		for j := 0; j < k; j++ {
			s := math.Sqrt(ctc.At(j, j))
			for i := 0; i < k; i++ {
				coef.Set(i, j, coef.At(i, j)*s)
			}
		}

		ci, err := inverse(&coef)
		if err != nil {
			return nil, err
		}
		phi = mul(ci, ci.T())

		return mul(x, &coef), nil
	})
	if err != nil {
		return nil, err
	}

	return &Rotated{Loadings: loadings, Phi: phi}, nil
}

func elementwise(a mat.Matrix, fn func(i, j int, v float64) float64) *mat.Dense {
	var m mat.Dense
	m.Apply(fn, a)
	return &m
}

func sumAll(a mat.Matrix) float64 {
	r, c := a.Dims()
	s := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			s += a.At(i, j)
		}
	}
	return s
}

func squared(l mat.Matrix) *mat.Dense {
	return elementwise(l, func(_, _ int, v float64) float64 { return v * v })
}

// offDiagonalOnes returns an n x n matrix of ones with a zero diagonal
func offDiagonalOnes(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				m.Set(i, j, 1)
			}
		}
	}
	return m
}

func quartimaxCriterion(l *mat.Dense) (float64, *mat.Dense) {
	l2 := squared(l)
	f := -sumAll(elementwise(l2, func(_, _ int, v float64) float64 { return v * v })) / 4
	gq := elementwise(l, func(_, _ int, v float64) float64 { return -v * v * v })
	return f, gq
}

func varimaxCriterion(l *mat.Dense) (float64, *mat.Dense) {
	p, _ := l.Dims()
	l2 := squared(l)
	means := colSumSquares(l)
	for j := range means {
		means[j] /= float64(p)
	}
	ql := elementwise(l2, func(_, j int, v float64) float64 { return v - means[j] })

	norm := mat.Norm(ql, 2)
	f := -norm * norm / 4
	var gq mat.Dense
	gq.MulElem(l, ql)
	gq.Scale(-1, &gq)
	return f, &gq
}

// crawfordFerguson is the orthomax family member weighting row complexity by 1-kappa
// and column complexity by kappa
func crawfordFerguson(kappa float64) criterion {
	return func(l *mat.Dense) (float64, *mat.Dense) {
		p, k := l.Dims()
		l2 := squared(l)
		rowPart := mul(l2, offDiagonalOnes(k))
		colPart := mul(offDiagonalOnes(p), l2)

		var f1, f2 mat.Dense
		f1.MulElem(l2, rowPart)
		f2.MulElem(l2, colPart)
		f := (1-kappa)*sumAll(&f1)/4 + kappa*sumAll(&f2)/4

		gq := elementwise(l, func(i, j int, v float64) float64 {
			return (1-kappa)*v*rowPart.At(i, j) + kappa*v*colPart.At(i, j)
		})
		return f, gq
	}
}

func oblimaxCriterion(l *mat.Dense) (float64, *mat.Dense) {
	sum4 := sumAll(elementwise(l, func(_, _ int, v float64) float64 { return math.Pow(v, 4) }))
	sum2 := sumAll(squared(l))

	f := -(math.Log(sum4) - 2*math.Log(sum2))
	gq := elementwise(l, func(_, _ int, v float64) float64 {
		return -(4*v*v*v/sum4 - 4*v/sum2)
	})
	return f, gq
}

func geominCriterion(l *mat.Dense) (float64, *mat.Dense) {
	p, k := l.Dims()
	l2 := elementwise(l, func(_, _ int, v float64) float64 { return v*v + geominEpsilon })

	pro := make([]float64, p)
	f := 0.0
	for i := 0; i < p; i++ {
		logSum := 0.0
		for j := 0; j < k; j++ {
			logSum += math.Log(l2.At(i, j))
		}
		pro[i] = math.Exp(logSum / float64(k))
		f += pro[i]
	}

	gq := elementwise(l, func(i, j int, v float64) float64 {
		return 2 / float64(k) * v / l2.At(i, j) * pro[i]
	})
	return f, gq
}

// obliminCriterion is direct oblimin; gamma 0 gives quartimin
func obliminCriterion(gamma float64) criterion {
	return func(l *mat.Dense) (float64, *mat.Dense) {
		p, k := l.Dims()
		l2 := squared(l)

		centering := identity(p)
		if gamma != 0 {
			centering = elementwise(centering, func(_, _ int, v float64) float64 {
				return v - gamma/float64(p)
			})
		}
		x := mul(mul(centering, l2), offDiagonalOnes(k))

		var fm mat.Dense
		fm.MulElem(l2, x)
		f := sumAll(&fm) / 4

		var gq mat.Dense
		gq.MulElem(l, x)
		return f, &gq
	}
}
