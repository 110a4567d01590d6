package densities

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"hierlogit/internal/errors"
)

// PrecisionNormal is a multivariate normal log-density parameterized by its
// precision matrix rather than its covariance. The precision form needs only
// a quadratic form and a log-determinant per evaluation, so the matrix is
// factorized exactly once, at construction, and never inverted.
type PrecisionNormal struct {
	mean []float64
	prec *mat.SymDense
	dist *distmv.Normal
}

// NewPrecisionNormal constructs the kernel from a mean vector and a symmetric
// precision matrix. A precision that is not positive-definite fails here, at
// the first and only factorization, rather than surfacing NaNs during
// evaluation.
func NewPrecisionNormal(mean []float64, prec *mat.SymDense) (*PrecisionNormal, error) {
	if prec.SymmetricDim() != len(mean) {
		return nil, errors.DimensionMismatchf(
			"precision matrix is %dx%d but mean has length %d",
			prec.SymmetricDim(), prec.SymmetricDim(), len(mean))
	}
	dist, ok := distmv.NewNormalPrecision(mean, prec, nil)
	if !ok {
		return nil, errors.DegeneratePrecision("precision matrix is not positive-definite")
	}

	meanCopy := make([]float64, len(mean))
	copy(meanCopy, mean)
	precCopy := mat.NewSymDense(prec.SymmetricDim(), nil)
	precCopy.CopySym(prec)

	return &PrecisionNormal{
		mean: meanCopy,
		prec: precCopy,
		dist: dist,
	}, nil
}

// Dim returns the dimensionality of the kernel.
func (pn *PrecisionNormal) Dim() int {
	return len(pn.mean)
}

// LogProb returns the log-density at x, including the normalizing constant.
func (pn *PrecisionNormal) LogProb(x []float64) float64 {
	return pn.dist.LogProb(x)
}

// QuadForm returns (x-mean)' * Omega * (x-mean), the exponent term of the
// precision-parameterized density. Exposed for verification against direct
// matrix arithmetic.
func (pn *PrecisionNormal) QuadForm(x []float64) float64 {
	k := len(pn.mean)
	dev := mat.NewVecDense(k, nil)
	for i := 0; i < k; i++ {
		dev.SetVec(i, x[i]-pn.mean[i])
	}
	tmp := mat.NewVecDense(k, nil)
	tmp.MulVec(pn.prec, dev)
	return mat.Dot(dev, tmp)
}
