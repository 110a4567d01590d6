package moments

import (
	"gonum.org/v1/gonum/mat"

	"hierlogit/internal/errors"
)

// InvertNormalParams switches a multivariate normal between moment
// parameters (S, m) and natural parameters (Q, r). Providing (S, m) yields
// (Q, r) and vice versa: the matrix result is a's inverse and the vector
// result solves a*x = b. The flip goes through a single Cholesky
// factorization, so it fails cleanly when a is not positive-definite.
//
// b may be nil when only the matrix flip is needed; the vector result is nil
// in that case.
func InvertNormalParams(a *mat.SymDense, b []float64) (*mat.SymDense, []float64, error) {
	k := a.SymmetricDim()
	if b != nil && len(b) != k {
		return nil, nil, errors.DimensionMismatchf(
			"matrix is %dx%d but vector has length %d", k, k, len(b))
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return nil, nil, errors.DegeneratePrecision("matrix is not positive-definite")
	}

	inv := mat.NewSymDense(k, nil)
	if err := chol.InverseTo(inv); err != nil {
		return nil, nil, errors.Wrap(err, "inverting normal parameters")
	}

	var flipped []float64
	if b != nil {
		dst := mat.NewVecDense(k, nil)
		if err := chol.SolveVecTo(dst, mat.NewVecDense(k, b)); err != nil {
			return nil, nil, errors.Wrap(err, "solving for the paired vector")
		}
		flipped = make([]float64, k)
		copy(flipped, dst.RawVector().Data)
	}
	return inv, flipped, nil
}

// HalfLogDet returns half the log-determinant of a symmetric
// positive-definite matrix, i.e. the sum of the log-diagonal of its Cholesky
// factor. This is the constant the precision-parameterized normal density
// needs.
func HalfLogDet(a *mat.SymDense) (float64, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return 0, errors.DegeneratePrecision("matrix is not positive-definite")
	}
	return 0.5 * chol.LogDet(), nil
}
