package model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"hierlogit/internal/errors"
)

// Validate checks every declared-size constraint and the outcome domain.
// It runs once at bind time; evaluation assumes the checks already hold.
func (d Data) Validate() error {
	if d.N < 1 {
		return errors.DimensionMismatchf("N must be at least 1, got %d", d.N)
	}
	if d.D < 1 {
		return errors.DimensionMismatchf("D must be at least 1, got %d", d.D)
	}
	if d.X == nil {
		return errors.DimensionMismatch("design matrix X is required")
	}
	if r, c := d.X.Dims(); r != d.N || c != d.D {
		return errors.DimensionMismatchf("X must be %dx%d, got %dx%d", d.N, d.D, r, c)
	}
	if len(d.Y) != d.N {
		return errors.DimensionMismatchf("y must have length %d, got %d", d.N, len(d.Y))
	}
	for _, v := range d.Y {
		if v != 0 && v != 1 {
			return errors.DomainViolation("y values must be 0 or 1")
		}
	}
	k := PhiDim(d.D)
	if len(d.MuPhi) != k {
		return errors.DimensionMismatchf("mu_phi must have length %d, got %d", k, len(d.MuPhi))
	}
	if d.OmegaPhi == nil {
		return errors.DimensionMismatch("prior precision Omega_phi is required")
	}
	if r, c := d.OmegaPhi.Dims(); r != k || c != k {
		return errors.DimensionMismatchf("Omega_phi must be %dx%d, got %dx%d", k, k, r, c)
	}
	return nil
}

// PrecisionMatrix checks that Omega_phi is symmetric within tol and returns
// it as a symmetric matrix, mirroring the upper triangle into the lower half.
// Positive-definiteness is checked later, by the Cholesky factorization of
// the prior.
func (d Data) PrecisionMatrix(tol float64) (*mat.SymDense, error) {
	k, _ := d.OmegaPhi.Dims()
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if math.Abs(d.OmegaPhi.At(i, j)-d.OmegaPhi.At(j, i)) > tol {
				return nil, errors.DegeneratePrecision("Omega_phi is not symmetric")
			}
		}
	}
	sym := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			sym.SetSym(i, j, d.OmegaPhi.At(i, j))
		}
	}
	return sym, nil
}

// CheckPoint verifies that a candidate point matches the bound dimensions.
// The check is cheap enough to run on every evaluation.
func (d Data) CheckPoint(p Point) error {
	if want := PhiDim(d.D); len(p.Phi) != want {
		return errors.DimensionMismatchf("phi must have length %d, got %d", want, len(p.Phi))
	}
	if len(p.Etb) != d.D {
		return errors.DimensionMismatchf("etb must have length %d, got %d", d.D, len(p.Etb))
	}
	return nil
}
