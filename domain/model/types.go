package model

import "gonum.org/v1/gonum/mat"

// Data is the observed-data bundle for the hierarchical logistic regression
// model. It is bound once per inference run and treated as immutable
// thereafter; every field is supplied by the caller before evaluation begins.
type Data struct {
	// N is the number of observations, D the number of predictors.
	N int
	D int

	// X is the N x D design matrix.
	X *mat.Dense

	// Y holds the binary outcomes; every entry must be 0 or 1.
	Y []int

	// MuPhi is the prior mean of the packed hyperparameter vector phi,
	// length 2D+2.
	MuPhi []float64

	// OmegaPhi is the (2D+2) x (2D+2) prior precision matrix for phi. It
	// must be symmetric positive-definite; symmetry is checked at bind
	// time within a tolerance and the upper triangle is taken as
	// authoritative.
	OmegaPhi *mat.Dense
}

// PhiDim returns the length of the packed hyperparameter vector for d
// predictors: [mu_a, log sigma_a, log sigma_b (d), mu_b (d)].
func PhiDim(d int) int { return 2*d + 2 }

// Packed layout of phi.
const (
	PhiMuA       = 0 // intercept location
	PhiLogSigmaA = 1 // log intercept scale
	phiHead      = 2
)

// PhiLogSigmaB returns the index of log sigma_b[j] within phi.
func PhiLogSigmaB(j int) int { return phiHead + j }

// PhiMuB returns the index of mu_b[j] within phi for d predictors.
func PhiMuB(d, j int) int { return phiHead + d + j }

// Point is a candidate assignment of the unknown parameters. All three
// components live in unconstrained space; positivity of the scales comes from
// the exp transform in Derive, not from any boundary on Phi.
type Point struct {
	Phi []float64 // packed hyperparameters, length 2D+2
	Eta float64   // standard-normal auxiliary for the intercept
	Etb []float64 // standard-normal auxiliaries for the slopes, length D
}

// Derived holds the deterministic quantities computed from a Point. They
// carry no randomness of their own and are recomputed fresh on every
// evaluation.
type Derived struct {
	Alpha  float64 // intercept, mu_a + eta*sigma_a
	SigmaA float64 // intercept scale, exp(phi[1])
	MuA    float64 // intercept location, phi[0]

	Beta   []float64 // slopes, mu_b + etb*sigma_b elementwise
	SigmaB []float64 // slope scales, exp of the log-sigma_b block
	MuB    []float64 // slope locations, trailing D entries of phi
}
