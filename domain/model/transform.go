package model

import "math"

// Derive applies the non-centered reparameterization, turning the packed
// hyperparameters and the standard-normal auxiliaries into the model's actual
// intercept and slopes. The transform keeps the sampled space decorrelated:
// the engine proposes phi, eta and etb against fixed reference distributions
// and the location/scale structure is applied here deterministically.
//
// Derive is a pure function and must be re-run whenever the point changes;
// results are never cached across evaluations.
func Derive(p Point, d int) Derived {
	muA := p.Phi[PhiMuA]
	sigmaA := math.Exp(p.Phi[PhiLogSigmaA])

	der := Derived{
		MuA:    muA,
		SigmaA: sigmaA,
		Alpha:  muA + p.Eta*sigmaA,
		Beta:   make([]float64, d),
		SigmaB: make([]float64, d),
		MuB:    make([]float64, d),
	}
	for j := 0; j < d; j++ {
		sb := math.Exp(p.Phi[PhiLogSigmaB(j)])
		mb := p.Phi[PhiMuB(d, j)]
		der.SigmaB[j] = sb
		der.MuB[j] = mb
		der.Beta[j] = mb + p.Etb[j]*sb
	}
	return der
}
