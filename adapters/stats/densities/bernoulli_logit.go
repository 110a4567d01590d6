package densities

import "math"

// BernoulliLogit is the log-likelihood kernel for a binary outcome expressed
// directly in terms of the log-odds: log p(y) = y*z - log(1+exp(z)). Working
// on the logit scale keeps extreme linear predictors finite where a
// probability-then-log formulation would round to 0 or 1 first.
type BernoulliLogit struct{}

// NewBernoulliLogit creates a new Bernoulli-logit kernel
func NewBernoulliLogit() BernoulliLogit {
	return BernoulliLogit{}
}

// LogProb returns the log-likelihood of outcome y (0 or 1) under logit z.
func (BernoulliLogit) LogProb(y int, z float64) float64 {
	return float64(y)*z - log1pExp(z)
}

// log1pExp computes log(1+exp(z)) via the identity
// max(z,0) + log1p(exp(-|z|)), which never overflows: the exp argument is
// always non-positive.
func log1pExp(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}
