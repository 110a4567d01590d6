package densities

import "gonum.org/v1/gonum/stat/distuv"

// StdNormal is the standard normal log-density kernel. The non-centering
// auxiliary variables eta and etb are scored against it directly; their
// location/scale structure lives in the deterministic transform instead.
type StdNormal struct{}

// NewStdNormal creates a new standard normal kernel
func NewStdNormal() StdNormal {
	return StdNormal{}
}

// LogProb returns the standard normal log-density at x.
func (StdNormal) LogProb(x float64) float64 {
	return distuv.UnitNormal.LogProb(x)
}

// LogProbSum returns the joint log-density of independent standard normal
// draws.
func (s StdNormal) LogProbSum(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += s.LogProb(x)
	}
	return sum
}
