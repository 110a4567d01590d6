package trace

import (
	"github.com/montanaflynn/stats"

	"hierlogit/internal/errors"
)

// QuantitySummary describes the pooled draws of one derived quantity.
type QuantitySummary struct {
	Mean   float64
	StdDev float64
	Median float64
	P5     float64
	P95    float64
}

// Summary holds per-quantity summaries over all chains of a run.
type Summary struct {
	Alpha  QuantitySummary
	SigmaA QuantitySummary
	MuA    QuantitySummary
	Beta   []QuantitySummary
	SigmaB []QuantitySummary
	MuB    []QuantitySummary
}

// Summarize pools the recorded draws of every chain and computes summary
// statistics for each derived quantity. Vector quantities are summarized per
// coordinate; the coordinate count is taken from the first recorded draw.
func (r *Recorder) Summarize() (*Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, draws := range r.chains {
		total += len(draws)
	}
	if total == 0 {
		return nil, errors.InvalidInput("no draws recorded")
	}

	var d int
	alpha := make([]float64, 0, total)
	sigmaA := make([]float64, 0, total)
	muA := make([]float64, 0, total)
	var beta, sigmaB, muB [][]float64
	for _, draws := range r.chains {
		for _, draw := range draws {
			if beta == nil {
				d = len(draw.Beta)
				beta = makeColumns(d, total)
				sigmaB = makeColumns(d, total)
				muB = makeColumns(d, total)
			}
			if len(draw.Beta) != d {
				return nil, errors.DimensionMismatchf("recorded draws disagree on dimension: %d vs %d", len(draw.Beta), d)
			}
			alpha = append(alpha, draw.Alpha)
			sigmaA = append(sigmaA, draw.SigmaA)
			muA = append(muA, draw.MuA)
			for j := 0; j < d; j++ {
				beta[j] = append(beta[j], draw.Beta[j])
				sigmaB[j] = append(sigmaB[j], draw.SigmaB[j])
				muB[j] = append(muB[j], draw.MuB[j])
			}
		}
	}

	out := &Summary{
		Beta:   make([]QuantitySummary, d),
		SigmaB: make([]QuantitySummary, d),
		MuB:    make([]QuantitySummary, d),
	}
	var err error
	if out.Alpha, err = summarize(alpha); err != nil {
		return nil, err
	}
	if out.SigmaA, err = summarize(sigmaA); err != nil {
		return nil, err
	}
	if out.MuA, err = summarize(muA); err != nil {
		return nil, err
	}
	for j := 0; j < d; j++ {
		if out.Beta[j], err = summarize(beta[j]); err != nil {
			return nil, err
		}
		if out.SigmaB[j], err = summarize(sigmaB[j]); err != nil {
			return nil, err
		}
		if out.MuB[j], err = summarize(muB[j]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func makeColumns(d, capacity int) [][]float64 {
	cols := make([][]float64, d)
	for j := range cols {
		cols[j] = make([]float64, 0, capacity)
	}
	return cols
}

func summarize(data []float64) (QuantitySummary, error) {
	var qs QuantitySummary
	var err error
	if qs.Mean, err = stats.Mean(data); err != nil {
		return qs, errors.Wrap(err, "computing mean")
	}
	if qs.StdDev, err = stats.StandardDeviation(data); err != nil {
		return qs, errors.Wrap(err, "computing standard deviation")
	}
	if qs.Median, err = stats.Median(data); err != nil {
		return qs, errors.Wrap(err, "computing median")
	}
	// Nearest-rank percentiles stay defined even for very short chains.
	if qs.P5, err = stats.PercentileNearestRank(data, 5); err != nil {
		return qs, errors.Wrap(err, "computing 5th percentile")
	}
	if qs.P95, err = stats.PercentileNearestRank(data, 95); err != nil {
		return qs, errors.Wrap(err, "computing 95th percentile")
	}
	return qs, nil
}
