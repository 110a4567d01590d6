package moments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testSamples() *mat.Dense {
	// Fixed 2-dim draws, loosely centered at (1, -1).
	return mat.NewDense(6, 2, []float64{
		0.8, -1.2,
		1.3, -0.7,
		0.5, -1.5,
		1.1, -0.9,
		1.6, -0.4,
		0.7, -1.3,
	})
}

// TestCVMoments_ZeroRegulationIsSampleMoments: with the coefficient a forced
// to zero the control variate drops out and the estimates are the plain
// sample mean and covariance.
func TestCVMoments_ZeroRegulationIsSampleMoments(t *testing.T) {
	samples := testSamples()
	n, _ := samples.Dims()

	res, err := CVMoments(CVMomentsParams{
		Samples:   samples,
		LogP:      make([]float64, n),
		Q:         mat.NewSymDense(2, []float64{1, 0, 0, 1}),
		R:         []float64{1, -1},
		RegulateA: 0,
	})
	require.NoError(t, err)

	wantS, wantM, err := SampleMoments(samples)
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		assert.InDelta(t, wantM[j], res.M[j], 1e-10, "mean[%d]", j)
		assert.Zero(t, res.AM[j])
		for k := 0; k < 2; k++ {
			assert.InDelta(t, wantS.At(j, k), res.S.At(j, k), 1e-10, "cov[%d,%d]", j, k)
		}
	}
}

// TestCVMoments_CoefficientsClipped verifies MaxA caps |a|.
func TestCVMoments_CoefficientsClipped(t *testing.T) {
	samples := testSamples()
	n, _ := samples.Dims()
	lp := make([]float64, n)
	for i := range lp {
		lp[i] = -2.5 // arbitrary target log-densities
	}

	res, err := CVMoments(CVMomentsParams{
		Samples:   samples,
		LogP:      lp,
		Q:         mat.NewSymDense(2, []float64{1, 0, 0, 1}),
		R:         []float64{1, -1},
		RegulateA: 1,
		MaxA:      0.1,
	})
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		assert.LessOrEqual(t, res.AM[j], 0.1)
		assert.GreaterOrEqual(t, res.AM[j], -0.1)
		for k := 0; k < 2; k++ {
			assert.LessOrEqual(t, res.AS.At(j, k), 0.1)
			assert.GreaterOrEqual(t, res.AS.At(j, k), -0.1)
		}
	}
	for j := 0; j < 2; j++ {
		assert.False(t, res.S.At(j, j) <= 0, "variance estimate must stay positive on the diagonal")
	}
}

func TestCVMoments_RejectsBadInputs(t *testing.T) {
	samples := testSamples()
	n, _ := samples.Dims()
	q := mat.NewSymDense(2, []float64{1, 0, 0, 1})

	_, err := CVMoments(CVMomentsParams{Samples: nil})
	require.Error(t, err)

	_, err = CVMoments(CVMomentsParams{
		Samples: samples, LogP: make([]float64, n-1), Q: q, R: []float64{0, 0},
	})
	require.Error(t, err)

	_, err = CVMoments(CVMomentsParams{
		Samples: samples, LogP: make([]float64, n), Q: q, R: []float64{0},
	})
	require.Error(t, err)

	_, err = CVMoments(CVMomentsParams{
		Samples: samples,
		LogP:    make([]float64, n),
		Q:       mat.NewSymDense(2, []float64{1, 2, 2, 1}), // not PD
		R:       []float64{0, 0},
	})
	require.Error(t, err)
}
