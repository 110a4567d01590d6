package moments

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"hierlogit/internal/errors"
)

const logTwoPi = 1.8378770664093453

// CVMomentsParams bundles the inputs of a control-variate moment estimate.
type CVMomentsParams struct {
	// Samples holds the draws from the distribution being approximated,
	// one row per draw.
	Samples *mat.Dense

	// LogP is the target log-density at each sample row.
	LogP []float64

	// Q and R are the natural parameters (precision, precision*mean) of
	// the Gaussian control distribution.
	Q *mat.SymDense
	R []float64

	// RegulateA multiplies the estimated correlation coefficient a.
	// Values closer to zero trade bias for variance; 1 leaves the
	// estimate untouched, 0 disables the control variate entirely.
	RegulateA float64

	// MaxA caps |a| when positive; zero means unlimited.
	MaxA float64
}

// CVMomentsResult holds the corrected moment estimates together with the
// correlation coefficients that produced them.
type CVMomentsResult struct {
	S  *mat.SymDense // covariance estimate
	M  []float64     // mean estimate
	AS *mat.Dense    // per-entry coefficients used for the covariance
	AM []float64     // per-coordinate coefficients used for the mean
}

// CVMoments approximates the mean and covariance of a distribution from
// weighted samples, using a Gaussian control variate given in natural
// parameters. The control's own moments are recovered with
// InvertNormalParams, its log-density at each sample comes from the
// precision quadratic form, and the probability ratios drive a per-component
// regression coefficient a that shrinks the plain sample moments toward the
// control's known moments.
func CVMoments(p CVMomentsParams) (*CVMomentsResult, error) {
	if p.Samples == nil {
		return nil, errors.InvalidInput("samples are required")
	}
	n, d := p.Samples.Dims()
	if n < 2 {
		return nil, errors.InvalidInput("at least two samples are required")
	}
	if len(p.LogP) != n {
		return nil, errors.DimensionMismatchf("log-density vector must have length %d, got %d", n, len(p.LogP))
	}
	if p.Q.SymmetricDim() != d || len(p.R) != d {
		return nil, errors.DimensionMismatchf("control parameters must have dimension %d", d)
	}

	// Control distribution moments and normalizing constant.
	sTilde, mTilde, err := InvertNormalParams(p.Q, p.R)
	if err != nil {
		return nil, errors.Wrap(err, "recovering control moments")
	}
	halfLogDet, err := HalfLogDet(p.Q)
	if err != nil {
		return nil, err
	}
	logConst := halfLogDet - 0.5*float64(d)*logTwoPi

	// Control log-density and probability ratio at each sample.
	dev := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			dev.Set(i, j, p.Samples.At(i, j)-mTilde[j])
		}
	}
	pr := make([]float64, n)
	tmp := mat.NewVecDense(d, nil)
	for i := 0; i < n; i++ {
		row := mat.NewVecDense(d, mat.Row(nil, i, dev))
		tmp.MulVec(p.Q, row)
		lpTilde := logConst - 0.5*mat.Dot(row, tmp)
		pr[i] = math.Exp(lpTilde - p.LogP[i])
	}

	res := &CVMomentsResult{
		S:  mat.NewSymDense(d, nil),
		M:  make([]float64, d),
		AS: mat.NewDense(d, d, nil),
		AM: make([]float64, d),
	}

	// Mean estimate.
	for j := 0; j < d; j++ {
		col := mat.Col(nil, j, p.Samples)
		fs := 0.0
		for _, v := range col {
			fs += v
		}
		fMean := fs / float64(n)

		hs := 0.0
		varH := 0.0
		covFH := 0.0
		for i, v := range col {
			h := v * pr[i]
			hs += h
			hc := h - mTilde[j]
			varH += hc * hc
			covFH += (v - fMean) * hc
		}

		a := 0.0
		if varH > 0 {
			// Unbiased: var_h over n, cov_fh over n-1.
			a = covFH * float64(n) / (varH * float64(n-1))
		}
		a = clampA(a*p.RegulateA, p.MaxA)
		res.AM[j] = a
		res.M[j] = (fs-a*hs)/float64(n) + a*mTilde[j]
	}

	// Covariance estimate. Deviations for the target side use the new mean
	// estimate; the control side keeps deviations from the control mean.
	dev2 := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			dev2.Set(i, j, p.Samples.At(i, j)-res.M[j])
		}
	}
	for j := 0; j < d; j++ {
		for k := j; k < d; k++ {
			fm := 0.0
			for i := 0; i < n; i++ {
				fm += dev2.At(i, j) * dev2.At(i, k)
			}
			fm /= float64(n - 1)

			hs := 0.0
			varH := 0.0
			covFH := 0.0
			for i := 0; i < n; i++ {
				h := pr[i] * dev.At(i, j) * dev.At(i, k)
				hs += h
				hc := h - sTilde.At(j, k)
				varH += hc * hc
				covFH += (dev2.At(i, j)*dev2.At(i, k) - fm) * hc
			}

			a := 0.0
			if varH > 0 {
				a = covFH * float64(n) / (varH * float64(n-1))
			}
			a = clampA(a*p.RegulateA, p.MaxA)
			res.AS.Set(j, k, a)
			res.AS.Set(k, j, a)
			res.S.SetSym(j, k, fm-a*hs/float64(n)+a*sTilde.At(j, k))
		}
	}
	return res, nil
}

func clampA(a, maxA float64) float64 {
	if maxA > 0 {
		return math.Max(math.Min(a, maxA), -maxA)
	}
	return a
}

// SampleMoments returns the plain sample mean and covariance, the a=0
// baseline of CVMoments. Exposed mostly for comparison in hosts that want to
// judge whether the control variate helped.
func SampleMoments(samples *mat.Dense) (*mat.SymDense, []float64, error) {
	if samples == nil {
		return nil, nil, errors.InvalidInput("samples are required")
	}
	n, d := samples.Dims()
	if n < 2 {
		return nil, nil, errors.InvalidInput("at least two samples are required")
	}
	m := make([]float64, d)
	for j := 0; j < d; j++ {
		m[j] = stat.Mean(mat.Col(nil, j, samples), nil)
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, samples, nil)
	return &cov, m, nil
}
