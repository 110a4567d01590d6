package moments

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestInvertNormalParams_Identity: identity covariance flips to identity
// precision and the vector passes through.
func TestInvertNormalParams_Identity(t *testing.T) {
	s := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	m := []float64{1.5, -2}

	q, r, err := InvertNormalParams(s, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(q.At(i, j)-want) > 1e-12 {
				t.Errorf("Q[%d,%d] = %v, want %v", i, j, q.At(i, j), want)
			}
		}
		if math.Abs(r[i]-m[i]) > 1e-12 {
			t.Errorf("r[%d] = %v, want %v", i, r[i], m[i])
		}
	}
}

// TestInvertNormalParams_RoundTrip: flipping twice recovers the original
// moment parameters.
func TestInvertNormalParams_RoundTrip(t *testing.T) {
	s := mat.NewSymDense(2, []float64{2, 0.3, 0.3, 1})
	m := []float64{1, -2}

	q, r, err := InvertNormalParams(s, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s2, m2, err := InvertNormalParams(q, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(s2.At(i, j)-s.At(i, j)) > 1e-10 {
				t.Errorf("S[%d,%d] = %v, want %v", i, j, s2.At(i, j), s.At(i, j))
			}
		}
		if math.Abs(m2[i]-m[i]) > 1e-10 {
			t.Errorf("m[%d] = %v, want %v", i, m2[i], m[i])
		}
	}
}

func TestInvertNormalParams_NilVector(t *testing.T) {
	s := mat.NewSymDense(2, []float64{2, 0.3, 0.3, 1})
	q, r, err := InvertNormalParams(s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Errorf("expected nil vector result, got %v", r)
	}
	if q == nil {
		t.Error("expected a matrix result")
	}
}

func TestInvertNormalParams_RejectsNonPositiveDefinite(t *testing.T) {
	s := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	if _, _, err := InvertNormalParams(s, nil); err == nil {
		t.Fatal("expected an error for a non-PD matrix")
	}
}

func TestHalfLogDet(t *testing.T) {
	s := mat.NewSymDense(2, []float64{4, 0, 0, 9})
	got, err := HalfLogDet(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 0.5 * math.Log(36)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("half log-det = %v, want %v", got, want)
	}
}
