package model

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"hierlogit/internal/errors"
)

func validData() Data {
	return Data{
		N:        3,
		D:        1,
		X:        mat.NewDense(3, 1, []float64{0, 1, 2}),
		Y:        []int{0, 1, 1},
		MuPhi:    []float64{0, 0, 0, 0},
		OmegaPhi: identity(4),
	}
}

func identity(k int) *mat.Dense {
	m := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func TestValidate_AcceptsWellFormedData(t *testing.T) {
	if err := validData().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Data)
	}{
		{"zero N", func(d *Data) { d.N = 0 }},
		{"zero D", func(d *Data) { d.D = 0 }},
		{"nil X", func(d *Data) { d.X = nil }},
		{"X wrong shape", func(d *Data) { d.X = mat.NewDense(2, 1, []float64{0, 1}) }},
		{"y wrong length", func(d *Data) { d.Y = []int{0, 1} }},
		{"mu_phi wrong length", func(d *Data) { d.MuPhi = []float64{0, 0, 0} }},
		{"nil Omega", func(d *Data) { d.OmegaPhi = nil }},
		{"Omega wrong shape", func(d *Data) { d.OmegaPhi = identity(3) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := validData()
			tc.mutate(&data)
			err := data.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.GetCode(err) != errors.CodeDimensionMismatch {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeDimensionMismatch)
			}
		})
	}
}

func TestValidate_RejectsNonBinaryOutcomes(t *testing.T) {
	data := validData()
	data.Y = []int{0, 2, 1}
	err := data.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.GetCode(err) != errors.CodeDomainViolation {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeDomainViolation)
	}
}

func TestPrecisionMatrix_MirrorsUpperTriangle(t *testing.T) {
	data := validData()
	omega := identity(4)
	omega.Set(0, 1, 0.25)
	omega.Set(1, 0, 0.25)
	data.OmegaPhi = omega

	sym, err := data.PrecisionMatrix(1e-8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sym.At(1, 0); got != 0.25 {
		t.Errorf("mirrored entry = %v, want 0.25", got)
	}
}

func TestPrecisionMatrix_RejectsAsymmetry(t *testing.T) {
	data := validData()
	omega := identity(4)
	omega.Set(0, 1, 0.25)
	omega.Set(1, 0, -0.25)
	data.OmegaPhi = omega

	if _, err := data.PrecisionMatrix(1e-8); err == nil {
		t.Fatal("expected an error for asymmetric Omega")
	}
}

func TestCheckPoint(t *testing.T) {
	data := validData()
	good := Point{Phi: make([]float64, 4), Etb: make([]float64, 1)}
	if err := data.CheckPoint(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := data.CheckPoint(Point{Phi: make([]float64, 3), Etb: make([]float64, 1)}); err == nil {
		t.Error("expected an error for short phi")
	}
	if err := data.CheckPoint(Point{Phi: make([]float64, 4), Etb: nil}); err == nil {
		t.Error("expected an error for missing etb")
	}
}
