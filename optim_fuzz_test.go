package optim

import (
	"math"
	"testing"
)

// clamp helpers
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func allFinite(xs []float64) bool {
	for _, v := range xs {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// FuzzAdamStep drives Adam across arbitrary valid hyperparameters and
// gradient magnitudes and asserts the eps floor keeps parameters and both
// moment estimates finite.
func FuzzAdamStep(f *testing.F) {
	f.Add(1e-3, 0.9, 0.999, 1.0, 50)
	f.Add(1.0, 0.0, 0.0, 1e-9, 10)
	f.Add(1e-6, 0.99, 0.9999, 1e6, 100)

	f.Fuzz(func(t *testing.T, lr, beta1, beta2, mag float64, steps int) {
		lr = clamp(lr, 1e-9, 10.0)
		// Keep strictly below 1 so the same inputs also exercise the
		// bias-corrected form without a zero denominator.
		beta1 = clamp(beta1, 0.0, 1.0-1e-12)
		beta2 = clamp(beta2, 0.0, 1.0-1e-12)
		mag = clamp(mag, 0.0, 1e6)
		if steps < 1 {
			steps = 1
		}
		if steps > 200 {
			steps = 200
		}

		for _, corrected := range []bool{false, true} {
			opt, err := NewAdam(AdamConfig{LR: lr, Beta1: beta1, Beta2: beta2, BiasCorrection: corrected})
			if err != nil {
				t.Fatalf("NewAdam rejected valid hyperparameters: %v", err)
			}

			dim := 16
			theta := buildParams(dim)
			if err := opt.Init(vectors(theta)); err != nil {
				t.Fatalf("Init error: %v", err)
			}

			for s := 0; s < steps; s++ {
				g := buildGradient(dim, s, mag)
				if err := opt.Step(vectors(g)); err != nil {
					t.Fatalf("Step error at %d: %v", s, err)
				}
			}

			if !allFinite(theta) {
				t.Fatalf("non-finite parameter (corrected=%v, lr=%g, b1=%g, b2=%g, mag=%g)",
					corrected, lr, beta1, beta2, mag)
			}
			for key, buf := range opt.StateDict() {
				if !allFinite(buf) {
					t.Fatalf("non-finite state %s (corrected=%v)", key, corrected)
				}
			}
		}
	})
}

// FuzzRMSPropStep mirrors FuzzAdamStep for the single-moment rule.
func FuzzRMSPropStep(f *testing.F) {
	f.Add(1e-3, 0.9, 1.0, 50)
	f.Add(0.5, 0.0, 1e-12, 5)

	f.Fuzz(func(t *testing.T, lr, decay, mag float64, steps int) {
		lr = clamp(lr, 1e-9, 10.0)
		decay = clamp(decay, 0.0, 1.0)
		mag = clamp(mag, 0.0, 1e6)
		if steps < 1 {
			steps = 1
		}
		if steps > 200 {
			steps = 200
		}

		opt, err := NewRMSProp(RMSPropConfig{LR: lr, DecayRate: decay})
		if err != nil {
			t.Fatalf("NewRMSProp rejected valid hyperparameters: %v", err)
		}

		dim := 16
		theta := buildParams(dim)
		if err := opt.Init(vectors(theta)); err != nil {
			t.Fatalf("Init error: %v", err)
		}
		for s := 0; s < steps; s++ {
			if err := opt.Step(vectors(buildGradient(dim, s, mag))); err != nil {
				t.Fatalf("Step error at %d: %v", s, err)
			}
		}
		if !allFinite(theta) {
			t.Fatalf("non-finite parameter (lr=%g, decay=%g, mag=%g)", lr, decay, mag)
		}
	})
}
