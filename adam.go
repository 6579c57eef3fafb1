package optim

import "fmt"

// Adam keeps exponential moving averages of gradients (first moment) and
// squared gradients (second moment). Update, per parameter (element-wise):
//
//	m := beta1 * m + (1 - beta1) * g
//	v := beta2 * v + (1 - beta2) * g^2
//	p := p - lr * m / (sqrt(v) + eps)
//
// By default the update is NOT bias-corrected, matching the classic
// coursework formulation: early steps are damped because m and v start at
// zero. Set BiasCorrection to divide the moments by (1 - beta^t) as in the
// canonical algorithm.
type Adam struct {
	lr             float64
	beta1          float64
	beta2          float64
	biasCorrection bool
	maxGradNorm    float64
	schedule       Schedule
	binding
	m    [][]float64 // first-moment estimates
	v    [][]float64 // second-moment estimates
	work [][]float64 // scratch, reused across steps to avoid allocation

	t        int64
	powBeta1 float64
	powBeta2 float64
}

// AdamConfig holds configuration for the Adam rule.
type AdamConfig struct {
	LR             float64  // learning rate, must be > 0
	Beta1          float64  // first-moment decay rate, in [0, 1]
	Beta2          float64  // second-moment decay rate, in [0, 1]
	BiasCorrection bool     // enable the canonical (1 - beta^t) correction
	MaxGradNorm    float64  // optional global L2 gradient clip; <= 0 disables
	Schedule       Schedule // optional learning-rate schedule; nil means constant 1
}

// DefaultAdamConfig returns the documented defaults
// (lr = 1e-3, beta1 = 0.9, beta2 = 0.999, no bias correction).
func DefaultAdamConfig() AdamConfig {
	return AdamConfig{LR: 1e-3, Beta1: 0.9, Beta2: 0.999}
}

// NewAdam creates an Adam rule, validating the configuration.
func NewAdam(cfg AdamConfig) (*Adam, error) {
	if err := validateLR(cfg.LR); err != nil {
		return nil, err
	}
	if err := validateUnitInterval("first decay rate", cfg.Beta1); err != nil {
		return nil, err
	}
	if err := validateUnitInterval("second decay rate", cfg.Beta2); err != nil {
		return nil, err
	}
	if cfg.BiasCorrection && (cfg.Beta1 == 1 || cfg.Beta2 == 1) {
		return nil, fmt.Errorf("optim: bias correction requires decay rates strictly below 1, got %g/%g",
			cfg.Beta1, cfg.Beta2)
	}
	return &Adam{
		lr:             cfg.LR,
		beta1:          cfg.Beta1,
		beta2:          cfg.Beta2,
		biasCorrection: cfg.BiasCorrection,
		maxGradNorm:    cfg.MaxGradNorm,
		schedule:       orFixed(cfg.Schedule),
		powBeta1:       1.0,
		powBeta2:       1.0,
	}, nil
}

// Init binds the parameter tensors and allocates both moment estimates and
// scratch buffers, zero-filled and shape-matched.
func (o *Adam) Init(params []Tensor) error {
	if err := o.bind(params); err != nil {
		return err
	}
	o.m = make([][]float64, len(o.params))
	o.v = make([][]float64, len(o.params))
	o.work = make([][]float64, len(o.params))
	for i, p := range o.params {
		o.m[i] = zerosLike(p)
		o.v[i] = zerosLike(p)
		o.work[i] = zerosLike(p)
	}
	o.t = 0
	o.powBeta1 = 1.0
	o.powBeta2 = 1.0
	return nil
}

// Step applies the Adam update to every bound parameter and both moment
// estimates in place.
func (o *Adam) Step(grads []Tensor) error {
	if err := o.checkGrads(grads); err != nil {
		return err
	}
	step := o.lr * o.schedule.Eta() * clipFactor(o.maxGradNorm, grads)

	o.t++
	o.powBeta1 *= o.beta1
	o.powBeta2 *= o.beta2
	invBC1, invBC2 := 1.0, 1.0
	if o.biasCorrection {
		invBC1 = 1.0 / (1.0 - o.powBeta1)
		invBC2 = 1.0 / (1.0 - o.powBeta2)
	}

	switch o.strategy {
	case strategyFused:
		for i, p := range o.params {
			adamFused(o.m[i], o.v[i], p.Data(), grads[i].Data(),
				o.beta1, o.beta2, step, invBC1, invBC2)
		}
	default:
		for i, p := range o.params {
			m, v, buf, g := o.m[i], o.v[i], o.work[i], grads[i].Data()
			scaleVec(o.beta1, m)
			axpyVec(1.0-o.beta1, g, m)
			squareInto(buf, g)
			scaleVec(o.beta2, v)
			axpyVec(1.0-o.beta2, buf, v)
			sqrtAddEps(buf, v, invBC2)
			addScaledQuotient(p.Data(), m, buf, -step*invBC1)
		}
	}
	o.schedule.Tick()
	return nil
}

// Reset zeroes both moment estimates, the step counter and the schedule;
// parameter values and hyperparameters are untouched.
func (o *Adam) Reset() {
	for i := range o.m {
		zeroVec(o.m[i])
		zeroVec(o.v[i])
	}
	o.t = 0
	o.powBeta1 = 1.0
	o.powBeta2 = 1.0
	o.schedule.Reset()
}

// LR returns the base learning rate.
func (o *Adam) LR() float64 { return o.lr }

// CurrentStep returns the number of updates applied since Init or Reset.
func (o *Adam) CurrentStep() int64 { return o.t }

// StateDict exports the moment estimates and step counter for
// checkpointing. Keys: "m.{param_index}", "v.{param_index}", "step".
func (o *Adam) StateDict() map[string][]float64 {
	state := make(map[string][]float64, 2*len(o.m)+1)
	for i := range o.m {
		m := make([]float64, len(o.m[i]))
		copy(m, o.m[i])
		state[stateKey("m", i)] = m
		v := make([]float64, len(o.v[i]))
		copy(v, o.v[i])
		state[stateKey("v", i)] = v
	}
	state["step"] = []float64{float64(o.t)}
	return state
}

// LoadStateDict restores moment estimates and the step counter exported by
// StateDict.
func (o *Adam) LoadStateDict(state map[string][]float64) error {
	if !o.initialised() {
		return ErrNotInitialised
	}
	if err := loadBuffers(state, "m", o.m); err != nil {
		return err
	}
	if err := loadBuffers(state, "v", o.v); err != nil {
		return err
	}
	if step, ok := state["step"]; ok {
		if len(step) != 1 || step[0] < 0 {
			return fmt.Errorf("optim: invalid step entry %v", step)
		}
		o.t = int64(step[0])
		o.powBeta1 = powN(o.beta1, o.t)
		o.powBeta2 = powN(o.beta2, o.t)
	}
	return nil
}

// powN computes base^n for a non-negative integer exponent by repeated
// multiplication, matching the running products accumulated during Step.
func powN(base float64, n int64) float64 {
	p := 1.0
	for i := int64(0); i < n; i++ {
		p *= base
	}
	return p
}
