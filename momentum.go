package optim

// Momentum implements gradient descent with momentum. Update, per parameter:
//
//	m := coeff * m - lr * g
//	p := p + m
//
// coeff = 0 degenerates exactly to plain gradient descent; values near 1
// retain most of the previous step's direction, amplifying the effective
// step along consistent gradient directions. Choosing a stable value is the
// caller's responsibility.
type Momentum struct {
	lr          float64
	coeff       float64
	maxGradNorm float64
	schedule    Schedule
	binding
	moms [][]float64
}

// MomentumConfig holds configuration for the momentum rule.
type MomentumConfig struct {
	LR          float64  // learning rate, must be > 0
	Coeff       float64  // momentum coefficient, in [0, 1]
	MaxGradNorm float64  // optional global L2 gradient clip; <= 0 disables
	Schedule    Schedule // optional learning-rate schedule; nil means constant 1
}

// DefaultMomentumConfig returns the documented defaults
// (lr = 1e-3, coeff = 0.9).
func DefaultMomentumConfig() MomentumConfig {
	return MomentumConfig{LR: 1e-3, Coeff: 0.9}
}

// NewMomentum creates a momentum rule, validating the configuration.
func NewMomentum(cfg MomentumConfig) (*Momentum, error) {
	if err := validateLR(cfg.LR); err != nil {
		return nil, err
	}
	if err := validateUnitInterval("momentum coefficient", cfg.Coeff); err != nil {
		return nil, err
	}
	return &Momentum{
		lr:          cfg.LR,
		coeff:       cfg.Coeff,
		maxGradNorm: cfg.MaxGradNorm,
		schedule:    orFixed(cfg.Schedule),
	}, nil
}

// Init binds the parameter tensors and allocates one zero-filled momentum
// buffer per parameter, shape-matched to it.
func (o *Momentum) Init(params []Tensor) error {
	if err := o.bind(params); err != nil {
		return err
	}
	o.moms = make([][]float64, len(o.params))
	for i, p := range o.params {
		o.moms[i] = zerosLike(p)
	}
	return nil
}

// Step applies the momentum update to every bound parameter and momentum
// buffer in place.
func (o *Momentum) Step(grads []Tensor) error {
	if err := o.checkGrads(grads); err != nil {
		return err
	}
	step := o.lr * o.schedule.Eta() * clipFactor(o.maxGradNorm, grads)

	switch o.strategy {
	case strategyFused:
		for i, p := range o.params {
			momentumFused(o.moms[i], p.Data(), grads[i].Data(), o.coeff, step)
		}
	default:
		for i, p := range o.params {
			m := o.moms[i]
			scaleVec(o.coeff, m)
			axpyVec(-step, grads[i].Data(), m)
			axpyVec(1.0, m, p.Data())
		}
	}
	o.schedule.Tick()
	return nil
}

// Reset zeroes every momentum buffer and rewinds the schedule; parameter
// values and hyperparameters are untouched.
func (o *Momentum) Reset() {
	for _, m := range o.moms {
		zeroVec(m)
	}
	o.schedule.Reset()
}

// LR returns the base learning rate.
func (o *Momentum) LR() float64 { return o.lr }

// StateDict exports the momentum buffers for checkpointing.
// Keys: "momentum.{param_index}".
func (o *Momentum) StateDict() map[string][]float64 {
	state := make(map[string][]float64, len(o.moms))
	for i, m := range o.moms {
		buf := make([]float64, len(m))
		copy(buf, m)
		state[stateKey("momentum", i)] = buf
	}
	return state
}

// LoadStateDict restores momentum buffers exported by StateDict. Missing
// keys leave the corresponding buffer as-is; present buffers must match the
// parameter's element count.
func (o *Momentum) LoadStateDict(state map[string][]float64) error {
	if !o.initialised() {
		return ErrNotInitialised
	}
	return loadBuffers(state, "momentum", o.moms)
}
