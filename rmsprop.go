package optim

// RMSProp keeps a running average of squared gradients and normalizes each
// update by its square root. Update, per parameter (element-wise):
//
//	r := decay * r + (1 - decay) * g^2
//	p := p - lr * g / (sqrt(r) + eps)
//
// eps is the fixed package constant, not a hyperparameter.
type RMSProp struct {
	lr          float64
	decay       float64
	maxGradNorm float64
	schedule    Schedule
	binding
	sq   [][]float64 // running average of squared gradients
	work [][]float64 // scratch, reused across steps to avoid allocation
}

// RMSPropConfig holds configuration for the RMSProp rule.
type RMSPropConfig struct {
	LR          float64  // learning rate, must be > 0
	DecayRate   float64  // squared-gradient averaging coefficient, in [0, 1]
	MaxGradNorm float64  // optional global L2 gradient clip; <= 0 disables
	Schedule    Schedule // optional learning-rate schedule; nil means constant 1
}

// DefaultRMSPropConfig returns the documented defaults
// (lr = 1e-3, decay = 0.9).
func DefaultRMSPropConfig() RMSPropConfig {
	return RMSPropConfig{LR: 1e-3, DecayRate: 0.9}
}

// NewRMSProp creates an RMSProp rule, validating the configuration.
func NewRMSProp(cfg RMSPropConfig) (*RMSProp, error) {
	if err := validateLR(cfg.LR); err != nil {
		return nil, err
	}
	if err := validateUnitInterval("decay rate", cfg.DecayRate); err != nil {
		return nil, err
	}
	return &RMSProp{
		lr:          cfg.LR,
		decay:       cfg.DecayRate,
		maxGradNorm: cfg.MaxGradNorm,
		schedule:    orFixed(cfg.Schedule),
	}, nil
}

// Init binds the parameter tensors and allocates the squared-gradient
// averages and scratch buffers, zero-filled and shape-matched.
func (o *RMSProp) Init(params []Tensor) error {
	if err := o.bind(params); err != nil {
		return err
	}
	o.sq = make([][]float64, len(o.params))
	o.work = make([][]float64, len(o.params))
	for i, p := range o.params {
		o.sq[i] = zerosLike(p)
		o.work[i] = zerosLike(p)
	}
	return nil
}

// Step applies the RMSProp update to every bound parameter and running
// average in place.
func (o *RMSProp) Step(grads []Tensor) error {
	if err := o.checkGrads(grads); err != nil {
		return err
	}
	step := o.lr * o.schedule.Eta() * clipFactor(o.maxGradNorm, grads)

	switch o.strategy {
	case strategyFused:
		for i, p := range o.params {
			rmspropFused(o.sq[i], p.Data(), grads[i].Data(), o.decay, step)
		}
	default:
		for i, p := range o.params {
			r, buf, g := o.sq[i], o.work[i], grads[i].Data()
			squareInto(buf, g)
			scaleVec(o.decay, r)
			axpyVec(1.0-o.decay, buf, r)
			sqrtAddEps(buf, r, 1.0)
			addScaledQuotient(p.Data(), g, buf, -step)
		}
	}
	o.schedule.Tick()
	return nil
}

// Reset zeroes the running averages and rewinds the schedule; parameter
// values and hyperparameters are untouched.
func (o *RMSProp) Reset() {
	for _, r := range o.sq {
		zeroVec(r)
	}
	o.schedule.Reset()
}

// LR returns the base learning rate.
func (o *RMSProp) LR() float64 { return o.lr }

// StateDict exports the squared-gradient averages for checkpointing.
// Keys: "square_avg.{param_index}".
func (o *RMSProp) StateDict() map[string][]float64 {
	state := make(map[string][]float64, len(o.sq))
	for i, r := range o.sq {
		buf := make([]float64, len(r))
		copy(buf, r)
		state[stateKey("square_avg", i)] = buf
	}
	return state
}

// LoadStateDict restores running averages exported by StateDict.
func (o *RMSProp) LoadStateDict(state map[string][]float64) error {
	if !o.initialised() {
		return ErrNotInitialised
	}
	return loadBuffers(state, "square_avg", o.sq)
}
