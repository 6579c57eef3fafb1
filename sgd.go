package optim

// SGD implements plain (stochastic) gradient descent. Update, per parameter:
//
//	p := p - lr * g
//
// It holds no auxiliary state beyond the parameter binding, so Reset only
// rewinds the schedule.
type SGD struct {
	lr          float64
	maxGradNorm float64
	schedule    Schedule
	binding
}

// SGDConfig holds configuration for the SGD rule.
type SGDConfig struct {
	LR          float64  // learning rate, must be > 0
	MaxGradNorm float64  // optional global L2 gradient clip; <= 0 disables
	Schedule    Schedule // optional learning-rate schedule; nil means constant 1
}

// DefaultSGDConfig returns the documented defaults (lr = 1e-3).
func DefaultSGDConfig() SGDConfig {
	return SGDConfig{LR: 1e-3}
}

// NewSGD creates an SGD rule, validating the configuration. Invalid
// hyperparameters fail here, never silently clamped.
func NewSGD(cfg SGDConfig) (*SGD, error) {
	if err := validateLR(cfg.LR); err != nil {
		return nil, err
	}
	return &SGD{
		lr:          cfg.LR,
		maxGradNorm: cfg.MaxGradNorm,
		schedule:    orFixed(cfg.Schedule),
	}, nil
}

// Init binds the parameter tensors. SGD allocates no auxiliary state.
func (o *SGD) Init(params []Tensor) error {
	return o.bind(params)
}

// Step applies p -= lr * eta_t * clip * g to every bound parameter in place.
func (o *SGD) Step(grads []Tensor) error {
	if err := o.checkGrads(grads); err != nil {
		return err
	}
	step := o.lr * o.schedule.Eta() * clipFactor(o.maxGradNorm, grads)
	for i, p := range o.params {
		axpyVec(-step, grads[i].Data(), p.Data())
	}
	o.schedule.Tick()
	return nil
}

// Reset is a no-op for parameters and hyperparameters; it rewinds the
// schedule so a fresh run sees the same step sizes.
func (o *SGD) Reset() {
	o.schedule.Reset()
}

// LR returns the base learning rate.
func (o *SGD) LR() float64 { return o.lr }
