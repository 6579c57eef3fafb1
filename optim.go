// Package optim implements gradient-based parameter update rules for
// iterative training of differentiable models: plain gradient descent,
// gradient descent with momentum, RMSProp and Adam.
//
// All rules share one lifecycle:
//
//	opt, err := optim.NewAdam(optim.DefaultAdamConfig())
//	...
//	err = opt.Init(params)   // bind parameter tensors, allocate state
//	for each training step:
//	    err = opt.Step(grads) // update parameters and state in place
//	opt.Reset()              // zero accumulated state between runs
//
// Parameters are caller-owned storage wrapped in Tensor views; every update
// mutates that storage in place and never reallocates it, so external
// references observe new values as soon as Step returns. Gradients are
// read-only to the optimizer and not retained across calls.
//
// Concurrency: an optimizer is NOT goroutine-safe. If multiple goroutines
// step the same instance or share the same parameter storage, you must
// synchronize externally.
package optim

import (
	"errors"
	"fmt"
)

// eps is the numerical-stability floor added to square-root denominators in
// RMSProp and Adam. It is a constant of the algorithms, not a hyperparameter.
const eps = 1e-8

// ErrNotInitialised is returned by Step and LoadStateDict when Init has not
// been called on the optimizer.
var ErrNotInitialised = errors.New("optim: optimizer not initialised")

// Optimizer is the contract shared by all update rules.
type Optimizer interface {
	// Init binds the optimizer to the ordered list of parameter tensors it
	// will mutate and allocates all auxiliary state zero-filled, one buffer
	// per parameter with a matching shape. Calling Init again rebinds to the
	// new parameter set and re-allocates state from scratch.
	Init(params []Tensor) error

	// Step applies one update to every bound parameter, in place, given
	// gradients aligned by position with the parameters passed to Init.
	// It is an error to call Step before Init, or with a gradient list
	// whose length or shapes mismatch the bound parameters.
	Step(grads []Tensor) error

	// Reset zeroes all auxiliary state element-wise, leaving parameter
	// values, parameter bindings and hyperparameters untouched.
	Reset()
}

var (
	_ Optimizer = (*SGD)(nil)
	_ Optimizer = (*Momentum)(nil)
	_ Optimizer = (*RMSProp)(nil)
	_ Optimizer = (*Adam)(nil)
)

// binding holds the bound parameter tensors, the flat group view used for
// gradient contract checks, and the kernel strategy chosen for the group.
type binding struct {
	params   []Tensor
	group    *tensorGroup
	strategy kernelStrategy
}

func (b *binding) bind(params []Tensor) error {
	group, err := newTensorGroup(params)
	if err != nil {
		return err
	}
	b.params = append([]Tensor(nil), params...)
	b.group = group
	b.strategy = selectKernelStrategy(group.Len())
	return nil
}

// checkGrads enforces the Step preconditions: Init called, gradient count
// equal to parameter count, and every gradient shape-matched to its
// parameter.
func (b *binding) checkGrads(grads []Tensor) error {
	if b.group == nil {
		return ErrNotInitialised
	}
	return b.group.matches(grads)
}

func (b *binding) initialised() bool { return b.group != nil }

func validateLR(lr float64) error {
	if !(lr > 0) {
		return fmt.Errorf("optim: learning rate must be positive, got %g", lr)
	}
	return nil
}

func validateUnitInterval(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("optim: %s must be in [0, 1], got %g", name, v)
	}
	return nil
}

// orFixed substitutes the constant schedule for a nil one so rule
// implementations never branch on it.
func orFixed(s Schedule) Schedule {
	if s == nil {
		return NewFixedSchedule(1.0)
	}
	return s
}

// stateKey names a per-parameter state buffer in a StateDict.
func stateKey(name string, i int) string {
	return fmt.Sprintf("%s.%d", name, i)
}

// loadBuffers copies state-dict buffers named "{name}.{i}" into dst. Missing
// keys leave the corresponding buffer as-is; present buffers must match the
// destination's element count.
func loadBuffers(state map[string][]float64, name string, dst [][]float64) error {
	for i := range dst {
		buf, ok := state[stateKey(name, i)]
		if !ok {
			continue
		}
		if len(buf) != len(dst[i]) {
			return fmt.Errorf("optim: %s buffer %d has %d elements, parameter has %d",
				name, i, len(buf), len(dst[i]))
		}
		copy(dst[i], buf)
	}
	return nil
}
