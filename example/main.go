package main

import (
	"fmt"

	optim "github.com/optimlib/go-optim"
)

// Toy problem: minimize ||theta||^2 (gradient = 2*theta) with each rule,
// just to see the steps.
func main() {
	rules := []struct {
		name string
		make func() (optim.Optimizer, error)
	}{
		{"sgd", func() (optim.Optimizer, error) {
			return optim.NewSGD(optim.SGDConfig{LR: 0.05})
		}},
		{"momentum", func() (optim.Optimizer, error) {
			return optim.NewMomentum(optim.MomentumConfig{LR: 0.05, Coeff: 0.9})
		}},
		{"rmsprop", func() (optim.Optimizer, error) {
			return optim.NewRMSProp(optim.RMSPropConfig{LR: 0.05, DecayRate: 0.9})
		}},
		{"adam", func() (optim.Optimizer, error) {
			return optim.NewAdam(optim.AdamConfig{LR: 0.05, Beta1: 0.9, Beta2: 0.999})
		}},
	}

	for _, rule := range rules {
		theta := []float64{0.5, -1.0, 2.0}
		opt, err := rule.make()
		if err != nil {
			panic(err)
		}
		if err := opt.Init([]optim.Tensor{optim.Vector(theta)}); err != nil {
			panic(err)
		}

		grad := make([]float64, len(theta))
		for step := 0; step < 500; step++ {
			for i, v := range theta {
				grad[i] = 2.0 * v
			}
			if err := opt.Step([]optim.Tensor{optim.Vector(grad)}); err != nil {
				panic(err)
			}
		}
		fmt.Printf("%-8s theta after 500 steps: %#v\n", rule.name, theta)
	}
}
