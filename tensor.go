package optim

import (
	"errors"
	"fmt"
)

// Tensor is a dense view over caller-owned float64 storage with an explicit
// shape. The view is non-owning: the optimizer writes updated values through
// it into the original slice and never reallocates the storage. The caller
// must not bind the same storage to two live optimizers.
type Tensor struct {
	data  []float64
	shape []int
}

// NewTensor wraps data in a view of the given shape. The product of the
// shape dimensions must equal len(data) and every dimension must be
// positive.
func NewTensor(data []float64, shape ...int) (Tensor, error) {
	if len(data) == 0 {
		return Tensor{}, errors.New("optim: tensor storage cannot be empty")
	}
	if len(shape) == 0 {
		return Tensor{}, errors.New("optim: tensor shape cannot be empty")
	}
	n := 1
	for _, dim := range shape {
		if dim <= 0 {
			return Tensor{}, fmt.Errorf("optim: tensor dimensions must be positive, got %v", shape)
		}
		n *= dim
	}
	if n != len(data) {
		return Tensor{}, fmt.Errorf("optim: shape %v holds %d elements but storage holds %d", shape, n, len(data))
	}
	return Tensor{data: data, shape: append([]int(nil), shape...)}, nil
}

// Vector wraps data in a rank-1 view. It panics on empty storage; use
// NewTensor when the input is not known to be valid.
func Vector(data []float64) Tensor {
	t, err := NewTensor(data, len(data))
	if err != nil {
		panic(err)
	}
	return t
}

// Data returns the live underlying storage. Writes through the returned
// slice are visible to every other holder of the same storage.
func (t Tensor) Data() []float64 {
	return t.data
}

// Shape returns a copy of the tensor's shape.
func (t Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Len returns the total number of elements.
func (t Tensor) Len() int {
	return len(t.data)
}

func (t Tensor) shapeEqual(o Tensor) bool {
	if len(t.shape) != len(o.shape) {
		return false
	}
	for i := range t.shape {
		if t.shape[i] != o.shape[i] {
			return false
		}
	}
	return true
}

// tensorGroup provides a flat view over an ordered set of tensors without
// copying data. It carries the cumulative offsets and total element count
// used for kernel strategy selection and gradient contract checks.
type tensorGroup struct {
	tensors  []Tensor
	offsets  []int
	totalLen int
}

func newTensorGroup(tensors []Tensor) (*tensorGroup, error) {
	if len(tensors) == 0 {
		return nil, errors.New("optim: parameter list cannot be empty")
	}

	totalLen := 0
	offsets := make([]int, len(tensors)+1)
	for i, t := range tensors {
		if t.data == nil {
			return nil, fmt.Errorf("optim: parameter %d has no storage", i)
		}
		offsets[i] = totalLen
		totalLen += t.Len()
	}
	offsets[len(tensors)] = totalLen

	return &tensorGroup{
		tensors:  append([]Tensor(nil), tensors...),
		offsets:  offsets,
		totalLen: totalLen,
	}, nil
}

// Len returns the total number of elements across all tensors in the group.
func (g *tensorGroup) Len() int {
	return g.totalLen
}

// matches verifies that grads aligns positionally with the group: same
// count, and each gradient shape equal to its parameter's shape.
func (g *tensorGroup) matches(grads []Tensor) error {
	if len(grads) != len(g.tensors) {
		return fmt.Errorf("optim: got %d gradients for %d bound parameters", len(grads), len(g.tensors))
	}
	for i, grad := range grads {
		if grad.data == nil {
			return fmt.Errorf("optim: gradient %d has no storage", i)
		}
		if !grad.shapeEqual(g.tensors[i]) {
			return fmt.Errorf("optim: gradient %d shape %v does not match parameter shape %v",
				i, grad.shape, g.tensors[i].shape)
		}
	}
	return nil
}

// zerosLike allocates an optimizer-owned state buffer matching t's size.
func zerosLike(t Tensor) []float64 {
	return make([]float64, t.Len())
}
