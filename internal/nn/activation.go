package nn

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module: f(x) = max(0, x).
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.ReLU()
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid is a sigmoid activation module: σ(x) = 1 / (1 + exp(-x)).
// Squashes values to (0, 1); used for the gate mechanisms in GRUs.
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies Sigmoid activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Sigmoid()
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// Tanh is a hyperbolic tangent activation module. Squashes values to
// (-1, 1); the default nonlinearity for recurrent layers.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies Tanh activation.
func (t *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Tanh()
}

// Parameters returns nil (Tanh has no trainable parameters).
func (t *Tanh[B]) Parameters() []*Parameter[B] {
	return nil
}

// nonlinearityFunc resolves a recurrent-cell nonlinearity by name.
// Supported names are "tanh" and "relu".
func nonlinearityFunc[B tensor.Backend](name string) (func(*tensor.Tensor[float32, B]) *tensor.Tensor[float32, B], error) {
	switch name {
	case "tanh":
		return func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] { return x.Tanh() }, nil
	case "relu":
		return func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] { return x.ReLU() }, nil
	default:
		return nil, fmt.Errorf("unknown nonlinearity: %s", name)
	}
}
