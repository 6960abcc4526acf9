// Package nn implements neural network modules.
//
// Building blocks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters with gradient tracking
//   - Linear, Embedding: Dense and lookup layers
//   - RNNCell, NaiveRNN, GRUCell, GRU: Recurrent layers
//   - Activations: ReLU, Sigmoid, Tanh
//   - Dropout: Inverted dropout with train/eval modes
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every module computes an output from an input and exposes its trainable
// parameters. Modules without parameters (activations) return an empty slice.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module,
	// including nested module parameters.
	Parameters() []*Parameter[B]
}
