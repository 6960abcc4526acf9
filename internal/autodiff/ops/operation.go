// Package ops defines the differentiable operations recorded on the gradient
// tape. Each operation keeps references to its forward inputs and output and
// knows how to turn the output gradient into input gradients.
package ops

import "github.com/nlpkit-ml/nlpkit/internal/tensor"

// Operation is one recorded step of the forward computation.
type Operation interface {
	// Backward computes input gradients given the output gradient.
	// The returned slice is parallel to Inputs(); a nil entry means the
	// corresponding input receives no gradient.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the tensors this operation consumed.
	Inputs() []*tensor.RawTensor

	// Output returns the tensor this operation produced.
	Output() *tensor.RawTensor
}
