package nn

import (
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// MSELoss computes the mean squared error between predictions and targets.
//
// Every step runs through recorded tensor operations, so the loss stays on
// the gradient tape and backpropagation reaches the predictions.
//
// Returns a single-element tensor.
func MSELoss[B tensor.Backend](pred, target *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	diff := pred.Sub(target)
	sq := diff.Mul(diff)
	n := sq.NumElements()
	return sq.Reshape(1, n).MeanDim(1, false)
}
