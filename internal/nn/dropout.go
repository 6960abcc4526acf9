package nn

import (
	"fmt"
	"math/rand"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Dropout randomly zeroes elements during training with probability p.
//
// Uses inverted dropout: surviving elements are scaled by 1/(1-p) at train
// time so evaluation needs no rescaling. In eval mode Forward is the
// identity.
type Dropout[B tensor.Backend] struct {
	p        float32
	training bool
	backend  B
}

// NewDropout creates a Dropout module with drop probability p in [0, 1).
func NewDropout[B tensor.Backend](p float32, backend B) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("Dropout: p must be in [0, 1), got %f", p))
	}
	return &Dropout[B]{p: p, training: true, backend: backend}
}

// Train puts the module in training mode (dropout active).
func (d *Dropout[B]) Train() {
	d.training = true
}

// Eval puts the module in evaluation mode (identity).
func (d *Dropout[B]) Eval() {
	d.training = false
}

// Forward applies inverted dropout in training mode.
//
// The mask is built outside the gradient path; the recorded operation is a
// plain element-wise Mul, so gradients are masked and scaled the same way
// as activations.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return input
	}

	mask, err := tensor.NewRaw(input.Shape(), tensor.Float32, d.backend.Device())
	if err != nil {
		panic(err)
	}

	scale := 1 / (1 - d.p)
	data := mask.AsFloat32()
	for i := range data {
		//nolint:gosec // math/rand is fine for dropout masks
		if rand.Float32() >= d.p {
			data[i] = scale
		}
	}

	return input.Mul(tensor.New[float32, B](mask, d.backend))
}

// Parameters returns nil (Dropout has no trainable parameters).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}
