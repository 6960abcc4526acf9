package ops

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// SoftmaxOp records output = softmax(x, dim).
//
// For y = softmax(x) along an axis, the Jacobian-vector product is
//
//	dL/dx_j = y_j * (g_j - Σ_i g_i * y_i)
//
// with the sum taken over the softmax axis.
type SoftmaxOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewSoftmaxOp creates a SoftmaxOp.
func NewSoftmaxOp(x, output *tensor.RawTensor, dim int) *SoftmaxOp {
	return &SoftmaxOp{inputs: []*tensor.RawTensor{x}, output: output, dim: dim}
}

// Backward computes the softmax Jacobian-vector product using the saved output.
func (op *SoftmaxOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	y := op.output
	if y.DType() != tensor.Float32 {
		panic(fmt.Sprintf("softmax backward: unsupported dtype %s", y.DType()))
	}

	shape := y.Shape()
	dim := op.dim
	if dim < 0 {
		dim += len(shape)
	}

	outer, n, inner := 1, shape[dim], 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}

	grad := zerosLike(shape, y.DType(), backend)
	yd, g, out := y.AsFloat32(), outputGrad.AsFloat32(), grad.AsFloat32()
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			base := o*n*inner + i
			var dot float32
			for j := 0; j < n; j++ {
				dot += g[base+j*inner] * yd[base+j*inner]
			}
			for j := 0; j < n; j++ {
				out[base+j*inner] = yd[base+j*inner] * (g[base+j*inner] - dot)
			}
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns [x].
func (op *SoftmaxOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns softmax(x, dim).
func (op *SoftmaxOp) Output() *tensor.RawTensor { return op.output }
