package ops

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// SumOp records output = sum of all elements (shape [1]).
type SumOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward broadcasts the scalar gradient to every input element.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	grad := zerosLike(x.Shape(), x.DType(), backend)
	g := outputGrad.AsFloat32()[0]
	out := grad.AsFloat32()
	for i := range out {
		out[i] = g
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns [x].
func (op *SumOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the scalar sum.
func (op *SumOp) Output() *tensor.RawTensor { return op.output }

// SumDimOp records output = sum(x, dim). Each input element along the
// reduced axis receives the gradient of its reduction slot; MeanDimOp
// additionally divides by the axis length.
type SumDimOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
	mean   bool
}

// NewSumDimOp creates a SumDimOp.
func NewSumDimOp(x, output *tensor.RawTensor, dim int) *SumDimOp {
	return &SumDimOp{inputs: []*tensor.RawTensor{x}, output: output, dim: dim}
}

// NewMeanDimOp creates the mean variant of SumDimOp.
func NewMeanDimOp(x, output *tensor.RawTensor, dim int) *SumDimOp {
	return &SumDimOp{inputs: []*tensor.RawTensor{x}, output: output, dim: dim, mean: true}
}

// Backward spreads the reduced gradient back along the reduced axis.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("sumdim backward: unsupported dtype %s", x.DType()))
	}

	shape := x.Shape()
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

	scale := float32(1)
	if op.mean {
		scale = 1 / float32(n)
	}

	grad := zerosLike(shape, x.DType(), backend)
	g, out := outputGrad.AsFloat32(), grad.AsFloat32()
	for o := 0; o < outer; o++ {
		for j := 0; j < n; j++ {
			for i := 0; i < inner; i++ {
				out[o*n*inner+j*inner+i] = g[o*inner+i] * scale
			}
		}
	}

	return []*tensor.RawTensor{grad}
}

// Inputs returns [x].
func (op *SumDimOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the reduced tensor.
func (op *SumDimOp) Output() *tensor.RawTensor { return op.output }
