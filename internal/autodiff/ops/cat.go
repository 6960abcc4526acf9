package ops

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// CatOp records output = cat(inputs, dim). Backward slices the gradient
// back into one piece per input along the concatenation axis.
type CatOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewCatOp creates a CatOp.
func NewCatOp(inputs []*tensor.RawTensor, output *tensor.RawTensor, dim int) *CatOp {
	return &CatOp{inputs: inputs, output: output, dim: dim}
}

// Backward splits the gradient along the concatenation axis, giving each
// input a slice matching its original extent.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	outShape := op.output.Shape()
	dim := op.dim
	if dim < 0 {
		dim += len(outShape)
	}

	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= outShape[i]
	}
	for i := dim + 1; i < len(outShape); i++ {
		inner *= outShape[i]
	}
	totalDim := outShape[dim]

	grads := make([]*tensor.RawTensor, len(op.inputs))
	offset := 0
	for idx, in := range op.inputs {
		if in.DType() != tensor.Float32 {
			panic(fmt.Sprintf("cat backward: unsupported dtype %s", in.DType()))
		}
		n := in.Shape()[dim]
		grad := zerosLike(in.Shape(), in.DType(), backend)
		g, out := outputGrad.AsFloat32(), grad.AsFloat32()
		for o := 0; o < outer; o++ {
			srcBase := (o*totalDim + offset) * inner
			dstBase := o * n * inner
			copy(out[dstBase:dstBase+n*inner], g[srcBase:srcBase+n*inner])
		}
		grads[idx] = grad
		offset += n
	}
	return grads
}

// Inputs returns the concatenated tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the concatenation result.
func (op *CatOp) Output() *tensor.RawTensor { return op.output }
