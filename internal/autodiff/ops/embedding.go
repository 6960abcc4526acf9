package ops

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// EmbeddingOp records output = weight[indices]. The indices are held for the
// backward scatter but are not differentiable, so only the weight appears as
// an input.
type EmbeddingOp struct {
	inputs  []*tensor.RawTensor
	output  *tensor.RawTensor
	indices *tensor.RawTensor
}

// NewEmbeddingOp creates an EmbeddingOp.
func NewEmbeddingOp(weight, indices, output *tensor.RawTensor) *EmbeddingOp {
	return &EmbeddingOp{
		inputs:  []*tensor.RawTensor{weight},
		output:  output,
		indices: indices,
	}
}

// Backward scatter-adds the gradient rows back into the weight positions
// that were gathered. Repeated indices accumulate.
func (op *EmbeddingOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	weight := op.inputs[0]
	if weight.DType() != tensor.Float32 {
		panic(fmt.Sprintf("embedding backward: unsupported dtype %s", weight.DType()))
	}

	numEmbeddings := weight.Shape()[0]
	dim := weight.Shape()[1]

	grad := zerosLike(weight.Shape(), weight.DType(), backend)
	g, out := outputGrad.AsFloat32(), grad.AsFloat32()
	for i, idx := range op.indices.AsInt32() {
		if idx < 0 || int(idx) >= numEmbeddings {
			panic(fmt.Sprintf("embedding backward: index %d out of range [0, %d)", idx, numEmbeddings))
		}
		row := out[int(idx)*dim : (int(idx)+1)*dim]
		src := g[i*dim : (i+1)*dim]
		for j := range row {
			row[j] += src[j]
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns [weight].
func (op *EmbeddingOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the gathered rows.
func (op *EmbeddingOp) Output() *tensor.RawTensor { return op.output }
