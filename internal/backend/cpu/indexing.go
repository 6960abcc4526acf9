package cpu

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Embedding gathers rows of weight [V, D] by int32 indices. The result has
// the indices' shape with D appended: indices [B] -> [B, D].
func (cpu *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	ws := weight.Shape()
	if len(ws) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2-D [vocab, dim], got %v", ws))
	}
	if indices.DType() != tensor.Int32 {
		panic(fmt.Sprintf("embedding: indices must be int32, got %s", indices.DType()))
	}
	if weight.DType() != tensor.Float32 {
		panic(fmt.Sprintf("embedding: weight must be float32, got %s", weight.DType()))
	}

	numEmbeddings, dim := ws[0], ws[1]
	outShape := append(indices.Shape().Clone(), dim)

	out, err := tensor.NewRaw(outShape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("embedding: %v", err))
	}

	idx := indices.AsInt32()
	src, dst := weight.AsFloat32(), out.AsFloat32()
	for i, id := range idx {
		if id < 0 || int(id) >= numEmbeddings {
			panic(fmt.Sprintf("embedding: index %d out of range [0, %d)", id, numEmbeddings))
		}
		copy(dst[i*dim:(i+1)*dim], src[int(id)*dim:(int(id)+1)*dim])
	}

	return out
}
