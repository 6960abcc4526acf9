package ops

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// reduceBroadcast sums a gradient along axes that were broadcast during the
// forward pass so the result matches the original input shape.
func reduceBroadcast(grad *tensor.RawTensor, inShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(inShape) {
		return grad
	}
	if grad.DType() != tensor.Float32 {
		panic(fmt.Sprintf("reduceBroadcast: unsupported dtype %s", grad.DType()))
	}

	out := zerosLike(inShape, grad.DType(), backend)

	// Stride-0 mapping from grad positions to input positions: every grad
	// element accumulates into the input element it was broadcast from.
	ndim := len(gradShape)
	pad := ndim - len(inShape)
	inStrides := inShape.ComputeStrides()
	mapped := make([]int, ndim)
	for i := 0; i < ndim; i++ {
		if i < pad || inShape[i-pad] == 1 {
			mapped[i] = 0
		} else {
			mapped[i] = inStrides[i-pad]
		}
	}

	gradStrides := gradShape.ComputeStrides()
	g, o := grad.AsFloat32(), out.AsFloat32()
	for flat := range g {
		rem, off := flat, 0
		for i, s := range gradStrides {
			idx := rem / s
			rem -= idx * s
			off += idx * mapped[i]
		}
		o[off] += g[flat]
	}

	return out
}

// zerosLike allocates a zero tensor with the given shape and dtype.
func zerosLike(shape tensor.Shape, dtype tensor.DataType, backend tensor.Backend) *tensor.RawTensor {
	out, err := tensor.NewRaw(shape, dtype, backend.Device())
	if err != nil {
		panic(fmt.Sprintf("zerosLike: %v", err))
	}
	return out
}
