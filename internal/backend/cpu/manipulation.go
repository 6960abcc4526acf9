package cpu

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Reshape returns a view of the buffer under a new shape.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, err := x.WithShape(shape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return out
}

// Transpose permutes axes into a new tensor. With no axes given, the axis
// order is reversed.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %d-D tensor", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid axes %v for shape %v", axes, shape))
		}
		seen[ax] = true
		outShape[i] = shape[ax]
	}

	out, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	inStrides := x.Strides()
	outStrides := outShape.ComputeStrides()
	n := x.NumElements()

	// Walk the output in order; map each multi-index back through the
	// axis permutation.
	copyPermuted := func(set func(dst, src int)) {
		for flat := 0; flat < n; flat++ {
			rem, src := flat, 0
			for i, s := range outStrides {
				idx := rem / s
				rem -= idx * s
				src += idx * inStrides[axes[i]]
			}
			set(flat, src)
		}
	}

	switch x.DType() {
	case tensor.Float32:
		in, res := x.AsFloat32(), out.AsFloat32()
		copyPermuted(func(dst, src int) { res[dst] = in[src] })
	case tensor.Float64:
		in, res := x.AsFloat64(), out.AsFloat64()
		copyPermuted(func(dst, src int) { res[dst] = in[src] })
	case tensor.Int32:
		in, res := x.AsInt32(), out.AsInt32()
		copyPermuted(func(dst, src int) { res[dst] = in[src] })
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", x.DType()))
	}

	return out
}

// Cat concatenates tensors along dim. All other dimensions must match.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: no tensors given")
	}

	first := tensors[0]
	shape := first.Shape()
	dim = normalizeDim("cat", dim, len(shape))

	total := 0
	for _, t := range tensors {
		ts := t.Shape()
		if len(ts) != len(shape) {
			panic(fmt.Sprintf("cat: rank mismatch %v vs %v", shape, ts))
		}
		for i := range ts {
			if i != dim && ts[i] != shape[i] {
				panic(fmt.Sprintf("cat: shapes %v and %v differ outside dim %d", shape, ts, dim))
			}
		}
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: dtype mismatch %s vs %s", first.DType(), t.DType()))
		}
		total += ts[dim]
	}

	outShape := shape.Clone()
	outShape[dim] = total
	out, err := tensor.NewRaw(outShape, first.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}
	if first.DType() != tensor.Float32 && first.DType() != tensor.Int32 {
		panic(fmt.Sprintf("cat: unsupported dtype %s", first.DType()))
	}

	outer, _, inner := sliceDims(outShape, dim)
	rowOut := total * inner

	offset := 0
	for _, t := range tensors {
		rows := t.Shape()[dim]
		rowIn := rows * inner
		switch t.DType() {
		case tensor.Float32:
			in, res := t.AsFloat32(), out.AsFloat32()
			for o := 0; o < outer; o++ {
				copy(res[o*rowOut+offset*inner:o*rowOut+offset*inner+rowIn], in[o*rowIn:(o+1)*rowIn])
			}
		case tensor.Int32:
			in, res := t.AsInt32(), out.AsInt32()
			for o := 0; o < outer; o++ {
				copy(res[o*rowOut+offset*inner:o*rowOut+offset*inner+rowIn], in[o*rowIn:(o+1)*rowIn])
			}
		}
		offset += rows
	}

	return out
}

// Cast converts the tensor to a different dtype.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}

	out, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	read := func(i int) float64 {
		switch x.DType() {
		case tensor.Float32:
			return float64(x.AsFloat32()[i])
		case tensor.Float64:
			return x.AsFloat64()[i]
		case tensor.Int32:
			return float64(x.AsInt32()[i])
		default:
			panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
		}
	}

	n := x.NumElements()
	switch dtype {
	case tensor.Float32:
		res := out.AsFloat32()
		for i := 0; i < n; i++ {
			res[i] = float32(read(i))
		}
	case tensor.Float64:
		res := out.AsFloat64()
		for i := 0; i < n; i++ {
			res[i] = read(i)
		}
	case tensor.Int32:
		res := out.AsInt32()
		for i := 0; i < n; i++ {
			res[i] = int32(read(i))
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dtype))
	}

	return out
}
