package cpu

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Sum reduces every element to a single-element tensor of shape [1].
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		var s float32
		for _, v := range x.AsFloat32() {
			s += v
		}
		out.AsFloat32()[0] = s
	case tensor.Float64:
		var s float64
		for _, v := range x.AsFloat64() {
			s += v
		}
		out.AsFloat64()[0] = s
	case tensor.Int32:
		var s int32
		for _, v := range x.AsInt32() {
			s += v
		}
		out.AsInt32()[0] = s
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return out
}

// SumDim sums along dim. Reducing the only axis yields shape [1].
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("sumdim", x, dim, keepDim, false)
}

// MeanDim averages along dim. Reducing the only axis yields shape [1].
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("meandim", x, dim, keepDim, true)
}

func (cpu *CPUBackend) reduceDim(name string, x *tensor.RawTensor, dim int, keepDim, mean bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim(name, dim, len(shape))

	out, err := tensor.NewRaw(reducedShape(shape, dim, keepDim), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	outer, n, inner := sliceDims(shape, dim)

	switch x.DType() {
	case tensor.Float32:
		in, res := x.AsFloat32(), out.AsFloat32()
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				var s float32
				for j := 0; j < n; j++ {
					s += in[o*n*inner+j*inner+i]
				}
				if mean {
					s /= float32(n)
				}
				res[o*inner+i] = s
			}
		}
	case tensor.Float64:
		in, res := x.AsFloat64(), out.AsFloat64()
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				var s float64
				for j := 0; j < n; j++ {
					s += in[o*n*inner+j*inner+i]
				}
				if mean {
					s /= float64(n)
				}
				res[o*inner+i] = s
			}
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return out
}

// Argmax returns int32 indices of the maximum along dim. The reduced axis
// is removed; reducing a 1-D tensor yields shape [1].
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("argmax", dim, len(shape))

	out, err := tensor.NewRaw(reducedShape(shape, dim, false), tensor.Int32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("argmax: %v", err))
	}
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}

	outer, n, inner := sliceDims(shape, dim)
	in, res := x.AsFloat32(), out.AsInt32()

	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			best, bestVal := 0, in[o*n*inner+i]
			for j := 1; j < n; j++ {
				if v := in[o*n*inner+j*inner+i]; v > bestVal {
					best, bestVal = j, v
				}
			}
			res[o*inner+i] = int32(best)
		}
	}

	return out
}

// reducedShape removes or collapses dim. A fully reduced tensor keeps
// shape [1] so scalar results stay addressable.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for i, d := range shape {
		if i != dim {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = tensor.Shape{1}
	}
	return out
}
