// Package cpu implements the reference CPU backend. Element-wise kernels are
// plain Go loops; matrix multiplication delegates to gonum's BLAS.
package cpu

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a CPU backend.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string { return "CPU" }

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device { return cpu.device }

// Add performs element-wise addition with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y },
		func(x, y int32) int32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y },
		func(x, y int32) int32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y },
		func(x, y int32) int32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y },
		func(x, y int32) int32 { return x / y })
}

// binaryOp applies an element-wise kernel with NumPy-style broadcasting.
func (cpu *CPUBackend) binaryOp(
	name string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
	i32 func(x, y int32) int32,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	out, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	n := outShape.NumElements()
	sameShape := a.Shape().Equal(b.Shape())

	switch a.DType() {
	case tensor.Float32:
		ad, bd, od := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
		if sameShape {
			for i := 0; i < n; i++ {
				od[i] = f32(ad[i], bd[i])
			}
			break
		}
		ia := newBroadcastIndexer(outShape, a.Shape())
		ib := newBroadcastIndexer(outShape, b.Shape())
		for i := 0; i < n; i++ {
			od[i] = f32(ad[ia.offset(i)], bd[ib.offset(i)])
		}
	case tensor.Float64:
		ad, bd, od := a.AsFloat64(), b.AsFloat64(), out.AsFloat64()
		if sameShape {
			for i := 0; i < n; i++ {
				od[i] = f64(ad[i], bd[i])
			}
			break
		}
		ia := newBroadcastIndexer(outShape, a.Shape())
		ib := newBroadcastIndexer(outShape, b.Shape())
		for i := 0; i < n; i++ {
			od[i] = f64(ad[ia.offset(i)], bd[ib.offset(i)])
		}
	case tensor.Int32:
		ad, bd, od := a.AsInt32(), b.AsInt32(), out.AsInt32()
		if sameShape {
			for i := 0; i < n; i++ {
				od[i] = i32(ad[i], bd[i])
			}
			break
		}
		ia := newBroadcastIndexer(outShape, a.Shape())
		ib := newBroadcastIndexer(outShape, b.Shape())
		for i := 0; i < n; i++ {
			od[i] = i32(ad[ia.offset(i)], bd[ib.offset(i)])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return out
}

// broadcastIndexer maps a flat output index to the flat index of an input
// that may have been broadcast: broadcast axes get stride 0.
type broadcastIndexer struct {
	outStrides []int
	inStrides  []int
}

func newBroadcastIndexer(outShape, inShape tensor.Shape) *broadcastIndexer {
	ndim := len(outShape)
	in := make([]int, ndim)
	realStrides := inShape.ComputeStrides()
	// Right-align the input shape against the output shape.
	pad := ndim - len(inShape)
	for i := 0; i < ndim; i++ {
		if i < pad || inShape[i-pad] == 1 {
			in[i] = 0
		} else {
			in[i] = realStrides[i-pad]
		}
	}
	return &broadcastIndexer{
		outStrides: outShape.ComputeStrides(),
		inStrides:  in,
	}
}

func (bi *broadcastIndexer) offset(flat int) int {
	off := 0
	for i, s := range bi.outStrides {
		idx := flat / s
		flat -= idx * s
		off += idx * bi.inStrides[i]
	}
	return off
}
