package ops

import (
	"fmt"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// TanhOp records output = tanh(x). d tanh(x)/dx = 1 - tanh(x)².
type TanhOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a TanhOp.
func NewTanhOp(x, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward returns grad * (1 - y²) using the saved output y.
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	y := op.output
	ySq := backend.Mul(y, y)
	oneMinus := backend.AddScalar(backend.MulScalar(ySq, float32(-1)), float32(1))
	return []*tensor.RawTensor{backend.Mul(outputGrad, oneMinus)}
}

// Inputs returns [x].
func (op *TanhOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns tanh(x).
func (op *TanhOp) Output() *tensor.RawTensor { return op.output }

// SigmoidOp records output = σ(x). dσ/dx = σ(x)(1 - σ(x)).
type SigmoidOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a SigmoidOp.
func NewSigmoidOp(x, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward returns grad * y * (1 - y) using the saved output y.
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	y := op.output
	oneMinus := backend.AddScalar(backend.MulScalar(y, float32(-1)), float32(1))
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Mul(y, oneMinus))}
}

// Inputs returns [x].
func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns σ(x).
func (op *SigmoidOp) Output() *tensor.RawTensor { return op.output }

// ReLUOp records output = max(0, x). The gradient passes only where x > 0.
type ReLUOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a ReLUOp.
func NewReLUOp(x, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward masks the gradient by the sign of the input.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("relu backward: unsupported dtype %s", x.DType()))
	}

	grad := zerosLike(x.Shape(), x.DType(), backend)
	in, g, out := x.AsFloat32(), outputGrad.AsFloat32(), grad.AsFloat32()
	for i := range in {
		if in[i] > 0 {
			out[i] = g[i]
		}
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns [x].
func (op *ReLUOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns max(0, x).
func (op *ReLUOp) Output() *tensor.RawTensor { return op.output }

// LogOp records output = log(x). d log(x)/dx = 1/x.
type LogOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewLogOp creates a LogOp.
func NewLogOp(x, output *tensor.RawTensor) *LogOp {
	return &LogOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward returns grad / x.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.inputs[0])}
}

// Inputs returns [x].
func (op *LogOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns log(x).
func (op *LogOp) Output() *tensor.RawTensor { return op.output }

// ExpOp records output = exp(x). d exp(x)/dx = exp(x).
type ExpOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewExpOp creates an ExpOp.
func NewExpOp(x, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward returns grad * y using the saved output y.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// Inputs returns [x].
func (op *ExpOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns exp(x).
func (op *ExpOp) Output() *tensor.RawTensor { return op.output }

// SqrtOp records output = sqrt(x). d sqrt(x)/dx = 1/(2 sqrt(x)).
type SqrtOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSqrtOp creates a SqrtOp.
func NewSqrtOp(x, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward returns grad / (2 y) using the saved output y.
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	twoY := backend.MulScalar(op.output, float32(2))
	return []*tensor.RawTensor{backend.Div(outputGrad, twoY)}
}

// Inputs returns [x].
func (op *SqrtOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns sqrt(x).
func (op *SqrtOp) Output() *tensor.RawTensor { return op.output }
