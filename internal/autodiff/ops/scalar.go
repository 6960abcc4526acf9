package ops

import "github.com/nlpkit-ml/nlpkit/internal/tensor"

// ShiftOp records output = x + c for a scalar c. The shift contributes
// nothing to the gradient.
type ShiftOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewShiftOp creates a ShiftOp.
func NewShiftOp(x, output *tensor.RawTensor) *ShiftOp {
	return &ShiftOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward passes the gradient through unchanged.
func (op *ShiftOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// Inputs returns [x].
func (op *ShiftOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns x + c.
func (op *ShiftOp) Output() *tensor.RawTensor { return op.output }

// ScaleOp records output = x * c for a scalar c.
type ScaleOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	factor float32
}

// NewScaleOp creates a ScaleOp with the applied factor.
func NewScaleOp(x, output *tensor.RawTensor, factor float32) *ScaleOp {
	return &ScaleOp{inputs: []*tensor.RawTensor{x}, output: output, factor: factor}
}

// Backward returns grad * c.
func (op *ScaleOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.factor)}
}

// Inputs returns [x].
func (op *ScaleOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns x * c.
func (op *ScaleOp) Output() *tensor.RawTensor { return op.output }
