package ops

import (
	"fmt"
	"math"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// CrossEntropyOp fuses log-softmax and mean negative log-likelihood over a
// batch of logits [N, C] with int32 class targets [N]. The output is a
// single-element tensor. The targets are not differentiable, so only the
// logits appear as an input.
type CrossEntropyOp struct {
	inputs  []*tensor.RawTensor
	output  *tensor.RawTensor
	targets *tensor.RawTensor
	probs   *tensor.RawTensor
}

// NewCrossEntropyOp computes the loss and returns the recorded operation.
// The forward pass shifts by the row max for numerical stability and saves
// the softmax probabilities for the backward pass.
func NewCrossEntropyOp(logits, targets *tensor.RawTensor, backend tensor.Backend) *CrossEntropyOp {
	if logits.DType() != tensor.Float32 {
		panic(fmt.Sprintf("cross entropy: unsupported dtype %s", logits.DType()))
	}
	if targets.DType() != tensor.Int32 {
		panic(fmt.Sprintf("cross entropy: targets must be int32, got %s", targets.DType()))
	}
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("cross entropy: logits must be 2-D, got %v", shape))
	}
	n, classes := shape[0], shape[1]
	if targets.Shape().NumElements() != n {
		panic(fmt.Sprintf("cross entropy: %d targets for %d rows", targets.Shape().NumElements(), n))
	}

	probs := zerosLike(shape, tensor.Float32, backend)
	output := zerosLike(tensor.Shape{1}, tensor.Float32, backend)

	in, pd := logits.AsFloat32(), probs.AsFloat32()
	tg := targets.AsInt32()
	var total float64
	for r := 0; r < n; r++ {
		row := in[r*classes : (r+1)*classes]
		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		var sum float64
		for c := 0; c < classes; c++ {
			e := math.Exp(float64(row[c] - maxVal))
			pd[r*classes+c] = float32(e)
			sum += e
		}
		for c := 0; c < classes; c++ {
			pd[r*classes+c] /= float32(sum)
		}
		t := tg[r]
		if t < 0 || int(t) >= classes {
			panic(fmt.Sprintf("cross entropy: target %d out of range [0, %d)", t, classes))
		}
		logProb := float64(row[t]-maxVal) - math.Log(sum)
		total -= logProb
	}
	output.AsFloat32()[0] = float32(total / float64(n))

	return &CrossEntropyOp{
		inputs:  []*tensor.RawTensor{logits},
		output:  output,
		targets: targets,
		probs:   probs,
	}
}

// Backward returns grad * (softmax(logits) - onehot(targets)) / N.
func (op *CrossEntropyOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	logits := op.inputs[0]
	shape := logits.Shape()
	n, classes := shape[0], shape[1]

	grad := zerosLike(shape, tensor.Float32, backend)
	g := outputGrad.AsFloat32()[0]
	pd, out := op.probs.AsFloat32(), grad.AsFloat32()
	tg := op.targets.AsInt32()

	scale := g / float32(n)
	for r := 0; r < n; r++ {
		for c := 0; c < classes; c++ {
			out[r*classes+c] = pd[r*classes+c] * scale
		}
		out[r*classes+int(tg[r])] -= scale
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns [logits].
func (op *CrossEntropyOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the mean loss.
func (op *CrossEntropyOp) Output() *tensor.RawTensor { return op.output }
