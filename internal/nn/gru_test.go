package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpkit-ml/nlpkit/internal/autodiff"
	"github.com/nlpkit-ml/nlpkit/internal/backend/cpu"
	"github.com/nlpkit-ml/nlpkit/internal/nn"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

func TestGRUCell_StepShape(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewGRUCell(4, 8, backend)

	input := tensor.Randn[float32](tensor.Shape{2, 4}, backend)

	h1 := cell.Step(input, nil)
	assert.Equal(t, tensor.Shape{2, 8}, h1.Shape())

	h2 := cell.Step(input, h1)
	assert.Equal(t, tensor.Shape{2, 8}, h2.Shape())
}

func TestGRUCell_UpdateGateInterpolates(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewGRUCell(2, 3, backend)

	// With zero input and zero weights, gates sit at σ(0)=0.5 and the
	// candidate is tanh(0)=0, so h' = 0.5*h.
	for _, p := range cell.Parameters() {
		data := p.Tensor().Data()
		for i := range data {
			data[i] = 0
		}
	}

	input := nn.Zeros(tensor.Shape{1, 2}, backend)
	hidden, err := tensor.FromSlice([]float32{2, 4, 6}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	out := cell.Step(input, hidden)
	assert.InDeltaSlice(t, []float32{1, 2, 3}, out.Data(), 1e-6)
}

func TestGRUCell_UniformInitCoversBiases(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewGRUCell(4, 16, backend)

	bound := 1 / float32(4) // 1/sqrt(16)
	for _, p := range cell.Parameters() {
		nonzero := false
		for _, v := range p.Tensor().Data() {
			assert.LessOrEqual(t, v, bound, "param %s above init bound", p.Name())
			assert.GreaterOrEqual(t, v, -bound, "param %s below init bound", p.Name())
			if v != 0 {
				nonzero = true
			}
		}
		assert.True(t, nonzero, "param %s left at zero", p.Name())
	}
}

func TestGRUCell_RejectsWrongInput(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewGRUCell(4, 8, backend)

	assert.Panics(t, func() {
		cell.Step(tensor.Randn[float32](tensor.Shape{2, 5}, backend), nil)
	})
}

func TestGRU_ForwardSequence(t *testing.T) {
	backend := cpu.New()
	gru := nn.NewGRU(3, 6, 2, 0.5, backend)
	gru.Eval()

	steps := []*tensor.Tensor[float32, *cpu.CPUBackend]{
		tensor.Randn[float32](tensor.Shape{4, 3}, backend),
		tensor.Randn[float32](tensor.Shape{4, 3}, backend),
	}

	outputs, hidden := gru.ForwardSequence(steps, nil)
	require.Len(t, outputs, 2)
	for _, y := range outputs {
		assert.Equal(t, tensor.Shape{4, 6}, y.Shape())
	}
	require.Len(t, hidden, 2)
	for _, h := range hidden {
		assert.Equal(t, tensor.Shape{4, 6}, h.Shape())
	}

	// The top layer's last output is the final hidden state of the stack
	assert.Equal(t, outputs[1].Data(), hidden[1].Data())
}

func TestGRU_RejectsBadHiddenCount(t *testing.T) {
	backend := cpu.New()
	gru := nn.NewGRU(3, 6, 2, 0, backend)

	steps := []*tensor.Tensor[float32, *cpu.CPUBackend]{
		tensor.Randn[float32](tensor.Shape{4, 3}, backend),
	}
	hidden := []*tensor.Tensor[float32, *cpu.CPUBackend]{
		tensor.Randn[float32](tensor.Shape{4, 6}, backend),
	}

	assert.Panics(t, func() {
		gru.ForwardSequence(steps, hidden)
	})
}

func TestGRU_GradientsReachAllLayers(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	gru := nn.NewGRU(3, 4, 2, 0, backend)
	steps := []*tensor.Tensor[float32, *autodiff.AutodiffBackend[*cpu.CPUBackend]]{
		tensor.Randn[float32](tensor.Shape{2, 3}, backend),
		tensor.Randn[float32](tensor.Shape{2, 3}, backend),
	}

	outputs, _ := gru.ForwardSequence(steps, nil)
	loss := outputs[len(outputs)-1].Sum()
	grads := autodiff.Backward(loss, backend)

	for _, p := range gru.Parameters() {
		grad, ok := grads[p.Tensor().Raw()]
		require.True(t, ok, "no gradient for %s", p.Name())
		assert.Equal(t, p.Tensor().Shape(), grad.Shape())
	}
}
