package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpkit-ml/nlpkit/internal/autodiff"
	"github.com/nlpkit-ml/nlpkit/internal/backend/cpu"
	"github.com/nlpkit-ml/nlpkit/internal/nn"
	"github.com/nlpkit-ml/nlpkit/internal/optim"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

func TestSGD_StepMovesAgainstGradient(t *testing.T) {
	backend := cpu.New()

	w, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("w", w)

	grad, err := tensor.FromSlice([]float32{0.5, -0.5}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	grads := map[*tensor.RawTensor]*tensor.RawTensor{w.Raw(): grad.Raw()}

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.SGDConfig{LR: 0.1}, backend)
	sgd.Step(grads)

	assert.InDeltaSlice(t, []float32{0.95, 2.05}, w.Data(), 1e-6)
}

func TestSGD_MomentumAccumulates(t *testing.T) {
	backend := cpu.New()

	w, err := tensor.FromSlice([]float32{0}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("w", w)

	grad, err := tensor.FromSlice([]float32{1}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	grads := map[*tensor.RawTensor]*tensor.RawTensor{w.Raw(): grad.Raw()}

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9}, backend)

	// step 1: v=1, w=-0.1; step 2: v=1.9, w=-0.29
	sgd.Step(grads)
	assert.InDelta(t, -0.1, float64(w.Data()[0]), 1e-6)
	sgd.Step(grads)
	assert.InDelta(t, -0.29, float64(w.Data()[0]), 1e-6)
}

func TestSGD_SkipsParamsWithoutGradient(t *testing.T) {
	backend := cpu.New()

	w, err := tensor.FromSlice([]float32{3}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("w", w)

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.SGDConfig{LR: 0.1}, backend)
	sgd.Step(map[*tensor.RawTensor]*tensor.RawTensor{})

	assert.Equal(t, float32(3), w.Data()[0])
}

func TestAdam_Defaults(t *testing.T) {
	backend := cpu.New()
	adam := optim.NewAdam(nil, optim.AdamConfig{}, backend)

	assert.InDelta(t, 0.001, float64(adam.GetLR()), 1e-9)
	assert.Zero(t, adam.Timestep())
}

func TestAdam_FirstStepSize(t *testing.T) {
	backend := cpu.New()

	w, err := tensor.FromSlice([]float32{1}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("w", w)

	grad, err := tensor.FromSlice([]float32{10}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	grads := map[*tensor.RawTensor]*tensor.RawTensor{w.Raw(): grad.Raw()}

	adam := optim.NewAdam([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.AdamConfig{LR: 0.001}, backend)
	adam.Step(grads)

	// After bias correction the first step is roughly lr regardless of
	// gradient magnitude
	assert.InDelta(t, 1-0.001, float64(w.Data()[0]), 1e-5)
	assert.Equal(t, 1, adam.Timestep())
}

func TestAdam_ConvergesOnQuadratic(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	// Minimize (w - 5)² starting from w = 0
	w, err := tensor.FromSlice([]float32{0}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	param := nn.NewParameter("w", w)

	target, err := tensor.FromSlice([]float32{5}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	adam := optim.NewAdam([]*nn.Parameter[*autodiff.AutodiffBackend[*cpu.CPUBackend]]{param}, optim.AdamConfig{LR: 0.1}, backend)

	for i := 0; i < 300; i++ {
		adam.ZeroGrad()
		diff := w.Sub(target)
		loss := diff.Mul(diff)
		grads := autodiff.Backward(loss, backend)
		adam.Step(grads)
		tape.Clear()
	}

	assert.InDelta(t, 5.0, float64(w.Data()[0]), 0.05)
}
