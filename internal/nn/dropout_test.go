package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpkit-ml/nlpkit/internal/backend/cpu"
	"github.com/nlpkit-ml/nlpkit/internal/nn"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

func TestDropout_EvalIsIdentity(t *testing.T) {
	backend := cpu.New()
	dropout := nn.NewDropout(0.5, backend)
	dropout.Eval()

	input := tensor.Randn[float32](tensor.Shape{4, 8}, backend)
	output := dropout.Forward(input)

	assert.Equal(t, input.Data(), output.Data())
}

func TestDropout_ZeroProbabilityIsIdentity(t *testing.T) {
	backend := cpu.New()
	dropout := nn.NewDropout(0, backend)

	input := tensor.Randn[float32](tensor.Shape{4, 8}, backend)
	output := dropout.Forward(input)

	assert.Equal(t, input.Data(), output.Data())
}

func TestDropout_TrainZeroesAndScales(t *testing.T) {
	backend := cpu.New()
	dropout := nn.NewDropout(0.5, backend)

	input := nn.Ones(tensor.Shape{1000}, backend)
	output := dropout.Forward(input)

	// Survivors are scaled by 1/(1-p) = 2; everything else is zero
	zeros, survivors := 0, 0
	for _, v := range output.Data() {
		switch v {
		case 0:
			zeros++
		case 2:
			survivors++
		default:
			t.Fatalf("unexpected value %f", v)
		}
	}
	require.Equal(t, 1000, zeros+survivors)
	// With p=0.5 over 1000 elements, both counts sit far from the edges
	assert.Greater(t, zeros, 300)
	assert.Greater(t, survivors, 300)
}

func TestDropout_RejectsInvalidProbability(t *testing.T) {
	backend := cpu.New()

	assert.Panics(t, func() { nn.NewDropout(-0.1, backend) })
	assert.Panics(t, func() { nn.NewDropout(1.0, backend) })
}
