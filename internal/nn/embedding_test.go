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

func TestEmbedding_LookupShape(t *testing.T) {
	backend := cpu.New()
	emb := nn.NewEmbedding(10, 4, backend)

	indices, err := tensor.FromSlice([]int32{1, 5, 9}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	out := emb.Lookup(indices)
	assert.Equal(t, tensor.Shape{3, 4}, out.Shape())

	batch, err := tensor.FromSlice([]int32{0, 1, 2, 3, 4, 5}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3, 4}, emb.Lookup(batch).Shape())
}

func TestEmbedding_LookupValues(t *testing.T) {
	backend := cpu.New()

	weight, err := tensor.FromSlice([]float32{
		1, 2,
		3, 4,
		5, 6,
	}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)
	emb := nn.NewEmbeddingFromWeight(weight, backend)

	indices, err := tensor.FromSlice([]int32{2, 0}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	out := emb.Lookup(indices)
	assert.Equal(t, []float32{5, 6, 1, 2}, out.Data())
}

func TestEmbedding_OutOfRangePanics(t *testing.T) {
	backend := cpu.New()
	emb := nn.NewEmbedding(3, 2, backend)

	indices, err := tensor.FromSlice([]int32{3}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	assert.Panics(t, func() { emb.Lookup(indices) })
}

func TestEmbedding_GradientScatterAdds(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	emb := nn.NewEmbedding(4, 2, backend)
	indices, err := tensor.FromSlice([]int32{1, 1, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	loss := emb.Lookup(indices).Sum()
	grads := autodiff.Backward(loss, backend)

	grad, ok := grads[emb.Weight().Tensor().Raw()]
	require.True(t, ok)
	// Row 1 gathered twice, row 3 once, rows 0 and 2 untouched
	assert.InDeltaSlice(t, []float32{0, 0, 2, 2, 0, 0, 1, 1}, grad.AsFloat32(), 1e-6)
}
