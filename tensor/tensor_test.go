// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlpkit-ml/nlpkit/backend/cpu"
	"github.com/nlpkit-ml/nlpkit/tensor"
)

func TestPublicAPI_Creation(t *testing.T) {
	backend := cpu.New()

	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, tensor.Float32, x.DType())

	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
	z := x.Add(y)
	for _, v := range z.Data() {
		assert.Equal(t, float32(1), v)
	}
}

func TestPublicAPI_FromSliceAndMatMul(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	c := a.MatMul(b)
	assert.Equal(t, []float32{19, 22, 43, 50}, c.Data())
}

func TestPublicAPI_Cat(t *testing.T) {
	backend := cpu.New()

	a := tensor.Full[float32](tensor.Shape{1, 2}, 1, backend)
	b := tensor.Full[float32](tensor.Shape{1, 2}, 2, backend)

	c := tensor.Cat([]*tensor.Tensor[float32, *cpu.Backend]{a, b}, 0)
	assert.Equal(t, tensor.Shape{2, 2}, c.Shape())
	assert.Equal(t, []float32{1, 1, 2, 2}, c.Data())
}

func TestPublicAPI_BroadcastShapes(t *testing.T) {
	shape, needs, err := tensor.BroadcastShapes(tensor.Shape{2, 1}, tensor.Shape{1, 3})
	require.NoError(t, err)
	assert.True(t, needs)
	assert.Equal(t, tensor.Shape{2, 3}, shape)
}
