// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/nlpkit-ml/nlpkit/internal/nn"
	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(128, 64, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Embedding represents a lookup table mapping token IDs to dense vectors.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// NewEmbedding creates an embedding table initialized from N(0, 1).
//
// Example:
//
//	backend := cpu.New()
//	emb := nn.NewEmbedding(vocabSize, 64, backend)
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	return nn.NewEmbedding(numEmbeddings, embeddingDim, backend)
}

// NewEmbeddingFromWeight creates an embedding table around an existing
// [vocab, dim] weight tensor.
func NewEmbeddingFromWeight[B tensor.Backend](weight *tensor.Tensor[float32, B], backend B) *Embedding[B] {
	return nn.NewEmbeddingFromWeight(weight, backend)
}

// Dropout zeroes a fraction of its input during training, scaling the
// survivors so the expected activation is unchanged.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a dropout layer with drop probability p in [0, 1).
func NewDropout[B tensor.Backend](p float32, backend B) *Dropout[B] {
	return nn.NewDropout(p, backend)
}

// Recurrent units

// RNNCell is a single-step vanilla recurrent cell.
type RNNCell[B tensor.Backend] = nn.RNNCell[B]

// NewRNNCell creates a recurrent cell. nonlinearity is "tanh" or "relu".
func NewRNNCell[B tensor.Backend](inputSize, hiddenSize int, bias bool, nonlinearity string, backend B) (*RNNCell[B], error) {
	return nn.NewRNNCell(inputSize, hiddenSize, bias, nonlinearity, backend)
}

// NaiveRNN is a from-scratch recurrent language model layer with a tied
// output projection.
type NaiveRNN[B tensor.Backend] = nn.NaiveRNN[B]

// NewNaiveRNN creates a NaiveRNN layer.
func NewNaiveRNN[B tensor.Backend](inputSize, hiddenSize, outputSize int, backend B) *NaiveRNN[B] {
	return nn.NewNaiveRNN(inputSize, hiddenSize, outputSize, backend)
}

// GRUCell is a single-step gated recurrent unit.
type GRUCell[B tensor.Backend] = nn.GRUCell[B]

// NewGRUCell creates a GRU cell.
//
// Example:
//
//	backend := cpu.New()
//	cell := nn.NewGRUCell(64, 128, backend)
//	h := cell.Step(x, nil) // nil hidden starts from zeros
func NewGRUCell[B tensor.Backend](inputSize, hiddenSize int, backend B) *GRUCell[B] {
	return nn.NewGRUCell(inputSize, hiddenSize, backend)
}

// GRU is a multi-layer GRU unrolled over a sequence, with dropout between
// layers.
type GRU[B tensor.Backend] = nn.GRU[B]

// NewGRU creates a stacked GRU. Dropout applies between layers only and
// only when numLayers > 1.
func NewGRU[B tensor.Backend](inputSize, hiddenSize, numLayers int, dropout float32, backend B) *GRU[B] {
	return nn.NewGRU(inputSize, hiddenSize, numLayers, dropout, backend)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid represents the sigmoid activation function.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new sigmoid activation layer.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Tanh represents the hyperbolic tangent activation function.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a new tanh activation layer.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Loss functions

// MSELoss computes the mean squared error between pred and target as a
// scalar tensor, staying on the gradient tape.
func MSELoss[B tensor.Backend](pred, target *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.MSELoss(pred, target)
}

// Initialization

// Xavier returns a tensor initialized with Xavier/Glorot uniform values.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Uniform returns a tensor with values drawn from U(-bound, bound).
func Uniform[B tensor.Backend](bound float32, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Uniform(bound, shape, backend)
}

// Normal returns a tensor with values drawn from N(mean, std²).
func Normal[B tensor.Backend](mean, std float32, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Normal(mean, std, shape, backend)
}

// Zeros returns a float32 tensor of zeros.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones returns a float32 tensor of ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// Randn returns a float32 tensor drawn from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}
