// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Embedding, Dropout
//   - Recurrent units: RNNCell, NaiveRNN, GRUCell, GRU
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: MSELoss
//   - Utilities: Module interface, Parameter
//   - Initialization: Xavier, Uniform, Normal, Zeros, Ones, Randn
//
// # Basic Usage
//
//	import (
//	    "github.com/nlpkit-ml/nlpkit/backend/cpu"
//	    "github.com/nlpkit-ml/nlpkit/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    layer := nn.NewLinear(128, 64, backend)
//	    output := layer.Forward(input)
//	}
//
// # Recurrent Units
//
// GRUCell steps one time step at a time; GRU stacks cells into layers and
// unrolls over a sequence:
//
//	cell := nn.NewGRUCell(inputSize, hiddenSize, backend)
//	h := cell.Step(x, h)
//
//	gru := nn.NewGRU(inputSize, hiddenSize, numLayers, dropout, backend)
//	outputs, hidden := gru.ForwardSequence(steps, nil)
//
// # Parameter Management
//
// Access module parameters for optimization:
//
//	params := layer.Parameters()
//	for _, param := range params {
//	    fmt.Println(param.Name(), param.Tensor().Shape())
//	}
package nn
