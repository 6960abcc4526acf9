// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation with bias correction
//
// # Basic Usage
//
//	import (
//	    "github.com/nlpkit-ml/nlpkit/autodiff"
//	    "github.com/nlpkit-ml/nlpkit/backend/cpu"
//	    "github.com/nlpkit-ml/nlpkit/nn"
//	    "github.com/nlpkit-ml/nlpkit/optim"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    model := nn.NewLinear(128, 10, backend)
//	    optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001}, backend)
//
//	    for _, batch := range batches {
//	        optimizer.ZeroGrad()
//	        loss := forward(model, batch)
//	        grads := autodiff.Backward(loss, backend)
//	        optimizer.Step(grads)
//	        backend.Tape().Clear()
//	    }
//	}
package optim
