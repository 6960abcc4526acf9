// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for NLPKit.
//
// # Overview
//
// Tensors are the fundamental data structure in NLPKit. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for element-wise operations
//   - Device abstraction via the Backend interface
//
// # Basic Usage
//
//	import (
//	    "github.com/nlpkit-ml/nlpkit/backend/cpu"
//	    "github.com/nlpkit-ml/nlpkit/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    result := x.MatMul(y.Transpose())
//	}
//
// # Supported Data Types
//
// The DType constraint admits float32, float64, int32 and bool. The
// floating-point types carry model parameters and activations, int32
// carries token IDs and argmax results, and bool carries masks.
//
// # Broadcasting
//
// Binary element-wise operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend)  // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)   // (3, 4)
//	c := a.Add(b)                                            // (3, 4)
//
// # Backends
//
// All computation is delegated to a Backend. backend/cpu provides the
// pure Go reference implementation; the autodiff package wraps any
// Backend to record operations for backpropagation.
package tensor
