// Copyright 2025 The NLPKit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/nlpkit-ml/nlpkit/internal/tensor"

// RawTensor is the low-level untyped tensor representation: a flat byte
// buffer plus shape, strides and a runtime dtype tag. Backends operate on
// RawTensors; the generic Tensor wrapper adds type safety on top.
//
// Most users should work with Tensor[T, B] instead.
type RawTensor = tensor.RawTensor
