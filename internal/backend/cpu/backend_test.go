package cpu

import (
	"testing"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

// rawFloat32 builds a float32 RawTensor from literal values.
func rawFloat32(t *testing.T, values []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsFloat32(), values)
	return raw
}

// rawInt32 builds an int32 RawTensor from literal values.
func rawInt32(t *testing.T, values []int32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Int32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsInt32(), values)
	return raw
}

func float32SliceEqual(a, b []float32) bool {
	const epsilon = 1e-5
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > epsilon {
			return false
		}
	}
	return true
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want \"CPU\"", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", backend.Device())
	}
}

func TestCPUBackend_Add(t *testing.T) {
	backend := New()

	t.Run("SameShape", func(t *testing.T) {
		a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
		b := rawFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

		result := backend.Add(a, b)
		if !float32SliceEqual(result.AsFloat32(), []float32{11, 22, 33, 44}) {
			t.Errorf("Add = %v", result.AsFloat32())
		}
	})

	t.Run("BroadcastRow", func(t *testing.T) {
		a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
		b := rawFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

		result := backend.Add(a, b)
		if !result.Shape().Equal(tensor.Shape{2, 3}) {
			t.Fatalf("shape = %v, want [2 3]", result.Shape())
		}
		if !float32SliceEqual(result.AsFloat32(), []float32{11, 22, 33, 14, 25, 36}) {
			t.Errorf("broadcast Add = %v", result.AsFloat32())
		}
	})

	t.Run("IncompatibleShapesPanic", func(t *testing.T) {
		a := rawFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
		b := rawFloat32(t, []float32{1, 2}, tensor.Shape{2})

		defer func() {
			if recover() == nil {
				t.Error("expected panic for incompatible shapes")
			}
		}()
		backend.Add(a, b)
	})
}

func TestCPUBackend_SubMulDiv(t *testing.T) {
	backend := New()
	a := rawFloat32(t, []float32{4, 9, 16, 25}, tensor.Shape{4})
	b := rawFloat32(t, []float32{2, 3, 4, 5}, tensor.Shape{4})

	if got := backend.Sub(a, b).AsFloat32(); !float32SliceEqual(got, []float32{2, 6, 12, 20}) {
		t.Errorf("Sub = %v", got)
	}
	if got := backend.Mul(a, b).AsFloat32(); !float32SliceEqual(got, []float32{8, 27, 64, 125}) {
		t.Errorf("Mul = %v", got)
	}
	if got := backend.Div(a, b).AsFloat32(); !float32SliceEqual(got, []float32{2, 3, 4, 5}) {
		t.Errorf("Div = %v", got)
	}
}

func TestCPUBackend_Int32Arithmetic(t *testing.T) {
	backend := New()
	a := rawInt32(t, []int32{5, 10}, tensor.Shape{2})
	b := rawInt32(t, []int32{2, 3}, tensor.Shape{2})

	got := backend.Add(a, b).AsInt32()
	if got[0] != 7 || got[1] != 13 {
		t.Errorf("int32 Add = %v, want [7 13]", got)
	}
}

func TestCPUBackend_MatMul(t *testing.T) {
	backend := New()

	// [[1 2] [3 4]] @ [[5 6] [7 8]] = [[19 22] [43 50]]
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFloat32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	result := backend.MatMul(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", result.Shape())
	}
	if !float32SliceEqual(result.AsFloat32(), []float32{19, 22, 43, 50}) {
		t.Errorf("MatMul = %v", result.AsFloat32())
	}
}

func TestCPUBackend_MatMulRectangular(t *testing.T) {
	backend := New()

	// [2, 3] @ [3, 1] -> [2, 1]
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := rawFloat32(t, []float32{1, 1, 1}, tensor.Shape{3, 1})

	result := backend.MatMul(a, b)
	if !float32SliceEqual(result.AsFloat32(), []float32{6, 15}) {
		t.Errorf("MatMul = %v, want [6 15]", result.AsFloat32())
	}
}

func TestCPUBackend_MatMulInnerDimMismatchPanics(t *testing.T) {
	backend := New()
	a := rawFloat32(t, make([]float32, 6), tensor.Shape{2, 3})
	b := rawFloat32(t, make([]float32, 8), tensor.Shape{4, 2})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for inner dimension mismatch")
		}
	}()
	backend.MatMul(a, b)
}

func TestCPUBackend_ScalarOps(t *testing.T) {
	backend := New()
	x := rawFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	if got := backend.AddScalar(x, float32(10)).AsFloat32(); !float32SliceEqual(got, []float32{11, 12, 13}) {
		t.Errorf("AddScalar = %v", got)
	}
	if got := backend.SubScalar(x, float32(1)).AsFloat32(); !float32SliceEqual(got, []float32{0, 1, 2}) {
		t.Errorf("SubScalar = %v", got)
	}
	if got := backend.MulScalar(x, float32(2)).AsFloat32(); !float32SliceEqual(got, []float32{2, 4, 6}) {
		t.Errorf("MulScalar = %v", got)
	}
	if got := backend.DivScalar(x, float32(2)).AsFloat32(); !float32SliceEqual(got, []float32{0.5, 1, 1.5}) {
		t.Errorf("DivScalar = %v", got)
	}
}
