package cpu

import (
	"testing"

	"github.com/nlpkit-ml/nlpkit/internal/tensor"
)

func TestCPUBackend_Sum(t *testing.T) {
	backend := New()
	x := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	result := backend.Sum(x)
	if !result.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("shape = %v, want [1]", result.Shape())
	}
	if result.AsFloat32()[0] != 10 {
		t.Errorf("Sum = %v, want 10", result.AsFloat32()[0])
	}
}

func TestCPUBackend_SumDim(t *testing.T) {
	backend := New()
	// [[1 2 3] [4 5 6]]
	x := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	t.Run("Dim0", func(t *testing.T) {
		result := backend.SumDim(x, 0, false)
		if !result.Shape().Equal(tensor.Shape{3}) {
			t.Fatalf("shape = %v, want [3]", result.Shape())
		}
		if !float32SliceEqual(result.AsFloat32(), []float32{5, 7, 9}) {
			t.Errorf("SumDim(0) = %v", result.AsFloat32())
		}
	})

	t.Run("Dim1", func(t *testing.T) {
		result := backend.SumDim(x, 1, false)
		if !float32SliceEqual(result.AsFloat32(), []float32{6, 15}) {
			t.Errorf("SumDim(1) = %v", result.AsFloat32())
		}
	})

	t.Run("KeepDim", func(t *testing.T) {
		result := backend.SumDim(x, 1, true)
		if !result.Shape().Equal(tensor.Shape{2, 1}) {
			t.Errorf("shape = %v, want [2 1]", result.Shape())
		}
	})

	t.Run("OnlyAxisYieldsScalarShape", func(t *testing.T) {
		v := rawFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
		result := backend.SumDim(v, 0, false)
		if !result.Shape().Equal(tensor.Shape{1}) {
			t.Errorf("shape = %v, want [1]", result.Shape())
		}
		if result.AsFloat32()[0] != 6 {
			t.Errorf("SumDim = %v, want 6", result.AsFloat32()[0])
		}
	})
}

func TestCPUBackend_MeanDim(t *testing.T) {
	backend := New()
	x := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	result := backend.MeanDim(x, 1, false)
	if !float32SliceEqual(result.AsFloat32(), []float32{2, 5}) {
		t.Errorf("MeanDim(1) = %v, want [2 5]", result.AsFloat32())
	}
}

func TestCPUBackend_Argmax(t *testing.T) {
	backend := New()
	// [[0.1 0.9 0.2] [0.8 0.3 0.5]]
	x := rawFloat32(t, []float32{0.1, 0.9, 0.2, 0.8, 0.3, 0.5}, tensor.Shape{2, 3})

	result := backend.Argmax(x, 1)
	if result.DType() != tensor.Int32 {
		t.Fatalf("dtype = %s, want int32", result.DType())
	}
	if !result.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("shape = %v, want [2]", result.Shape())
	}
	got := result.AsInt32()
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("Argmax = %v, want [1 0]", got)
	}
}

func TestCPUBackend_ArgmaxTiesPickFirst(t *testing.T) {
	backend := New()
	x := rawFloat32(t, []float32{0.5, 0.5, 0.5}, tensor.Shape{1, 3})

	if got := backend.Argmax(x, 1).AsInt32()[0]; got != 0 {
		t.Errorf("Argmax on ties = %d, want 0", got)
	}
}

func TestCPUBackend_ReduceDimOutOfRangePanics(t *testing.T) {
	backend := New()
	x := rawFloat32(t, []float32{1, 2}, tensor.Shape{2})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for dim out of range")
		}
	}()
	backend.SumDim(x, 2, false)
}
