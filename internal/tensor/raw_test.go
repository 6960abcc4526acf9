package tensor

import (
	"strings"
	"testing"
)

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	if !raw.Shape().Equal(Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != Float32 {
		t.Errorf("dtype = %s, want float32", raw.DType())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements = %d, want 6", raw.NumElements())
	}
}

func TestNewRawRejectsInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("expected error for zero dimension")
	}
	if _, err := NewRaw(Shape{-1, 3}, Float32, CPU); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestRawTensorAsFloat32(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Float32, CPU)
	data := raw.AsFloat32()

	if len(data) != 6 {
		t.Errorf("AsFloat32 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsFloat32()[0] != 42 {
		t.Error("AsFloat32 should return zero-copy slice")
	}
}

func TestRawTensorAsInt32(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Int32, CPU)
	data := raw.AsInt32()

	data[3] = -7
	if raw.AsInt32()[3] != -7 {
		t.Error("AsInt32 should return zero-copy slice")
	}
}

func TestRawTensorDTypeMismatchPanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on dtype mismatch")
		}
	}()
	raw.AsInt32()
}

func TestRawTensorClone(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	raw.AsFloat32()[0] = 1.5

	clone := raw.Clone()
	clone.AsFloat32()[0] = 9

	if raw.AsFloat32()[0] != 1.5 {
		t.Error("Clone must not share storage with the original")
	}
	if !clone.Shape().Equal(raw.Shape()) {
		t.Errorf("clone shape = %v, want %v", clone.Shape(), raw.Shape())
	}
}

func TestRawTensorWithShape(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 3}, Float32, CPU)
	raw.AsFloat32()[4] = 7

	view, err := raw.WithShape(Shape{3, 2})
	if err != nil {
		t.Fatalf("WithShape failed: %v", err)
	}
	if view.AsFloat32()[4] != 7 {
		t.Error("WithShape must share storage")
	}

	if _, err := raw.WithShape(Shape{4, 2}); err == nil {
		t.Error("expected error for element count mismatch")
	}
}

func TestRawTensorString(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 3}, Float32, CPU)
	s := raw.String()
	if !strings.Contains(s, "float32") || !strings.Contains(s, "CPU") {
		t.Errorf("String() = %q, want dtype and device mentioned", s)
	}
}

func TestDataTypeSize(t *testing.T) {
	cases := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Bool, 1},
	}
	for _, c := range cases {
		if got := c.dtype.Size(); got != c.size {
			t.Errorf("%s.Size() = %d, want %d", c.dtype, got, c.size)
		}
	}
}
