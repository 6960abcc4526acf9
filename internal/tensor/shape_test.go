package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	if n := (Shape{2, 3, 4}).NumElements(); n != 24 {
		t.Errorf("NumElements = %d, want 24", n)
	}
	// Scalar shape
	if n := (Shape{}).NumElements(); n != 1 {
		t.Errorf("NumElements of empty shape = %d, want 1", n)
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := (Shape{2, 3, 4}).ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Fatalf("strides = %v, want %v", strides, want)
		}
	}
}

func TestShapeEqual(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("equal shapes reported unequal")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("unequal shapes reported equal")
	}
	if (Shape{2, 3}).Equal(Shape{2, 3, 1}) {
		t.Error("shapes of different rank reported equal")
	}
}

func TestBroadcastShapes(t *testing.T) {
	cases := []struct {
		a, b, want Shape
		needs      bool
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{Shape{2, 3}, Shape{1, 3}, Shape{2, 3}, true},
		{Shape{2, 3}, Shape{3}, Shape{2, 3}, true},
		{Shape{4, 1}, Shape{1, 5}, Shape{4, 5}, true},
		{Shape{1}, Shape{8}, Shape{8}, true},
	}
	for _, c := range cases {
		got, needs, err := BroadcastShapes(c.a, c.b)
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) failed: %v", c.a, c.b, err)
			continue
		}
		if !got.Equal(c.want) || needs != c.needs {
			t.Errorf("BroadcastShapes(%v, %v) = %v, %v; want %v, %v",
				c.a, c.b, got, needs, c.want, c.needs)
		}
	}
}

func TestBroadcastShapesIncompatible(t *testing.T) {
	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{2, 4}); err == nil {
		t.Error("expected error for incompatible shapes")
	}
}
