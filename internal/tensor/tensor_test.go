package tensor

import "testing"

// testBackend is the minimal Backend used by the tests in this package.
// The real CPU backend lives in internal/backend/cpu; importing it here
// would create an import cycle, so only the methods creation and metadata
// code touch are implemented.
type testBackend struct{}

func (testBackend) Add(a, b *RawTensor) *RawTensor                 { panic("not implemented") }
func (testBackend) Sub(a, b *RawTensor) *RawTensor                 { panic("not implemented") }
func (testBackend) Mul(a, b *RawTensor) *RawTensor                 { panic("not implemented") }
func (testBackend) Div(a, b *RawTensor) *RawTensor                 { panic("not implemented") }
func (testBackend) MatMul(a, b *RawTensor) *RawTensor              { panic("not implemented") }
func (testBackend) AddScalar(x *RawTensor, s any) *RawTensor       { panic("not implemented") }
func (testBackend) SubScalar(x *RawTensor, s any) *RawTensor       { panic("not implemented") }
func (testBackend) MulScalar(x *RawTensor, s any) *RawTensor       { panic("not implemented") }
func (testBackend) DivScalar(x *RawTensor, s any) *RawTensor       { panic("not implemented") }
func (testBackend) Exp(x *RawTensor) *RawTensor                    { panic("not implemented") }
func (testBackend) Log(x *RawTensor) *RawTensor                    { panic("not implemented") }
func (testBackend) Sqrt(x *RawTensor) *RawTensor                   { panic("not implemented") }
func (testBackend) ReLU(x *RawTensor) *RawTensor                   { panic("not implemented") }
func (testBackend) Sigmoid(x *RawTensor) *RawTensor                { panic("not implemented") }
func (testBackend) Tanh(x *RawTensor) *RawTensor                   { panic("not implemented") }
func (testBackend) Softmax(x *RawTensor, dim int) *RawTensor       { panic("not implemented") }
func (testBackend) Sum(x *RawTensor) *RawTensor                    { panic("not implemented") }
func (testBackend) SumDim(x *RawTensor, d int, k bool) *RawTensor  { panic("not implemented") }
func (testBackend) MeanDim(x *RawTensor, d int, k bool) *RawTensor { panic("not implemented") }
func (testBackend) Argmax(x *RawTensor, dim int) *RawTensor        { panic("not implemented") }
func (testBackend) Reshape(x *RawTensor, shape Shape) *RawTensor   { panic("not implemented") }
func (testBackend) Transpose(x *RawTensor, axes ...int) *RawTensor { panic("not implemented") }
func (testBackend) Cat(ts []*RawTensor, dim int) *RawTensor        { panic("not implemented") }
func (testBackend) Embedding(w, i *RawTensor) *RawTensor           { panic("not implemented") }
func (testBackend) Cast(x *RawTensor, dtype DataType) *RawTensor   { panic("not implemented") }
func (testBackend) Name() string                                   { return "test" }
func (testBackend) Device() Device                                 { return CPU }

func TestZeros(t *testing.T) {
	x := Zeros[float32](Shape{2, 3}, testBackend{})
	if !x.Shape().Equal(Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", x.Shape())
	}
	for i, v := range x.Data() {
		if v != 0 {
			t.Fatalf("element %d = %v, want 0", i, v)
		}
	}
}

func TestOnesAndFull(t *testing.T) {
	ones := Ones[float32](Shape{4}, testBackend{})
	for _, v := range ones.Data() {
		if v != 1 {
			t.Fatalf("Ones element = %v, want 1", v)
		}
	}

	full := Full[int32](Shape{3}, 7, testBackend{})
	for _, v := range full.Data() {
		if v != 7 {
			t.Fatalf("Full element = %v, want 7", v)
		}
	}
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, testBackend{})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if x.At(1, 2) != 6 {
		t.Errorf("At(1, 2) = %v, want 6", x.At(1, 2))
	}
	if x.DType() != Float32 {
		t.Errorf("dtype = %s, want float32", x.DType())
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}, testBackend{}); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestTensorSetAndAt(t *testing.T) {
	x := Zeros[float32](Shape{2, 2}, testBackend{})
	x.Set(3.5, 1, 0)

	if x.At(1, 0) != 3.5 {
		t.Errorf("At(1, 0) = %v, want 3.5", x.At(1, 0))
	}
	// Row-major layout: (1, 0) is flat index 2
	if x.Data()[2] != 3.5 {
		t.Errorf("Data()[2] = %v, want 3.5", x.Data()[2])
	}
}

func TestTensorAtOutOfBoundsPanics(t *testing.T) {
	x := Zeros[float32](Shape{2, 2}, testBackend{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-bounds index")
		}
	}()
	x.At(2, 0)
}

func TestTensorItem(t *testing.T) {
	x, _ := FromSlice([]float32{42}, Shape{1}, testBackend{})
	if x.Item() != 42 {
		t.Errorf("Item() = %v, want 42", x.Item())
	}
}

func TestTensorItemPanicsOnMultiElement(t *testing.T) {
	x := Zeros[float32](Shape{2}, testBackend{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for multi-element Item()")
		}
	}()
	x.Item()
}

func TestTensorClone(t *testing.T) {
	x, _ := FromSlice([]float32{1, 2}, Shape{2}, testBackend{})
	y := x.Clone()
	y.Data()[0] = 99

	if x.Data()[0] != 1 {
		t.Error("Clone must not share storage")
	}
}

func TestTensorDetachSharesStorage(t *testing.T) {
	x, _ := FromSlice([]float32{1, 2}, Shape{2}, testBackend{})
	x.SetGrad(Zeros[float32](Shape{2}, testBackend{}))

	d := x.Detach()
	if d.Grad() != nil {
		t.Error("Detach must drop the gradient")
	}
	d.Data()[0] = 5
	if x.Data()[0] != 5 {
		t.Error("Detach must share storage")
	}
}
