package tensor

import "fmt"

// DType is the constraint satisfied by every element type a Tensor can carry.
type DType interface {
	float32 | float64 | int32 | bool
}

// DataType is the runtime tag describing a tensor's element type.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Bool
)

// Size returns the element size in bytes.
func (d DataType) Size() int {
	switch d {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	case Bool:
		return 1
	default:
		panic(fmt.Sprintf("unknown dtype %d", int(d)))
	}
}

// String returns a human-readable name.
func (d DataType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// inferDataType maps a Go value to its DataType tag.
func inferDataType(v any) DataType {
	switch v.(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case bool:
		return Bool
	default:
		panic(fmt.Sprintf("unsupported tensor element type %T", v))
	}
}
