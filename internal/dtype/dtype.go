// Package dtype defines the element types the harness can generate,
// transfer, and compare. Each type carries its byte width, the tag used
// in kernel symbol names, and the numerical tolerance appropriate to
// its precision.
package dtype

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// DType identifies a supported element type.
type DType int

const (
	Float16 DType = iota
	Float32
)

// All returns the supported types in declaration order.
func All() []DType {
	return []DType{Float16, Float32}
}

// Parse maps a CLI/config string ("float16", "float32") to a DType.
func Parse(s string) (DType, error) {
	switch s {
	case "float16":
		return Float16, nil
	case "float32":
		return Float32, nil
	default:
		return 0, fmt.Errorf("unsupported dtype %q (want float16 or float32)", s)
	}
}

// Bytes returns the width of one element in bytes.
func (d DType) Bytes() int {
	switch d {
	case Float16:
		return 2
	case Float32:
		return 4
	default:
		panic(fmt.Sprintf("unknown dtype %d", int(d)))
	}
}

func (d DType) String() string {
	switch d {
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("dtype(%d)", int(d))
	}
}

// Tag returns the substring that identifies this type in kernel variant
// names, e.g. VectorAdd_half_256_4 for Float16.
func (d DType) Tag() string {
	switch d {
	case Float16:
		return "half"
	case Float32:
		return "float"
	default:
		return "unknown"
	}
}

// Tolerance returns the relative and absolute tolerances used when
// comparing a kernel's output against the reference computation.
func (d DType) Tolerance() (rtol, atol float64) {
	switch d {
	case Float16:
		return 1e-3, 1e-5
	default:
		return 1e-5, 1e-8
	}
}

// Quantize rounds each value through this type's representation,
// returning what a device-side buffer of this type would hold.
func (d DType) Quantize(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		switch d {
		case Float16:
			out[i] = float64(float16.Fromfloat32(float32(v)).Float32())
		default:
			out[i] = float64(float32(v))
		}
	}
	return out
}

// Pack encodes vals into a host buffer in this type's wire layout
// (little-endian, one element per Bytes() slot).
func (d DType) Pack(vals []float64) []byte {
	buf := make([]byte, len(vals)*d.Bytes())
	for i, v := range vals {
		switch d {
		case Float16:
			binary.LittleEndian.PutUint16(buf[i*2:], float16.Fromfloat32(float32(v)).Bits())
		default:
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
		}
	}
	return buf
}

// Unpack decodes a host buffer produced by Pack (or filled by a kernel)
// back into float64 values for comparison.
func (d DType) Unpack(buf []byte) []float64 {
	n := len(buf) / d.Bytes()
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		switch d {
		case Float16:
			vals[i] = float64(float16.Frombits(binary.LittleEndian.Uint16(buf[i*2:])).Float32())
		default:
			vals[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
		}
	}
	return vals
}
