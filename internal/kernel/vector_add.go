package kernel

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/x448/float16"

	"github.com/voltlabs/kernex/internal/dtype"
)

// vectorAdd computes out[i] = a[i] + b[i] over n elements. The shape
// mirrors the launch configuration the variant was built with: the
// backend walks the index space in block*unroll chunks the way a grid
// of thread blocks would cover it.
type vectorAdd struct {
	a, b, out *DeviceBuffer
	n         int
	dt        dtype.DType
	shape     vectorAddShape
}

func newVectorAdd(dt dtype.DType, shape vectorAddShape) Constructor {
	return func(a, b, out *DeviceBuffer, n int) (Variant, error) {
		if n <= 0 {
			return nil, fmt.Errorf("vector add: element count must be positive, got %d", n)
		}
		want := n * dt.Bytes()
		if a.Len() != want {
			return nil, fmt.Errorf("vector add: input a holds %d bytes, want %d for n=%d %s", a.Len(), want, n, dt)
		}
		if b.Len() != want {
			return nil, fmt.Errorf("vector add: input b holds %d bytes, want %d for n=%d %s", b.Len(), want, n, dt)
		}
		if out.Len() != want {
			return nil, fmt.Errorf("vector add: output holds %d bytes, want %d for n=%d %s", out.Len(), want, n, dt)
		}
		return &vectorAdd{a: a, b: b, out: out, n: n, dt: dt, shape: shape}, nil
	}
}

func (v *vectorAdd) Run() error {
	a, err := v.a.device()
	if err != nil {
		return err
	}
	b, err := v.b.device()
	if err != nil {
		return err
	}
	out, err := v.out.device()
	if err != nil {
		return err
	}
	if v.dt == dtype.Float16 {
		v.runHalf(a, b, out)
	} else {
		v.runFloat(a, b, out)
	}
	return nil
}

// Profile runs the kernel once on the timed path and returns elapsed
// milliseconds.
func (v *vectorAdd) Profile() (float64, error) {
	start := time.Now()
	if err := v.Run(); err != nil {
		return 0, err
	}
	return float64(time.Since(start)) / float64(time.Millisecond), nil
}

func (v *vectorAdd) runFloat(a, b, out []byte) {
	step := v.shape.block * v.shape.unroll
	for base := 0; base < v.n; base += step {
		end := base + step
		if end > v.n {
			end = v.n
		}
		for i := base; i < end; i++ {
			x := math.Float32frombits(binary.LittleEndian.Uint32(a[i*4:]))
			y := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(x+y))
		}
	}
}

// runHalf adds in float32 and rounds the result back to half, the same
// arithmetic a half-precision device kernel performs.
func (v *vectorAdd) runHalf(a, b, out []byte) {
	step := v.shape.block * v.shape.unroll
	for base := 0; base < v.n; base += step {
		end := base + step
		if end > v.n {
			end = v.n
		}
		for i := base; i < end; i++ {
			x := float16.Frombits(binary.LittleEndian.Uint16(a[i*2:])).Float32()
			y := float16.Frombits(binary.LittleEndian.Uint16(b[i*2:])).Float32()
			binary.LittleEndian.PutUint16(out[i*2:], float16.Fromfloat32(x+y).Bits())
		}
	}
}
