// Package kernel is the compute-kernel library surface consumed by the
// harness: device buffers, kernel variants, and the export table the
// registry is built from.
package kernel

import (
	"fmt"

	"github.com/voltlabs/kernex/internal/dtype"
)

// Variant is one concrete, independently invocable implementation of a
// kernel operation, already bound to its argument buffers.
type Variant interface {
	// Run executes the kernel once and blocks until the device
	// operation completes.
	Run() error
	// Profile executes the kernel on the timed path and returns the
	// elapsed time in milliseconds, the device's native timing unit.
	Profile() (float64, error)
}

// Constructor binds a variant to three equal-length device buffers
// (two inputs, one output) and the element count. Construction fails
// if the buffer sizes do not match n for the variant's element type.
type Constructor func(a, b, out *DeviceBuffer, n int) (Variant, error)

// Export is one entry of the library's declared export table.
type Export struct {
	Name  string
	DType dtype.DType
	New   Constructor
}

// vectorAddShape is one code variant of the vector add kernel: the
// block size and unroll factor it was built with.
type vectorAddShape struct {
	block  int
	unroll int
}

var vectorAddShapes = []vectorAddShape{
	{128, 1},
	{256, 1},
	{256, 4},
	{512, 2},
}

// Exports returns the library's export table: every built kernel
// variant, named <Operation>_<typeTag>_<block>_<unroll>. Order is
// fixed for a given build.
func Exports() []Export {
	var exports []Export
	for _, dt := range dtype.All() {
		for _, shape := range vectorAddShapes {
			exports = append(exports, Export{
				Name:  fmt.Sprintf("VectorAdd_%s_%d_%d", dt.Tag(), shape.block, shape.unroll),
				DType: dt,
				New:   newVectorAdd(dt, shape),
			})
		}
	}
	return exports
}
