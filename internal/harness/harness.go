// Package harness drives kernel variants through correctness checks
// and profiling sweeps: it generates seeded inputs, moves them through
// device buffers, invokes variants, and compares or ranks the results.
package harness

import (
	"io"
	"math/rand"

	"go.uber.org/zap"

	"github.com/voltlabs/kernex/internal/dtype"
	"github.com/voltlabs/kernex/internal/registry"
)

// Options configure a Harness. The zero value gives seed 0, no warmup,
// and silently empty sweeps for dtypes with no registered variants.
type Options struct {
	// Seed is threaded through every buffer-generation call so that
	// repeated runs with identical (size, dtype) see identical inputs.
	Seed int64
	// Warmup is the number of untimed executions before the timed one.
	Warmup int
	// FailOnEmpty makes a sweep fail when a dtype resolves zero
	// variants instead of performing no work.
	FailOnEmpty bool
	// Progress enables a progress bar on stderr during sweeps.
	Progress bool
}

// VariantSource yields the registered variants for a dtype. Satisfied
// by *registry.Registry.
type VariantSource interface {
	VariantsFor(dt dtype.DType) []registry.Descriptor
}

// Harness runs correctness and profiling sweeps over registered
// variants. All execution is synchronous; each invocation owns its
// three buffers for the duration of the call.
type Harness struct {
	reg    VariantSource
	opts   Options
	out    io.Writer
	logger *zap.Logger
}

func New(reg VariantSource, opts Options, out io.Writer, logger *zap.Logger) *Harness {
	return &Harness{
		reg:    reg,
		opts:   opts,
		out:    out,
		logger: logger.Named("harness"),
	}
}

// randomValues draws n values from rng in [0, 1) and quantizes them
// through dt's representation, returning both the packed host buffer
// and the quantized values for reference use.
func randomValues(rng *rand.Rand, n int, dt dtype.DType) (host []byte, quantized []float64) {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = rng.Float64()
	}
	quantized = dt.Quantize(vals)
	return dt.Pack(quantized), quantized
}
