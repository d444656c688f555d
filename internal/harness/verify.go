package harness

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/voltlabs/kernex/internal/dtype"
	"github.com/voltlabs/kernex/internal/kernel"
	"github.com/voltlabs/kernex/internal/metrics"
	"github.com/voltlabs/kernex/internal/registry"
)

// Verify runs one correctness check: seeded random inputs go through
// device transfer, the variant executes once, and the retrieved output
// is compared element-wise against the reference sum within dt's
// tolerance. Construction or device failures propagate unmodified.
func (h *Harness) Verify(size int, dt dtype.DType, d registry.Descriptor) error {
	rng := rand.New(rand.NewSource(h.opts.Seed))
	x, xv := randomValues(rng, size, dt)
	y, yv := randomValues(rng, size, dt)
	z, _ := randomValues(rng, size, dt)

	xd := kernel.NewDeviceBuffer(x)
	defer xd.Free()
	yd := kernel.NewDeviceBuffer(y)
	defer yd.Free()
	zd := kernel.NewDeviceBuffer(z)
	defer zd.Free()

	v, err := d.New(xd, yd, zd, size)
	if err != nil {
		return err
	}
	if err := v.Run(); err != nil {
		return err
	}
	if err := zd.UpdateHost(); err != nil {
		return err
	}

	ref := make([]float64, size)
	floats.AddTo(ref, xv, yv)
	ref = dt.Quantize(ref)

	got := dt.Unpack(z)
	rtol, atol := dt.Tolerance()
	metrics.VerifyChecks.WithLabelValues(d.Name, dt.String()).Inc()
	for i := range ref {
		if math.Abs(got[i]-ref[i]) > atol+rtol*math.Abs(ref[i]) {
			metrics.VerifyFailures.WithLabelValues(d.Name, dt.String()).Inc()
			return fmt.Errorf("correctness failure: %s size=%d dtype=%s element %d: got %v, want %v (rtol=%g atol=%g)",
				d.Name, size, dt, i, got[i], ref[i], rtol, atol)
		}
	}
	return nil
}

// VerifySweep checks every registered variant for each (size, dtype)
// pair. A tolerance violation fails only that check; the sweep
// continues and all failures are returned.
func (h *Harness) VerifySweep(sizes []int) []error {
	var failures []error
	var bar *progressbar.ProgressBar
	if h.opts.Progress {
		total := 0
		for _, dt := range dtype.All() {
			total += len(sizes) * len(h.reg.VariantsFor(dt))
		}
		bar = progressbar.Default(int64(total), "verifying")
	}
	for _, dt := range dtype.All() {
		variants := h.reg.VariantsFor(dt)
		if len(variants) == 0 {
			if h.opts.FailOnEmpty {
				failures = append(failures, fmt.Errorf("no variants registered for dtype %s", dt))
				continue
			}
			h.logger.Warn("no variants registered, skipping dtype", zap.String("dtype", dt.String()))
			continue
		}
		for _, size := range sizes {
			for _, d := range variants {
				if err := h.Verify(size, dt, d); err != nil {
					h.logger.Error("verification failed",
						zap.String("variant", d.Name),
						zap.Int("size", size),
						zap.String("dtype", dt.String()),
						zap.Error(err))
					failures = append(failures, err)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}
	}
	return failures
}
