package harness

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/voltlabs/kernex/internal/dtype"
	"github.com/voltlabs/kernex/internal/kernel"
	"github.com/voltlabs/kernex/internal/metrics"
	"github.com/voltlabs/kernex/internal/registry"
)

// ProfileResult is one timed measurement of one variant. Records are
// immutable after creation; they exist only to be sorted and reported.
type ProfileResult struct {
	Variant    string
	DType      dtype.DType
	Size       int
	Duration   time.Duration
	Throughput float64 // GB/s
}

// throughput converts an elapsed time in milliseconds (the device's
// native timing unit) into effective memory bandwidth in GB/s. The
// traffic model is the vector add's: three equal-length buffers, two
// read and one written.
func throughput(size int, dt dtype.DType, elapsedMS float64) float64 {
	seconds := elapsedMS / 1e3
	return float64(size*3*dt.Bytes()) / seconds / 1e9
}

// Profile runs one timed measurement of d at (size, dt). Buffers are
// generated exactly as in Verify so the workload is identical.
func (h *Harness) Profile(size int, dt dtype.DType, d registry.Descriptor) (ProfileResult, error) {
	rng := rand.New(rand.NewSource(h.opts.Seed))
	x, _ := randomValues(rng, size, dt)
	y, _ := randomValues(rng, size, dt)
	z, _ := randomValues(rng, size, dt)

	xd := kernel.NewDeviceBuffer(x)
	defer xd.Free()
	yd := kernel.NewDeviceBuffer(y)
	defer yd.Free()
	zd := kernel.NewDeviceBuffer(z)
	defer zd.Free()

	v, err := d.New(xd, yd, zd, size)
	if err != nil {
		return ProfileResult{}, err
	}
	for i := 0; i < h.opts.Warmup; i++ {
		if err := v.Run(); err != nil {
			return ProfileResult{}, err
		}
	}
	elapsedMS, err := v.Profile()
	if err != nil {
		return ProfileResult{}, err
	}

	r := ProfileResult{
		Variant:    d.Name,
		DType:      dt,
		Size:       size,
		Duration:   time.Duration(elapsedMS * float64(time.Millisecond)),
		Throughput: throughput(size, dt, elapsedMS),
	}
	metrics.ProfileRuns.WithLabelValues(d.Name, dt.String()).Inc()
	metrics.ProfileDuration.WithLabelValues(d.Name, dt.String()).Observe(r.Duration.Seconds() * 1e6)
	metrics.ProfileThroughput.WithLabelValues(d.Name, dt.String()).Set(r.Throughput)
	return r, nil
}

// sortResults orders results descending by throughput. The sort is
// stable so equal-throughput entries keep their input order and output
// stays deterministic for identical timings.
func sortResults(results []ProfileResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Throughput > results[j].Throughput
	})
}

// ProfileWithArgs profiles every registered variant for (size, dt),
// ranks the results by throughput, and reports them followed by a
// blank separator line.
func (h *Harness) ProfileWithArgs(size int, dt dtype.DType) error {
	variants := h.reg.VariantsFor(dt)
	if len(variants) == 0 {
		if h.opts.FailOnEmpty {
			return fmt.Errorf("no variants registered for dtype %s", dt)
		}
		h.logger.Warn("no variants registered, skipping dtype", zap.String("dtype", dt.String()))
	}
	results := make([]ProfileResult, 0, len(variants))
	for _, d := range variants {
		r, err := h.Profile(size, dt, d)
		if err != nil {
			return err
		}
		results = append(results, r)
	}
	sortResults(results)
	writeResults(h.out, results)
	return nil
}

// ProfileSweep runs the full matrix: every configured size crossed
// with both dtypes, with a blank line closing each dtype's block.
func (h *Harness) ProfileSweep(sizes []int) error {
	for _, dt := range dtype.All() {
		for _, size := range sizes {
			if err := h.ProfileWithArgs(size, dt); err != nil {
				return err
			}
		}
		fmt.Fprintln(h.out)
	}
	return nil
}
