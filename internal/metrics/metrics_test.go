package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProfileMetrics(t *testing.T) {
	t.Run("ProfileThroughput", func(t *testing.T) {
		ProfileThroughput.WithLabelValues("VectorAdd_float_256_4", "float32").Set(12.5)
		value := testutil.ToFloat64(ProfileThroughput.WithLabelValues("VectorAdd_float_256_4", "float32"))
		assert.Equal(t, 12.5, value)
	})

	t.Run("ProfileRuns", func(t *testing.T) {
		before := testutil.ToFloat64(ProfileRuns.WithLabelValues("VectorAdd_float_256_4", "float32"))
		ProfileRuns.WithLabelValues("VectorAdd_float_256_4", "float32").Inc()
		after := testutil.ToFloat64(ProfileRuns.WithLabelValues("VectorAdd_float_256_4", "float32"))
		assert.Equal(t, before+1, after)
	})

	t.Run("ProfileDuration", func(t *testing.T) {
		assert.NotPanics(t, func() {
			ProfileDuration.WithLabelValues("VectorAdd_half_128_1", "float16").Observe(42.0)
		})
	})
}

func TestVerifyMetrics(t *testing.T) {
	before := testutil.ToFloat64(VerifyFailures.WithLabelValues("VectorAdd_half_128_1", "float16"))
	VerifyFailures.WithLabelValues("VectorAdd_half_128_1", "float16").Inc()
	after := testutil.ToFloat64(VerifyFailures.WithLabelValues("VectorAdd_half_128_1", "float16"))
	assert.Equal(t, before+1, after)
}
