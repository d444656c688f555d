package kernel

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlabs/kernex/internal/dtype"
)

func TestExports(t *testing.T) {
	exports := Exports()
	require.NotEmpty(t, exports)

	t.Run("names carry the dtype tag", func(t *testing.T) {
		for _, e := range exports {
			assert.Contains(t, e.Name, "VectorAdd_"+e.DType.Tag()+"_")
			assert.NotNil(t, e.New)
		}
	})

	t.Run("names are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, e := range exports {
			assert.False(t, seen[e.Name], "duplicate export %s", e.Name)
			seen[e.Name] = true
		}
	})

	t.Run("order is stable across calls", func(t *testing.T) {
		again := Exports()
		require.Len(t, again, len(exports))
		for i := range exports {
			assert.Equal(t, exports[i].Name, again[i].Name)
		}
	})
}

func buildBuffers(t *testing.T, dt dtype.DType, x, y []float64) (xd, yd, zd *DeviceBuffer, out []byte) {
	t.Helper()
	out = dt.Pack(make([]float64, len(x)))
	xd = NewDeviceBuffer(dt.Pack(dt.Quantize(x)))
	yd = NewDeviceBuffer(dt.Pack(dt.Quantize(y)))
	zd = NewDeviceBuffer(out)
	t.Cleanup(func() {
		xd.Free()
		yd.Free()
		zd.Free()
	})
	return
}

func TestVectorAddRun(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 20, 30, 40, 50}
	want := []float64{11, 22, 33, 44, 55}

	for _, e := range Exports() {
		t.Run(e.Name, func(t *testing.T) {
			xd, yd, zd, out := buildBuffers(t, e.DType, x, y)
			v, err := e.New(xd, yd, zd, len(x))
			require.NoError(t, err)
			require.NoError(t, v.Run())
			require.NoError(t, zd.UpdateHost())
			assert.Equal(t, want, e.DType.Unpack(out))
		})
	}
}

func TestVectorAddProfile(t *testing.T) {
	x := make([]float64, 1024)
	y := make([]float64, 1024)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) * 2
	}
	for _, e := range Exports() {
		t.Run(e.Name, func(t *testing.T) {
			xd, yd, zd, _ := buildBuffers(t, e.DType, x, y)
			v, err := e.New(xd, yd, zd, len(x))
			require.NoError(t, err)
			ms, err := v.Profile()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, ms, 0.0)
		})
	}
}

func TestVectorAddConstructionErrors(t *testing.T) {
	e := Exports()[0]

	t.Run("non-positive element count", func(t *testing.T) {
		buf := NewDeviceBuffer(nil)
		defer buf.Free()
		_, err := e.New(buf, buf, buf, 0)
		assert.Error(t, err)
	})

	t.Run("buffer size mismatch", func(t *testing.T) {
		want := 4 * e.DType.Bytes()
		good := NewDeviceBuffer(make([]byte, want))
		defer good.Free()
		short := NewDeviceBuffer(make([]byte, want-e.DType.Bytes()))
		defer short.Free()

		for _, bufs := range [][3]*DeviceBuffer{
			{short, good, good},
			{good, short, good},
			{good, good, short},
		} {
			_, err := e.New(bufs[0], bufs[1], bufs[2], 4)
			assert.Error(t, err)
		}
	})

	t.Run("run after free propagates", func(t *testing.T) {
		n := 4
		buf := func() *DeviceBuffer { return NewDeviceBuffer(make([]byte, n*e.DType.Bytes())) }
		xd, yd, zd := buf(), buf(), buf()
		v, err := e.New(xd, yd, zd, n)
		require.NoError(t, err)
		xd.Free()
		assert.Error(t, v.Run())
		yd.Free()
		zd.Free()
	})
}

func BenchmarkVectorAdd(b *testing.B) {
	sizes := []int{10000, 100000, 1000000}
	for _, e := range Exports() {
		if e.DType != dtype.Float32 || !strings.Contains(e.Name, "_256_4") {
			continue
		}
		for _, size := range sizes {
			b.Run(fmt.Sprintf("%s/size_%d", e.Name, size), func(b *testing.B) {
				host := make([]byte, size*e.DType.Bytes())
				xd := NewDeviceBuffer(host)
				yd := NewDeviceBuffer(host)
				zd := NewDeviceBuffer(make([]byte, len(host)))
				defer xd.Free()
				defer yd.Free()
				defer zd.Free()
				v, err := e.New(xd, yd, zd, size)
				if err != nil {
					b.Fatal(err)
				}

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if err := v.Run(); err != nil {
						b.Fatal(err)
					}
				}

				bytes := int64(size * 3 * e.DType.Bytes() * b.N)
				gbps := float64(bytes) / b.Elapsed().Seconds() / 1e9
				b.ReportMetric(gbps, "GB/s")
			})
		}
	}
}
