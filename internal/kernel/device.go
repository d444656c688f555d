package kernel

import (
	"fmt"
	"runtime"
)

// DeviceBuffer is an opaque handle to a device-resident copy of a host
// buffer. Creating one copies the host bytes to the device allocation;
// UpdateHost copies the current device contents back into the host
// buffer the caller supplied. The harness owns the transfer lifecycle
// but never touches device memory directly.
//
// The device here is the CPU emulation backend, so the "allocation" is
// a private slice, but the contract matches a real accelerator: host
// and device contents only converge at transfer points.
type DeviceBuffer struct {
	host []byte
	dev  []byte
}

// NewDeviceBuffer allocates device memory for host and copies host into
// it. The returned buffer keeps a reference to host so UpdateHost can
// refresh it in place.
func NewDeviceBuffer(host []byte) *DeviceBuffer {
	dev := make([]byte, len(host))
	copy(dev, host)
	return &DeviceBuffer{host: host, dev: dev}
}

// UpdateHost copies current device contents back into the host buffer.
func (b *DeviceBuffer) UpdateHost() error {
	if b.dev == nil {
		return fmt.Errorf("device buffer already freed")
	}
	copy(b.host, b.dev)
	return nil
}

// Free releases the device allocation. Safe to call more than once;
// any later transfer fails.
func (b *DeviceBuffer) Free() {
	b.dev = nil
}

// Len returns the buffer length in bytes.
func (b *DeviceBuffer) Len() int {
	return len(b.host)
}

// device returns the device-side bytes for kernel use.
func (b *DeviceBuffer) device() ([]byte, error) {
	if b.dev == nil {
		return nil, fmt.Errorf("device buffer already freed")
	}
	return b.dev, nil
}

// DeviceInfo describes the compute device kernels execute on.
type DeviceInfo struct {
	Name  string
	Cores int
}

// GetDeviceInfo reports the emulation device.
func GetDeviceInfo() DeviceInfo {
	return DeviceInfo{
		Name:  fmt.Sprintf("CPU (%s)", runtime.GOARCH),
		Cores: runtime.NumCPU(),
	}
}
