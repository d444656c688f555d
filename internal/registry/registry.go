// Package registry holds the statically declared table of kernel
// variants, keyed by element type. It is populated once at startup
// from the kernel library's export table, so the variant set is
// enumerable and type-checked without any runtime symbol scanning.
package registry

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/voltlabs/kernex/internal/dtype"
	"github.com/voltlabs/kernex/internal/kernel"
)

// ErrNotFound is returned by Lookup for a name with no registered variant.
var ErrNotFound = errors.New("variant not found")

// Descriptor identifies one registered kernel variant: its exported
// name and a typed constructor handle.
type Descriptor struct {
	Name  string
	DType dtype.DType
	New   kernel.Constructor
}

// Registry maps element types to their registered variants, preserving
// the library's declaration order.
type Registry struct {
	byDType map[dtype.DType][]Descriptor
	byName  map[string]Descriptor
	logger  *zap.Logger
}

// New builds a registry from the kernel library's declared exports.
func New(logger *zap.Logger) *Registry {
	r := &Registry{
		byDType: make(map[dtype.DType][]Descriptor),
		byName:  make(map[string]Descriptor),
		logger:  logger.Named("registry"),
	}
	for _, e := range kernel.Exports() {
		d := Descriptor{Name: e.Name, DType: e.DType, New: e.New}
		r.byDType[e.DType] = append(r.byDType[e.DType], d)
		r.byName[e.Name] = d
	}
	for _, dt := range dtype.All() {
		r.logger.Debug("registered variants",
			zap.String("dtype", dt.String()),
			zap.Int("count", len(r.byDType[dt])))
	}
	return r
}

// VariantsFor returns the variants registered for dt, in declaration
// order. An empty result is not an error at this layer; callers that
// require a non-empty set must check.
func (r *Registry) VariantsFor(dt dtype.DType) []Descriptor {
	return r.byDType[dt]
}

// Lookup resolves a variant by exported name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return d, nil
}
