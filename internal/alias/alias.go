// Package alias reports whether byte regions share memory.
package alias

import "unsafe"

// Region is a half-open byte range [Start, Start+Len) in the address space.
type Region struct {
	Start uintptr
	Len   int
}

// Of returns the region covered by the first n bytes of b. n is clamped to
// len(b). An empty slice yields an empty region.
func Of(b []byte, n int) Region {
	if n > len(b) {
		n = len(b)
	}
	if n <= 0 {
		return Region{}
	}
	return Region{Start: uintptr(unsafe.Pointer(unsafe.SliceData(b))), Len: n}
}

// OfValue returns the region occupied by the value p points to.
func OfValue[T any](p *T) Region {
	if p == nil {
		return Region{}
	}
	return Region{Start: uintptr(unsafe.Pointer(p)), Len: int(unsafe.Sizeof(*p))}
}

// Overlaps reports whether r and o share at least one byte. Empty regions
// never overlap anything.
func (r Region) Overlaps(o Region) bool {
	if r.Len <= 0 || o.Len <= 0 {
		return false
	}
	return r.Start < o.Start+uintptr(o.Len) && o.Start < r.Start+uintptr(r.Len)
}

// AnyOverlap reports whether the first n bytes of x and the first m bytes of
// y share memory.
func AnyOverlap(x []byte, n int, y []byte, m int) bool {
	return Of(x, n).Overlaps(Of(y, m))
}
