// Package pool provides bucketed scratch byte slices for plane sized
// temporaries, organized by size class.
package pool

import "sync"

// Size classes for bucketed pools.
const (
	Size4K   = 4096
	Size64K  = 65536
	Size256K = 262144
	Size1M   = 1048576
	Size4M   = 4194304
)

var sizes = [...]int{Size4K, Size64K, Size256K, Size1M, Size4M}

var pools [len(sizes)]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// bucketIndex returns the pool index for size, or -1 when size is bigger than
// the largest class.
func bucketIndex(size int) int {
	for i, sz := range sizes {
		if size <= sz {
			return i
		}
	}
	return -1
}

// Get returns a byte slice with length size. Slices bigger than the largest
// size class are allocated directly and never pooled.
// The caller must call Put when done.
func Get(size int) []byte {
	idx := bucketIndex(size)
	if idx < 0 {
		return make([]byte, size)
	}
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
	}
	return b[:size]
}

// Put returns a byte slice to the pool. The slice must have been obtained
// from Get.
func Put(b []byte) {
	c := cap(b)
	idx := bucketIndex(c)
	if idx < 0 || c != sizes[idx] {
		return
	}
	b = b[:c]
	pools[idx].Put(&b)
}
