//go:build !transposedebug

package transpose

const debugBounds = false
