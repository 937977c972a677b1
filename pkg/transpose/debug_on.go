//go:build transposedebug

package transpose

// debugBounds makes every kernel check that its planes hold the rectangle it
// is about to touch and panic with a descriptive message otherwise.
const debugBounds = true
