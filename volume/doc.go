// Package volume provides the dense n-dimensional label grid that the
// reshaping operations read and write.
//
// A Volume is a flat, row-major slice paired with a shape. The layout is
// deliberately simple: no views, no broadcasting, no copy-on-write. Index
// arithmetic is explicit via strides, which keeps the hot loops in callers
// free of per-element bounds gymnastics.
//
// The element type is constrained to fixed-width integers (Label) so that
// encoded volumes are byte-stable across platforms.
//
// Volumes are not synchronized. Concurrent readers are safe; anything that
// writes (Set, Zero, painting into the backing slice) requires external
// serialization by the caller.
package volume
