// Package testutil provides testing utilities for Voxgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source plus generators for
// bounding boxes and label data.
//
// # Random Box Generation
//
//	rng := testutil.NewRNG(seed)
//	boxes := rng.Boxes(32, 2, 128, 128)         // may overlap
//	rows := rng.DisjointBoxes(8, 3, 64, 64, 64) // one strip per label
//
// Disjoint boxes are cut as strips along axis 0, so every label survives
// encoding and the result always decodes cleanly.
package testutil
