// Package seg converts between bounding-box geometry and dense
// segmentation volumes.
//
// The codec is asymmetric by design. Encoding (FromBoxes) paints each box
// as an inclusive hyper-rectangle, labeled by its 1-based position in the
// input slice; later boxes overwrite earlier ones where they overlap.
// Decoding (ToBoxes) recovers the axis-aligned bounding box of every label
// from 1 up to the maximum present, so a round trip reproduces the input
// boxes only up to that overwrite rule.
//
// Boxes carry their own dimensionality (4 coordinates for 2-D, 6 for 3-D)
// and constrain the trailing spatial axes of the target volume; leading
// axes, such as channels, are painted across their full extent.
//
// InstanceToSemantic remaps instance labels to class ids via a positional
// class map, the final step before a volume leaves instance space.
//
// All functions are pure and allocate their result unless an explicit
// output volume is supplied (the Into variants). Callers reusing one
// output volume across goroutines must serialize those calls.
package seg
