// Package fuzztests houses Go fuzz harnesses for the tree decoder and the
// analyzer: arbitrary bytes must either fail to decode or decode into a tree
// that analyses without panics or internal faults.
package fuzztests
