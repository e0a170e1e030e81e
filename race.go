//go:build race

package mpmcqueue

// RaceEnabled is true when the race detector is active.
// The package's own concurrent stress tests do not read it; they are
// excluded under the race detector with //go:build !race, because the
// race detector cannot observe the happens-before edge established by
// acquire/release orderings on a slot's turn field.
const RaceEnabled = true
