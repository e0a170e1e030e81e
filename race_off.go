//go:build !race

package mpmcqueue

// RaceEnabled is false when the race detector is not active.
const RaceEnabled = false
