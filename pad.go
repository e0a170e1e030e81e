package mpmcqueue

// cacheLineSize is the padding granularity used throughout this package.
//
// 128 bytes rather than the common 64 is deliberate: it tolerates CPUs
// that prefetch the adjacent cache line, matching rigtorp/MPMCQueue's
// kCacheLineSize.
const cacheLineSize = 128

// pad reserves a full cache line to prevent false sharing between the
// fields on either side of it.
type pad [cacheLineSize]byte

// padShort reserves the remainder of a cache line after an 8-byte field.
type padShort [cacheLineSize - 8]byte
