// Package mpmcqueue provides a bounded, lock-free, multi-producer
// multi-consumer FIFO queue.
//
// # Quick Start
//
//	q, err := mpmcqueue.New[Event](1024)
//	if err != nil {
//	    // capacity < 1
//	}
//
//	// Blocking
//	q.Enqueue(ev)
//	v := q.Dequeue()
//
//	// Non-blocking
//	if ok := q.TryEnqueue(ev); !ok {
//	    // full
//	}
//	v, ok := q.TryDequeue()
//
// # Algorithm
//
// Every producer claims a ticket by fetch-and-add on an internal head
// counter, maps it to a slot and a lap number, and busy-waits until
// that slot's turn counter says it is this lap's producer's turn.
// Consumers do the same against tail. Turn alternates even (producer's
// turn) / odd (consumer's turn) per lap, so a slot is always either
// "ready to be written by lap L's producer" or "ready to be read by lap
// L's consumer" — never both, never neither. Capacity is fixed at
// construction; there is no resizing.
//
// This is a direct Go port of Erik Rigtorp's MPMCQueue algorithm
// (rigtorp/MPMCQueue). It is a different algorithm from this
// repository's sibling SCQ/Vyukov-style queues elsewhere in this
// ecosystem (code.hybscloud.com/lfq): those CAS the head/tail counter
// only once a slot is already known ready, so the counter never
// outruns real occupancy; this queue's ticket claim is unconditional,
// and progress is instead gated entirely by the per-slot turn wait.
//
// # Basic Usage
//
// Worker pool (any number of submitters, any number of workers):
//
//	q, _ := mpmcqueue.New[Job](4096)
//
//	for range numWorkers {
//	    go func() {
//	        for {
//	            job := q.Dequeue()
//	            job.Run()
//	        }
//	    }()
//	}
//
//	func Submit(j Job) { q.Enqueue(j) }
//
// # Non-blocking Backpressure
//
//	sw := spin.Wait{}
//	for !q.TryEnqueue(item) {
//	    sw.Once()
//	}
//	sw.Reset()
//
// # Failure Semantics
//
// Enqueue and Dequeue never fail: once a ticket is claimed, the caller
// is committed to waiting for its slot, and abandoning that wait (via
// goroutine leak, panic, or process exit) leaves the slot's turn
// protocol stalled for that index forever. There is no cancellation —
// if a caller needs one, it must build a shutdown protocol on top (for
// example, enqueuing sentinel values before joining consumers); this
// core makes no provision for it.
//
// TryEnqueue and TryDequeue return a boolean outcome and never block.
// The only operation that returns a non-nil error is New, for invalid
// capacity; Close has an error result but always returns nil.
//
// # Capacity
//
// Capacity is exactly what is passed to New — unlike some sibling
// queues in this ecosystem, it is not rounded up to a power of two,
// because the ticket/turn protocol uses modulo/division against
// capacity directly rather than a bitmask.
//
// # Size
//
// Len and Empty are best-effort: head and tail are sampled with two
// independent atomic loads, so the result is accurate for a recent
// instant, not a linearizable point in time. They are suitable for
// diagnostics and backoff heuristics, not for coordination.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established purely
// through acquire/release orderings on a single atomic field. This
// queue's correctness rests on exactly that ordering (the turn field),
// so the race detector may report false positives on concurrent stress
// tests. Tests that are incompatible with race detection are excluded
// via //go:build !race, matching the RaceEnabled convention.
//
// # Dependencies
//
// This package uses code.hybscloud.com/atomix for atomic primitives
// with explicit memory ordering, code.hybscloud.com/spin for CPU pause
// instructions in the busy-wait loops, and code.hybscloud.com/iox for
// would-block error classification.
package mpmcqueue
