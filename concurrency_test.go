//go:build !race

package mpmcqueue_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"code.hybscloud.com/mpmcqueue"
)

// TestFIFOSingleProducerSingleConsumer checks that with one producer
// enqueuing v0..vN-1 and one consumer, the consumer receives the same
// sequence in order, regardless of wall-clock interleaving.
func TestFIFOSingleProducerSingleConsumer(t *testing.T) {
	const (
		capacity = 64
		n        = 50_000
	)

	q, err := mpmcqueue.New[int](capacity)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			q.Enqueue(i)
		}
	}()

	for i := 0; i < n; i++ {
		if got := q.Dequeue(); got != i {
			t.Fatalf("element %d: got %d, want %d (FIFO violated)", i, got, i)
		}
	}
	<-done
}

// TestConservationUnderConcurrency runs capacity 10 with 10 producers and
// 10 consumers: producer i enqueues
// {i, i+10, i+20, ..., i+990}; each consumer dequeues exactly 100
// values. The multiset of all dequeued values must equal
// {0, ..., 999}, whose sum is 1000*999/2 = 499500.
func TestConservationUnderConcurrency(t *testing.T) {
	const (
		capacity    = 10
		producers   = 10
		consumers   = 10
		perProducer = 100
		total       = producers * perProducer
		wantSum     = total * (total - 1) / 2
	)

	q, err := mpmcqueue.New[int](capacity)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var prodWg sync.WaitGroup
	prodWg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(p int) {
			defer prodWg.Done()
			for j := 0; j < perProducer; j++ {
				q.Enqueue(p + j*producers)
			}
		}(p)
	}

	var consWg sync.WaitGroup
	sums := make([]int64, consumers)
	consWg.Add(consumers)
	for c := 0; c < consumers; c++ {
		go func(c int) {
			defer consWg.Done()
			var sum int64
			for j := 0; j < perProducer; j++ {
				sum += int64(q.Dequeue())
			}
			sums[c] = sum
		}(c)
	}

	prodWg.Wait()
	consWg.Wait()

	var gotSum int64
	for _, s := range sums {
		gotSum += s
	}
	if gotSum != int64(wantSum) {
		t.Fatalf("sum of dequeued values: got %d, want %d", gotSum, wantSum)
	}
}

// TestConservationWithDisjointMultiset strengthens the property above by
// tracking exact multiplicities rather than just a sum: the multiset of
// dequeued values must equal the multiset produced.
func TestConservationWithDisjointMultiset(t *testing.T) {
	const (
		capacity    = 1 << 8
		producers   = 8
		consumers   = 4
		perProducer = 5_000
		n           = producers * perProducer
	)

	q, err := mpmcqueue.New[int](capacity)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seen := make([]int32, n)

	var prodWg sync.WaitGroup
	prodWg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(p int) {
			defer prodWg.Done()
			base := p * perProducer
			for i := 0; i < perProducer; i++ {
				q.Enqueue(base + i)
			}
		}(p)
	}

	var consumed int64
	var consWg sync.WaitGroup
	consWg.Add(consumers)
	for c := 0; c < consumers; c++ {
		go func() {
			defer consWg.Done()
			for atomic.LoadInt64(&consumed) < int64(n) {
				v, ok := q.TryDequeue()
				if !ok {
					runtime.Gosched()
					continue
				}
				if v < 0 || v >= n {
					t.Errorf("out-of-range value %d", v)
					continue
				}
				atomic.AddInt32(&seen[v], 1)
				atomic.AddInt64(&consumed, 1)
			}
		}()
	}

	prodWg.Wait()
	consWg.Wait()

	for i := 0; i < n; i++ {
		if seen[i] != 1 {
			t.Fatalf("value %d seen %d times, want exactly 1", i, seen[i])
		}
	}
}

// TestTryEnqueueFullAndTryDequeueEmpty checks that the non-blocking path
// reports full/empty correctly at the capacity boundary.
func TestTryEnqueueFullAndTryDequeueEmpty(t *testing.T) {
	const capacity = 4

	q, err := mpmcqueue.New[int](capacity)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < capacity; i++ {
		if !q.TryEnqueue(i) {
			t.Fatalf("TryEnqueue(%d): want true (queue not yet full)", i)
		}
	}
	if q.TryEnqueue(999) {
		t.Fatalf("TryEnqueue on full queue: want false")
	}

	for i := 0; i < capacity; i++ {
		if _, ok := q.TryDequeue(); !ok {
			t.Fatalf("TryDequeue(%d): want true (queue not yet empty)", i)
		}
	}
	if _, ok := q.TryDequeue(); ok {
		t.Fatalf("TryDequeue on empty queue: want false")
	}
}

// TestParityOccupancyBound checks that successful enqueues minus
// successful dequeues always stays within [0, capacity] and that Len()
// reports exactly that difference on a single-goroutine workload.
func TestParityOccupancyBound(t *testing.T) {
	const capacity = 16

	q, err := mpmcqueue.New[int](capacity)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	enqueued, dequeued := 0, 0
	for i := 0; i < 10_000; i++ {
		switch i % 3 {
		case 0, 1:
			if q.TryEnqueue(i) {
				enqueued++
			}
		case 2:
			if _, ok := q.TryDequeue(); ok {
				dequeued++
			}
		}
		occupancy := enqueued - dequeued
		if occupancy < 0 || occupancy > capacity {
			t.Fatalf("iteration %d: occupancy %d outside [0, %d]", i, occupancy, capacity)
		}
		if got := q.Len(); got != occupancy {
			t.Fatalf("iteration %d: Len() = %d, want %d", i, got, occupancy)
		}
	}
}
