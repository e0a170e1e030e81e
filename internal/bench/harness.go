// Package bench runs timed producer/consumer workloads against a Queue
// for the benchmark CLI in cmd/mpmcqbench. It is not part of the public
// API: the core queue package has no benchmark-running code of its own.
package bench

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/mpmcqueue"
)

// Config describes the concurrency shape of one timed run.
type Config struct {
	NumProducers int
	NumConsumers int
}

// Result holds the counts and backpressure signals from one RunTimedTest
// call.
type Result struct {
	Produced    int64
	Consumed    int64
	FullEvents  int64 // TryEnqueue observed the queue full and made no progress
	EmptyEvents int64 // TryDequeue observed the queue empty and made no progress
	Elapsed     time.Duration
}

// trySend wraps Queue.TryEnqueue with the sentinel-error convention from
// errors.go, so failed attempts are classified rather than just dropped.
func trySend[T any](q *mpmcqueue.Queue[T], v T) error {
	if q.TryEnqueue(v) {
		return nil
	}
	return mpmcqueue.ErrQueueFull
}

// tryRecv is the symmetric wrapper around Queue.TryDequeue.
func tryRecv[T any](q *mpmcqueue.Queue[T]) (T, error) {
	v, ok := q.TryDequeue()
	if ok {
		return v, nil
	}
	return v, mpmcqueue.ErrQueueEmpty
}

// RunTimedTest spawns cfg.NumProducers producers and cfg.NumConsumers
// consumers against q for testDuration, then drains whatever remains
// once producers stop. Every send/receive attempt goes through
// trySend/tryRecv so contention against a full or empty queue is counted
// via mpmcqueue.IsWouldBlock rather than silently retried.
func RunTimedTest[T any](
	q *mpmcqueue.Queue[T],
	cfg Config,
	testDuration time.Duration,
	valueGenerator func(int) T,
) Result {
	ctx, cancel := context.WithTimeout(context.Background(), testDuration)
	defer cancel()

	var produced, consumed, fullEvents, emptyEvents int64
	var msgIndex int64
	var productionDone, producersStopped int32

	start := time.Now()

	go func() {
		<-ctx.Done()
		atomic.StoreInt32(&productionDone, 1)
	}()

	var prodWg sync.WaitGroup
	prodWg.Add(cfg.NumProducers)
	for i := 0; i < cfg.NumProducers; i++ {
		go func() {
			defer prodWg.Done()
			for atomic.LoadInt32(&productionDone) == 0 {
				idx := atomic.AddInt64(&msgIndex, 1) - 1
				v := valueGenerator(int(idx))
				if err := trySend(q, v); err != nil {
					if mpmcqueue.IsWouldBlock(err) {
						atomic.AddInt64(&fullEvents, 1)
					}
					runtime.Gosched()
					continue
				}
				atomic.AddInt64(&produced, 1)
			}
		}()
	}

	var consWg sync.WaitGroup
	consWg.Add(cfg.NumConsumers)
	for i := 0; i < cfg.NumConsumers; i++ {
		go func() {
			defer consWg.Done()
			for {
				if atomic.LoadInt32(&producersStopped) == 1 {
					for {
						if _, err := tryRecv(q); err == nil {
							atomic.AddInt64(&consumed, 1)
							continue
						}
						atomic.AddInt64(&emptyEvents, 1)
						return
					}
				}
				if _, err := tryRecv(q); err != nil {
					atomic.AddInt64(&emptyEvents, 1)
					runtime.Gosched()
					continue
				}
				atomic.AddInt64(&consumed, 1)
			}
		}()
	}

	<-ctx.Done()
	prodWg.Wait()
	atomic.StoreInt32(&producersStopped, 1)
	time.Sleep(100 * time.Millisecond)
	consWg.Wait()

	return Result{
		Produced:    atomic.LoadInt64(&produced),
		Consumed:    atomic.LoadInt64(&consumed),
		FullEvents:  atomic.LoadInt64(&fullEvents),
		EmptyEvents: atomic.LoadInt64(&emptyEvents),
		Elapsed:     time.Since(start),
	}
}
