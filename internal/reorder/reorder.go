// Copyright 2025, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package reorder provides an order-preserving reassembly buffer for results
// produced out of order by concurrent workers.
//
// Workers place items into slots identified by a monotonically assigned
// index, while a single consumer takes items strictly in index order
// (0, 1, 2, ...). The buffer holds a bounded window of in-flight items;
// a worker that completes far ahead of the consumer blocks until the window
// advances, which caps memory usage regardless of how unevenly the workers
// progress.
package reorder

import "sync"

// Buffer reassembles indexed items into their original sequence.
// The zero value is not usable; construct with NewBuffer.
type Buffer[T any] struct {
	mu       sync.Mutex
	notFull  sync.Cond // Signaled when the window advances
	notEmpty sync.Cond // Signaled when an item the consumer may need arrives
	items    []T
	ready    []bool
	base     int64 // Next index the consumer will take
	closed   bool  // No further Put calls will come
	stopped  bool  // Abandoned; wake everyone and refuse all traffic
}

// NewBuffer returns a Buffer that admits items with indexes in the window
// [base, base+capacity) at any given time. The capacity must be positive.
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("reorder: non-positive capacity")
	}
	b := &Buffer[T]{
		items: make([]T, capacity),
		ready: make([]bool, capacity),
	}
	b.notFull.L = &b.mu
	b.notEmpty.L = &b.mu
	return b
}

// Put stores the item produced for the given index, blocking while the index
// is beyond the current window. Each index must be used at most once.
// It reports false if the buffer was stopped.
func (b *Buffer[T]) Put(index int64, item T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for !b.stopped && index >= b.base+int64(len(b.items)) {
		b.notFull.Wait()
	}
	if b.stopped {
		return false
	}
	slot := int(index % int64(len(b.items)))
	b.items[slot] = item
	b.ready[slot] = true
	if index == b.base {
		b.notEmpty.Signal()
	}
	return true
}

// Next returns the next item in index order, blocking until it is available.
// It reports false once the buffer is closed and drained, or stopped.
func (b *Buffer[T]) Next() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	slot := int(b.base % int64(len(b.items)))
	for !b.stopped && !b.ready[slot] && !b.closed {
		b.notEmpty.Wait()
	}
	var zero T
	if b.stopped || !b.ready[slot] {
		return zero, false
	}
	item := b.items[slot]
	b.items[slot] = zero
	b.ready[slot] = false
	b.base++
	b.notFull.Broadcast()
	return item, true
}

// Close marks the end of input. It must be called only after every Put has
// returned; Next then reports false once all stored items are consumed.
func (b *Buffer[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.notEmpty.Broadcast()
}

// Stop abandons the buffer: all pending and future Put and Next calls
// return immediately reporting false.
func (b *Buffer[T]) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	b.notFull.Broadcast()
	b.notEmpty.Broadcast()
}

// Stopped reports whether Stop was called.
func (b *Buffer[T]) Stopped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopped
}
