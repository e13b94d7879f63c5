package api

import (
	"sync"

	"github.com/eduinsight/console-client/internal/metrics"
)

// busyTracker is a reference-counted busy indicator. Overlapping calls keep
// it raised for the union of their durations: it only reads false once every
// in-flight call has settled. onChange runs under mu so a raise and the
// matching lower are always delivered in that order.
type busyTracker struct {
	mu       sync.Mutex
	count    int
	onChange func(bool)
}

func (b *busyTracker) enter() {
	b.mu.Lock()
	b.count++
	if b.count == 1 && b.onChange != nil {
		b.onChange(true)
	}
	b.mu.Unlock()

	metrics.RequestsInFlight.Inc()
}

func (b *busyTracker) leave() {
	b.mu.Lock()
	b.count--
	if b.count == 0 && b.onChange != nil {
		b.onChange(false)
	}
	b.mu.Unlock()

	metrics.RequestsInFlight.Dec()
}

func (b *busyTracker) busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count > 0
}
