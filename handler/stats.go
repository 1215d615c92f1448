package handler

import "sync/atomic"

// Stats tracks handler statistics
type Stats struct {
	// ProcessedTotal counts entries that were emitted
	ProcessedTotal uint64
	// FilteredTotal counts entries dropped by the threshold or the formatter
	FilteredTotal uint64
	// FailedTotal counts entries lost to transport or storage errors
	FailedTotal uint64
	// RotatedTotal counts completed file rotations
	RotatedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// IncrementFiltered atomically increments the filtered counter
func (s *Stats) IncrementFiltered() {
	atomic.AddUint64(&s.FilteredTotal, 1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	atomic.AddUint64(&s.FailedTotal, 1)
}

// IncrementRotated atomically increments the rotation counter
func (s *Stats) IncrementRotated() {
	atomic.AddUint64(&s.RotatedTotal, 1)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.ProcessedTotal, 0)
	atomic.StoreUint64(&s.FilteredTotal, 0)
	atomic.StoreUint64(&s.FailedTotal, 0)
	atomic.StoreUint64(&s.RotatedTotal, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Processed uint64
	Filtered  uint64
	Failed    uint64
	Rotated   uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Processed: atomic.LoadUint64(&s.ProcessedTotal),
		Filtered:  atomic.LoadUint64(&s.FilteredTotal),
		Failed:    atomic.LoadUint64(&s.FailedTotal),
		Rotated:   atomic.LoadUint64(&s.RotatedTotal),
	}
}
