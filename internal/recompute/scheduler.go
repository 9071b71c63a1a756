// Package recompute debounces rapid input edits into single full
// recalculations. Only the newest input ever produces a delivered result;
// stale in-flight computations are cancelled and their output discarded.
package recompute

import (
	"context"
	"sync"
	"time"

	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/metrics"
	"quote-engine/internal/models"
)

// ComputeFunc runs one full calculation over an input snapshot.
type ComputeFunc func(ctx context.Context, input *models.QuoteInput) (*models.CalculationResult, error)

// ResultFunc receives the outcome of the newest computation. seq increases
// with every submitted edit that fires.
type ResultFunc func(seq uint64, result *models.CalculationResult, err error)

// Scheduler coalesces edits within the debounce window and guarantees
// last-request-wins delivery.
type Scheduler struct {
	window   time.Duration
	compute  ComputeFunc
	onResult ResultFunc
	logger   logger.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.QuoteInput
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

func NewScheduler(window time.Duration, compute ComputeFunc, onResult ResultFunc, log logger.Logger) *Scheduler {
	return &Scheduler{
		window:   window,
		compute:  compute,
		onResult: onResult,
		logger:   log,
	}
}

// Submit records an edited input snapshot. The computation fires once the
// debounce window elapses without another edit. An edit arriving while a
// computation is in flight cancels it.
func (s *Scheduler) Submit(input *models.QuoteInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if s.timer != nil {
		s.timer.Stop()
		metrics.RecomputeEditsDebounced.Inc()
	}

	s.pending = input
	s.timer = time.AfterFunc(s.window, s.fire)
}

// fire snapshots the pending input under the lock and computes outside it.
func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.closed || s.pending == nil {
		s.mu.Unlock()
		return
	}

	input := s.pending
	s.pending = nil
	s.timer = nil
	s.seq++
	seq := s.seq

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		result, err := s.compute(ctx, input)

		s.mu.Lock()
		stale := seq != s.seq || s.closed
		if !stale && s.cancel != nil {
			s.cancel = nil
		}
		s.mu.Unlock()

		if stale || ctx.Err() != nil {
			metrics.RecomputeStaleDiscarded.Inc()
			s.logger.Debug("Discarding stale recompute result", map[string]interface{}{
				"seq": seq,
			})
			return
		}
		s.onResult(seq, result, err)
	}()
}

// Flush fires any pending edit immediately instead of waiting out the
// debounce window.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	timer := s.timer
	s.mu.Unlock()

	if timer != nil && timer.Stop() {
		s.fire()
	}
}

// Close cancels any in-flight computation, drops any pending edit, and
// waits for the worker goroutine to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}
