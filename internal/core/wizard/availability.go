package wizard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports"
)

const DefaultDebounce = 300 * time.Millisecond

type AvailabilityListener func(domain.AvailabilityResult, error)

// AvailabilityChecker asks the overlap collaborator whether a slot is free.
// Observed inputs are debounced, and a newer input drops the result of any
// check still in flight.
type AvailabilityChecker struct {
	overlap ports.OverlapChecker
	delay   time.Duration
	logger  *zap.Logger

	mu        sync.Mutex
	timer     *time.Timer
	cancel    context.CancelFunc
	seq       uint64
	observed  *domain.AvailabilityQuery
	latest    *domain.AvailabilityResult
	listeners []AvailabilityListener
	closed    bool
}

type AvailabilityOption func(*AvailabilityChecker)

func WithDebounce(d time.Duration) AvailabilityOption {
	return func(c *AvailabilityChecker) {
		if d > 0 {
			c.delay = d
		}
	}
}

func NewAvailabilityChecker(overlap ports.OverlapChecker, logger *zap.Logger, opts ...AvailabilityOption) *AvailabilityChecker {
	c := &AvailabilityChecker{
		overlap: overlap,
		delay:   DefaultDebounce,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Check calls the collaborator right away. Incomplete queries never reach it.
func (c *AvailabilityChecker) Check(ctx context.Context, q domain.AvailabilityQuery) (domain.AvailabilityResult, error) {
	if !q.Complete() {
		return domain.AvailabilityResult{}, domain.ErrIncompleteQuery
	}

	conflict, err := c.overlap.FindOverlap(ctx, q)
	if err != nil {
		return domain.AvailabilityResult{}, &domain.NetworkError{Op: "availability check", Err: err}
	}

	return domain.AvailabilityResult{
		Query:     q,
		Available: conflict == nil,
		Conflict:  conflict,
	}, nil
}

func (c *AvailabilityChecker) Subscribe(fn AvailabilityListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Observe records the latest inputs and schedules a check once they have
// been quiet for the debounce delay.
func (c *AvailabilityChecker) Observe(q domain.AvailabilityQuery) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.supersedeLocked()
	c.observed = &q

	if c.latest != nil && !c.latest.Query.Equal(q) {
		c.latest = nil
	}
	if !q.Complete() || c.latest != nil {
		return
	}

	seq := c.seq
	c.timer = time.AfterFunc(c.delay, func() { c.fire(seq, q) })
}

// Resolve returns the known result for q, or checks q now.
func (c *AvailabilityChecker) Resolve(ctx context.Context, q domain.AvailabilityQuery) (domain.AvailabilityResult, error) {
	c.mu.Lock()
	if c.latest != nil && c.latest.Query.Equal(q) {
		res := *c.latest
		c.mu.Unlock()
		return res, nil
	}
	c.mu.Unlock()

	res, err := c.Check(ctx, q)
	if err != nil {
		return res, err
	}

	c.mu.Lock()
	if c.observed == nil || c.observed.Equal(q) {
		c.supersedeLocked()
		c.latest = &res
	}
	c.mu.Unlock()
	return res, nil
}

func (c *AvailabilityChecker) Latest() *domain.AvailabilityResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest == nil {
		return nil
	}
	res := *c.latest
	return &res
}

func (c *AvailabilityChecker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.supersedeLocked()
}

// supersedeLocked stops the pending timer and invalidates any check in flight.
func (c *AvailabilityChecker) supersedeLocked() {
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *AvailabilityChecker) fire(seq uint64, q domain.AvailabilityQuery) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.timer = nil
	c.mu.Unlock()
	defer cancel()

	res, err := c.Check(ctx, q)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("dropping superseded availability result", zap.String("hall_id", q.HallID.String()))
		return
	}
	c.cancel = nil
	if err == nil {
		c.latest = &res
	}
	listeners := append([]AvailabilityListener(nil), c.listeners...)
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("availability check failed", zap.String("hall_id", q.HallID.String()), zap.Error(err))
	}
	for _, fn := range listeners {
		fn(res, err)
	}
}
