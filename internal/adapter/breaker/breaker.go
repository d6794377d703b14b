package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports"
)

type Config struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{MaxFailures: 5, OpenTimeout: 30 * time.Second}
}

func newCircuitBreaker(name string, cfg Config, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// Superseded checks and unknown halls say nothing about the backend's health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, domain.ErrHallNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name), zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})
}

// HallPricing fails fast while the pricing backend keeps failing.
type HallPricing struct {
	next ports.HallPricingProvider
	cb   *gobreaker.CircuitBreaker
}

func NewHallPricing(next ports.HallPricingProvider, cfg Config, logger *zap.Logger) *HallPricing {
	return &HallPricing{next: next, cb: newCircuitBreaker("hall-pricing", cfg, logger)}
}

func (h *HallPricing) Snapshot(ctx context.Context, hallID uuid.UUID, eventTypeID *uuid.UUID) (*domain.HallPricingSnapshot, error) {
	res, err := h.cb.Execute(func() (interface{}, error) {
		return h.next.Snapshot(ctx, hallID, eventTypeID)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.HallPricingSnapshot), nil
}

// Overlap fails fast while the overlap backend keeps failing.
type Overlap struct {
	next ports.OverlapChecker
	cb   *gobreaker.CircuitBreaker
}

func NewOverlap(next ports.OverlapChecker, cfg Config, logger *zap.Logger) *Overlap {
	return &Overlap{next: next, cb: newCircuitBreaker("overlap-check", cfg, logger)}
}

func (o *Overlap) FindOverlap(ctx context.Context, q domain.AvailabilityQuery) (*domain.BookingRef, error) {
	res, err := o.cb.Execute(func() (interface{}, error) {
		return o.next.FindOverlap(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.BookingRef), nil
}
