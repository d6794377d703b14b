package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports"
)

const discountsKey = "discounts:active"

// DiscountCache serves the catalog listing from redis and falls back to next
// on a miss. Lookups by id always go to next so inactive entries are seen.
type DiscountCache struct {
	next   ports.DiscountCatalog
	cli    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewDiscountCache(next ports.DiscountCatalog, cli *redis.Client, ttl time.Duration, logger *zap.Logger) *DiscountCache {
	return &DiscountCache{next: next, cli: cli, ttl: ttl, logger: logger}
}

func (c *DiscountCache) List(ctx context.Context) ([]domain.Discount, error) {
	data, err := c.cli.Get(ctx, discountsKey).Bytes()
	switch {
	case err == nil:
		var discounts []domain.Discount
		if err := json.Unmarshal(data, &discounts); err == nil {
			c.logger.Debug("discount cache hit")
			return discounts, nil
		}
		c.logger.Warn("dropping undecodable discount cache entry")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("discount cache unavailable", zap.Error(err))
	}

	discounts, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(discounts); err == nil {
		if err := c.cli.Set(ctx, discountsKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("failed to cache discounts", zap.Error(err))
		}
	}
	return discounts, nil
}

func (c *DiscountCache) Get(ctx context.Context, discountID uuid.UUID) (*domain.Discount, error) {
	return c.next.Get(ctx, discountID)
}
