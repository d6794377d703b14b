package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

const draftKey = "wizard:%s"

// DraftStore keeps wizard state in redis. Every save renews the TTL, so a
// draft expires only after it has been left alone for that long.
type DraftStore struct {
	cli *redis.Client
	ttl time.Duration
}

func NewDraftStore(cli *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{cli: cli, ttl: ttl}
}

func (s *DraftStore) Save(ctx context.Context, wizardID uuid.UUID, state domain.WizardState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return s.cli.Set(ctx, fmt.Sprintf(draftKey, wizardID), data, s.ttl).Err()
}

func (s *DraftStore) Load(ctx context.Context, wizardID uuid.UUID) (*domain.WizardState, error) {
	data, err := s.cli.Get(ctx, fmt.Sprintf(draftKey, wizardID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrWizardNotFound
		}
		return nil, err
	}

	var state domain.WizardState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", wizardID, err)
	}
	return &state, nil
}

func (s *DraftStore) Delete(ctx context.Context, wizardID uuid.UUID) error {
	return s.cli.Del(ctx, fmt.Sprintf(draftKey, wizardID)).Err()
}
