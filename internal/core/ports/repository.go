package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/hall_booking/internal/core/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, details domain.BookingDetails) (*domain.Booking, error)
	Update(ctx context.Context, details domain.BookingDetails) (*domain.Booking, error)
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
}

type HallPricingProvider interface {
	Snapshot(ctx context.Context, hallID uuid.UUID, eventTypeID *uuid.UUID) (*domain.HallPricingSnapshot, error)
}

// OverlapChecker returns the colliding booking, or nil when the slot is free.
type OverlapChecker interface {
	FindOverlap(ctx context.Context, q domain.AvailabilityQuery) (*domain.BookingRef, error)
}

type DiscountCatalog interface {
	List(ctx context.Context) ([]domain.Discount, error)
	Get(ctx context.Context, discountID uuid.UUID) (*domain.Discount, error)
}

// DraftStore keeps wizard drafts across process restarts.
type DraftStore interface {
	Save(ctx context.Context, wizardID uuid.UUID, state domain.WizardState) error
	Load(ctx context.Context, wizardID uuid.UUID) (*domain.WizardState, error)
	Delete(ctx context.Context, wizardID uuid.UUID) error
}
