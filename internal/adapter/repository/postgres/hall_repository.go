package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

type HallRepository struct {
	db *sql.DB
}

func NewHallRepository(db *sql.DB) *HallRepository {
	return &HallRepository{db: db}
}

// Snapshot reads the hall's pricing. Halls priced per event type take the
// amounts configured for eventTypeID when such a row exists.
func (r *HallRepository) Snapshot(ctx context.Context, hallID uuid.UUID, eventTypeID *uuid.UUID) (*domain.HallPricingSnapshot, error) {
	query := `
	SELECT pricing_type, price_calculation_type, total_amount, total_amount_men, total_amount_women, insurance_amount
	FROM halls
	WHERE id = $1
	`

	snap := domain.HallPricingSnapshot{HallID: hallID, EventTypeID: eventTypeID}
	err := r.db.QueryRowContext(ctx, query, hallID).Scan(
		&snap.PricingType,
		&snap.PriceCalculationType,
		&snap.TotalAmount,
		&snap.TotalAmountMen,
		&snap.TotalAmountWomen,
		&snap.InsuranceAmount,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHallNotFound
		}

		return nil, err
	}

	if snap.PricingType != domain.PricingEvent || eventTypeID == nil {
		return &snap, nil
	}

	eventQuery := `
	SELECT price_calculation_type, total_amount, total_amount_men, total_amount_women, insurance_amount
	FROM hall_event_prices
	WHERE hall_id = $1 AND event_type_id = $2
	`

	err = r.db.QueryRowContext(ctx, eventQuery, hallID, *eventTypeID).Scan(
		&snap.PriceCalculationType,
		&snap.TotalAmount,
		&snap.TotalAmountMen,
		&snap.TotalAmountWomen,
		&snap.InsuranceAmount,
	)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return &snap, nil
}
