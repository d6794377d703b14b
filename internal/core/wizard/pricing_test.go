package wizard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports/mocks"
	"github.com/srgjo27/hall_booking/internal/core/wizard"
)

func TestIsMatched_BookingTimePricingAlwaysMatches(t *testing.T) {
	r := wizard.NewPriceReconciler(nil)
	eventA, eventB := uuid.New(), uuid.New()

	stored := domain.Payment{
		PricingType:          domain.PricingBookingTime,
		PriceCalculationType: domain.CalculationPerPerson,
		FixedBookingPrice:    money(1),
		InsuranceAmount:      money(999),
	}
	snap := domain.HallPricingSnapshot{
		PricingType:          domain.PricingBookingTime,
		PriceCalculationType: domain.CalculationFixedPrice,
		TotalAmount:          decimal.NewFromInt(8000),
	}
	bc := wizard.BookingContext{
		OriginalEventTypeID:  &eventA,
		CurrentEventTypeID:   &eventB,
		OriginalAttendeeType: domain.AttendeesMen,
		CurrentAttendeeType:  domain.AttendeesWomen,
	}

	assert.True(t, r.IsMatched(stored, snap, bc))
}

func TestIsMatched_FixedPrice(t *testing.T) {
	r := wizard.NewPriceReconciler(nil)
	snap := *fixedSnapshot(uuid.New(), 5000)

	stored := domain.Payment{
		PricingType:          domain.PricingFixed,
		PriceCalculationType: domain.CalculationFixedPrice,
		FixedBookingPrice:    money(5000),
		InsuranceAmount:      money(0),
	}
	assert.True(t, r.IsMatched(stored, snap, wizard.BookingContext{}))

	stored.FixedBookingPrice = money(4000)
	assert.False(t, r.IsMatched(stored, snap, wizard.BookingContext{}))

	locked := r.Apply(&stored, snap)

	assert.True(t, locked)
	assert.True(t, decimal.NewFromInt(5000).Equal(stored.FixedBookingPrice.Decimal))
	assert.False(t, wizard.Editability(stored, false).PricingFields)
	assert.True(t, r.IsMatched(stored, snap, wizard.BookingContext{}))
}

func TestIsMatched_PricingTypeChanged(t *testing.T) {
	r := wizard.NewPriceReconciler(nil)
	snap := *fixedSnapshot(uuid.New(), 5000)

	stored := domain.Payment{
		PricingType:          domain.PricingEvent,
		PriceCalculationType: domain.CalculationFixedPrice,
		FixedBookingPrice:    money(5000),
		InsuranceAmount:      money(0),
	}

	assert.False(t, r.IsMatched(stored, snap, wizard.BookingContext{}))
}

func TestIsMatched_BookingTimeCalculation(t *testing.T) {
	r := wizard.NewPriceReconciler(nil)
	event, otherEvent := uuid.New(), uuid.New()
	snap := domain.HallPricingSnapshot{
		PricingType:          domain.PricingEvent,
		PriceCalculationType: domain.CalculationBookingTime,
		TotalAmount:          decimal.NewFromInt(3000),
	}
	same := wizard.BookingContext{OriginalEventTypeID: &event, CurrentEventTypeID: &event}
	changed := wizard.BookingContext{OriginalEventTypeID: &event, CurrentEventTypeID: &otherEvent}

	stored := domain.Payment{
		PricingType:          domain.PricingEvent,
		PriceCalculationType: domain.CalculationBookingTime,
		FixedBookingPrice:    money(3000),
	}
	assert.True(t, r.IsMatched(stored, snap, same))

	stored.FixedBookingPrice = money(2500)
	assert.False(t, r.IsMatched(stored, snap, same))

	stored.PricesNotReset = true
	assert.True(t, r.IsMatched(stored, snap, same))
	assert.False(t, r.IsMatched(stored, snap, changed))
}

func TestIsMatched_PerPersonAttendeeTypeChanged(t *testing.T) {
	r := wizard.NewPriceReconciler(nil)
	snap := domain.HallPricingSnapshot{
		PricingType:          domain.PricingFixed,
		PriceCalculationType: domain.CalculationPerPerson,
		TotalAmountMen:       decimal.NewFromInt(40),
		TotalAmountWomen:     decimal.NewFromInt(45),
		InsuranceAmount:      decimal.NewFromInt(500),
	}
	stored := domain.Payment{
		PricingType:          domain.PricingFixed,
		PriceCalculationType: domain.CalculationPerPerson,
		MenPrice:             money(40),
		WomenPrice:           money(45),
		InsuranceAmount:      money(500),
	}

	same := wizard.BookingContext{OriginalAttendeeType: domain.AttendeesMixed, CurrentAttendeeType: domain.AttendeesMixed}
	changed := wizard.BookingContext{OriginalAttendeeType: domain.AttendeesMixed, CurrentAttendeeType: domain.AttendeesMen}

	assert.True(t, r.IsMatched(stored, snap, same))
	assert.False(t, r.IsMatched(stored, snap, changed))

	stored.InsuranceAmount = money(400)
	assert.False(t, r.IsMatched(stored, snap, same))
}

func TestApply_BookingTimePricingStaysEditable(t *testing.T) {
	r := wizard.NewPriceReconciler(nil)
	p := domain.Payment{PricesNotReset: true}

	locked := r.Apply(&p, domain.HallPricingSnapshot{
		PricingType:          domain.PricingBookingTime,
		PriceCalculationType: domain.CalculationBookingTime,
		TotalAmount:          decimal.NewFromInt(1200),
	})

	assert.False(t, locked)
	assert.False(t, p.PricesNotReset)
	assert.True(t, wizard.Editability(p, false).PricingFields)
}

func TestReconcile_PricingFailureIsNetworkError(t *testing.T) {
	pricing := mocks.NewHallPricingProvider(t)
	r := wizard.NewPriceReconciler(pricing)
	ctx := context.Background()

	draft := domain.BookingDraft{BookingInfo: validBookingInfo()}
	pricing.On("Snapshot", ctx, draft.BookingInfo.HallID, draft.BookingInfo.EventTypeID).
		Return(nil, errors.New("connection refused"))

	replaced, err := r.Reconcile(ctx, &draft, nil)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, replaced)
	assert.Empty(t, draft.Payment.PricingType)
}

func TestReconcile_UnknownHallIsNotWrapped(t *testing.T) {
	pricing := mocks.NewHallPricingProvider(t)
	r := wizard.NewPriceReconciler(pricing)
	ctx := context.Background()

	draft := domain.BookingDraft{BookingInfo: validBookingInfo()}
	pricing.On("Snapshot", ctx, draft.BookingInfo.HallID, draft.BookingInfo.EventTypeID).
		Return(nil, domain.ErrHallNotFound)

	_, err := r.Reconcile(ctx, &draft, nil)

	require.ErrorIs(t, err, domain.ErrHallNotFound)
	var netErr *domain.NetworkError
	assert.False(t, errors.As(err, &netErr))
}

func TestReconcile_AppliesWhenNotMatched(t *testing.T) {
	pricing := mocks.NewHallPricingProvider(t)
	r := wizard.NewPriceReconciler(pricing)
	ctx := context.Background()

	draft := domain.BookingDraft{BookingInfo: validBookingInfo()}
	pricing.On("Snapshot", ctx, draft.BookingInfo.HallID, draft.BookingInfo.EventTypeID).
		Return(fixedSnapshot(draft.BookingInfo.HallID, 7000), nil)

	replaced, err := r.Reconcile(ctx, &draft, nil)

	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, domain.PricingFixed, draft.Payment.PricingType)
	assert.True(t, decimal.NewFromInt(7000).Equal(draft.Payment.FixedBookingPrice.Decimal))
}
