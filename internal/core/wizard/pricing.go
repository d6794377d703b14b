package wizard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports"
)

// BookingContext carries what the booking looked like when it was made next
// to what the draft selects now.
type BookingContext struct {
	OriginalEventTypeID  *uuid.UUID
	CurrentEventTypeID   *uuid.UUID
	OriginalAttendeeType domain.AttendeeType
	CurrentAttendeeType  domain.AttendeeType
}

func (c BookingContext) EventTypeChanged() bool {
	if c.OriginalEventTypeID == nil || c.CurrentEventTypeID == nil {
		return c.OriginalEventTypeID != c.CurrentEventTypeID
	}
	return *c.OriginalEventTypeID != *c.CurrentEventTypeID
}

func (c BookingContext) AttendeeTypeChanged() bool {
	return c.OriginalAttendeeType != c.CurrentAttendeeType
}

// ContextFor compares draft against the booking it was hydrated from. Without
// an original booking nothing counts as changed.
func ContextFor(draft *domain.BookingDraft, original *domain.Booking) BookingContext {
	bc := BookingContext{
		CurrentEventTypeID:  draft.BookingInfo.EventTypeID,
		CurrentAttendeeType: draft.BookingInfo.AttendeeType,
	}
	if original == nil {
		bc.OriginalEventTypeID = bc.CurrentEventTypeID
		bc.OriginalAttendeeType = bc.CurrentAttendeeType
		return bc
	}
	bc.OriginalEventTypeID = original.BookingInfo.EventTypeID
	bc.OriginalAttendeeType = original.BookingInfo.AttendeeType
	return bc
}

type PriceReconciler struct {
	pricing ports.HallPricingProvider
}

func NewPriceReconciler(pricing ports.HallPricingProvider) *PriceReconciler {
	return &PriceReconciler{pricing: pricing}
}

// IsMatched decides whether stored prices still agree with the hall's
// current pricing. The rules are evaluated in order and the first that
// applies decides.
func (r *PriceReconciler) IsMatched(stored domain.Payment, snap domain.HallPricingSnapshot, bc BookingContext) bool {
	if snap.PricingType == domain.PricingBookingTime && stored.PricingType == domain.PricingBookingTime {
		return true
	}

	if snap.PricingType != stored.PricingType {
		return false
	}

	if snap.PriceCalculationType == domain.CalculationBookingTime {
		if bc.EventTypeChanged() {
			return false
		}
		return (fixedPriceEqual(stored, snap) && perPersonPricesEqual(stored, snap)) || stored.PricesNotReset
	}

	if snap.PriceCalculationType == domain.CalculationPerPerson && bc.AttendeeTypeChanged() {
		return false
	}

	if stored.PriceCalculationType != snap.PriceCalculationType ||
		!amountEqual(stored.InsuranceAmount, snap.InsuranceAmount) {
		return false
	}
	if snap.PriceCalculationType == domain.CalculationPerPerson {
		return perPersonPricesEqual(stored, snap)
	}
	return fixedPriceEqual(stored, snap)
}

// Apply copies the snapshot's pricing into p and reports whether the price
// fields are now locked.
func (r *PriceReconciler) Apply(p *domain.Payment, snap domain.HallPricingSnapshot) bool {
	p.PricingType = snap.PricingType
	p.PriceCalculationType = snap.PriceCalculationType
	p.FixedBookingPrice = decimal.NewNullDecimal(snap.TotalAmount)
	p.MenPrice = decimal.NewNullDecimal(snap.TotalAmountMen)
	p.WomenPrice = decimal.NewNullDecimal(snap.TotalAmountWomen)
	p.InsuranceAmount = decimal.NewNullDecimal(snap.InsuranceAmount)
	p.PricesNotReset = false
	return snap.PricingType.Locked()
}

// Snapshot fetches the hall's current pricing for the draft's selection.
func (r *PriceReconciler) Snapshot(ctx context.Context, info domain.BookingInfo) (*domain.HallPricingSnapshot, error) {
	snap, err := r.pricing.Snapshot(ctx, info.HallID, info.EventTypeID)
	if errors.Is(err, domain.ErrHallNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, &domain.NetworkError{Op: "hall pricing", Err: err}
	}
	return snap, nil
}

// Reconcile fetches a fresh snapshot and applies it when the draft's prices
// no longer match. It reports whether prices were replaced.
func (r *PriceReconciler) Reconcile(ctx context.Context, draft *domain.BookingDraft, original *domain.Booking) (bool, error) {
	snap, err := r.Snapshot(ctx, draft.BookingInfo)
	if err != nil {
		return false, err
	}
	if r.IsMatched(draft.Payment, *snap, ContextFor(draft, original)) {
		return false, nil
	}
	r.Apply(&draft.Payment, *snap)
	return true, nil
}

// amountEqual treats an empty stored amount as zero. Comparison is exact.
func amountEqual(stored decimal.NullDecimal, current decimal.Decimal) bool {
	if !stored.Valid {
		return current.IsZero()
	}
	return stored.Decimal.Equal(current)
}

func fixedPriceEqual(stored domain.Payment, snap domain.HallPricingSnapshot) bool {
	return amountEqual(stored.FixedBookingPrice, snap.TotalAmount)
}

func perPersonPricesEqual(stored domain.Payment, snap domain.HallPricingSnapshot) bool {
	return amountEqual(stored.MenPrice, snap.TotalAmountMen) &&
		amountEqual(stored.WomenPrice, snap.TotalAmountWomen)
}
