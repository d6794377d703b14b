package wizard_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

func money(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func discountType(t domain.DiscountType) *domain.DiscountType {
	return &t
}

func validBookingInfo() domain.BookingInfo {
	return domain.BookingInfo{
		HallID:       uuid.New(),
		SectionIDs:   []uuid.UUID{uuid.New()},
		StartDate:    domain.NewDate(2026, time.November, 20),
		EndDate:      domain.NewDate(2026, time.November, 20),
		EventTime:    domain.EventEvening,
		AttendeeType: domain.AttendeesMixed,
		MenCount:     40,
		WomenCount:   60,
		ClientID:     uuid.New(),
	}
}

func fixedSnapshot(hallID uuid.UUID, total int64) *domain.HallPricingSnapshot {
	return &domain.HallPricingSnapshot{
		HallID:               hallID,
		PricingType:          domain.PricingFixed,
		PriceCalculationType: domain.CalculationFixedPrice,
		TotalAmount:          decimal.NewFromInt(total),
		InsuranceAmount:      decimal.Zero,
	}
}
