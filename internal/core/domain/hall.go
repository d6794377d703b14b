package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PricingType string

const (
	PricingFixed       PricingType = "FIXED"
	PricingEvent       PricingType = "EVENT"
	PricingBookingTime PricingType = "BOOKING_TIME"
)

// Locked reports whether prices of this type are dictated by the hall.
func (p PricingType) Locked() bool {
	return p == PricingFixed || p == PricingEvent
}

type CalculationType string

const (
	CalculationFixedPrice  CalculationType = "FIXED_PRICE"
	CalculationPerPerson   CalculationType = "PER_PERSON"
	CalculationBookingTime CalculationType = "BOOKING_TIME"
)

// HallPricingSnapshot is the hall's current pricing configuration.
type HallPricingSnapshot struct {
	HallID               uuid.UUID       `json:"hall_id"`
	EventTypeID          *uuid.UUID      `json:"event_type_id,omitempty"`
	PricingType          PricingType     `json:"pricing_type"`
	PriceCalculationType CalculationType `json:"price_calculation_type"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	TotalAmountMen       decimal.Decimal `json:"total_amount_men"`
	TotalAmountWomen     decimal.Decimal `json:"total_amount_women"`
	InsuranceAmount      decimal.Decimal `json:"insurance_amount"`
}
