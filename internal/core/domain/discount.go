package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type DiscountSource string

const (
	DiscountManual  DiscountSource = "manual"
	DiscountCatalog DiscountSource = "catalog"
	// DiscountSpecial marks terms carried over from a persisted booking.
	DiscountSpecial DiscountSource = "special"
)

// Discount is a predefined catalog entry.
type Discount struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Type   DiscountType    `json:"type"`
	Value  decimal.Decimal `json:"value"`
	Active bool            `json:"active"`
}

// AppliedDiscount is the discount held by a payment section.
type AppliedDiscount struct {
	Type      *DiscountType       `json:"type"`
	Value     decimal.NullDecimal `json:"value"`
	Source    DiscountSource      `json:"source"`
	CatalogID *uuid.UUID          `json:"catalog_id,omitempty"`
	Details   string              `json:"details"`
}

func (d AppliedDiscount) Empty() bool {
	return d.Type == nil || !d.Value.Valid
}
