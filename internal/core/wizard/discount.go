package wizard

import (
	"github.com/shopspring/decimal"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

type FieldError struct {
	Field string
	Rule  string
}

type DiscountResolver struct{}

func NewDiscountResolver() *DiscountResolver {
	return &DiscountResolver{}
}

// Validate checks a discount against the subtotal it applies to. A missing
// type or value means no discount and is valid.
func (r *DiscountResolver) Validate(discountType *domain.DiscountType, value decimal.NullDecimal, subtotal decimal.Decimal) *FieldError {
	if discountType == nil || !value.Valid {
		return nil
	}
	if value.Decimal.IsNegative() {
		return &FieldError{Field: "discount_value", Rule: "min"}
	}

	switch *discountType {
	case domain.DiscountPercent:
		if value.Decimal.GreaterThan(hundred) {
			return &FieldError{Field: "discount_value", Rule: "max"}
		}
	case domain.DiscountFixed:
		if value.Decimal.GreaterThan(subtotal) {
			return &FieldError{Field: "discount_value", Rule: "lte_subtotal"}
		}
	default:
		return &FieldError{Field: "discount_type", Rule: "oneof"}
	}
	return nil
}

// Amount is the money a discount takes off subtotal. Invalid discounts count as zero.
func (r *DiscountResolver) Amount(d domain.AppliedDiscount, subtotal decimal.Decimal) decimal.Decimal {
	if d.Empty() || r.Validate(d.Type, d.Value, subtotal) != nil {
		return decimal.Zero
	}
	if *d.Type == domain.DiscountPercent {
		return subtotal.Mul(d.Value.Decimal).Div(hundred).Round(2)
	}
	return d.Value.Decimal
}

func (r *DiscountResolver) ApplyCatalogDiscount(p *domain.Payment, d domain.Discount) {
	t := d.Type
	id := d.ID
	p.Discount.Type = &t
	p.Discount.Value = decimal.NewNullDecimal(d.Value)
	p.Discount.Source = domain.DiscountCatalog
	p.Discount.CatalogID = &id
}

func (r *DiscountResolver) ClearCatalogDiscount(p *domain.Payment) {
	p.Discount = domain.AppliedDiscount{Source: domain.DiscountManual}
}

// ResetSpecialDiscount hands the terms of a booking's special discount back
// to manual editing.
func (r *DiscountResolver) ResetSpecialDiscount(p *domain.Payment) {
	if p.Discount.Source == domain.DiscountSpecial {
		p.Discount.Source = domain.DiscountManual
	}
}
