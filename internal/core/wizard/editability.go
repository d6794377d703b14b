package wizard

import (
	"github.com/shopspring/decimal"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

// FieldPermissions says which payment fields a client may change right now.
type FieldPermissions struct {
	PricingFields           bool `json:"pricing_fields"`
	DiscountFields          bool `json:"discount_fields"`
	DiscountDetailsRequired bool `json:"discount_details_required"`
}

// Editability derives field permissions from the payment state alone.
func Editability(p domain.Payment, discountReset bool) FieldPermissions {
	perms := FieldPermissions{PricingFields: !p.PricingType.Locked()}

	switch p.Discount.Source {
	case domain.DiscountCatalog:
		perms.DiscountDetailsRequired = true
	case domain.DiscountSpecial:
		perms.DiscountFields = discountReset
	default:
		perms.DiscountFields = true
	}
	return perms
}

// lockedChanges lists fields of next that differ from cur although perms forbid it.
func lockedChanges(cur, next domain.Payment, perms FieldPermissions) map[string]string {
	changed := map[string]string{}

	if next.PricingType != "" && next.PricingType != cur.PricingType {
		changed["pricing_type"] = "locked"
	}
	if !perms.PricingFields {
		if next.PriceCalculationType != cur.PriceCalculationType {
			changed["price_calculation_type"] = "locked"
		}
		amounts := []struct {
			field     string
			cur, next decimal.NullDecimal
		}{
			{"fixed_booking_price", cur.FixedBookingPrice, next.FixedBookingPrice},
			{"men_price", cur.MenPrice, next.MenPrice},
			{"women_price", cur.WomenPrice, next.WomenPrice},
			{"insurance_amount", cur.InsuranceAmount, next.InsuranceAmount},
		}
		for _, a := range amounts {
			if !nullEqual(a.cur, a.next) {
				changed[a.field] = "locked"
			}
		}
	}
	if !perms.DiscountFields {
		if !discountTypeEqual(cur.Discount.Type, next.Discount.Type) {
			changed["discount_type"] = "locked"
		}
		if !nullEqual(cur.Discount.Value, next.Discount.Value) {
			changed["discount_value"] = "locked"
		}
	}
	return changed
}

func nullEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

func discountTypeEqual(a, b *domain.DiscountType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
