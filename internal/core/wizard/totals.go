package wizard

import (
	"github.com/shopspring/decimal"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

type Totals struct {
	Subtotal        decimal.NullDecimal
	Discount        decimal.Decimal
	TotalPayable    decimal.NullDecimal
	RemainingAmount decimal.NullDecimal
}

// ComputeTotals derives the money fields of a draft. Subtotal stays empty
// until the hall price the calculation type needs is known.
func ComputeTotals(draft *domain.BookingDraft, discounts *DiscountResolver) Totals {
	p := draft.Payment
	info := draft.BookingInfo

	var base decimal.Decimal
	switch p.PriceCalculationType {
	case domain.CalculationFixedPrice, domain.CalculationBookingTime:
		if !p.FixedBookingPrice.Valid {
			return Totals{}
		}
		base = p.FixedBookingPrice.Decimal
	case domain.CalculationPerPerson:
		men, women := amountOrZero(p.MenPrice), amountOrZero(p.WomenPrice)
		switch info.AttendeeType {
		case domain.AttendeesMen:
			base = men.Mul(decimal.NewFromInt(int64(info.MenCount)))
		case domain.AttendeesWomen:
			base = women.Mul(decimal.NewFromInt(int64(info.WomenCount)))
		default:
			base = men.Mul(decimal.NewFromInt(int64(info.MenCount))).
				Add(women.Mul(decimal.NewFromInt(int64(info.WomenCount))))
		}
	default:
		return Totals{}
	}

	subtotal := base
	for _, svc := range draft.AdditionalServices {
		subtotal = subtotal.Add(svc.Price)
	}

	discount := discounts.Amount(p.Discount, subtotal)
	payable := subtotal.Sub(discount).Add(amountOrZero(p.InsuranceAmount))
	remaining := payable.Sub(amountOrZero(p.PaidAmount))

	return Totals{
		Subtotal:        decimal.NewNullDecimal(subtotal),
		Discount:        discount,
		TotalPayable:    decimal.NewNullDecimal(payable),
		RemainingAmount: decimal.NewNullDecimal(remaining),
	}
}

func amountOrZero(v decimal.NullDecimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return decimal.Zero
}
