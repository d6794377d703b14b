package wizard_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/wizard"
)

func TestBookingInfo_DateRange(t *testing.T) {
	draft := &domain.BookingDraft{BookingInfo: validBookingInfo()}
	form := wizard.NewFormState(draft, wizard.NewDiscountResolver())
	group, err := form.Section(domain.SectionBookingInfo)
	require.NoError(t, err)

	draft.BookingInfo.StartDate = domain.NewDate(2026, time.December, 3)
	draft.BookingInfo.EndDate = domain.NewDate(2026, time.December, 3)
	assert.NoError(t, group.Validate())

	draft.BookingInfo.EndDate = domain.NewDate(2026, time.December, 2)
	err = group.Validate()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "gtefield", verr.Fields["end_date"])
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, time.March, 1, 23, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))
	early := time.Date(2026, time.March, 1, 0, 5, 0, 0, time.UTC)

	assert.True(t, domain.DateOf(late).Equal(domain.DateOf(early)))
	assert.Equal(t, "2026-03-01", domain.DateOf(late).String())
}

func TestSection_UnknownName(t *testing.T) {
	form := wizard.NewFormState(&domain.BookingDraft{}, wizard.NewDiscountResolver())

	_, err := form.Section("catering")
	assert.ErrorIs(t, err, domain.ErrUnknownSection)
}

func TestReset_ClearsSectionsAndTouchedMarks(t *testing.T) {
	draft := &domain.BookingDraft{
		BookingInfo: validBookingInfo(),
		AdditionalServices: []domain.AdditionalService{
			{ServiceID: uuid.New(), Price: decimal.NewFromInt(300)},
		},
	}
	form := wizard.NewFormState(draft, wizard.NewDiscountResolver())
	services, err := form.Section(domain.SectionServices)
	require.NoError(t, err)
	services.Touch("0")

	require.NoError(t, form.Reset(domain.SectionServices))

	assert.Empty(t, draft.AdditionalServices)
	assert.False(t, services.Touched("0"))
	assert.NotEqual(t, uuid.Nil, draft.BookingInfo.HallID)

	require.NoError(t, form.Reset())
	assert.Equal(t, uuid.Nil, draft.BookingInfo.HallID)
}

func TestPaymentSection_DiscountBoundsBlock(t *testing.T) {
	draft := &domain.BookingDraft{
		BookingInfo: validBookingInfo(),
		Payment: domain.Payment{
			PricingType:          domain.PricingFixed,
			PriceCalculationType: domain.CalculationFixedPrice,
			FixedBookingPrice:    money(5000),
			InsuranceAmount:      money(0),
			PaymentMethod:        domain.PaymentCash,
			PaymentType:          domain.PaymentDeposit,
			Discount: domain.AppliedDiscount{
				Type:   discountType(domain.DiscountFixed),
				Value:  money(6000),
				Source: domain.DiscountManual,
			},
		},
	}
	form := wizard.NewFormState(draft, wizard.NewDiscountResolver())
	group, err := form.Section(domain.SectionPayment)
	require.NoError(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, group.Validate(), &verr)
	assert.Contains(t, verr.Fields, "discount_value")

	draft.Payment.Discount.Value = money(5000)
	assert.NoError(t, group.Validate())
}
