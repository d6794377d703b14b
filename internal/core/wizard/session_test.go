package wizard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports/mocks"
	"github.com/srgjo27/hall_booking/internal/core/wizard"
)

type sessionFixture struct {
	pricing *mocks.HallPricingProvider
	overlap *mocks.OverlapChecker
	session *wizard.Session
}

func newSessionFixture(t *testing.T, state domain.WizardState) *sessionFixture {
	f := &sessionFixture{
		pricing: mocks.NewHallPricingProvider(t),
		overlap: mocks.NewOverlapChecker(t),
	}
	f.session = wizard.NewSession(state, wizard.Dependencies{
		Pricing:  f.pricing,
		Overlap:  f.overlap,
		Debounce: time.Hour,
	})
	t.Cleanup(f.session.Close)
	return f
}

func noticeKeys(notices []domain.Notice) []string {
	keys := make([]string, 0, len(notices))
	for _, n := range notices {
		keys = append(keys, n.Key)
	}
	return keys
}

func TestSession_CreateFlow(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.WizardState{ID: uuid.New()})
	info := validBookingInfo()

	f.overlap.On("FindOverlap", mock.Anything, mock.AnythingOfType("domain.AvailabilityQuery")).Return(nil, nil).Once()
	f.pricing.On("Snapshot", mock.Anything, info.HallID, (*uuid.UUID)(nil)).Return(fixedSnapshot(info.HallID, 5000), nil).Once()

	require.NoError(t, f.session.UpdateBookingInfo(ctx, info))
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepServices))

	require.NoError(t, f.session.SetServices(ctx, []domain.AdditionalService{
		{ServiceID: uuid.New(), Price: decimal.NewFromInt(500)},
	}))
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepAttachments))
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepPayment))

	view := f.session.View()
	assert.False(t, view.Editable.PricingFields)
	assert.Empty(t, view.Notices)
	assert.True(t, decimal.NewFromInt(5500).Equal(view.Draft.Payment.Subtotal.Decimal))

	require.NoError(t, f.session.ApplyCatalogDiscount(ctx, domain.Discount{
		ID:     uuid.New(),
		Name:   "Autumn",
		Type:   domain.DiscountPercent,
		Value:  decimal.NewFromInt(10),
		Active: true,
	}))

	view = f.session.View()
	assert.False(t, view.Editable.DiscountFields)
	assert.True(t, view.Editable.DiscountDetailsRequired)
	assert.True(t, decimal.NewFromInt(4950).Equal(view.Draft.Payment.TotalPayable.Decimal))

	payment := view.Draft.Payment
	payment.PaidAmount = money(1000)
	payment.PaymentMethod = domain.PaymentTransfer
	payment.PaymentType = domain.PaymentDeposit
	payment.Discount.Details = "autumn campaign"
	require.NoError(t, f.session.UpdatePayment(ctx, payment))
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepSummary))

	summary := f.session.Summary()
	assert.Nil(t, summary.ID)
	assert.True(t, decimal.NewFromInt(4950).Equal(summary.TotalPayable.Decimal))
	assert.True(t, decimal.NewFromInt(3950).Equal(summary.RemainingAmount.Decimal))
	assert.Equal(t, domain.DiscountCatalog, summary.Payment.Discount.Source)
}

func TestSession_LockedPricingRejectsChanges(t *testing.T) {
	ctx := context.Background()
	info := validBookingInfo()
	f := newSessionFixture(t, domain.WizardState{
		ID: uuid.New(),
		Draft: domain.BookingDraft{
			BookingInfo: info,
			CurrentStep: domain.StepPayment,
			Payment: domain.Payment{
				PricingType:          domain.PricingFixed,
				PriceCalculationType: domain.CalculationFixedPrice,
				FixedBookingPrice:    money(5000),
				InsuranceAmount:      money(0),
			},
		},
	})

	payment := f.session.View().Draft.Payment
	payment.FixedBookingPrice = money(10)

	err := f.session.UpdatePayment(ctx, payment)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "locked", verr.Fields["fixed_booking_price"])
	assert.True(t, decimal.NewFromInt(5000).Equal(f.session.View().Draft.Payment.FixedBookingPrice.Decimal))
}

func TestSession_UnreachedSectionIsRejected(t *testing.T) {
	f := newSessionFixture(t, domain.WizardState{ID: uuid.New()})

	err := f.session.SetAttachments(context.Background(), []domain.Attachment{{Name: "plan.pdf", Path: "/tmp/plan.pdf"}})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSession_EditingBookingInfoRewinds(t *testing.T) {
	info := validBookingInfo()
	f := newSessionFixture(t, domain.WizardState{
		ID:    uuid.New(),
		Draft: domain.BookingDraft{BookingInfo: info, CurrentStep: domain.StepAttachments},
	})

	info.MenCount = 10
	require.NoError(t, f.session.UpdateBookingInfo(context.Background(), info))

	assert.Equal(t, domain.StepBookingInfo, f.session.CurrentStep())
	assert.Equal(t, []string{"men_count"}, f.session.View().Touched[domain.SectionBookingInfo])
}

func TestSession_OverlapEmitsNotice(t *testing.T) {
	ctx := context.Background()
	info := validBookingInfo()
	f := newSessionFixture(t, domain.WizardState{ID: uuid.New(), Draft: domain.BookingDraft{BookingInfo: info}})

	conflict := &domain.BookingRef{ID: uuid.New(), ClientName: "Al Noor Events"}
	f.overlap.On("FindOverlap", mock.Anything, mock.AnythingOfType("domain.AvailabilityQuery")).Return(conflict, nil).Once()

	err := f.session.ChangeStep(ctx, domain.StepServices)

	var overlap *domain.OverlapError
	require.ErrorAs(t, err, &overlap)
	view := f.session.View()
	require.Len(t, view.Notices, 1)
	assert.Equal(t, "booking.overlap", view.Notices[0].Key)
	assert.Equal(t, "Al Noor Events", view.Notices[0].Params["client_name"])
	assert.Equal(t, domain.StepBookingInfo, view.Draft.CurrentStep)
}

func TestSession_InvalidStepShakesSection(t *testing.T) {
	f := newSessionFixture(t, domain.WizardState{ID: uuid.New()})

	err := f.session.ChangeStep(context.Background(), domain.StepServices)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	view := f.session.View()
	require.Len(t, view.Shake, 1)
	assert.Equal(t, domain.SectionBookingInfo, view.Shake[0].Section)
	assert.Contains(t, view.Errors[domain.SectionBookingInfo], "hall_id")
}

func TestSession_PricingFailureKeepsStep(t *testing.T) {
	ctx := context.Background()
	info := validBookingInfo()
	f := newSessionFixture(t, domain.WizardState{
		ID:    uuid.New(),
		Draft: domain.BookingDraft{BookingInfo: info, CurrentStep: domain.StepAttachments},
	})
	f.pricing.On("Snapshot", mock.Anything, info.HallID, (*uuid.UUID)(nil)).Return(nil, errors.New("timeout")).Once()

	err := f.session.ChangeStep(ctx, domain.StepPayment)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, domain.StepAttachments, f.session.CurrentStep())
	assert.Equal(t, []string{"booking.pricing_failed"}, noticeKeys(f.session.View().Notices))
}

func editedBooking() *domain.Booking {
	info := validBookingInfo()
	fixed := domain.DiscountFixed
	return &domain.Booking{
		ID:          uuid.New(),
		BookingInfo: info,
		Payment: domain.Payment{
			PricingType:          domain.PricingFixed,
			PriceCalculationType: domain.CalculationFixedPrice,
			FixedBookingPrice:    money(4000),
			InsuranceAmount:      money(0),
			PaidAmount:           money(500),
			PaymentMethod:        domain.PaymentCash,
			PaymentType:          domain.PaymentDeposit,
		},
		SpecialDiscount: &domain.AppliedDiscount{Type: &fixed, Value: money(200)},
		Status:          domain.BookingConfirmed,
	}
}

func TestSession_EditModeRefreshesPricesAndLocksSpecialDiscount(t *testing.T) {
	ctx := context.Background()
	original := editedBooking()
	draft := domain.DraftFromBooking(original)
	draft.CurrentStep = domain.StepAttachments
	f := newSessionFixture(t, domain.WizardState{ID: uuid.New(), Draft: draft, Original: original})

	hallID := original.BookingInfo.HallID
	f.pricing.On("Snapshot", mock.Anything, hallID, (*uuid.UUID)(nil)).Return(fixedSnapshot(hallID, 5000), nil).Once()

	require.Equal(t, domain.ModeEdit, f.session.Mode())
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepPayment))

	view := f.session.View()
	assert.Equal(t, []string{"booking.prices_refreshed"}, noticeKeys(view.Notices))
	assert.True(t, decimal.NewFromInt(5000).Equal(view.Draft.Payment.FixedBookingPrice.Decimal))
	assert.Equal(t, domain.DiscountSpecial, view.Draft.Payment.Discount.Source)
	assert.False(t, view.Editable.DiscountFields)
	// 5000 - 200 - 500 paid
	assert.True(t, decimal.NewFromInt(4300).Equal(view.Draft.Payment.RemainingAmount.Decimal))

	err := f.session.ApplyCatalogDiscount(ctx, domain.Discount{ID: uuid.New(), Type: domain.DiscountPercent, Value: decimal.NewFromInt(5), Active: true})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "locked", verr.Fields["discount_type"])

	payment := view.Draft.Payment
	payment.Discount.Value = money(300)
	require.ErrorAs(t, f.session.UpdatePayment(ctx, payment), &verr)

	require.NoError(t, f.session.ResetSpecialDiscount(ctx))
	assert.True(t, f.session.View().Editable.DiscountFields)
	require.NoError(t, f.session.UpdatePayment(ctx, payment))

	summary := f.session.Summary()
	require.NotNil(t, summary.ID)
	assert.Equal(t, original.ID, *summary.ID)
	assert.True(t, decimal.NewFromInt(4700).Equal(summary.TotalPayable.Decimal))
}

func TestSession_InactiveCatalogDiscountRejected(t *testing.T) {
	info := validBookingInfo()
	f := newSessionFixture(t, domain.WizardState{
		ID:    uuid.New(),
		Draft: domain.BookingDraft{BookingInfo: info, CurrentStep: domain.StepPayment},
	})

	err := f.session.ApplyCatalogDiscount(context.Background(), domain.Discount{ID: uuid.New(), Type: domain.DiscountFixed, Value: decimal.NewFromInt(50)})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "inactive", verr.Fields["discount_id"])
}

func driveToSummary(t *testing.T, f *sessionFixture) {
	t.Helper()
	ctx := context.Background()
	info := validBookingInfo()

	f.overlap.On("FindOverlap", mock.Anything, mock.AnythingOfType("domain.AvailabilityQuery")).Return(nil, nil).Once()
	f.pricing.On("Snapshot", mock.Anything, info.HallID, (*uuid.UUID)(nil)).Return(fixedSnapshot(info.HallID, 5000), nil).Once()

	require.NoError(t, f.session.UpdateBookingInfo(ctx, info))
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepServices))
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepAttachments))
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepPayment))

	payment := f.session.View().Draft.Payment
	payment.PaidAmount = money(1000)
	payment.PaymentMethod = domain.PaymentTransfer
	payment.PaymentType = domain.PaymentDeposit
	require.NoError(t, f.session.UpdatePayment(ctx, payment))
	require.NoError(t, f.session.ChangeStep(ctx, domain.StepSummary))
	f.session.View()
}

func TestSession_CatalogDiscountAtSummaryMovesBackToPayment(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.WizardState{ID: uuid.New()})
	driveToSummary(t, f)

	require.NoError(t, f.session.ApplyCatalogDiscount(ctx, domain.Discount{
		ID:     uuid.New(),
		Type:   domain.DiscountFixed,
		Value:  decimal.NewFromInt(999999),
		Active: true,
	}))

	assert.Equal(t, domain.StepPayment, f.session.CurrentStep())
	_, err := f.session.BeginSubmit()
	assert.ErrorIs(t, err, domain.ErrNotReady)

	err = f.session.ChangeStep(ctx, domain.StepSummary)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lte_subtotal", verr.Fields["discount_value"])
	assert.Equal(t, "required", verr.Fields["discount_details"])
	assert.Equal(t, domain.StepPayment, f.session.CurrentStep())
}

func TestSession_DiscountChangesAtSummaryRewind(t *testing.T) {
	ctx := context.Background()

	cleared := newSessionFixture(t, domain.WizardState{ID: uuid.New()})
	driveToSummary(t, cleared)
	require.NoError(t, cleared.session.ClearCatalogDiscount(ctx))
	assert.Equal(t, domain.StepPayment, cleared.session.CurrentStep())

	reset := newSessionFixture(t, domain.WizardState{ID: uuid.New()})
	driveToSummary(t, reset)
	require.NoError(t, reset.session.ResetSpecialDiscount(ctx))
	assert.Equal(t, domain.StepPayment, reset.session.CurrentStep())
}

func TestSession_BeginSubmitRevalidatesSections(t *testing.T) {
	info := validBookingInfo()
	fixed := domain.DiscountFixed
	catalogID := uuid.New()
	f := newSessionFixture(t, domain.WizardState{
		ID: uuid.New(),
		Draft: domain.BookingDraft{
			BookingInfo: info,
			CurrentStep: domain.StepSummary,
			Payment: domain.Payment{
				PricingType:          domain.PricingFixed,
				PriceCalculationType: domain.CalculationFixedPrice,
				FixedBookingPrice:    money(5000),
				InsuranceAmount:      money(0),
				PaymentMethod:        domain.PaymentCash,
				PaymentType:          domain.PaymentFull,
				Discount: domain.AppliedDiscount{
					Type:      &fixed,
					Value:     money(999999),
					Source:    domain.DiscountCatalog,
					CatalogID: &catalogID,
				},
			},
		},
	})

	_, err := f.session.BeginSubmit()

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.SectionPayment, verr.Section)
	assert.Equal(t, "lte_subtotal", verr.Fields["discount_value"])
	assert.Equal(t, domain.StepPayment, f.session.CurrentStep())

	view := f.session.View()
	require.Len(t, view.Shake, 1)
	assert.Equal(t, domain.SectionPayment, view.Shake[0].Section)
	assert.Contains(t, view.Errors[domain.SectionPayment], "discount_details")
}

func TestSession_BeginSubmitOncePerWizard(t *testing.T) {
	f := newSessionFixture(t, domain.WizardState{ID: uuid.New()})
	driveToSummary(t, f)

	details, err := f.session.BeginSubmit()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(details.TotalPayable.Decimal))

	_, err = f.session.BeginSubmit()
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)

	f.session.EndSubmit()
	_, err = f.session.BeginSubmit()
	assert.NoError(t, err)
}

func TestSession_KeepStoredPricesSurvivesReconcile(t *testing.T) {
	ctx := context.Background()
	original := &domain.Booking{
		ID:          uuid.New(),
		BookingInfo: validBookingInfo(),
		Payment: domain.Payment{
			PricingType:          domain.PricingEvent,
			PriceCalculationType: domain.CalculationBookingTime,
			FixedBookingPrice:    money(3000),
			InsuranceAmount:      money(0),
			PaidAmount:           money(500),
			PaymentMethod:        domain.PaymentCash,
			PaymentType:          domain.PaymentDeposit,
		},
		Status: domain.BookingConfirmed,
	}
	draft := domain.DraftFromBooking(original)
	draft.CurrentStep = domain.StepPayment
	f := newSessionFixture(t, domain.WizardState{ID: uuid.New(), Draft: draft, Original: original})

	hallID := original.BookingInfo.HallID
	f.pricing.On("Snapshot", mock.Anything, hallID, (*uuid.UUID)(nil)).Return(&domain.HallPricingSnapshot{
		HallID:               hallID,
		PricingType:          domain.PricingEvent,
		PriceCalculationType: domain.CalculationBookingTime,
		TotalAmount:          decimal.NewFromInt(3600),
		InsuranceAmount:      decimal.Zero,
	}, nil).Twice()

	require.NoError(t, f.session.ReconcilePrices(ctx))
	assert.True(t, decimal.NewFromInt(3600).Equal(f.session.View().Draft.Payment.FixedBookingPrice.Decimal))

	require.NoError(t, f.session.KeepStoredPrices(ctx))
	require.NoError(t, f.session.ReconcilePrices(ctx))

	view := f.session.View()
	assert.True(t, view.Draft.Payment.PricesNotReset)
	assert.True(t, decimal.NewFromInt(3000).Equal(view.Draft.Payment.FixedBookingPrice.Decimal))
	// 3000 - 500 paid
	assert.True(t, decimal.NewFromInt(2500).Equal(view.Draft.Payment.RemainingAmount.Decimal))
}

func TestSession_KeepStoredPricesNeedsEditMode(t *testing.T) {
	f := newSessionFixture(t, domain.WizardState{
		ID:    uuid.New(),
		Draft: domain.BookingDraft{BookingInfo: validBookingInfo(), CurrentStep: domain.StepPayment},
	})

	err := f.session.KeepStoredPrices(context.Background())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "edit_only", verr.Fields["prices_not_reset"])
}
