package wizard_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/wizard"
)

func TestAssemble_CreateModeHasNoID(t *testing.T) {
	info := validBookingInfo()
	payment := domain.Payment{TotalPayable: money(5000), RemainingAmount: money(4000)}

	details := wizard.Assemble(info, nil, nil, payment, nil)

	assert.Nil(t, details.ID)
	assert.Equal(t, info.HallID, details.HallID)
	assert.True(t, decimal.NewFromInt(5000).Equal(details.TotalPayable.Decimal))
}

func TestAssemble_FallsBackToStoredTotals(t *testing.T) {
	existing := &domain.Booking{
		ID: uuid.New(),
		Payment: domain.Payment{
			TotalPayable:    money(9000),
			RemainingAmount: money(1500),
		},
	}
	payment := domain.Payment{RemainingAmount: money(700)}

	details := wizard.Assemble(validBookingInfo(), nil, nil, payment, existing)

	if assert.NotNil(t, details.ID) {
		assert.Equal(t, existing.ID, *details.ID)
	}
	assert.True(t, decimal.NewFromInt(9000).Equal(details.TotalPayable.Decimal))
	assert.True(t, decimal.NewFromInt(700).Equal(details.RemainingAmount.Decimal))
}
