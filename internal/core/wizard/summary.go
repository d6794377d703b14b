package wizard

import "github.com/srgjo27/hall_booking/internal/core/domain"

// Assemble merges the four sections into the submission payload. Derived
// totals come from the live payment section, falling back to the stored
// booking when the section has none.
func Assemble(info domain.BookingInfo, services []domain.AdditionalService, attachments []domain.Attachment, payment domain.Payment, existing *domain.Booking) domain.BookingDetails {
	details := domain.BookingDetails{
		BookingInfo:        info,
		AdditionalServices: services,
		Attachments:        attachments,
		Payment:            payment,
		TotalPayable:       payment.TotalPayable,
		RemainingAmount:    payment.RemainingAmount,
	}

	if existing != nil {
		id := existing.ID
		details.ID = &id
		if !details.TotalPayable.Valid {
			details.TotalPayable = existing.Payment.TotalPayable
		}
		if !details.RemainingAmount.Valid {
			details.RemainingAmount = existing.Payment.RemainingAmount
		}
	}
	return details
}
