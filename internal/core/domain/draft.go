package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type Step int

const (
	StepBookingInfo Step = iota
	StepServices
	StepAttachments
	StepPayment
	StepSummary
)

func (s Step) String() string {
	switch s {
	case StepBookingInfo:
		return "booking_info"
	case StepServices:
		return "services"
	case StepAttachments:
		return "attachments"
	case StepPayment:
		return "payment"
	case StepSummary:
		return "summary"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) Valid() bool {
	return s >= StepBookingInfo && s <= StepSummary
}

// Section returns the field group edited on step s. The summary step has none.
func (s Step) Section() (Section, bool) {
	switch s {
	case StepBookingInfo:
		return SectionBookingInfo, true
	case StepServices:
		return SectionServices, true
	case StepAttachments:
		return SectionAttachments, true
	case StepPayment:
		return SectionPayment, true
	}
	return "", false
}

type Section string

const (
	SectionBookingInfo Section = "booking_info"
	SectionServices    Section = "additional_services"
	SectionAttachments Section = "attachments"
	SectionPayment     Section = "payment"
)

var Sections = []Section{SectionBookingInfo, SectionServices, SectionAttachments, SectionPayment}

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSection, s)
}

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// BookingDraft is the in-progress booking of one wizard.
type BookingDraft struct {
	BookingInfo        BookingInfo         `json:"booking_info"`
	AdditionalServices []AdditionalService `json:"additional_services"`
	Attachments        []Attachment        `json:"attachments"`
	Payment            Payment             `json:"payment"`
	CurrentStep        Step                `json:"current_step"`
	BookingID          *uuid.UUID          `json:"booking_id"`
}

func (d *BookingDraft) Mode() Mode {
	if d.BookingID != nil {
		return ModeEdit
	}
	return ModeCreate
}

// DraftFromBooking hydrates a draft for editing b.
func DraftFromBooking(b *Booking) BookingDraft {
	id := b.ID
	draft := BookingDraft{
		BookingInfo:        b.BookingInfo,
		AdditionalServices: append([]AdditionalService(nil), b.AdditionalServices...),
		Attachments:        append([]Attachment(nil), b.Attachments...),
		Payment:            b.Payment,
		CurrentStep:        StepBookingInfo,
		BookingID:          &id,
	}
	draft.BookingInfo.SectionIDs = append([]uuid.UUID(nil), b.BookingInfo.SectionIDs...)
	if b.SpecialDiscount != nil {
		draft.Payment.Discount = *b.SpecialDiscount
		draft.Payment.Discount.Source = DiscountSpecial
	}
	return draft
}

// WizardState is the persisted form of a wizard session.
type WizardState struct {
	ID            uuid.UUID    `json:"id"`
	Draft         BookingDraft `json:"draft"`
	Original      *Booking     `json:"original,omitempty"`
	DiscountReset bool         `json:"discount_reset"`
}
