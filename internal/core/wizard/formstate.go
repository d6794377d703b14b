package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

// FieldGroup is the live view of one draft section. Value points into the
// draft, so writes through it are visible immediately.
type FieldGroup struct {
	name     domain.Section
	value    any
	validate func() error
	touched  map[string]bool
	all      bool
}

func (g *FieldGroup) Name() domain.Section { return g.name }

func (g *FieldGroup) Value() any { return g.value }

func (g *FieldGroup) Validate() error { return g.validate() }

func (g *FieldGroup) Valid() bool { return g.validate() == nil }

func (g *FieldGroup) Touch(fields ...string) {
	for _, f := range fields {
		g.touched[f] = true
	}
}

func (g *FieldGroup) MarkAllTouched() {
	g.all = true
	if err := g.validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			g.Touch(verr.FieldNames()...)
		}
	}
}

// Touched reports whether field, or the list entry it belongs to, was touched.
func (g *FieldGroup) Touched(field string) bool {
	if g.all || g.touched[field] {
		return true
	}
	entry, _, nested := strings.Cut(field, ".")
	return nested && g.touched[entry]
}

func (g *FieldGroup) AllTouched() bool { return g.all }

func (g *FieldGroup) TouchedFields() []string {
	fields := make([]string, 0, len(g.touched))
	for f := range g.touched {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (g *FieldGroup) untouch() {
	g.touched = map[string]bool{}
	g.all = false
}

// FormState owns the four sections of a draft and its step pointer.
type FormState struct {
	draft  *domain.BookingDraft
	groups map[domain.Section]*FieldGroup
}

func NewFormState(draft *domain.BookingDraft, discounts *DiscountResolver) *FormState {
	f := &FormState{draft: draft}
	f.groups = map[domain.Section]*FieldGroup{
		domain.SectionBookingInfo: {
			name:     domain.SectionBookingInfo,
			value:    &draft.BookingInfo,
			validate: func() error { return validateBookingInfo(&draft.BookingInfo) },
		},
		domain.SectionServices: {
			name:     domain.SectionServices,
			value:    &draft.AdditionalServices,
			validate: func() error { return validateServices(draft.AdditionalServices) },
		},
		domain.SectionAttachments: {
			name:     domain.SectionAttachments,
			value:    &draft.Attachments,
			validate: func() error { return validateAttachments(draft.Attachments) },
		},
		domain.SectionPayment: {
			name:     domain.SectionPayment,
			value:    &draft.Payment,
			validate: func() error { return validatePayment(draft, discounts) },
		},
	}
	for _, g := range f.groups {
		g.untouch()
	}
	return f
}

func (f *FormState) Draft() *domain.BookingDraft { return f.draft }

func (f *FormState) Section(name domain.Section) (*FieldGroup, error) {
	g, ok := f.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSection, name)
	}
	return g, nil
}

func (f *FormState) BookingInfo() *domain.BookingInfo { return &f.draft.BookingInfo }

func (f *FormState) Services() *[]domain.AdditionalService { return &f.draft.AdditionalServices }

func (f *FormState) Attachments() *[]domain.Attachment { return &f.draft.Attachments }

func (f *FormState) Payment() *domain.Payment { return &f.draft.Payment }

func (f *FormState) CurrentStep() domain.Step { return f.draft.CurrentStep }

func (f *FormState) setStep(s domain.Step) { f.draft.CurrentStep = s }

// Reset clears the named sections, or every section when none are named.
func (f *FormState) Reset(names ...domain.Section) error {
	if len(names) == 0 {
		names = domain.Sections
	}
	for _, name := range names {
		g, err := f.Section(name)
		if err != nil {
			return err
		}
		switch name {
		case domain.SectionBookingInfo:
			f.draft.BookingInfo = domain.BookingInfo{}
		case domain.SectionServices:
			f.draft.AdditionalServices = nil
		case domain.SectionAttachments:
			f.draft.Attachments = nil
		case domain.SectionPayment:
			f.draft.Payment = domain.Payment{Discount: domain.AppliedDiscount{Source: domain.DiscountManual}}
		}
		g.untouch()
	}
	return nil
}
