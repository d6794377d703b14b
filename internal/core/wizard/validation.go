package wizard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors collects failures as field name -> rule.
type fieldErrors map[string]string

func (f fieldErrors) add(field, rule string) {
	if _, ok := f[field]; !ok {
		f[field] = rule
	}
}

func (f fieldErrors) addStruct(prefix string, s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.add(strings.TrimSuffix(prefix, "."), err.Error())
		return
	}
	for _, fe := range verrs {
		f.add(prefix+fe.Field(), fe.Tag())
	}
}

func (f fieldErrors) err(section domain.Section) error {
	if len(f) == 0 {
		return nil
	}
	return &domain.ValidationError{Section: section, Fields: f}
}

func validateBookingInfo(info *domain.BookingInfo) error {
	errs := fieldErrors{}
	errs.addStruct("", info)

	if info.StartDate.IsZero() {
		errs.add("start_date", "required")
	}
	if info.EndDate.IsZero() {
		errs.add("end_date", "required")
	}
	if !info.StartDate.IsZero() && !info.EndDate.IsZero() && info.EndDate.Before(info.StartDate) {
		errs.add("end_date", "gtefield")
	}

	switch info.AttendeeType {
	case domain.AttendeesMen:
		if info.MenCount < 1 {
			errs.add("men_count", "min")
		}
	case domain.AttendeesWomen:
		if info.WomenCount < 1 {
			errs.add("women_count", "min")
		}
	case domain.AttendeesMixed:
		if info.MenCount+info.WomenCount < 1 {
			errs.add("men_count", "min")
		}
	}

	return errs.err(domain.SectionBookingInfo)
}

func validateServices(services []domain.AdditionalService) error {
	errs := fieldErrors{}
	for i := range services {
		prefix := fmt.Sprintf("%d.", i)
		errs.addStruct(prefix, &services[i])
		if services[i].Price.IsNegative() {
			errs.add(prefix+"price", "min")
		}
	}
	return errs.err(domain.SectionServices)
}

func validateAttachments(attachments []domain.Attachment) error {
	errs := fieldErrors{}
	for i := range attachments {
		errs.addStruct(fmt.Sprintf("%d.", i), &attachments[i])
	}
	return errs.err(domain.SectionAttachments)
}

func validatePayment(draft *domain.BookingDraft, discounts *DiscountResolver) error {
	p := &draft.Payment
	errs := fieldErrors{}
	errs.addStruct("", p)

	switch p.PriceCalculationType {
	case domain.CalculationFixedPrice, domain.CalculationBookingTime:
		requireAmount(errs, "fixed_booking_price", p.FixedBookingPrice)
	case domain.CalculationPerPerson:
		attendees := draft.BookingInfo.AttendeeType
		if attendees == domain.AttendeesMen || attendees == domain.AttendeesMixed {
			requireAmount(errs, "men_price", p.MenPrice)
		}
		if attendees == domain.AttendeesWomen || attendees == domain.AttendeesMixed {
			requireAmount(errs, "women_price", p.WomenPrice)
		}
	}
	nonNegative(errs, "insurance_amount", p.InsuranceAmount)
	nonNegative(errs, "paid_amount", p.PaidAmount)

	totals := ComputeTotals(draft, discounts)
	if totals.Subtotal.Valid {
		if ferr := discounts.Validate(p.Discount.Type, p.Discount.Value, totals.Subtotal.Decimal); ferr != nil {
			errs.add(ferr.Field, ferr.Rule)
		}
	}
	if p.Discount.Source == domain.DiscountCatalog && strings.TrimSpace(p.Discount.Details) == "" {
		errs.add("discount_details", "required")
	}
	if p.PaidAmount.Valid && totals.TotalPayable.Valid && p.PaidAmount.Decimal.GreaterThan(totals.TotalPayable.Decimal) {
		errs.add("paid_amount", "max")
	}

	return errs.err(domain.SectionPayment)
}

func requireAmount(errs fieldErrors, field string, v decimal.NullDecimal) {
	if !v.Valid {
		errs.add(field, "required")
		return
	}
	nonNegative(errs, field, v)
}

func nonNegative(errs fieldErrors, field string, v decimal.NullDecimal) {
	if v.Valid && v.Decimal.IsNegative() {
		errs.add(field, "min")
	}
}
