package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type EventTime string

const (
	EventMorning EventTime = "MORNING"
	EventEvening EventTime = "EVENING"
	EventFullDay EventTime = "FULL_DAY"
)

type AttendeeType string

const (
	AttendeesMen   AttendeeType = "MEN"
	AttendeesWomen AttendeeType = "WOMEN"
	AttendeesMixed AttendeeType = "MIXED"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCheque   PaymentMethod = "CHEQUE"
)

type PaymentType string

const (
	PaymentDeposit     PaymentType = "DEPOSIT"
	PaymentFull        PaymentType = "FULL"
	PaymentInstallment PaymentType = "INSTALLMENT"
)

type BookingInfo struct {
	HallID       uuid.UUID    `json:"hall_id" validate:"required"`
	SectionIDs   []uuid.UUID  `json:"section_ids" validate:"required,min=1"`
	StartDate    Date         `json:"start_date"`
	EndDate      Date         `json:"end_date"`
	EventTime    EventTime    `json:"event_time" validate:"required,oneof=MORNING EVENING FULL_DAY"`
	EventTypeID  *uuid.UUID   `json:"event_type_id,omitempty"`
	AttendeeType AttendeeType `json:"attendee_type" validate:"required,oneof=MEN WOMEN MIXED"`
	MenCount     int          `json:"men_count" validate:"gte=0"`
	WomenCount   int          `json:"women_count" validate:"gte=0"`
	ClientID     uuid.UUID    `json:"client_id" validate:"required"`
	Confirmed    bool         `json:"confirmed"`
}

type AdditionalService struct {
	ServiceID uuid.UUID       `json:"service_id" validate:"required"`
	Note      string          `json:"note" validate:"max=500"`
	Price     decimal.Decimal `json:"price"`
	IsNew     bool            `json:"is_new"`
}

type Attachment struct {
	Name     string     `json:"name" validate:"required,max=255"`
	Path     string     `json:"path" validate:"required"`
	ServerID *uuid.UUID `json:"server_id,omitempty"`
}

type Payment struct {
	PricingType          PricingType         `json:"pricing_type" validate:"required,oneof=FIXED EVENT BOOKING_TIME"`
	PriceCalculationType CalculationType     `json:"price_calculation_type" validate:"required,oneof=FIXED_PRICE PER_PERSON BOOKING_TIME"`
	FixedBookingPrice    decimal.NullDecimal `json:"fixed_booking_price"`
	MenPrice             decimal.NullDecimal `json:"men_price"`
	WomenPrice           decimal.NullDecimal `json:"women_price"`
	InsuranceAmount      decimal.NullDecimal `json:"insurance_amount"`
	Discount             AppliedDiscount     `json:"discount"`
	PaidAmount           decimal.NullDecimal `json:"paid_amount"`
	PaymentMethod        PaymentMethod       `json:"payment_method" validate:"required,oneof=CASH CARD TRANSFER CHEQUE"`
	PaymentType          PaymentType         `json:"payment_type" validate:"required,oneof=DEPOSIT FULL INSTALLMENT"`
	Subtotal             decimal.NullDecimal `json:"subtotal"`
	TotalPayable         decimal.NullDecimal `json:"total_payable"`
	RemainingAmount      decimal.NullDecimal `json:"remaining_amount"`
	// PricesNotReset is set while stored prices of an edited booking have
	// not been replaced by the hall's current ones.
	PricesNotReset bool `json:"prices_not_reset"`
}

type Booking struct {
	ID                 uuid.UUID           `json:"id"`
	BookingInfo        BookingInfo         `json:"booking_info"`
	AdditionalServices []AdditionalService `json:"additional_services"`
	Attachments        []Attachment        `json:"attachments"`
	Payment            Payment             `json:"payment"`
	SpecialDiscount    *AppliedDiscount    `json:"special_discount,omitempty"`
	Status             BookingStatus       `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// BookingRef identifies a persisted booking in conflict messages.
type BookingRef struct {
	ID         uuid.UUID `json:"id"`
	ClientName string    `json:"client_name,omitempty"`
	StartDate  Date      `json:"start_date"`
	EndDate    Date      `json:"end_date"`
	EventTime  EventTime `json:"event_time"`
}

// BookingDetails is the flattened create/update payload.
type BookingDetails struct {
	ID *uuid.UUID `json:"id"`
	BookingInfo
	AdditionalServices []AdditionalService `json:"additional_services"`
	Attachments        []Attachment        `json:"attachments"`
	Payment
	TotalPayable    decimal.NullDecimal `json:"total_payable"`
	RemainingAmount decimal.NullDecimal `json:"remaining_amount"`
}
