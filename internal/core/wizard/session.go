package wizard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports"
)

type Dependencies struct {
	Pricing  ports.HallPricingProvider
	Overlap  ports.OverlapChecker
	Notifier ports.Notifier
	Logger   *zap.Logger
	Debounce time.Duration
}

// View is what a client sees of a wizard after each operation.
type View struct {
	ID           uuid.UUID                            `json:"id"`
	Mode         domain.Mode                          `json:"mode"`
	Draft        domain.BookingDraft                  `json:"draft"`
	Editable     FieldPermissions                     `json:"editable"`
	Availability *domain.AvailabilityResult           `json:"availability,omitempty"`
	Touched      map[domain.Section][]string          `json:"touched"`
	Errors       map[domain.Section]map[string]string `json:"errors,omitempty"`
	Notices      []domain.Notice                      `json:"notices,omitempty"`
	Shake        []ShakeSignal                        `json:"shake,omitempty"`
}

// Session is one booking wizard. It owns the draft and every component
// working on it; nothing is shared between sessions.
type Session struct {
	mu            sync.Mutex
	id            uuid.UUID
	draft         domain.BookingDraft
	original      *domain.Booking
	discountReset bool
	submitting    bool
	lastActive    time.Time

	form         *FormState
	steps        *StepController
	availability *AvailabilityChecker
	prices       *PriceReconciler
	discounts    *DiscountResolver
	outbox       *Outbox
	logger       *zap.Logger
}

func NewSession(state domain.WizardState, deps Dependencies) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		id:            state.ID,
		draft:         state.Draft,
		original:      state.Original,
		discountReset: state.DiscountReset,
		lastActive:    time.Now(),
		discounts:     NewDiscountResolver(),
		prices:        NewPriceReconciler(deps.Pricing),
		outbox:        NewOutbox(deps.Notifier),
		logger:        logger.With(zap.String("wizard_id", state.ID.String())),
	}
	if s.draft.Payment.Discount.Source == "" {
		s.draft.Payment.Discount.Source = domain.DiscountManual
	}

	s.form = NewFormState(&s.draft, s.discounts)
	s.availability = NewAvailabilityChecker(deps.Overlap, s.logger, WithDebounce(deps.Debounce))
	s.availability.Subscribe(s.onAvailability)
	s.steps = NewStepController(s.form, s.availability, s.outbox, s.enterStep)
	s.recomputeTotals()
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// State is the persistable form of the session.
func (s *Session) State() domain.WizardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.WizardState{
		ID:            s.id,
		Draft:         s.draft,
		Original:      s.original,
		DiscountReset: s.discountReset,
	}
}

func (s *Session) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Mode()
}

func (s *Session) CurrentStep() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.CurrentStep
}

// View renders the session and drains pending notices.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:           s.id,
		Mode:         s.draft.Mode(),
		Draft:        s.draft,
		Editable:     Editability(s.draft.Payment, s.discountReset),
		Availability: s.availability.Latest(),
		Touched:      map[domain.Section][]string{},
	}

	for _, name := range domain.Sections {
		g, _ := s.form.Section(name)
		if fields := g.TouchedFields(); len(fields) > 0 {
			v.Touched[name] = fields
		}
		var verr *domain.ValidationError
		if err := g.Validate(); errors.As(err, &verr) {
			shown := map[string]string{}
			for field, rule := range verr.Fields {
				if g.Touched(field) {
					shown[field] = rule
				}
			}
			if len(shown) > 0 {
				if v.Errors == nil {
					v.Errors = map[domain.Section]map[string]string{}
				}
				v.Errors[name] = shown
			}
		}
	}

	v.Notices, v.Shake = s.outbox.Drain()
	return v
}

func (s *Session) UpdateBookingInfo(ctx context.Context, info domain.BookingInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	g, _ := s.form.Section(domain.SectionBookingInfo)
	g.Touch(changedFields(s.draft.BookingInfo, info)...)

	s.draft.BookingInfo = info
	s.rewind(domain.StepBookingInfo)
	s.availability.Observe(s.availabilityQuery())
	s.recomputeTotals()
	return nil
}

func (s *Session) SetServices(ctx context.Context, services []domain.AdditionalService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if err := s.reachable(domain.StepServices); err != nil {
		return err
	}
	g, _ := s.form.Section(domain.SectionServices)
	g.Touch(indexFields(len(services))...)

	s.draft.AdditionalServices = services
	s.rewind(domain.StepServices)
	s.recomputeTotals()
	return nil
}

func (s *Session) SetAttachments(ctx context.Context, attachments []domain.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if err := s.reachable(domain.StepAttachments); err != nil {
		return err
	}
	g, _ := s.form.Section(domain.SectionAttachments)
	g.Touch(indexFields(len(attachments))...)

	s.draft.Attachments = attachments
	s.rewind(domain.StepAttachments)
	return nil
}

// UpdatePayment replaces the client-editable payment fields. Changing a
// locked field is rejected; hall-owned and derived fields are kept.
func (s *Session) UpdatePayment(ctx context.Context, p domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if err := s.reachable(domain.StepPayment); err != nil {
		return err
	}

	cur := s.draft.Payment
	if locked := lockedChanges(cur, p, Editability(cur, s.discountReset)); len(locked) > 0 {
		return &domain.ValidationError{Section: domain.SectionPayment, Fields: locked}
	}

	p.PricingType = cur.PricingType
	p.Discount.Source = cur.Discount.Source
	p.Discount.CatalogID = cur.Discount.CatalogID
	p.PricesNotReset = cur.PricesNotReset

	g, _ := s.form.Section(domain.SectionPayment)
	g.Touch(changedFields(cur, p)...)

	s.draft.Payment = p
	s.rewind(domain.StepPayment)
	s.recomputeTotals()
	return nil
}

func (s *Session) ChangeStep(ctx context.Context, target domain.Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	from := s.draft.CurrentStep
	if err := s.steps.ChangeStep(ctx, target, nil); err != nil {
		s.logger.Debug("step change rejected",
			zap.Stringer("from", from), zap.Stringer("to", target), zap.Error(err))
		s.notifyStepError(ctx, err)
		return err
	}
	return nil
}

func (s *Session) ApplyCatalogDiscount(ctx context.Context, d domain.Discount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if err := s.reachable(domain.StepPayment); err != nil {
		return err
	}
	if err := s.discountWritable(); err != nil {
		return err
	}
	if !d.Active {
		return &domain.ValidationError{Section: domain.SectionPayment, Fields: map[string]string{"discount_id": "inactive"}}
	}

	s.discounts.ApplyCatalogDiscount(&s.draft.Payment, d)
	s.rewind(domain.StepPayment)
	s.recomputeTotals()
	return nil
}

func (s *Session) ClearCatalogDiscount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if err := s.discountWritable(); err != nil {
		return err
	}
	s.discounts.ClearCatalogDiscount(&s.draft.Payment)
	s.rewind(domain.StepPayment)
	s.recomputeTotals()
	return nil
}

// ResetSpecialDiscount releases the discount terms carried over from the
// edited booking for manual changes.
func (s *Session) ResetSpecialDiscount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	s.discountReset = true
	s.discounts.ResetSpecialDiscount(&s.draft.Payment)
	s.rewind(domain.StepPayment)
	return nil
}

// KeepStoredPrices puts the edited booking's own prices back and flags them
// as not reset. Time-based hall pricing then accepts them on later checks.
func (s *Session) KeepStoredPrices(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if err := s.reachable(domain.StepPayment); err != nil {
		return err
	}
	if s.original == nil {
		return &domain.ValidationError{Section: domain.SectionPayment, Fields: map[string]string{"prices_not_reset": "edit_only"}}
	}

	stored := s.original.Payment
	p := &s.draft.Payment
	p.PricingType = stored.PricingType
	p.PriceCalculationType = stored.PriceCalculationType
	p.FixedBookingPrice = stored.FixedBookingPrice
	p.MenPrice = stored.MenPrice
	p.WomenPrice = stored.WomenPrice
	p.InsuranceAmount = stored.InsuranceAmount
	p.PricesNotReset = true

	s.rewind(domain.StepPayment)
	s.recomputeTotals()
	return nil
}

func (s *Session) ResetSection(ctx context.Context, section domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	if err := s.form.Reset(section); err != nil {
		return err
	}
	s.rewind(stepOf(section))
	if section == domain.SectionBookingInfo {
		s.availability.Observe(s.availabilityQuery())
	}
	s.recomputeTotals()
	return nil
}

// ReconcilePrices checks the draft's prices against the hall right away.
func (s *Session) ReconcilePrices(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconcilePrices(ctx)
}

func (s *Session) Summary() domain.BookingDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft
	return Assemble(d.BookingInfo, d.AdditionalServices, d.Attachments, d.Payment, s.original)
}

// BeginSubmit returns the payload of a wizard at the summary step and marks
// it as being submitted until EndSubmit. Every section is validated again; a
// failing one is shaken and the wizard moves back to its step.
func (s *Session) BeginSubmit() (domain.BookingDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.BookingDetails{}, domain.ErrSubmitInProgress
	}
	if s.draft.CurrentStep != domain.StepSummary {
		return domain.BookingDetails{}, domain.ErrNotReady
	}

	for _, name := range domain.Sections {
		g, _ := s.form.Section(name)
		err := g.Validate()
		if err == nil {
			continue
		}
		g.MarkAllTouched()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.outbox.Shake(name, verr.FieldNames())
		}
		s.rewind(stepOf(name))
		return domain.BookingDetails{}, err
	}

	s.submitting = true
	d := s.draft
	return Assemble(d.BookingInfo, d.AdditionalServices, d.Attachments, d.Payment, s.original), nil
}

func (s *Session) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

func (s *Session) Close() {
	s.availability.Close()
}

func (s *Session) enterStep(ctx context.Context, target domain.Step) error {
	if target == domain.StepPayment {
		return s.reconcilePrices(ctx)
	}
	return nil
}

func (s *Session) reconcilePrices(ctx context.Context) error {
	replaced, err := s.prices.Reconcile(ctx, &s.draft, s.original)
	if err != nil {
		s.outbox.Notify(ctx, domain.Notice{Level: domain.NoticeError, Key: "booking.pricing_failed"})
		return err
	}
	if replaced {
		s.logger.Info("prices replaced from hall snapshot",
			zap.String("hall_id", s.draft.BookingInfo.HallID.String()),
			zap.String("pricing_type", string(s.draft.Payment.PricingType)))
		if s.draft.Mode() == domain.ModeEdit {
			s.outbox.Notify(ctx, domain.Notice{Level: domain.NoticeInfo, Key: "booking.prices_refreshed"})
		}
	}
	s.recomputeTotals()
	return nil
}

func (s *Session) onAvailability(res domain.AvailabilityResult, err error) {
	ctx := context.Background()
	if err != nil {
		s.outbox.Notify(ctx, domain.Notice{Level: domain.NoticeError, Key: "booking.availability_failed"})
		return
	}
	if !res.Available {
		s.outbox.Notify(ctx, overlapNotice(res.Conflict))
	}
}

func (s *Session) notifyStepError(ctx context.Context, err error) {
	var overlap *domain.OverlapError
	var netErr *domain.NetworkError
	switch {
	case errors.As(err, &overlap):
		s.outbox.Notify(ctx, overlapNotice(overlap.Conflict))
	case errors.As(err, &netErr):
		if netErr.Op == "availability check" {
			s.outbox.Notify(ctx, domain.Notice{Level: domain.NoticeError, Key: "booking.availability_failed"})
		}
	}
}

func (s *Session) recomputeTotals() {
	t := ComputeTotals(&s.draft, s.discounts)
	s.draft.Payment.Subtotal = t.Subtotal
	s.draft.Payment.TotalPayable = t.TotalPayable
	s.draft.Payment.RemainingAmount = t.RemainingAmount
}

func (s *Session) availabilityQuery() domain.AvailabilityQuery {
	return domain.QueryFromInfo(s.draft.BookingInfo, s.draft.BookingID)
}

// rewind keeps the step pointer at or below the step whose section changed.
func (s *Session) rewind(step domain.Step) {
	if s.draft.CurrentStep > step {
		s.form.setStep(step)
	}
}

func (s *Session) reachable(step domain.Step) error {
	if step > s.draft.CurrentStep {
		return fmt.Errorf("%w: %s is not reached yet", domain.ErrInvalidTransition, step)
	}
	return nil
}

func (s *Session) discountWritable() error {
	if s.draft.Payment.Discount.Source == domain.DiscountSpecial && !s.discountReset {
		return &domain.ValidationError{Section: domain.SectionPayment, Fields: map[string]string{"discount_type": "locked"}}
	}
	return nil
}

func overlapNotice(conflict *domain.BookingRef) domain.Notice {
	n := domain.Notice{Level: domain.NoticeWarning, Key: "booking.overlap"}
	if conflict != nil {
		n.Params = map[string]string{"booking_id": conflict.ID.String()}
		if conflict.ClientName != "" {
			n.Params["client_name"] = conflict.ClientName
		}
	}
	return n
}

func stepOf(section domain.Section) domain.Step {
	switch section {
	case domain.SectionServices:
		return domain.StepServices
	case domain.SectionAttachments:
		return domain.StepAttachments
	case domain.SectionPayment:
		return domain.StepPayment
	}
	return domain.StepBookingInfo
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// changedFields names the json fields that differ between two values of
// the same struct type.
func changedFields(old, next any) []string {
	ov, nv := reflect.ValueOf(old), reflect.ValueOf(next)
	var fields []string
	for i := 0; i < ov.NumField(); i++ {
		f := ov.Type().Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		if !fieldEqual(ov.Field(i), nv.Field(i)) {
			fields = append(fields, name)
		}
	}
	return fields
}

func fieldEqual(a, b reflect.Value) bool {
	switch {
	case a.Type() == decimalType:
		return a.Interface().(decimal.Decimal).Equal(b.Interface().(decimal.Decimal))
	case a.Type() == reflect.TypeOf(decimal.NullDecimal{}):
		return nullEqual(a.Interface().(decimal.NullDecimal), b.Interface().(decimal.NullDecimal))
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

func indexFields(n int) []string {
	fields := make([]string, n)
	for i := range fields {
		fields[i] = strconv.Itoa(i)
	}
	return fields
}
