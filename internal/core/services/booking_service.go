package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports"
	"github.com/srgjo27/hall_booking/internal/core/wizard"
)

const DefaultIdleTTL = 30 * time.Minute

// BookingService keeps the live wizard sessions and turns finished ones into
// persisted bookings.
type BookingService struct {
	bookings  ports.BookingRepository
	discounts ports.DiscountCatalog
	drafts    ports.DraftStore
	deps      wizard.Dependencies
	logger    *zap.Logger
	idleTTL   time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*wizard.Session
}

func NewBookingService(bookings ports.BookingRepository, discounts ports.DiscountCatalog, drafts ports.DraftStore, deps wizard.Dependencies, idleTTL time.Duration) *BookingService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &BookingService{
		bookings:  bookings,
		discounts: discounts,
		drafts:    drafts,
		deps:      deps,
		logger:    deps.Logger,
		idleTTL:   idleTTL,
		sessions:  make(map[uuid.UUID]*wizard.Session),
	}
}

// StartWizard opens a wizard for a new booking, or for editing bookingID.
// Edited bookings are checked against the hall's current prices right away.
func (s *BookingService) StartWizard(ctx context.Context, bookingID *uuid.UUID) (*wizard.Session, error) {
	state := domain.WizardState{ID: uuid.New()}

	if bookingID != nil {
		b, err := s.bookings.GetByID(ctx, *bookingID)
		if err != nil {
			return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
		}
		state.Draft = domain.DraftFromBooking(b)
		state.Original = b
	}

	sess := wizard.NewSession(state, s.deps)
	if state.Original != nil {
		if err := sess.ReconcilePrices(ctx); err != nil {
			s.logger.Warn("price reconciliation failed on hydration",
				zap.String("booking_id", bookingID.String()), zap.Error(err))
		}
	}

	s.register(sess)
	s.persist(ctx, sess)

	s.logger.Info("wizard started",
		zap.String("wizard_id", sess.ID().String()),
		zap.String("mode", string(sess.Mode())))
	return sess, nil
}

// Wizard returns the live session, restoring it from the draft store when
// this process does not hold it.
func (s *BookingService) Wizard(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	state, err := s.drafts.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrWizardNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load draft %s: %w", id, err)
	}
	if state == nil {
		return nil, domain.ErrWizardNotFound
	}

	restored := wizard.NewSession(*state, s.deps)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		restored.Close()
		return sess, nil
	}
	s.sessions[id] = restored
	s.logger.Debug("wizard restored from draft store", zap.String("wizard_id", id.String()))
	return restored, nil
}

// Mutate runs fn against the session and persists the draft when fn succeeds.
func (s *BookingService) Mutate(ctx context.Context, id uuid.UUID, fn func(*wizard.Session) error) (*wizard.Session, error) {
	sess, err := s.Wizard(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return sess, err
	}
	s.persist(ctx, sess)
	return sess, nil
}

func (s *BookingService) ApplyDiscount(ctx context.Context, id, discountID uuid.UUID) (*wizard.Session, error) {
	d, err := s.discounts.Get(ctx, discountID)
	if err != nil {
		return nil, err
	}
	return s.Mutate(ctx, id, func(sess *wizard.Session) error {
		return sess.ApplyCatalogDiscount(ctx, *d)
	})
}

func (s *BookingService) Discounts(ctx context.Context) ([]domain.Discount, error) {
	return s.discounts.List(ctx)
}

// Submit stores the assembled booking and closes the wizard. A wizard is
// submitted at most once at a time.
func (s *BookingService) Submit(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	sess, err := s.Wizard(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := sess.BeginSubmit()
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.persist(ctx, sess)
		}
		return nil, err
	}
	defer sess.EndSubmit()

	var (
		booking *domain.Booking
		key     string
	)
	if details.ID != nil {
		booking, err = s.bookings.Update(ctx, details)
		key = "booking.updated"
	} else {
		booking, err = s.bookings.Create(ctx, details)
		key = "booking.created"
	}
	if err != nil {
		s.logger.Error("booking submission failed", zap.String("wizard_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("submit booking: %w", err)
	}

	if s.deps.Notifier != nil {
		s.deps.Notifier.Notify(ctx, domain.Notice{
			Level:  domain.NoticeSuccess,
			Key:    key,
			Params: map[string]string{"booking_id": booking.ID.String()},
		})
	}

	if err := s.Discard(ctx, id); err != nil {
		s.logger.Warn("failed to discard submitted wizard", zap.String("wizard_id", id.String()), zap.Error(err))
	}
	return booking, nil
}

// Discard drops the wizard and its stored draft.
func (s *BookingService) Discard(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.Close()
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	return nil
}

func (s *BookingService) RunBackgroundCleanup(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	s.logger.Info("background worker started", zap.Duration("idle_ttl", s.idleTTL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("background worker stopped")
			return
		case now := <-ticker.C:
			s.EvictIdle(now)
		}
	}
}

// EvictIdle closes sessions idle for longer than the TTL. Their drafts stay
// in the draft store and can be restored later.
func (s *BookingService) EvictIdle(now time.Time) int {
	s.mu.Lock()
	var idle []*wizard.Session
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActive()) > s.idleTTL {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	if len(idle) == 0 {
		return 0
	}

	s.logger.Info("evicting idle wizards", zap.Int("count", len(idle)))
	for _, sess := range idle {
		sess.Close()
	}
	return len(idle)
}

func (s *BookingService) register(sess *wizard.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = sess
}

func (s *BookingService) persist(ctx context.Context, sess *wizard.Session) {
	if err := s.drafts.Save(ctx, sess.ID(), sess.State()); err != nil {
		s.logger.Warn("failed to persist draft", zap.String("wizard_id", sess.ID().String()), zap.Error(err))
	}
}
