package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, details domain.BookingDetails) (*domain.Booking, error) {
	booking := bookingFromDetails(uuid.New(), details)
	booking.Status = domain.BookingPending
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	query := `
	INSERT INTO bookings (
		id, hall_id, section_ids, start_date, end_date, event_time, event_type_id,
		attendee_type, men_count, women_count, client_id, confirmed,
		pricing_type, price_calculation_type, fixed_booking_price, men_price, women_price,
		insurance_amount, discount_type, discount_value, discount_source, discount_catalog_id,
		discount_details, paid_amount, payment_method, payment_type, total_payable,
		remaining_amount, prices_not_reset, status, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32
	)
	`

	args := append([]any{booking.ID}, bookingColumns(booking)...)
	args = append(args, booking.Status, booking.CreatedAt, booking.UpdatedAt)

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err = insertChildren(ctx, tx, booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, details domain.BookingDetails) (*domain.Booking, error) {
	if details.ID == nil {
		return nil, errors.New("update requires a booking id")
	}
	booking := bookingFromDetails(*details.ID, details)
	booking.UpdatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	query := `
	UPDATE bookings SET
		hall_id = $2, section_ids = $3, start_date = $4, end_date = $5, event_time = $6,
		event_type_id = $7, attendee_type = $8, men_count = $9, women_count = $10,
		client_id = $11, confirmed = $12, pricing_type = $13, price_calculation_type = $14,
		fixed_booking_price = $15, men_price = $16, women_price = $17, insurance_amount = $18,
		discount_type = $19, discount_value = $20, discount_source = $21,
		discount_catalog_id = $22, discount_details = $23, paid_amount = $24,
		payment_method = $25, payment_type = $26, total_payable = $27,
		remaining_amount = $28, prices_not_reset = $29, updated_at = $30
	WHERE id = $1
	RETURNING status, created_at
	`

	args := append([]any{booking.ID}, bookingColumns(booking)...)
	args = append(args, booking.UpdatedAt)

	err = tx.QueryRowContext(ctx, query, args...).Scan(&booking.Status, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM booking_services WHERE booking_id = $1`, booking.ID); err != nil {
		return nil, fmt.Errorf("failed to clear booking services: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM booking_attachments WHERE booking_id = $1`, booking.ID); err != nil {
		return nil, fmt.Errorf("failed to clear booking attachments: %w", err)
	}

	if err = insertChildren(ctx, tx, booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `
	SELECT hall_id, section_ids, start_date, end_date, event_time, event_type_id,
		attendee_type, men_count, women_count, client_id, confirmed,
		pricing_type, price_calculation_type, fixed_booking_price, men_price, women_price,
		insurance_amount, discount_type, discount_value, discount_source, discount_catalog_id,
		discount_details, paid_amount, payment_method, payment_type, total_payable,
		remaining_amount, prices_not_reset, status, created_at, updated_at
	FROM bookings
	WHERE id = $1
	`

	b := domain.Booking{ID: bookingID}
	info := &b.BookingInfo
	p := &b.Payment
	var discountType sql.NullString

	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&info.HallID,
		pq.Array(&info.SectionIDs),
		&info.StartDate,
		&info.EndDate,
		&info.EventTime,
		&info.EventTypeID,
		&info.AttendeeType,
		&info.MenCount,
		&info.WomenCount,
		&info.ClientID,
		&info.Confirmed,
		&p.PricingType,
		&p.PriceCalculationType,
		&p.FixedBookingPrice,
		&p.MenPrice,
		&p.WomenPrice,
		&p.InsuranceAmount,
		&discountType,
		&p.Discount.Value,
		&p.Discount.Source,
		&p.Discount.CatalogID,
		&p.Discount.Details,
		&p.PaidAmount,
		&p.PaymentMethod,
		&p.PaymentType,
		&p.TotalPayable,
		&p.RemainingAmount,
		&p.PricesNotReset,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}

		return nil, err
	}

	if discountType.Valid {
		t := domain.DiscountType(discountType.String)
		p.Discount.Type = &t
	}
	if !p.Discount.Empty() {
		special := p.Discount
		b.SpecialDiscount = &special
	}

	if b.AdditionalServices, err = r.services(ctx, bookingID); err != nil {
		return nil, err
	}
	if b.Attachments, err = r.attachments(ctx, bookingID); err != nil {
		return nil, err
	}

	return &b, nil
}

// FindOverlap returns the first live booking of the same hall whose dates,
// slot and sections collide with q. A full-day slot collides with any slot.
func (r *BookingRepository) FindOverlap(ctx context.Context, q domain.AvailabilityQuery) (*domain.BookingRef, error) {
	query := `
	SELECT b.id, COALESCE(c.name, ''), b.start_date, b.end_date, b.event_time
	FROM bookings b
	LEFT JOIN clients c ON c.id = b.client_id
	WHERE b.hall_id = $1
		AND b.status <> 'CANCELLED'
		AND b.start_date <= $3 AND b.end_date >= $2
		AND (b.event_time = 'FULL_DAY' OR $4 = 'FULL_DAY' OR b.event_time = $4)
		AND b.section_ids && $5::uuid[]
		AND ($6::uuid IS NULL OR b.id <> $6)
	ORDER BY b.start_date
	LIMIT 1
	`

	var ref domain.BookingRef
	err := r.db.QueryRowContext(ctx, query,
		q.HallID, q.StartDate, q.EndDate, string(q.EventTime), pq.Array(q.SectionIDs), q.ExcludeBookingID,
	).Scan(&ref.ID, &ref.ClientName, &ref.StartDate, &ref.EndDate, &ref.EventTime)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &ref, nil
}

func (r *BookingRepository) services(ctx context.Context, bookingID uuid.UUID) ([]domain.AdditionalService, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT service_id, note, price
	FROM booking_services
	WHERE booking_id = $1
	ORDER BY position
	`, bookingID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var services []domain.AdditionalService
	for rows.Next() {
		var svc domain.AdditionalService
		if err := rows.Scan(&svc.ServiceID, &svc.Note, &svc.Price); err != nil {
			return nil, err
		}

		services = append(services, svc)
	}

	return services, rows.Err()
}

func (r *BookingRepository) attachments(ctx context.Context, bookingID uuid.UUID) ([]domain.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, path
	FROM booking_attachments
	WHERE booking_id = $1
	ORDER BY position
	`, bookingID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var attachments []domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		var id uuid.UUID
		if err := rows.Scan(&id, &a.Name, &a.Path); err != nil {
			return nil, err
		}

		a.ServerID = &id
		attachments = append(attachments, a)
	}

	return attachments, rows.Err()
}

func insertChildren(ctx context.Context, tx *sql.Tx, booking *domain.Booking) error {
	svcStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO booking_services (id, booking_id, position, service_id, note, price)
	VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare service statement: %w", err)
	}

	defer svcStmt.Close()

	for i, svc := range booking.AdditionalServices {
		if _, err := svcStmt.ExecContext(ctx, uuid.New(), booking.ID, i, svc.ServiceID, svc.Note, svc.Price); err != nil {
			return fmt.Errorf("failed to insert booking service %s: %w", svc.ServiceID, err)
		}
	}

	attStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO booking_attachments (id, booking_id, position, name, path)
	VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare attachment statement: %w", err)
	}

	defer attStmt.Close()

	for i := range booking.Attachments {
		a := &booking.Attachments[i]
		id := uuid.New()
		if a.ServerID != nil {
			id = *a.ServerID
		}
		if _, err := attStmt.ExecContext(ctx, id, booking.ID, i, a.Name, a.Path); err != nil {
			return fmt.Errorf("failed to insert attachment %s: %w", a.Name, err)
		}
		a.ServerID = &id
	}

	return nil
}

func bookingFromDetails(id uuid.UUID, d domain.BookingDetails) *domain.Booking {
	b := &domain.Booking{
		ID:                 id,
		BookingInfo:        d.BookingInfo,
		AdditionalServices: append([]domain.AdditionalService(nil), d.AdditionalServices...),
		Attachments:        append([]domain.Attachment(nil), d.Attachments...),
		Payment:            d.Payment,
	}
	b.Payment.TotalPayable = d.TotalPayable
	b.Payment.RemainingAmount = d.RemainingAmount
	if b.Payment.Discount.Source == domain.DiscountSpecial {
		b.Payment.Discount.Source = domain.DiscountManual
	}
	return b
}

// bookingColumns lists the writable columns in the order of $2..$29.
func bookingColumns(b *domain.Booking) []any {
	info := b.BookingInfo
	p := b.Payment

	var discountType sql.NullString
	if p.Discount.Type != nil {
		discountType = sql.NullString{String: string(*p.Discount.Type), Valid: true}
	}

	return []any{
		info.HallID,
		pq.Array(info.SectionIDs),
		info.StartDate,
		info.EndDate,
		info.EventTime,
		info.EventTypeID,
		info.AttendeeType,
		info.MenCount,
		info.WomenCount,
		info.ClientID,
		info.Confirmed,
		p.PricingType,
		p.PriceCalculationType,
		p.FixedBookingPrice,
		p.MenPrice,
		p.WomenPrice,
		p.InsuranceAmount,
		discountType,
		p.Discount.Value,
		p.Discount.Source,
		p.Discount.CatalogID,
		p.Discount.Details,
		p.PaidAmount,
		p.PaymentMethod,
		p.PaymentType,
		p.TotalPayable,
		p.RemainingAmount,
		p.PricesNotReset,
	}
}
