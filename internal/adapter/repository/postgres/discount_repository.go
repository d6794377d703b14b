package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

type DiscountRepository struct {
	db *sql.DB
}

func NewDiscountRepository(db *sql.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) List(ctx context.Context) ([]domain.Discount, error) {
	query := `
	SELECT id, name, type, value, active
	FROM discounts
	WHERE active = TRUE
	ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		var d domain.Discount
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.Value, &d.Active); err != nil {
			return nil, err
		}

		discounts = append(discounts, d)
	}

	return discounts, rows.Err()
}

func (r *DiscountRepository) Get(ctx context.Context, discountID uuid.UUID) (*domain.Discount, error) {
	query := `
	SELECT id, name, type, value, active
	FROM discounts
	WHERE id = $1
	`

	var d domain.Discount
	err := r.db.QueryRowContext(ctx, query, discountID).Scan(&d.ID, &d.Name, &d.Type, &d.Value, &d.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDiscountNotFound
		}

		return nil, err
	}

	return &d, nil
}
