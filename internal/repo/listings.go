package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/domain"
)

// Listings persists orders and trips. Listings are only ever inserted or
// flipped inactive; nothing ever reactivates or deletes them.
type Listings struct {
	db *sqlx.DB
}

// NewListings constructs the listing repository.
func NewListings(db *sqlx.DB) *Listings {
	return &Listings{db: db}
}

// InsertOrder stores a completed order listing and returns its id.
func (r *Listings) InsertOrder(ctx context.Context, o domain.Order) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (tg_id, product, weight, from_city, to_city, price, created_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id
	`, o.TgID, o.Product, o.Weight, o.FromCity, o.ToCity, o.Price, o.CreatedAt, o.ExpiresAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

// InsertTrip stores a completed trip listing and returns its id.
func (r *Listings) InsertTrip(ctx context.Context, t domain.Trip) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO trips (tg_id, from_city, to_city, date, capacity_kg, price_per_kg, created_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING id
	`, t.TgID, t.FromCity, t.ToCity, t.Date, t.CapacityKG, t.PricePerKG, t.CreatedAt, t.ExpiresAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert trip: %w", err)
	}
	return id, nil
}

// GetOrder returns a single order by id.
func (r *Listings) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.db.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

// GetTrip returns a single trip by id.
func (r *Listings) GetTrip(ctx context.Context, id int64) (domain.Trip, error) {
	var t domain.Trip
	err := r.db.GetContext(ctx, &t, `SELECT * FROM trips WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trip{}, ErrNotFound
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip %d: %w", id, err)
	}
	return t, nil
}

// ActiveOrders lists active, unexpired orders, newest first.
func (r *Listings) ActiveOrders(ctx context.Context, now time.Time, limit int) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.SelectContext(ctx, &out, `
		SELECT * FROM orders
		WHERE is_active AND expires_at > $1
		ORDER BY created_at DESC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("active orders: %w", err)
	}
	return out, nil
}

// ActiveTrips lists active, unexpired trips, newest first.
func (r *Listings) ActiveTrips(ctx context.Context, now time.Time, limit int) ([]domain.Trip, error) {
	var out []domain.Trip
	err := r.db.SelectContext(ctx, &out, `
		SELECT * FROM trips
		WHERE is_active AND expires_at > $1
		ORDER BY created_at DESC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("active trips: %w", err)
	}
	return out, nil
}

// OwnerOrders lists a user's active, unexpired orders, newest first.
func (r *Listings) OwnerOrders(ctx context.Context, tgID int64, now time.Time) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.SelectContext(ctx, &out, `
		SELECT * FROM orders
		WHERE tg_id = $1 AND is_active AND expires_at > $2
		ORDER BY created_at DESC
	`, tgID, now)
	if err != nil {
		return nil, fmt.Errorf("owner orders for %d: %w", tgID, err)
	}
	return out, nil
}

// OwnerTrips lists a user's active, unexpired trips, newest first.
func (r *Listings) OwnerTrips(ctx context.Context, tgID int64, now time.Time) ([]domain.Trip, error) {
	var out []domain.Trip
	err := r.db.SelectContext(ctx, &out, `
		SELECT * FROM trips
		WHERE tg_id = $1 AND is_active AND expires_at > $2
		ORDER BY created_at DESC
	`, tgID, now)
	if err != nil {
		return nil, fmt.Errorf("owner trips for %d: %w", tgID, err)
	}
	return out, nil
}

// AllOrders lists every order regardless of state, newest first.
func (r *Listings) AllOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.SelectContext(ctx, &out, `SELECT * FROM orders ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("all orders: %w", err)
	}
	return out, nil
}

// AllTrips lists every trip regardless of state, newest first.
func (r *Listings) AllTrips(ctx context.Context) ([]domain.Trip, error) {
	var out []domain.Trip
	if err := r.db.SelectContext(ctx, &out, `SELECT * FROM trips ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("all trips: %w", err)
	}
	return out, nil
}

// DeactivateOrder flips an order inactive. Idempotent: flipping an already
// inactive listing is a no-op, not an error.
func (r *Listings) DeactivateOrder(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE orders SET is_active = FALSE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deactivate order %d: %w", id, err)
	}
	return nil
}

// DeactivateTrip flips a trip inactive. Idempotent like DeactivateOrder.
func (r *Listings) DeactivateTrip(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE trips SET is_active = FALSE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deactivate trip %d: %w", id, err)
	}
	return nil
}

// DeactivateExpiredOrders flips every expired, still-active order inactive
// and returns how many rows changed.
func (r *Listings) DeactivateExpiredOrders(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET is_active = FALSE
		WHERE is_active AND expires_at < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired orders: %w", err)
	}
	return res.RowsAffected()
}

// DeactivateExpiredTrips flips every expired, still-active trip inactive
// and returns how many rows changed.
func (r *Listings) DeactivateExpiredTrips(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE trips SET is_active = FALSE
		WHERE is_active AND expires_at < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired trips: %w", err)
	}
	return res.RowsAffected()
}
