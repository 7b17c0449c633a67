// Package domain defines the persistent entities of the marketplace.
package domain

import (
	"database/sql"
	"time"
)

// User is a Telegram account known to the bot. Created on first contact,
// name fields refreshed on every subsequent contact, never deleted.
type User struct {
	TgID         int64          `db:"tg_id"`
	Username     sql.NullString `db:"username"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	RegisteredAt time.Time      `db:"registered_at"`
	Lang         sql.NullString `db:"lang"`
}

// Order is a request to transport goods between two cities.
type Order struct {
	ID        int64     `db:"id"`
	TgID      int64     `db:"tg_id"`
	Product   string    `db:"product"`
	Weight    float64   `db:"weight"`
	FromCity  string    `db:"from_city"`
	ToCity    string    `db:"to_city"`
	Price     string    `db:"price"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
	IsActive  bool      `db:"is_active"`
}

// Trip is an offer of spare transport capacity on a planned journey.
// Date keeps the user-entered YYYY-MM-DD string; expiry derivation
// re-parses it and falls back to a default horizon if it no longer parses.
type Trip struct {
	ID         int64     `db:"id"`
	TgID       int64     `db:"tg_id"`
	FromCity   string    `db:"from_city"`
	ToCity     string    `db:"to_city"`
	Date       string    `db:"date"`
	CapacityKG float64   `db:"capacity_kg"`
	PricePerKG string    `db:"price_per_kg"`
	CreatedAt  time.Time `db:"created_at"`
	ExpiresAt  time.Time `db:"expires_at"`
	IsActive   bool      `db:"is_active"`
}

// Visible reports whether a listing should appear in normal browsing.
func (o Order) Visible(now time.Time) bool {
	return o.IsActive && now.Before(o.ExpiresAt)
}

// Visible reports whether a listing should appear in normal browsing.
func (t Trip) Visible(now time.Time) bool {
	return t.IsActive && now.Before(t.ExpiresAt)
}

// ConversationState is the per-user dialog continuation: the current step
// label plus the JSON-encoded draft collected so far.
type ConversationState struct {
	TgID      int64     `db:"tg_id"`
	Step      string    `db:"step"`
	Data      string    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}
