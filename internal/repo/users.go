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

// Users persists Telegram accounts.
type Users struct {
	db *sqlx.DB
}

// NewUsers constructs the user repository.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// Upsert registers a user on first contact and refreshes name fields on
// every subsequent one. The stored language preference is never touched here.
func (r *Users) Upsert(ctx context.Context, tgID int64, username, firstName, lastName string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (tg_id, username, first_name, last_name, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tg_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name
	`, tgID, toNullString(username), firstName, lastName, now)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", tgID, err)
	}
	return nil
}

// Get returns a user by Telegram id.
func (r *Users) Get(ctx context.Context, tgID int64) (domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `
		SELECT tg_id, username, first_name, last_name, registered_at, lang
		FROM users WHERE tg_id = $1
	`, tgID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %d: %w", tgID, err)
	}
	return u, nil
}

// SetLang records the user's chosen language code.
func (r *Users) SetLang(ctx context.Context, tgID int64, lang string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET lang = $1 WHERE tg_id = $2`, lang, tgID)
	if err != nil {
		return fmt.Errorf("set lang for %d: %w", tgID, err)
	}
	return nil
}

// Lang returns the user's stored language code, or empty if unset or unknown.
func (r *Users) Lang(ctx context.Context, tgID int64) (string, error) {
	var lang sql.NullString
	err := r.db.GetContext(ctx, &lang, `SELECT lang FROM users WHERE tg_id = $1`, tgID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lang for %d: %w", tgID, err)
	}
	if !lang.Valid {
		return "", nil
	}
	return lang.String, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
