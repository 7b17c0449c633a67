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

// States persists per-user conversation continuations. Each user has at most
// one row; writes are last-writer-wins.
type States struct {
	db *sqlx.DB
}

// NewStates constructs the conversation state repository.
func NewStates(db *sqlx.DB) *States {
	return &States{db: db}
}

// Set overwrites the user's conversation state unconditionally.
func (r *States) Set(ctx context.Context, tgID int64, step, data string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO conversation_states (tg_id, step, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tg_id) DO UPDATE
		SET step = EXCLUDED.step,
		    data = EXCLUDED.data,
		    updated_at = EXCLUDED.updated_at
	`, tgID, step, data, now)
	if err != nil {
		return fmt.Errorf("set state for %d: %w", tgID, err)
	}
	return nil
}

// Get returns the user's conversation state, or ErrNotFound when idle.
func (r *States) Get(ctx context.Context, tgID int64) (domain.ConversationState, error) {
	var st domain.ConversationState
	err := r.db.GetContext(ctx, &st, `
		SELECT tg_id, step, data, updated_at
		FROM conversation_states WHERE tg_id = $1
	`, tgID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ConversationState{}, ErrNotFound
	}
	if err != nil {
		return domain.ConversationState{}, fmt.Errorf("get state for %d: %w", tgID, err)
	}
	return st, nil
}

// Clear removes the user's conversation state. No-op if absent.
func (r *States) Clear(ctx context.Context, tgID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM conversation_states WHERE tg_id = $1`, tgID); err != nil {
		return fmt.Errorf("clear state for %d: %w", tgID, err)
	}
	return nil
}
