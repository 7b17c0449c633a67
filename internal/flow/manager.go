// Package flow drives the multi-step posting dialogs: a persisted per-user
// state machine, a generic step engine shared by both listing kinds, and the
// interceptor that keeps stray commands from being eaten as answers.
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/domain"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/repo"
)

// StateStore is the persistence slice the state machine needs. Implemented
// by repo.States.
type StateStore interface {
	Set(ctx context.Context, tgID int64, step, data string, now time.Time) error
	Get(ctx context.Context, tgID int64) (domain.ConversationState, error)
	Clear(ctx context.Context, tgID int64) error
}

// Manager owns conversation state transitions. Every write overwrites the
// previous state unconditionally, so starting a new flow implicitly discards
// any unfinished one.
type Manager struct {
	store StateStore
	now   func() time.Time
}

// NewManager builds a Manager over the given store.
func NewManager(store StateStore) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Current returns the user's step label and raw draft data. found is false
// when the user is idle.
func (m *Manager) Current(ctx context.Context, tgID int64) (step, data string, found bool, err error) {
	st, err := m.store.Get(ctx, tgID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	return st.Step, st.Data, true, nil
}

// InProgress reports whether the user has an active dialog. Lookup failures
// count as idle so a storage hiccup cannot trap a user in a phantom flow.
func (m *Manager) InProgress(ctx context.Context, tgID int64) bool {
	_, _, found, err := m.Current(ctx, tgID)
	if err != nil {
		logger.Warn(ctx, "flow", "state.lookup.fail",
			slog.Int64("user_id", tgID),
			slog.String("err", err.Error()),
		)
		return false
	}
	return found
}

// Transition persists the draft under the given step label.
func (m *Manager) Transition(ctx context.Context, tgID int64, step string, draft any) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft for %d: %w", tgID, err)
	}
	if err := m.store.Set(ctx, tgID, step, string(data), m.now()); err != nil {
		return err
	}
	logger.Debug(ctx, "flow", "state.transition",
		slog.Int64("user_id", tgID),
		slog.String("step", step),
	)
	return nil
}

// Clear ends the user's dialog, whether it completed or aborted.
func (m *Manager) Clear(ctx context.Context, tgID int64) error {
	return m.store.Clear(ctx, tgID)
}
