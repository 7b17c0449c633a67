package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
)

// ErrRetry signals that a step answer was rejected and the same question
// must be asked again without advancing the dialog.
var ErrRetry = errors.New("flow: invalid answer, re-prompt")

func retry(cause error) error {
	return fmt.Errorf("%w: %s", ErrRetry, cause)
}

// Step is one question of a dialog. Apply validates the answer and merges it
// into the draft; returning ErrRetry keeps the dialog on the same step.
type Step[D any] struct {
	State  string
	Prompt string
	// Retry is the message key sent on rejected input; empty falls back to Prompt.
	Retry string
	Apply func(d *D, input string, now time.Time) error
}

// Outcome tells the caller which localized message to send next.
type Outcome struct {
	ReplyKey string
	Done     bool
}

// Flow is a linear dialog over a draft type. One engine serves both listing
// kinds; only the step schema and the finish action differ.
type Flow[D any] struct {
	Name  string
	Steps []Step[D]
	// Done is the message key sent after a successful finish.
	Done string
	// Finish persists the completed draft.
	Finish func(ctx context.Context, tgID int64, d *D, now time.Time) error

	mgr *Manager
}

// Start begins the dialog, discarding any previous unfinished one, and
// returns the first question's message key.
func (f *Flow[D]) Start(ctx context.Context, tgID int64) (string, error) {
	var d D
	if err := f.mgr.Transition(ctx, tgID, f.Steps[0].State, &d); err != nil {
		return "", fmt.Errorf("start %s for %d: %w", f.Name, tgID, err)
	}
	logger.Info(ctx, "flow", "flow.start",
		slog.String("flow", f.Name),
		slog.Int64("user_id", tgID),
	)
	return f.Steps[0].Prompt, nil
}

// Handle consumes the answer for the given step and returns the next message
// to send. On the final step it writes the listing and clears the state.
func (f *Flow[D]) Handle(ctx context.Context, tgID int64, step, data, input string) (Outcome, error) {
	idx := -1
	for i := range f.Steps {
		if f.Steps[i].State == step {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Outcome{}, fmt.Errorf("flow %s: unknown step %q", f.Name, step)
	}

	var d D
	if data != "" {
		if err := json.Unmarshal([]byte(data), &d); err != nil {
			return Outcome{}, fmt.Errorf("flow %s: decode draft at %s: %w", f.Name, step, err)
		}
	}

	now := f.mgr.now()
	if err := f.Steps[idx].Apply(&d, input, now); err != nil {
		if errors.Is(err, ErrRetry) {
			logger.Debug(ctx, "flow", "step.retry",
				slog.String("flow", f.Name),
				slog.Int64("user_id", tgID),
				slog.String("step", step),
			)
			key := f.Steps[idx].Retry
			if key == "" {
				key = f.Steps[idx].Prompt
			}
			return Outcome{ReplyKey: key}, nil
		}
		return Outcome{}, err
	}

	if idx == len(f.Steps)-1 {
		if err := f.Finish(ctx, tgID, &d, now); err != nil {
			return Outcome{}, fmt.Errorf("finish %s for %d: %w", f.Name, tgID, err)
		}
		if err := f.mgr.Clear(ctx, tgID); err != nil {
			return Outcome{}, err
		}
		logger.Info(ctx, "flow", "flow.done",
			slog.String("flow", f.Name),
			slog.Int64("user_id", tgID),
		)
		return Outcome{ReplyKey: f.Done, Done: true}, nil
	}

	next := f.Steps[idx+1]
	if err := f.mgr.Transition(ctx, tgID, next.State, &d); err != nil {
		return Outcome{}, err
	}
	return Outcome{ReplyKey: next.Prompt}, nil
}

// Abort drops the dialog without consuming the triggering message.
func (f *Flow[D]) Abort(ctx context.Context, tgID int64) error {
	logger.Info(ctx, "flow", "flow.abort",
		slog.String("flow", f.Name),
		slog.Int64("user_id", tgID),
	)
	return f.mgr.Clear(ctx, tgID)
}

// Bind registers every step of the flow on the mux.
func (f *Flow[D]) Bind(mux *Mux) {
	for i := range f.Steps {
		mux.register(f.Steps[i].State, f.Handle)
	}
}

// HandlerFunc consumes a dialog answer for one step.
type HandlerFunc func(ctx context.Context, tgID int64, step, data, input string) (Outcome, error)

// Mux routes a persisted step label to the flow that owns it.
type Mux struct {
	byState map[string]HandlerFunc
}

// NewMux builds an empty step router.
func NewMux() *Mux {
	return &Mux{byState: make(map[string]HandlerFunc)}
}

func (m *Mux) register(state string, h HandlerFunc) {
	m.byState[state] = h
}

// Handle dispatches the input to the flow owning the step. ok is false when
// no flow claims the label (stale state from an older build, for example).
func (m *Mux) Handle(ctx context.Context, tgID int64, step, data, input string) (Outcome, bool, error) {
	h, ok := m.byState[step]
	if !ok {
		return Outcome{}, false, nil
	}
	out, err := h(ctx, tgID, step, data, input)
	return out, true, err
}
