package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/telegram"
)

// PostOrder starts the order dialog, discarding any unfinished one.
func (h *Handlers) PostOrder(c tele.Context) error {
	h.register(c)
	ctx := telegram.BuildContext(c)

	prompt, err := h.orderFlow.Start(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	return h.reply(c, prompt)
}

// PostTrip starts the trip dialog.
func (h *Handlers) PostTrip(c tele.Context) error {
	h.register(c)
	ctx := telegram.BuildContext(c)

	prompt, err := h.tripFlow.Start(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	return h.reply(c, prompt)
}

// Dialog adapts the flow engine to the router's interception interface.
type Dialog struct {
	h *Handlers
}

// NewDialog builds the router-facing dialog adapter.
func (h *Handlers) NewDialog() *Dialog {
	return &Dialog{h: h}
}

// InProgress reports whether the sender has an active posting dialog.
func (d *Dialog) InProgress(c tele.Context) bool {
	ctx := telegram.BuildContext(c)
	return d.h.mgr.InProgress(ctx, c.Sender().ID)
}

// HandleText consumes the message as the answer for the current step.
func (d *Dialog) HandleText(c tele.Context) error {
	h := d.h
	ctx := telegram.BuildContext(c)
	tgID := c.Sender().ID

	step, data, found, err := h.mgr.Current(ctx, tgID)
	if err != nil {
		return err
	}
	if !found {
		return h.UnknownText(c)
	}

	out, ok, err := h.mux.Handle(ctx, tgID, step, data, c.Text())
	if err != nil {
		return err
	}
	if !ok {
		// Stale step label, likely left over from an older build.
		logger.Warn(ctx, "flow", "state.stale",
			slog.Int64("user_id", tgID),
			slog.String("step", step),
		)
		if err := h.mgr.Clear(ctx, tgID); err != nil {
			return err
		}
		return h.UnknownText(c)
	}

	if out.ReplyKey == "" {
		return nil
	}
	return h.reply(c, out.ReplyKey)
}

// Abort ends the active dialog because a command arrived mid-flow. The
// command itself is dropped; the user gets a cancellation notice instead.
func (d *Dialog) Abort(c tele.Context) error {
	h := d.h
	ctx := telegram.BuildContext(c)
	if err := h.mgr.Clear(ctx, c.Sender().ID); err != nil {
		return err
	}
	logger.Info(ctx, "flow", "flow.abort",
		slog.Int64("user_id", c.Sender().ID),
		slog.String("reason", "command"),
	)
	return h.reply(c, "flow_cancelled")
}
