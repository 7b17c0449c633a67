package telegram

import (
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/flow"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
)

// Dialog is the slice of the conversation engine the routers need. A command
// arriving mid-dialog aborts the dialog and is dropped; plain text mid-dialog
// is consumed as the answer for the current step.
type Dialog interface {
	InProgress(c tele.Context) bool
	HandleText(c tele.Context) error
	Abort(c tele.Context) error
}

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoute builds the OnText handler: dialog answers first, then command
// names typed without a slash, then the unknown-text notice.
func TextRoute(dialog Dialog, reg *Registry, opts TextOptions) Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		var known func(string) bool
		if reg != nil {
			known = reg.Knows
		}
		inDialog := dialog != nil && dialog.InProgress(c)

		switch flow.Classify(inDialog, text, known) {
		case flow.StateCommand:
			return handleWithSummary(c, "dialog_abort", start, func() error {
				return dialog.Abort(c)
			})
		case flow.StateText:
			return handleWithSummary(c, "dialog", start, func() error {
				return dialog.HandleText(c)
			})
		case flow.NoStateCommand:
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, nil)
		return nil
	}

	return Route{
		Endpoint: tele.OnText,
		Handler:  RecoverMiddleware(LoggerMiddleware(handler)),
	}
}

// DialogInterceptMiddleware aborts an active dialog when a registered command
// endpoint fires, dropping the command itself. Telebot routes slash commands
// to their own endpoints before OnText can see them, so the interception has
// to wrap every command handler.
func DialogInterceptMiddleware(dialog Dialog) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if dialog != nil && dialog.InProgress(c) {
				start := time.Now()
				return handleWithSummary(c, "dialog_abort", start, func() error {
					return dialog.Abort(c)
				})
			}
			return next(c)
		}
	}
}

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks through the registry.
func CallbackRoute(reg *Registry, opts CallbackOptions) Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key := CallbackKey(c)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		cbHandler, ok := reg.GetCallback(key)
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		return handleWithSummary(c, name, start, func() error {
			return cbHandler(c)
		}, extras...)
	}
	return Route{
		Endpoint: tele.OnCallback,
		Handler:  RecoverMiddleware(LoggerMiddleware(handler)),
	}
}

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	Dialog        Dialog
	IsAdmin       func(userID int64) bool
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *Registry, opts CommandRouteOptions) []Route {
	if reg == nil {
		return nil
	}

	adminOpts := AdminOptions{
		IsAdmin:  opts.IsAdmin,
		OnReject: opts.OnAdminReject,
	}

	routes := make([]Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		if opts.Dialog != nil {
			h = DialogInterceptMiddleware(opts.Dialog)(h)
		}
		h = RecoverMiddleware(h)
		h = LoggerMiddleware(h)
		if def.AdminOnly {
			h = AdminOnlyMiddleware(adminOpts)(h)
		}
		routes = append(routes, Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TG.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}

func handleWithSummary(c tele.Context, handlerName string, start time.Time, fn func() error, extras ...slog.Attr) error {
	WithHandler(c, handlerName)
	err := fn()
	logHandlerSummary(c, handlerName, start, err, extras...)
	return err
}

func logHandlerSummary(c tele.Context, handlerName string, start time.Time, err error, extras ...slog.Attr) {
	ctx := WithHandler(c, handlerName)

	status := "ok"
	if err != nil {
		status = "fail"
	}

	duration := logger.RoundMS(time.Since(start)).Milliseconds()
	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("handler", handlerName),
		slog.Int64("duration_ms", duration),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("cause", handlerName),
		)
	}
	if len(extras) > 0 {
		attrs = append(attrs, extras...)
	}
	logger.LogEvent(ctx, logger.Component("tg"), slog.LevelInfo, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}
