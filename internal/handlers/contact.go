package handlers

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/repo"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/telegram"
)

// ContactOrder relays a contact request to the order's owner, localized to
// the owner's language. The requester hears whether delivery worked.
func (h *Handlers) ContactOrder(c tele.Context) error {
	ctx := telegram.BuildContext(c)
	id, err := telegram.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "listing_not_found", c.Sender().ID)})
	}

	o, err := h.listings.GetOrder(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "listing_not_found", c.Sender().ID)})
	}
	if err != nil {
		return err
	}

	name, username := requesterInfo(c.Sender())
	ownerLang := h.texts.UserLang(ctx, o.TgID)
	text := fmt.Sprintf(
		h.texts.TextIn("contact_request_order", ownerLang),
		o.ID, name, username, html.EscapeString(o.Product),
	)

	return h.relay(c, o.TgID, o.ID, "order", text)
}

// ContactTrip relays a contact request to the trip's owner.
func (h *Handlers) ContactTrip(c tele.Context) error {
	ctx := telegram.BuildContext(c)
	id, err := telegram.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "listing_not_found", c.Sender().ID)})
	}

	t, err := h.listings.GetTrip(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "listing_not_found", c.Sender().ID)})
	}
	if err != nil {
		return err
	}

	name, username := requesterInfo(c.Sender())
	ownerLang := h.texts.UserLang(ctx, t.TgID)
	text := fmt.Sprintf(
		h.texts.TextIn("contact_request_trip", ownerLang),
		t.ID, name, username,
		html.EscapeString(t.FromCity), html.EscapeString(t.ToCity), html.EscapeString(t.Date),
	)

	return h.relay(c, t.TgID, t.ID, "trip", text)
}

// relay delivers the owner notification and reports the outcome back to the
// requester, both as a callback answer and a chat message.
func (h *Handlers) relay(c tele.Context, ownerID, listingID int64, kind, text string) error {
	ctx := telegram.BuildContext(c)

	resultKey := "contact_sent_success"
	if err := telegram.SendHTMLTo(c, ownerID, text); err != nil {
		// The owner may have blocked the bot or deleted the account.
		logger.Warn(ctx, "service", "contact.relay.fail",
			slog.String("kind", kind),
			slog.Int64("listing_id", listingID),
			slog.Int64("owner_id", ownerID),
			slog.String("err", err.Error()),
		)
		resultKey = "contact_sent_failed"
	} else {
		logger.Info(ctx, "service", "contact.relay",
			slog.String("kind", kind),
			slog.Int64("listing_id", listingID),
			slog.Int64("owner_id", ownerID),
			slog.Int64("requester_id", c.Sender().ID),
		)
	}

	notice := h.texts.Text(ctx, resultKey, c.Sender().ID)
	_ = c.Respond(&tele.CallbackResponse{Text: notice})
	return telegram.SendHTML(c, notice)
}

func requesterInfo(u *tele.User) (name, username string) {
	if u == nil {
		return "", "(no username)"
	}
	name = strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	name = html.EscapeString(name)
	username = u.Username
	if username == "" {
		username = "(no username)"
	}
	return name, username
}
