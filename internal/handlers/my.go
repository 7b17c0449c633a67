package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/repo"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/telegram"
)

// My lists the sender's own active listings with deactivate buttons.
func (h *Handlers) My(c tele.Context) error {
	h.register(c)
	ctx := telegram.BuildContext(c)
	tgID := c.Sender().ID
	now := h.now()

	orders, err := h.listings.OwnerOrders(ctx, tgID, now)
	if err != nil {
		return err
	}
	trips, err := h.listings.OwnerTrips(ctx, tgID, now)
	if err != nil {
		return err
	}

	if len(orders) == 0 && len(trips) == 0 {
		return h.reply(c, "my_no_active")
	}

	if err := h.reply(c, "my_header"); err != nil {
		return err
	}

	deactivate := h.texts.Text(ctx, "deactivate_button", tgID)
	for _, o := range orders {
		markup := telegram.InlineButtons([]telegram.InlineBtn{
			{Text: deactivate, Unique: cbDeactivateOrder, Data: strconv.FormatInt(o.ID, 10)},
		})
		if err := telegram.SendHTML(c, formatOrderRow(o), markup); err != nil {
			return err
		}
	}
	for _, t := range trips {
		markup := telegram.InlineButtons([]telegram.InlineBtn{
			{Text: deactivate, Unique: cbDeactivateTrip, Data: strconv.FormatInt(t.ID, 10)},
		})
		if err := telegram.SendHTML(c, formatTripRow(t), markup); err != nil {
			return err
		}
	}
	return nil
}

// DeactivateOrder flips the sender's own order inactive.
func (h *Handlers) DeactivateOrder(c tele.Context) error {
	ctx := telegram.BuildContext(c)
	id, err := telegram.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "listing_not_found", c.Sender().ID)})
	}

	o, err := h.listings.GetOrder(ctx, id)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && o.TgID != c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "listing_not_found", c.Sender().ID)})
	}
	if err != nil {
		return err
	}

	if err := h.listings.DeactivateOrder(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "service", "order.deactivated",
		slog.Int64("order_id", id),
		slog.Int64("user_id", c.Sender().ID),
	)
	_ = c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "deactivated", c.Sender().ID)})
	return h.reply(c, "deactivated")
}

// DeactivateTrip flips the sender's own trip inactive.
func (h *Handlers) DeactivateTrip(c tele.Context) error {
	ctx := telegram.BuildContext(c)
	id, err := telegram.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "listing_not_found", c.Sender().ID)})
	}

	t, err := h.listings.GetTrip(ctx, id)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && t.TgID != c.Sender().ID) {
		return c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "listing_not_found", c.Sender().ID)})
	}
	if err != nil {
		return err
	}

	if err := h.listings.DeactivateTrip(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "service", "trip.deactivated",
		slog.Int64("trip_id", id),
		slog.Int64("user_id", c.Sender().ID),
	)
	_ = c.Respond(&tele.CallbackResponse{Text: h.texts.Text(ctx, "deactivated", c.Sender().ID)})
	return h.reply(c, "deactivated")
}
