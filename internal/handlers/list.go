package handlers

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/domain"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/telegram"
)

// List shows the newest active listings of both kinds, each with a contact
// button pointing at its owner.
func (h *Handlers) List(c tele.Context) error {
	h.register(c)
	ctx := telegram.BuildContext(c)
	now := h.now()
	limit := h.cfg.Marketplace.ListPageSize

	orders, err := h.listings.ActiveOrders(ctx, now, limit)
	if err != nil {
		return err
	}
	trips, err := h.listings.ActiveTrips(ctx, now, limit)
	if err != nil {
		return err
	}

	if len(orders) == 0 && len(trips) == 0 {
		return h.reply(c, "list_no_active")
	}

	if err := h.reply(c, "list_header"); err != nil {
		return err
	}

	contact := h.texts.Text(ctx, "contact_button", c.Sender().ID)
	for _, o := range orders {
		markup := telegram.InlineButtons([]telegram.InlineBtn{
			{Text: contact, Unique: cbContactOrder, Data: strconv.FormatInt(o.ID, 10)},
		})
		if err := telegram.SendHTML(c, formatOrderRow(o), markup); err != nil {
			return err
		}
	}
	for _, t := range trips {
		markup := telegram.InlineButtons([]telegram.InlineBtn{
			{Text: contact, Unique: cbContactTrip, Data: strconv.FormatInt(t.ID, 10)},
		})
		if err := telegram.SendHTML(c, formatTripRow(t), markup); err != nil {
			return err
		}
	}
	return nil
}

func formatOrderRow(o domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 <b>Order #%d</b>\n", o.ID)
	fmt.Fprintf(&b, "👤 Owner: <code>%d</code>\n", o.TgID)
	if o.FromCity != "" && o.ToCity != "" {
		fmt.Fprintf(&b, "📍 <b>%s</b> → <b>%s</b>\n", html.EscapeString(o.FromCity), html.EscapeString(o.ToCity))
	}
	fmt.Fprintf(&b, "📝 Product: %s\n⚖️ Weight: %v kg\n💰 Price: %s\n🕒 %s",
		html.EscapeString(o.Product),
		o.Weight,
		html.EscapeString(o.Price),
		o.CreatedAt.Format("2006-01-02"),
	)
	return b.String()
}

func formatTripRow(t domain.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛄 <b>Trip #%d</b>\n", t.ID)
	fmt.Fprintf(&b, "👤 Owner: <code>%d</code>\n", t.TgID)
	fmt.Fprintf(&b, "📍 <b>%s</b> → <b>%s</b>\n📅 Date: %s\n⚖️ Free: %v kg\n💵 Price: %s\n🕒 %s",
		html.EscapeString(t.FromCity),
		html.EscapeString(t.ToCity),
		html.EscapeString(t.Date),
		t.CapacityKG,
		html.EscapeString(t.PricePerKG),
		t.CreatedAt.Format("2006-01-02"),
	)
	return b.String()
}
