package handlers

import (
	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/telegram"
)

// AllOrders dumps every order regardless of state. Admin only.
func (h *Handlers) AllOrders(c tele.Context) error {
	ctx := telegram.BuildContext(c)
	orders, err := h.listings.AllOrders(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err := telegram.SendHTML(c, formatOrderRow(o)); err != nil {
			return err
		}
	}
	return nil
}

// AllTrips dumps every trip regardless of state. Admin only.
func (h *Handlers) AllTrips(c tele.Context) error {
	ctx := telegram.BuildContext(c)
	trips, err := h.listings.AllTrips(ctx)
	if err != nil {
		return err
	}
	for _, t := range trips {
		if err := telegram.SendHTML(c, formatTripRow(t)); err != nil {
			return err
		}
	}
	return nil
}
