// Package handlers implements the bot's commands and callbacks on top of the
// repositories, the localized text table and the conversation engine.
package handlers

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/config"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/flow"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/repo"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/telegram"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/texts"
)

// Callback keys. Telebot encodes buttons as \f<key>|<payload>.
const (
	cbSetLang         = "setlang"
	cbContactOrder    = "contact_order"
	cbContactTrip     = "contact_trip"
	cbDeactivateOrder = "deactivate_order"
	cbDeactivateTrip  = "deactivate_trip"
)

// Deps collects everything the handlers need.
type Deps struct {
	Config   *config.Config
	Users    *repo.Users
	Listings *repo.Listings
	Texts    *texts.Resolver

	Manager   *flow.Manager
	Mux       *flow.Mux
	OrderFlow *flow.Flow[flow.OrderDraft]
	TripFlow  *flow.Flow[flow.TripDraft]
}

// Handlers binds the marketplace behaviour to Telegram endpoints.
type Handlers struct {
	cfg      *config.Config
	users    *repo.Users
	listings *repo.Listings
	texts    *texts.Resolver

	mgr       *flow.Manager
	mux       *flow.Mux
	orderFlow *flow.Flow[flow.OrderDraft]
	tripFlow  *flow.Flow[flow.TripDraft]

	now func() time.Time
}

// New wires the handler set.
func New(d Deps) *Handlers {
	return &Handlers{
		cfg:       d.Config,
		users:     d.Users,
		listings:  d.Listings,
		texts:     d.Texts,
		mgr:       d.Manager,
		mux:       d.Mux,
		orderFlow: d.OrderFlow,
		tripFlow:  d.TripFlow,
		now:       time.Now,
	}
}

// Register declares every command and callback on the registry.
func (h *Handlers) Register(reg *telegram.Registry) {
	reg.RegisterCommand("/start", telegram.Command{
		Handler:     h.Start,
		Description: "Register and choose a language",
	})
	reg.RegisterCommand("/profile", telegram.Command{
		Handler:     h.Profile,
		Description: "Show your profile",
	})
	reg.RegisterCommand("/post_order", telegram.Command{
		Handler:     h.PostOrder,
		Description: "Post an order",
	})
	reg.RegisterCommand("/post_trip", telegram.Command{
		Handler:     h.PostTrip,
		Description: "Post a trip",
	})
	reg.RegisterCommand("/list", telegram.Command{
		Handler:     h.List,
		Description: "Browse active listings",
	})
	reg.RegisterCommand("/my", telegram.Command{
		Handler:     h.My,
		Description: "Manage your listings",
	})
	reg.RegisterCommand("/all_orders", telegram.Command{
		Handler:     h.AllOrders,
		Description: "Dump every order",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/all_trips", telegram.Command{
		Handler:     h.AllTrips,
		Description: "Dump every trip",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbSetLang, h.SetLang)
	_ = reg.RegisterCallback(cbContactOrder, h.ContactOrder)
	_ = reg.RegisterCallback(cbContactTrip, h.ContactTrip)
	_ = reg.RegisterCallback(cbDeactivateOrder, h.DeactivateOrder)
	_ = reg.RegisterCallback(cbDeactivateTrip, h.DeactivateTrip)

	reg.SetTextFallback(h.UnknownText)
}

// reply sends the localized message for key to the update's chat.
func (h *Handlers) reply(c tele.Context, key string) error {
	ctx := telegram.BuildContext(c)
	return telegram.SendHTML(c, h.texts.Text(ctx, key, c.Sender().ID))
}

// UnknownText answers free text that is neither a command nor a dialog step.
func (h *Handlers) UnknownText(c tele.Context) error {
	return h.reply(c, "unknown_input")
}

// NotAdmin is the rejection notice for admin-only commands.
func (h *Handlers) NotAdmin(c tele.Context) error {
	return h.reply(c, "not_admin")
}

// register upserts the sender so every interaction counts as contact.
func (h *Handlers) register(c tele.Context) {
	user := c.Sender()
	if user == nil {
		return
	}
	ctx := telegram.BuildContext(c)
	if err := h.users.Upsert(ctx, user.ID, user.Username, user.FirstName, user.LastName, h.now()); err != nil {
		logger.Warn(ctx, "service", "user.upsert.fail",
			slog.Int64("user_id", user.ID),
			slog.String("err", err.Error()),
		)
	}
}
