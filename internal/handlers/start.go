package handlers

import (
	"errors"
	"fmt"
	"html"

	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/repo"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/telegram"
)

// Every language at once so a first-time user understands at least one line.
const chooseLangPrompt = "🌐 Choose / Dil seçin / Выберите язык:\n\n" +
	"English 🇬🇧  — press English\n" +
	"Türkçe 🇹🇷  — Türkçe'ye basın\n" +
	"Русский 🇷🇺 — нажмите Русский"

var supportedLangs = map[string]struct{}{"en": {}, "tr": {}, "ru": {}}

// Start registers the user and offers the language keyboard.
func (h *Handlers) Start(c tele.Context) error {
	h.register(c)

	markup := telegram.InlineButtonsRows(
		[]telegram.InlineBtn{
			{Text: "English 🇬🇧", Unique: cbSetLang, Data: "en"},
			{Text: "Türkçe 🇹🇷", Unique: cbSetLang, Data: "tr"},
		},
		[]telegram.InlineBtn{
			{Text: "Русский 🇷🇺", Unique: cbSetLang, Data: "ru"},
		},
	)
	return telegram.SendHTML(c, chooseLangPrompt, markup)
}

// SetLang stores the chosen language and greets the user in it.
func (h *Handlers) SetLang(c tele.Context) error {
	ctx := telegram.BuildContext(c)
	lang := telegram.CallbackPayload(c)
	if _, ok := supportedLangs[lang]; !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported language"})
	}

	if err := h.users.SetLang(ctx, c.Sender().ID, lang); err != nil {
		return err
	}

	_ = c.Respond(&tele.CallbackResponse{Text: h.texts.TextIn("lang_set_confirm", lang)})
	return telegram.SendHTML(c, h.texts.TextIn("start_welcome", lang))
}

// Profile shows the stored account details.
func (h *Handlers) Profile(c tele.Context) error {
	h.register(c)
	ctx := telegram.BuildContext(c)

	u, err := h.users.Get(ctx, c.Sender().ID)
	if errors.Is(err, repo.ErrNotFound) {
		return h.reply(c, "profile_not_found")
	}
	if err != nil {
		return err
	}

	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	username := "n/a"
	if u.Username.Valid && u.Username.String != "" {
		username = u.Username.String
	}
	lang := "n/a"
	if u.Lang.Valid && u.Lang.String != "" {
		lang = u.Lang.String
	}

	text := fmt.Sprintf(
		h.texts.Text(ctx, "profile", c.Sender().ID),
		html.EscapeString(name),
		html.EscapeString(username),
		u.RegisteredAt.Format("2006-01-02"),
		lang,
	)
	return telegram.SendHTML(c, text)
}
