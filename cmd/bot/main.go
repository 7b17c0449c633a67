// Command bot runs the CantaOrtak marketplace bot: Telegram transport,
// Postgres persistence and the background expiry sweeper.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/config"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/database"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/expiry"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/flow"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/handlers"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/logger"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/repo"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/telegram"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/texts"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("bot: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Dir:     cfg.Logging.Dir,
		File:    cfg.Logging.BotFile,
		Profile: cfg.Logging.Profile,
	}); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}

	users := repo.NewUsers(db)
	listings := repo.NewListings(db)
	states := repo.NewStates(db)

	resolver := texts.NewResolver(users, cfg.Marketplace.FallbackLang, cfg.Marketplace.SecondaryLang)

	mgr := flow.NewManager(states)
	orderFlow := flow.NewOrderFlow(mgr, listings)
	tripFlow := flow.NewTripFlow(mgr, listings, cfg.Marketplace.DefaultExpiryDays)
	mux := flow.NewMux()
	orderFlow.Bind(mux)
	tripFlow.Bind(mux)

	h := handlers.New(handlers.Deps{
		Config:    cfg,
		Users:     users,
		Listings:  listings,
		Texts:     resolver,
		Manager:   mgr,
		Mux:       mux,
		OrderFlow: orderFlow,
		TripFlow:  tripFlow,
	})

	reg := telegram.NewRegistry()
	h.Register(reg)

	dialog := h.NewDialog()
	routes := telegram.CommandRoutes(reg, telegram.CommandRouteOptions{
		Dialog:        dialog,
		IsAdmin:       cfg.IsAdmin,
		OnAdminReject: h.NotAdmin,
	})
	routes = append(routes, telegram.TextRoute(dialog, reg, telegram.TextOptions{
		UnknownText: h.UnknownText,
	}))
	routes = append(routes, telegram.CallbackRoute(reg, telegram.CallbackOptions{}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sweeper := expiry.NewSweeper(listings,
		time.Duration(cfg.Marketplace.SweepIntervalHours)*time.Hour,
		time.Duration(cfg.Marketplace.SweepBackoffMinutes)*time.Minute,
	)
	go sweeper.Run(ctx)

	startedAt := time.Now()
	return telegram.Run(ctx, telegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: telegram.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ *tele.Bot) error {
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, _ *tele.Bot) error {
			logger.L.With("component", "app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	})
}
