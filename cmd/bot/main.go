package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Spok95/art-shop-bot/internal/bot"
	"github.com/Spok95/art-shop-bot/internal/config"
	"github.com/Spok95/art-shop-bot/internal/domain/catalog"
	"github.com/Spok95/art-shop-bot/internal/gallery"
	httpx "github.com/Spok95/art-shop-bot/internal/infra/http"
	"github.com/Spok95/art-shop-bot/internal/infra/logger"
	"github.com/Spok95/art-shop-bot/internal/infra/metrics"
	"github.com/Spok95/art-shop-bot/internal/markup"
	"github.com/Spok95/art-shop-bot/internal/order"
)

func loadPhotos(path string, log *slog.Logger) []gallery.Photo {
	doc, err := markup.Open(path)
	if err != nil {
		log.Error("gallery markup read failed", "path", path, "err", err)
		return nil
	}
	if doc.Absent() {
		log.Warn("gallery markup not found", "path", path)
	}
	return gallery.LoadPhotos(doc)
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if cfg.App.Timezone != "" {
		if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
			time.Local = loc
		} else {
			log.Warn("bad timezone, using system default", "tz", cfg.App.Timezone, "err", err)
		}
	}

	cat, err := catalog.Open(cfg.Catalog.Source, log)
	if err != nil {
		log.Error("catalog load failed", "err", err)
		return
	}
	if cat.Empty() {
		log.Warn("catalog is empty", "source", cfg.Catalog.Source)
	}
	photos := loadPhotos(cfg.Gallery.Source, log)
	log.Info("content loaded",
		"ready", len(cat.ReadyProducts), "custom", len(cat.CustomServices), "photos", len(photos))

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("bot authorized", "username", api.Self.UserName)

	formatter := order.NewFormatter(order.Settings{
		Currency: cfg.Shop.Currency,
		Greeting: cfg.Shop.Greeting,
		Closing:  cfg.Shop.Closing,
		Subject:  cfg.Shop.EmailSubject,
	}, time.Now)

	b := bot.New(api, bot.Deps{
		Log:          log,
		Catalog:      cat,
		Photos:       photos,
		PhotoBaseURL: cfg.Gallery.BaseURL,
		Formatter:    formatter,
		Metrics:      metrics.New(prometheus.DefaultRegisterer),
		Shop: bot.Shop{
			WhatsAppPhone: cfg.Shop.WhatsAppPhone,
			Email:         cfg.Shop.Email,
			ReadyOption:   cfg.Shop.ReadyOption,
		},
		AdminChatID:       cfg.Telegram.AdminChatID,
		SlideshowInterval: cfg.Gallery.SlideshowInterval,
		ToastDisplay:      cfg.Reviews.Display,
		SessionTTL:        cfg.Sessions.IdleTTL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, b.CatalogWorkbook)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	if err := b.Run(ctx, cfg.Telegram.PollTimeout); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
