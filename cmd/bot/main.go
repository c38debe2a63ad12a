package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fgo_bot/internal/banners"
	"fgo_bot/internal/bot"
	"fgo_bot/internal/catalog"
	"fgo_bot/internal/config"
	"fgo_bot/internal/feed"
	"fgo_bot/internal/matcher"
	"fgo_bot/internal/notifier"
	"fgo_bot/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	telemetry.Init()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := telemetry.Serve(cfg.MetricsAddr); err != nil {
				log.Error("metrics server", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	catalogClient := catalog.New(http.DefaultClient, cfg.CatalogBaseURLs, log)

	var resolver banners.Resolver
	switch cfg.BannerLookup {
	case config.LookupDirect:
		resolver = banners.NewDirect(catalogClient)
	default:
		resolver = banners.NewListDetail(catalogClient, log)
	}

	b, err := bot.New(cfg.TelegramBotToken, matcher.New(catalogClient), resolver, cfg, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot", "banner_lookup", cfg.BannerLookup)

	if cfg.NotifierEnabled() {
		fetcher := feed.New(http.DefaultClient, cfg.FeedURL)
		n := notifier.New(fetcher, b, cfg.NotifyChatID, cfg.PollInterval, log)
		go n.Run(ctx)
	} else {
		log.Warn("feed notifier disabled: FEED_URL or NOTIFY_CHAT_ID not set")
	}

	b.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
