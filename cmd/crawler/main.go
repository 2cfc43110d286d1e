// Command crawler scrapes Google Play Store reviews into a CSV file.
//
// Usage:
//
//	crawler -url https://play.google.com/store/apps/details?id=... -out reviews.csv
//	crawler -url ... -lang kr -tabs 2000 -out reviews.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leeguhn/crawler/playstore"
	"github.com/leeguhn/crawler/internal/browser"
	"github.com/leeguhn/crawler/review"
)

func main() {
	url := flag.String("url", "", "Play Store app page URL (required)")
	lang := flag.String("lang", "kr", "review locale: kr or en")
	tabs := flag.Int("tabs", 1000, "focus-advance count to force lazy loading")
	out := flag.String("out", "", "output CSV path (required)")
	configPath := flag.String("config", "", "path to crawler.yaml config file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *url, *lang, *tabs, *out, *configPath); err != nil {
		logger.Error("crawler: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, url, lang string, tabs int, out, configPath string) error {
	if url == "" || out == "" {
		return fmt.Errorf("crawler: -url and -out are required")
	}
	locale, err := playstore.ParseLocale(lang)
	if err != nil {
		return err
	}
	if tabs < 0 || tabs > playstore.MaxAdvance {
		return fmt.Errorf("crawler: -tabs must be in 0..%d", playstore.MaxAdvance)
	}

	cfg := playstore.DefaultConfig()
	if configPath != "" {
		cfg, err = playstore.LoadConfigFile(configPath)
		if err != nil {
			return err
		}
	}

	session, err := browser.Start(browser.Config{
		RemoteURL:        cfg.Browser.Remote,
		Headless:         !cfg.Browser.Headful,
		ResourceBlocking: cfg.Browser.ResourceBlocking,
		NavTimeout:       cfg.Browser.NavTimeout,
		Logger:           logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	src := playstore.NewPageSource(session, url, cfg.Scrape, logger)
	records, err := playstore.Collect(ctx, src, locale, tabs, logger)
	if err != nil {
		return err
	}

	if err := review.WriteCSV(out, records); err != nil {
		return err
	}
	logger.Info("crawler: saved reviews", "count", len(records), "file", out)
	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
