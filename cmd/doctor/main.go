// Command doctor turns a collected review CSV into a UI/UX insight
// report through a locally-hosted language model.
//
// Usage:
//
//	doctor -csv reviews.csv -prompt "Summarize the main UI complaints."
//	doctor -serve :8086          # HTTP API around the same pipeline
//	doctor -mcp                  # expose the pipeline as MCP tools on stdio
//
// A .env file in the working directory is loaded first; DOCTOR_ENDPOINT
// and DOCTOR_MODEL override the config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/leeguhn/crawler/insight"
	"github.com/leeguhn/crawler/internal/store"
	"github.com/leeguhn/crawler/internal/dbopen"
	"github.com/leeguhn/crawler/playstore"
)

func main() {
	csvPath := flag.String("csv", "", "review CSV file to analyze")
	prompt := flag.String("prompt", "", "custom analysis instruction")
	configPath := flag.String("config", "", "path to doctor.yaml config file")
	dbPath := flag.String("db", "", "report archive database (overrides config)")
	serveAddr := flag.String("serve", "", "serve the HTTP API on this address instead of a one-shot run")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools on stdio instead of a one-shot run")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *csvPath, *prompt, *configPath, *dbPath, *serveAddr, *mcpMode); err != nil {
		logger.Error("doctor: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, csvPath, prompt, configPath, dbPath, serveAddr string, mcpMode bool) error {
	// Local env file, if present. Real env wins over the file.
	_ = godotenv.Load()

	cfg := insight.DefaultFileConfig()
	if configPath != "" {
		var err error
		cfg, err = insight.LoadConfigFile(configPath)
		if err != nil {
			return err
		}
	}
	if v := os.Getenv("DOCTOR_ENDPOINT"); v != "" {
		cfg.Model.BaseURL = v
	}
	if v := os.Getenv("DOCTOR_MODEL"); v != "" {
		cfg.Model.Model = v
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	locale, err := playstore.ParseLocale(cfg.Locale)
	if err != nil {
		return err
	}

	db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll(), dbopen.WithSchema(store.Schema))
	if err != nil {
		return err
	}
	defer db.Close()

	gen := insight.NewGenerator(insight.NewClient(cfg.Model), insight.Config{
		ChunkSize: cfg.ChunkSize,
		Locale:    locale,
		Logger:    logger,
	})
	svc := insight.NewService(gen, store.NewStore(db), cfg.Model.Model)

	switch {
	case serveAddr != "":
		return serve(ctx, logger, svc, serveAddr, cfg.AuthHash)
	case mcpMode:
		return serveMCP(ctx, svc)
	default:
		return oneShot(ctx, logger, svc, csvPath, prompt)
	}
}

func oneShot(ctx context.Context, logger *slog.Logger, svc *insight.Service, csvPath, prompt string) error {
	if csvPath == "" || prompt == "" {
		return fmt.Errorf("doctor: -csv and -prompt are required")
	}

	res, err := svc.Analyze(ctx, csvPath, prompt)
	if err != nil {
		return err
	}
	logger.Info("doctor: report archived", "id", res.ID, "reviews", res.ReviewCount, "chunks", res.ChunkCount)

	fmt.Printf("Final Report:\n%s\n", res.Final)
	return nil
}

func serve(ctx context.Context, logger *slog.Logger, svc *insight.Service, addr, authHash string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           svc.Routes(authHash, logger),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Minute, // analysis runs inside the request
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("doctor: serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("doctor: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func serveMCP(ctx context.Context, svc *insight.Service) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "doctor", Version: "1.0.0"}, nil)
	svc.RegisterMCP(srv)
	return srv.Run(ctx, &mcp.StdioTransport{})
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
