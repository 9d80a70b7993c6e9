package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pedidos/internal/config"
	"github.com/MrJamesThe3rd/pedidos/internal/export"
	pedidosHttp "github.com/MrJamesThe3rd/pedidos/internal/http"
	"github.com/MrJamesThe3rd/pedidos/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/pedidos/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/pedidos/internal/http/importsheet"
	orderHandler "github.com/MrJamesThe3rd/pedidos/internal/http/order"
	settingsHandler "github.com/MrJamesThe3rd/pedidos/internal/http/settings"
	"github.com/MrJamesThe3rd/pedidos/internal/importer"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
	"github.com/MrJamesThe3rd/pedidos/internal/order/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	policy, _ := cfg.Policy()

	var (
		ledger        = order.NewService(repo, order.NewCalculator(cfg.Rates()), policy)
		importService = importer.NewService()
		exportService = export.NewService()
	)

	if err := ledger.Load(ctx); err != nil {
		slog.Error("failed to load ledger", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	var (
		ordersH   = orderHandler.NewHandler(ledger)
		importH   = importHandler.NewHandler(importService, ledger, cfg.Server.MaxUploadBytes)
		exportH   = exportHandler.NewHandler(exportService, ledger)
		settingsH = settingsHandler.NewHandler(ledger)
	)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if verifier == nil {
		slog.Warn("AUTH_JWT_SECRET not set, API is unauthenticated")
	}

	router := pedidosHttp.New(pedidosHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		Auth:           verifier,
	}, ordersH, importH, exportH, settingsH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "port", srv.Addr, "backend", cfg.Storage.Backend, "orders", len(ledger.List(order.Filter{})))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
