package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/rooherbals/backend/internal/auth"
	"github.com/rooherbals/backend/internal/config"
	"github.com/rooherbals/backend/internal/server"
	"github.com/rooherbals/backend/internal/service"
	"github.com/rooherbals/backend/internal/storage/sqlite"
	"github.com/rooherbals/backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	handler := server.NewHandler(
		service.NewAuthService(authenticator, jwtManager),
		service.NewCustomerService(store, cfg.CreditPeriod),
		service.NewOrderService(store),
		service.NewPaymentService(store),
		service.NewProductService(store),
	)

	router := server.NewRouter(handler, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
