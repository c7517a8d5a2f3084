package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvalverde/pos-companion/internal/api/handlers"
	"github.com/dvalverde/pos-companion/internal/api/middleware"
	"github.com/dvalverde/pos-companion/internal/backend"
	"github.com/dvalverde/pos-companion/internal/cart"
	"github.com/dvalverde/pos-companion/internal/config"
	"github.com/dvalverde/pos-companion/internal/currency"
	"github.com/dvalverde/pos-companion/internal/health"
	"github.com/dvalverde/pos-companion/internal/metrics"
	"github.com/dvalverde/pos-companion/internal/poller"
	service "github.com/dvalverde/pos-companion/internal/services"
	"github.com/dvalverde/pos-companion/internal/session"
	"github.com/redis/go-redis/v9"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Secure session store (Redis)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Host,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}
	pingCancel()

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	sessions := session.NewStore(redisClient, cfg.Session.TTL)

	// Backend client and device state
	backendClient := backend.New(cfg.Backend.BaseURL, sessions,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}))

	cartStore := cart.NewStore()
	converter := currency.NewConverter(currency.Profile{})

	authService := service.NewAuthService(backendClient, sessions, cartStore, converter)
	checkoutService := service.NewCheckoutService(cartStore, backendClient, backendClient)

	// Restore the currency profile when a session survived a restart, then
	// let the backend confirm the stored token is still accepted
	restoreCtx, restoreCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if sess, err := sessions.Get(restoreCtx); err == nil {
		converter.SetProfile(currency.ProfileFromUser(sess.User))

		if _, err := authService.ValidateSession(restoreCtx); err != nil {
			slog.Warn("⚠️ Could not validate the stored session", slog.String("error", err.Error()))
		}
	}
	restoreCancel()

	ratePoller := poller.NewRatePoller(backendClient, converter, cfg.Rates.RefreshInterval)

	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartStore, checkoutService, converter)
	currencyHandler := handlers.NewCurrencyHandler(converter, ratePoller)
	catalogHandler := handlers.NewCatalogHandler(backendClient)
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Failed to set up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("companion initialized", slog.String("env", cfg.Env), slog.String("backend", cfg.Backend.BaseURL))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/logout", authMiddleware.RequireSession(authHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/auth/profile", authMiddleware.RequireSession(authHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.RequireSession(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.RequireSession(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", authMiddleware.RequireSession(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.RequireSession(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.RequireSession(cartHandler.ClearCart()))
	routerMux.HandleFunc("PUT /api/v1/cart/client", authMiddleware.RequireSession(cartHandler.SelectClient()))
	routerMux.HandleFunc("POST /api/v1/cart/checkout", authMiddleware.RequireSession(cartHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/currency", authMiddleware.RequireSession(currencyHandler.GetState()))
	routerMux.HandleFunc("POST /api/v1/currency/toggle", authMiddleware.RequireSession(currencyHandler.ToggleMode()))
	routerMux.HandleFunc("PUT /api/v1/currency/mode", authMiddleware.RequireSession(currencyHandler.SetMode()))
	routerMux.HandleFunc("GET /api/v1/products", authMiddleware.RequireSession(catalogHandler.ListProducts()))
	routerMux.HandleFunc("GET /api/v1/clients", authMiddleware.RequireSession(catalogHandler.ListClients()))
	routerMux.HandleFunc("POST /api/v1/clients", authMiddleware.RequireSession(catalogHandler.CreateClient()))
	routerMux.HandleFunc("GET /api/v1/sales", authMiddleware.RequireSession(catalogHandler.ListSales()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	// Rate refresh loop
	pollerCtx, pollerCancel := context.WithCancel(context.Background())
	defer pollerCancel()

	go ratePoller.Run(pollerCtx)

	// Periodic session validation, forcing a logout when the backend
	// rejects the stored token
	go func() {
		ticker := time.NewTicker(cfg.Session.ValidateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-pollerCtx.Done():
				return
			case <-ticker.C:
				validateCtx, cancel := context.WithTimeout(pollerCtx, 5*time.Second)
				if _, err := authService.ValidateSession(validateCtx); err != nil {
					slog.Warn("⚠️ Session validation failed", slog.String("error", err.Error()))
				}
				cancel()
			}
		}
	}()

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	pollerCancel()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
