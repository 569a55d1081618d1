package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/cache"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/config"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/hub"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env if present (development convenience)
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ledger store: Postgres when configured, in-memory otherwise
	var ledgerStore store.LedgerStore
	if cfg.Ledger.DatabaseURL != "" {
		pg, err := store.NewPostgres(cfg.Ledger.DatabaseURL)
		if err != nil {
			fmt.Printf("✗ Failed to open ledger database: %v\n", err)
			os.Exit(1)
		}
		defer pg.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := pg.Ping(pingCtx); err != nil {
			pingCancel()
			fmt.Printf("✗ Ledger database unreachable: %v\n", err)
			os.Exit(1)
		}
		pingCancel()

		ledgerStore = pg
		fmt.Println("✓ Connected to ledger database")
	} else {
		ledgerStore = store.NewMemory()
		fmt.Println("⚠️  DATABASE_URL not set - using in-memory ledger (entries lost on restart)")
	}

	// Statistics cache: optional
	var statsCache *cache.StatsCache
	if cfg.Redis.URL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
		})

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			pingCancel()
			fmt.Printf("✗ Redis unreachable: %v\n", err)
			os.Exit(1)
		}
		pingCancel()

		statsCache = cache.NewStatsCache(redisClient, cfg.Redis.StatsTTL)
		fmt.Println("✓ Connected to Redis (statistics cache enabled)")
	} else {
		fmt.Println("⚠️  REDIS_URL not set - statistics caching disabled")
	}

	// Live-update hub
	broadcastHub := hub.NewHub()
	go broadcastHub.Run(ctx)

	// Handlers
	handler := handlers.NewHandler(
		ledgerStore,
		statsCache,
		broadcastHub,
		cfg.Ledger.InitialBalance,
		cfg.Engine.DefaultBankroll,
		cfg.Engine.DefaultIterations,
		cfg.Engine.MaxIterations,
	)
	wsHandler := handlers.NewWebSocketHandler(broadcastHub, ctx)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HealthCheck)
	r.Get("/ws", wsHandler.HandleWebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluate", handler.Evaluate)
		r.Post("/portfolio", handler.Portfolio)
		r.Post("/simulate", handler.Simulate)
		r.Post("/ledger/entries", handler.AppendEntry)
		r.Get("/ledger/entries", handler.ListEntries)
		r.Get("/ledger/statistics", handler.GetStatistics)
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		fmt.Printf("✓ Bet Analytics started on %s\n", cfg.Server.Addr)
		fmt.Printf("  Default Bankroll: $%.2f\n", cfg.Engine.DefaultBankroll)
		fmt.Printf("  Monte Carlo Iterations: %d (max %d)\n", cfg.Engine.DefaultIterations, cfg.Engine.MaxIterations)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("✗ Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\n✓ Shutting down gracefully...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("✗ Shutdown error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Bet Analytics stopped")
}
