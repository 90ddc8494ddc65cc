// Local runs the full API against an in-memory store and a canned LLM
// provider. Useful for frontend development without MongoDB or a Groq key.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduwrite-backend/internal/api"
	"eduwrite-backend/internal/llm"
	"eduwrite-backend/internal/store"
	apimodels "eduwrite-backend/pkg/api"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Config struct {
	Port int `env:"PORT" envDefault:"5001"`
}

func createServer(backend *api.BackendService, admin *api.AdminService, port int) *http.Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", api.RestHandler(func(r *http.Request) (any, error) {
		return apimodels.StatusResponse{Status: "online", Message: "EduWrite API"}, nil
	}))
	r.Get("/health", api.RestHandler(func(r *http.Request) (any, error) {
		return apimodels.StatusResponse{Status: "ok", Message: "healthy"}, nil
	}))
	r.Route("/api", func(r chi.Router) {
		backend.AddRoutes(r)
		admin.AddRoutes(r)
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	memStore := store.NewMemoryStore()
	provider := llm.NewEchoProvider()

	backend := api.NewBackendService(memStore, provider, llm.DefaultModel)
	admin := api.NewAdminService(memStore)

	server := createServer(backend, admin, cfg.Port)

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	slog.Info("server started", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %d: %v\n", cfg.Port, err)
	}

	slog.Info("server stopped")
}
