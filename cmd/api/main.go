package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"eduwrite-backend/cmd"
	"eduwrite-backend/internal/api"
	"eduwrite-backend/internal/llm"
	"eduwrite-backend/internal/store"
	apimodels "eduwrite-backend/pkg/api"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type APIConfig struct {
	MongoURI       string `env:"MONGO_URI,notEmpty,required"`
	DatabaseName   string `env:"DATABASE_NAME" envDefault:"eduwrite"`
	GroqAPIKey     string `env:"GROQ_API_KEY,notEmpty,required"`
	GroqBaseURL    string `env:"GROQ_BASE_URL" envDefault:""`
	GroqModel      string `env:"GROQ_MODEL" envDefault:""`
	APIPort        string `env:"API_PORT" envDefault:"5001"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	mongoStore, err := store.NewMongoStore(context.Background(), cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoStore.Close(context.Background()) //nolint:errcheck

	if err := mongoStore.CreateIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	if err := cmd.EnsureAdminUser(context.Background(), mongoStore); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	model := cfg.GroqModel
	if model == "" {
		model = llm.DefaultModel
	}
	provider := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, model)

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	backend := api.NewBackendService(mongoStore, provider, model)
	admin := api.NewAdminService(mongoStore)

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

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
