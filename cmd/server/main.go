package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/ignite/optimizer/internal/api"
	"github.com/ignite/optimizer/internal/config"
	"github.com/ignite/optimizer/internal/genai"
	"github.com/ignite/optimizer/internal/insights"
	"github.com/ignite/optimizer/internal/prompt"
	"github.com/ignite/optimizer/internal/provider"
	"github.com/ignite/optimizer/internal/repository/postgres"
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("database.url (or DATABASE_URL) is required")
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Redis backs the cross-instance generation lock. Optional: without it
	// the Postgres advisory lock still serializes concurrent generation.
	var redisClient *redis.Client
	var genLock *insights.GenerationLock
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		genLock = insights.NewGenerationLock(redisClient, cfg.Redis.LockTTL())
		log.Printf("Generation lock enabled via Redis at %s", cfg.Redis.Addr)
	} else {
		log.Println("Redis not configured, generation lock disabled")
	}

	repo := postgres.NewRecommendationRepo(db)
	promptStore := postgres.NewPromptStore(db)

	if cfg.Generation.SeedPrompts {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := promptStore.Seed(seedCtx, false)
		seedCancel()
		if err != nil {
			log.Fatalf("Failed to seed prompts: %v", err)
		}
		log.Printf("Prompt seed complete: %d inserted", n)
	}

	client, err := buildGenerationClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize generation client: %v", err)
	}

	engine := insights.NewEngine(insights.EngineParams{
		Repo:         repo,
		Adapters:     provider.NewFixtureSource(cfg.Fixtures.Dir).Adapters(),
		Resolver:     prompt.NewResolver(promptStore),
		Client:       client,
		Lock:         genLock,
		FreshFor:     cfg.Generation.FreshFor(),
		LookbackDays: cfg.Generation.LookbackDays,
	})
	log.Printf("Insights engine initialized (backend=%s freshness=%s lookback=%dd)",
		cfg.Generation.Backend, cfg.Generation.FreshFor(), cfg.Generation.LookbackDays)

	health := api.NewHealthChecker(db, redisClient)
	server := api.NewServer(cfg.Server, engine, health)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Server stopped")
}

func buildGenerationClient(cfg *config.Config) (genai.Client, error) {
	switch cfg.Generation.Backend {
	case "bedrock":
		return genai.NewBedrockClient(context.Background(), cfg.Bedrock.Region, cfg.Bedrock.ModelID)
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			log.Println("WARNING: OPENAI_API_KEY not set, generation will use fallback rules")
		}
		return genai.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout()), nil
	default:
		return nil, fmt.Errorf("unknown generation backend %q", cfg.Generation.Backend)
	}
}
