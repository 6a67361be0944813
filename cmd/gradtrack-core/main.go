package main

// @title           GradTrack Core API
// @version         1.0
// @description     Gmail integration and deadline service for the GradTrack application tracker.

// @contact.name   GradTrack OSS
// @contact.url    https://github.com/gradtrack/gradtrack-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/gradtrack/gradtrack-core/docs"
	"github.com/gradtrack/gradtrack-core/internal/adapters/driven/auth"
	"github.com/gradtrack/gradtrack-core/internal/adapters/driven/google"
	"github.com/gradtrack/gradtrack-core/internal/adapters/driven/postgres"
	redisadapter "github.com/gradtrack/gradtrack-core/internal/adapters/driven/redis"
	"github.com/gradtrack/gradtrack-core/internal/adapters/driving/http"
	"github.com/gradtrack/gradtrack-core/internal/config"
	"github.com/gradtrack/gradtrack-core/internal/core/ports/driven"
	"github.com/gradtrack/gradtrack-core/internal/core/services"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Version != "" {
		version = cfg.Version
	}

	log.Printf("gradtrack-core %s starting", version)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals for background workers; the HTTP server has
	// its own signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// ===== Initialize PostgreSQL =====
	log.Println("Connecting to PostgreSQL...")
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Token encryption =====
	encryptionKey, err := postgres.KeyFromSecret(cfg.EncryptionSecret)
	if err != nil {
		log.Fatalf("Failed to derive encryption key: %v", err)
	}
	encryptor, err := postgres.NewSecretEncryptor(encryptionKey)
	if err != nil {
		log.Fatalf("Failed to create secret encryptor: %v", err)
	}

	// ===== Stores =====
	integrationStore := postgres.NewIntegrationStore(db.DB, encryptor)

	// Attempt store (Redis if available, otherwise PostgreSQL)
	var attemptStore driven.AttemptStore
	if redisClient != nil {
		attemptStore = redisadapter.NewAttemptStoreWithTTL(redisClient, cfg.AttemptTTL)
		log.Println("Using Redis attempt store")
	} else {
		attemptStore = postgres.NewAttemptStoreWithTTL(db.DB, cfg.AttemptTTL)
		log.Println("Using PostgreSQL attempt store")
	}

	// ===== Driven adapters =====
	verifier := auth.NewVerifier(cfg.SessionSecret)

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set, Gmail connection will fail")
	}
	oauthClient := google.NewClient(google.ClientConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURI:  cfg.GoogleRedirectURI,
		Scopes:       cfg.GoogleScopes,
	})

	// ===== Services =====
	gmailService := services.NewGmailService(services.GmailServiceConfig{
		AttemptStore:     attemptStore,
		IntegrationStore: integrationStore,
		Identity:         verifier,
		OAuthClient:      oauthClient,
		RedirectURI:      cfg.GoogleRedirectURI,
		Logger:           slog.Default(),
	})

	// ===== Attempt janitor =====
	go runAttemptJanitor(ctx, attemptStore, cfg.CleanupInterval)

	// ===== HTTP server =====
	var redisPinger http.Pinger
	if redisClient != nil {
		redisPinger = redisPingAdapter{client: redisClient}
	}

	server := http.NewServer(
		http.Config{
			Host:           cfg.Host,
			Port:           cfg.Port,
			Version:        version,
			SettingsURL:    cfg.SettingsURL,
			AllowedOrigins: cfg.AllowedOrigins,
		},
		gmailService,
		verifier,
		db,
		redisPinger,
	)

	log.Printf("API server starting on :%d", cfg.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runAttemptJanitor periodically sweeps expired authorization attempts.
// Redis expires them on its own; the Postgres store needs the sweep.
func runAttemptJanitor(ctx context.Context, store driven.AttemptStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Cleanup(ctx); err != nil {
				log.Printf("Attempt cleanup failed: %v", err)
			}
		}
	}
}

// redisPingAdapter exposes the redis client under the server's Pinger
// interface
type redisPingAdapter struct {
	client *redis.Client
}

func (a redisPingAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}
