package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	cartpostgres "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/persistence/postgres"
	userpostgres "github.com/sportsstore/go-gin-store-server/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/sportsstore/go-gin-store-server/internal/platform/postgres"
)

// Default retention for anonymous carts whose session never logged in.
const defaultCartRetention = 7 * 24 * time.Hour

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}

	store := userpostgres.NewSessionStore(db, sessionTTLFromEnv())
	sessions, err := store.PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}

	carts := cartpostgres.NewRepository(db)
	cartLines, err := carts.PurgeStaleSessions(ctx, cartRetentionFromEnv())
	if err != nil {
		log.Fatalf("failed to purge stale anonymous carts: %v", err)
	}

	log.Printf("purge completed: %d expired sessions, %d stale cart lines", sessions, cartLines)
}

func sessionTTLFromEnv() time.Duration {
	return hoursFromEnv("SESSION_TTL_HOURS", userpostgres.DefaultSessionTTL)
}

func cartRetentionFromEnv() time.Duration {
	return hoursFromEnv("CART_RETENTION_HOURS", defaultCartRetention)
}

func hoursFromEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return fallback
	}
	return time.Duration(hours) * time.Hour
}
