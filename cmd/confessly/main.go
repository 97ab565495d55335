package main

import (
	"log"

	"github.com/confessly-dev/confessly/db"
	"github.com/confessly-dev/confessly/internal/auth"
	"github.com/confessly-dev/confessly/internal/config"
	"github.com/confessly-dev/confessly/internal/router"
	"github.com/confessly-dev/confessly/internal/store"
	"github.com/confessly-dev/confessly/internal/types"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.New()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)

	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	users := store.NewUserStore(gdb)
	sessions := store.NewSessionStore(gdb)
	confessions := store.NewConfessionStore(gdb)
	authService := auth.NewService(users, sessions, tokens)

	r := router.NewRouter(router.Deps{
		Auth:        authService,
		Confessions: confessions,
		Cookies: types.CookieConfig{
			Domain: cfg.Domain,
			Secure: cfg.CookieSecure,
		},
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
