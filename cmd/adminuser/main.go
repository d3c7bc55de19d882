package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"dealership/internal/adapter/repo"
	"dealership/internal/domain"
	"dealership/internal/infra"
)

// adminuser creates a dashboard account from the command line.
//
//	go run ./cmd/adminuser -username admin -password secret -email ops@example.com
func main() {
	_ = godotenv.Load()

	username := flag.String("username", "", "account username")
	password := flag.String("password", "", "account password (stored as bcrypt hash)")
	email := flag.String("email", "", "account email")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: adminuser -username <name> -password <password> [-email <email>]")
		os.Exit(2)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to hash password")
	}

	admins := repo.NewAdminUserRepository(dbpool)
	user, err := admins.Create(ctx, &domain.AdminUser{
		Username: *username,
		Password: string(hash),
		Email:    *email,
	})
	if errors.Is(err, domain.ErrDuplicateUsername) {
		logger.Fatal().Str("username", *username).Msg("username already exists")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create admin user")
	}

	logger.Info().Str("id", user.ID).Str("username", user.Username).Msg("admin user created")
}
