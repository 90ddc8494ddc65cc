package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"eduwrite-backend/internal/store"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAdminEmail    = "admin@gmail.com"
	defaultAdminPassword = "admin@123"
	defaultAdminName     = "Admin"
)

func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	log.Printf("loading env from file %s", configPath)
	err := godotenv.Load(configPath)
	if err != nil {
		log.Fatalf("error loading .env file '%s': %v", configPath, err)
	}
}

// EnsureAdminUser seeds the default admin account on startup. Existing
// accounts, admin or not, are left untouched.
func EnsureAdminUser(ctx context.Context, users store.UserStore) error {
	_, err := users.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = users.CreateUser(ctx, &store.User{
		Username:  defaultAdminName,
		Email:     DefaultAdminEmail,
		Password:  string(hash),
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	})
	if errors.Is(err, store.ErrDuplicate) {
		// Another instance seeded it first.
		return nil
	}
	return err
}
