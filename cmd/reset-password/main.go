package main

import (
	"context"
	"flag"
	"log"

	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/repository"
	"go-supermarket-inventory/pkg/config"
	"go-supermarket-inventory/pkg/database"
)

// reset-password sets a new password for an existing account, e.g. when the
// seeded administrator is locked out.
func main() {
	username := flag.String("username", "admin", "account to reset")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal("❌ -password is required and must be at least 6 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepo(db)

	user, err := users.FindByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *username, err)
	}

	var hashed model.User
	if err := hashed.SetPassword(*password); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	if err := users.UpdatePassword(ctx, user.ID, hashed.Password); err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Password for %s has been reset", user.Username)
}
