// Command grantadmin promotes an existing account to the admin role.
//
// Usage: grantadmin <email>
package main

import (
	"context"
	"fmt"
	"os"

	"freshfood/internal/config"
	"freshfood/internal/database"
	"freshfood/internal/logger"
	"freshfood/internal/repository"
	"freshfood/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: grantadmin <email>")
		os.Exit(2)
	}
	email := os.Args[1]

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := config.Load()
	log := logger.NewWithDefaults()
	defer log.Sync()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close(ctx)

	userService := service.NewUserService(repository.NewUserRepository(db.DB()), cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	user, err := userService.GrantAdmin(ctx, email)
	if err != nil {
		log.Fatal("Failed to grant admin role", zap.String("email", email), zap.Error(err))
	}

	log.Info("Admin role granted",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)
}
