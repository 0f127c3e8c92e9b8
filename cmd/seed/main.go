// Seeds the database with a demo client account for local development.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"astroconsult/internal/database"
	"astroconsult/internal/domain"
	"astroconsult/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	const demoEmail = "demo@astroconsult.local"
	exists, err := users.EmailExists(ctx, demoEmail)
	if err != nil {
		log.Fatal(err)
	}
	if exists {
		log.Printf("seed_skipped email=%s", demoEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	user := &domain.User{
		Name:         "Demo Client",
		Email:        demoEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatal(err)
	}

	log.Printf("seed_done user_id=%d email=%s", user.ID, demoEmail)
}
