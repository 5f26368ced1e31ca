// Command migrate applies the raw SQL migrations and the schema auto
// migration without starting the API server.
package main

import (
	"log"

	"lumina-chat/config"
	"lumina-chat/internal/domain/message"
	"lumina-chat/internal/domain/user"
	"lumina-chat/pkg/database"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.ApplyRawMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to apply raw migrations: %v", err)
	}

	if err := db.AutoMigrate(&user.User{}, &message.Message{}); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("Migrations applied")
}
