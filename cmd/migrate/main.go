package main

import (
	"fmt"
	"log"
	"os"

	"winetour-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully!")

	if len(os.Args) > 1 && os.Args[1] == "--seed" {
		if err := database.SeedUsers(db); err != nil {
			log.Fatalf("User seeding failed: %v", err)
		}
		if err := database.SeedWineries(db); err != nil {
			log.Fatalf("Winery seeding failed: %v", err)
		}
		log.Println("Seed data loaded")
	}

	// Query and display summary
	var result struct {
		Wineries    int `db:"wineries"`
		Itineraries int `db:"itineraries"`
		Stops       int `db:"stops"`
		Bookings    int `db:"bookings"`
		Users       int `db:"users"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM wineries) AS wineries,
			(SELECT COUNT(*) FROM itineraries) AS itineraries,
			(SELECT COUNT(*) FROM itinerary_stops) AS stops,
			(SELECT COUNT(*) FROM bookings) AS bookings,
			(SELECT COUNT(*) FROM users) AS users
	`

	if err := db.Get(&result, query); err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Users:        %d\n", result.Users)
	fmt.Printf("Wineries:     %d\n", result.Wineries)
	fmt.Printf("Itineraries:  %d\n", result.Itineraries)
	fmt.Printf("Stops:        %d\n", result.Stops)
	fmt.Printf("Bookings:     %d\n", result.Bookings)
	fmt.Println("============================================================")
}
