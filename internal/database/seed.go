package database

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding default users...")

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	plannerPassword, err := bcrypt.GenerateFromPassword([]byte("planner123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []struct {
		email    string
		password []byte
		name     string
		role     string
	}{
		{"admin@winetour.local", adminPassword, "Admin", "admin"},
		{"planner@winetour.local", plannerPassword, "Tour Planner", "planner"},
	}

	for _, u := range users {
		_, err := db.Exec(`
			INSERT INTO users (id, email, password, name, role)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), u.email, string(u.password), u.name, u.role)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d users", len(users))
	return nil
}

func SeedWineries(db *sqlx.DB) error {
	// Check if wineries already exist
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM wineries"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Wineries already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding wineries...")

	wineries := []map[string]interface{}{
		{"name": "Silver Creek Cellars", "address": "1480 Atlas Peak Rd", "city": "Napa", "region": "Napa Valley", "tasting_fee_cents": 4500, "latitude": 38.3312, "longitude": -122.2654},
		{"name": "Oakhollow Vineyards", "address": "5190 Silverado Trail", "city": "Napa", "region": "Napa Valley", "tasting_fee_cents": 6000, "latitude": 38.3721, "longitude": -122.2875},
		{"name": "Stonebridge Estate", "address": "8440 St Helena Hwy", "city": "Rutherford", "region": "Napa Valley", "tasting_fee_cents": 7500, "latitude": 38.4582, "longitude": -122.4211},
		{"name": "Quail Run Winery", "address": "3022 St Helena Hwy N", "city": "St Helena", "region": "Napa Valley", "tasting_fee_cents": 5000, "latitude": 38.5136, "longitude": -122.4931},
		{"name": "Foxglove Family Wines", "address": "4035 Westside Rd", "city": "Healdsburg", "region": "Russian River Valley", "tasting_fee_cents": 3500, "latitude": 38.5684, "longitude": -122.8972},
		{"name": "Harvest Moon Estate", "address": "2301 Westside Rd", "city": "Healdsburg", "region": "Russian River Valley", "tasting_fee_cents": 4000, "latitude": 38.5901, "longitude": -122.8851},
		{"name": "Duncan Peak Vineyards", "address": "14500 Mountain House Rd", "city": "Hopland", "region": "Mendocino", "tasting_fee_cents": 2500, "latitude": 38.9743, "longitude": -123.1312},
		{"name": "Bella Collina Winery", "address": "5700 Occidental Rd", "city": "Santa Rosa", "region": "Sonoma Coast", "tasting_fee_cents": 3000, "latitude": 38.4312, "longitude": -122.7956},
		{"name": "Copper Kettle Tasting Room", "address": "21481 8th St E", "city": "Sonoma", "region": "Sonoma Valley", "tasting_fee_cents": 2000, "latitude": 38.2721, "longitude": -122.4411},
		{"name": "Larkspur Ridge Cellars", "address": "4900 Dry Creek Rd", "city": "Healdsburg", "region": "Dry Creek Valley", "tasting_fee_cents": 3500, "latitude": 38.6452, "longitude": -122.9213},
	}

	for _, w := range wineries {
		_, err := db.Exec(`
			INSERT INTO wineries (id, name, address, city, region, tasting_fee_cents, latitude, longitude, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		`, uuid.New().String(), w["name"], w["address"], w["city"], w["region"], w["tasting_fee_cents"], w["latitude"], w["longitude"])
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d wineries", len(wineries))
	return nil
}
