package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("🔌 DATABASE CONNECTION ATTEMPT")
	log.Printf("   📍 Database URL length: %d characters", len(dbURL))
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Printf("❌ DATABASE CONNECTION FAILED AT sqlx.Connect(): %v", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		log.Printf("❌ DATABASE CONNECTION FAILED AT Ping(): %v", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ DATABASE CONNECTION SUCCESSFUL")
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('planner', 'admin')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create wineries table
		`CREATE TABLE IF NOT EXISTS wineries (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			region TEXT NOT NULL,
			phone TEXT,
			tasting_fee_cents INT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			notes TEXT,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create itineraries table
		`CREATE TABLE IF NOT EXISTS itineraries (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			tour_date TEXT NOT NULL,
			pickup_time TEXT NOT NULL,
			pickup_location TEXT NOT NULL,
			dropoff_location TEXT,
			pickup_drive_time_minutes INT NOT NULL DEFAULT 0,
			status TEXT NOT NULL CHECK(status IN ('draft', 'confirmed', 'completed', 'cancelled')),
			created_by_user_id TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (created_by_user_id) REFERENCES users(id) ON DELETE SET NULL
		)`,

		// Create itinerary_stops table
		// Times are "HH:MM" wall-clock strings; the cascade preference is a
		// column on the stop so it travels through removals and reorders
		`CREATE TABLE IF NOT EXISTS itinerary_stops (
			id SERIAL PRIMARY KEY,
			itinerary_id TEXT NOT NULL,
			winery_id TEXT NOT NULL,
			sequence_order INT NOT NULL,
			arrival_time TEXT NOT NULL DEFAULT '',
			departure_time TEXT NOT NULL DEFAULT '',
			duration_minutes INT NOT NULL DEFAULT 75,
			drive_time_to_next_minutes INT NOT NULL DEFAULT 15,
			is_lunch_stop BOOLEAN NOT NULL DEFAULT FALSE,
			reservation_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			special_notes TEXT,
			cascade_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (itinerary_id) REFERENCES itineraries(id) ON DELETE CASCADE,
			FOREIGN KEY (winery_id) REFERENCES wineries(id) ON DELETE CASCADE,
			CHECK (duration_minutes >= 0),
			CHECK (drive_time_to_next_minutes >= 0)
		)`,

		// Create bookings table
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			itinerary_id TEXT,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			customer_phone TEXT,
			party_size INT NOT NULL,
			tour_date TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('pending', 'confirmed', 'cancelled')),
			total_price_cents INT,
			notes TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (itinerary_id) REFERENCES itineraries(id) ON DELETE SET NULL,
			CHECK (party_size > 0)
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_wineries_region ON wineries(region)`,
		`CREATE INDEX IF NOT EXISTS idx_wineries_active ON wineries(active)`,
		`CREATE INDEX IF NOT EXISTS idx_itineraries_tour_date ON itineraries(tour_date)`,
		`CREATE INDEX IF NOT EXISTS idx_itineraries_status ON itineraries(status)`,
		`CREATE INDEX IF NOT EXISTS idx_itinerary_stops_itinerary_id ON itinerary_stops(itinerary_id)`,
		`CREATE INDEX IF NOT EXISTS idx_itinerary_stops_itinerary_seq ON itinerary_stops(itinerary_id, sequence_order)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_itinerary_id ON bookings(itinerary_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_tour_date ON bookings(tour_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Printf("✅ Ran %d migrations", len(migrations))
	return nil
}
