package main

import (
	"log"
	"net/http"
	"os"

	"winetour-backend/internal/database"
	"winetour-backend/internal/handlers"
	"winetour-backend/internal/middleware"
	"winetour-backend/internal/services"
	"winetour-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🍷 WINE TOUR BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: DATABASE_URL environment variable is required")
		log.Println("   Please set DATABASE_URL in your deployment variables or .env file")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Connect to database
	log.Println("🔌 Connecting to database...")
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database connection failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Println("❌ FATAL ERROR: Database migrations failed")
		log.Fatal(err)
	}
	log.Println("✅ Database migrations completed")

	// Seed database
	log.Println("🌱 Seeding database with initial data...")
	if err := database.SeedUsers(db); err != nil {
		log.Println("❌ FATAL ERROR: User seeding failed")
		log.Fatal(err)
	}
	log.Println("✅ Users seeded successfully")

	if err := database.SeedWineries(db); err != nil {
		log.Println("❌ FATAL ERROR: Winery seeding failed")
		log.Fatal(err)
	}
	log.Println("✅ Wineries seeded successfully")

	// Travel-time estimation (optional: drive-time refresh endpoints report
	// 503 when no API key is configured)
	estimateCache := services.NewEstimateCache()
	travelTime, err := services.NewTravelTimeService(estimateCache)
	if err != nil {
		log.Printf("⚠️  Travel time estimation disabled: %v", err)
		travelTime = nil
	} else {
		log.Println("✅ Travel time service initialized")
	}

	geocoder, err := services.NewGeocodingService()
	if err != nil {
		log.Printf("⚠️  Geocoding disabled: %v", err)
		geocoder = nil
	} else {
		log.Println("✅ Geocoding service initialized")
	}

	// WebSocket hub for the live itinerary builder
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public booking intake from the marketing site
		r.Post("/bookings", handlers.CreateBooking(db, wsHub))

		// Planner endpoints (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			// Auth status endpoint
			r.Get("/auth/status", handlers.GetAuthStatus(db))

			// Winery catalog
			r.Get("/wineries", handlers.GetWineries(db))
			r.Get("/wineries/{id}", handlers.GetWinery(db))
			r.Post("/wineries", handlers.CreateWinery(db, geocoder))
			r.Patch("/wineries/{id}", handlers.UpdateWinery(db))

			// Itineraries
			r.Get("/itineraries", handlers.GetItineraries(db))
			r.Get("/itineraries/{id}", handlers.GetItinerary(db))
			r.Post("/itineraries", handlers.CreateItinerary(db))
			r.Patch("/itineraries/{id}", handlers.UpdateItinerary(db, wsHub))
			r.Delete("/itineraries/{id}", handlers.DeleteItinerary(db))
			r.Post("/itineraries/{id}/duplicate", handlers.DuplicateItinerary(db))
			r.Post("/itineraries/{id}/recompute", handlers.RecomputeItinerary(db, wsHub))

			// Stop editing (the itinerary builder)
			r.Post("/itineraries/{id}/stops", handlers.AddItineraryStop(db, wsHub))
			r.Delete("/itineraries/{id}/stops/{order}", handlers.RemoveItineraryStop(db, wsHub))
			r.Post("/itineraries/{id}/stops/reorder", handlers.ReorderItineraryStops(db, wsHub))
			r.Patch("/itineraries/{id}/stops/{order}", handlers.EditItineraryStop(db, wsHub))
			r.Patch("/itineraries/{id}/stops/{order}/details", handlers.UpdateStopDetails(db))
			r.Post("/itineraries/{id}/stops/{order}/refresh-drive-time", handlers.RefreshStopDriveTime(db, wsHub, travelTime))

			// Bookings (staff view)
			r.Get("/bookings", handlers.GetBookings(db))
			r.Get("/bookings/{id}", handlers.GetBooking(db))
			r.Patch("/bookings/{id}/status", handlers.UpdateBookingStatus(db))
		})

		// Admin endpoints (require authentication + admin role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("admin"))

			r.Delete("/wineries/{id}", handlers.DeleteWinery(db))

			// Analytics
			r.Get("/analytics/top-wineries", handlers.GetTopWineries(db))
			r.Get("/analytics/bookings", handlers.GetBookingStats(db))
			r.Get("/analytics/summary", handlers.GetDashboardSummary(db))

			// User management
			r.Post("/users", handlers.CreateUser(db))
		})
	})

	// Get port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Printf("🌐 Server listening on port %s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
