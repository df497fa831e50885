package handlers

import (
	"log"
	"net/http"
	"strconv"

	"winetour-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// GetTopWineries returns the most-visited wineries across non-cancelled
// itineraries, with reservation and lunch counts
func GetTopWineries(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		type WineryStats struct {
			ID                 string   `json:"id" db:"id"`
			Name               string   `json:"name" db:"name"`
			City               string   `json:"city" db:"city"`
			Region             string   `json:"region" db:"region"`
			VisitCount         int      `json:"visit_count" db:"visit_count"`
			LunchStopCount     int      `json:"lunch_stop_count" db:"lunch_stop_count"`
			ConfirmedCount     int      `json:"confirmed_count" db:"confirmed_count"`
			AvgDurationMinutes *float64 `json:"avg_duration_minutes" db:"avg_duration_minutes"`
		}

		query := `
			SELECT
				w.id,
				w.name,
				w.city,
				w.region,
				COUNT(s.id) AS visit_count,
				COUNT(s.id) FILTER (WHERE s.is_lunch_stop) AS lunch_stop_count,
				COUNT(s.id) FILTER (WHERE s.reservation_confirmed) AS confirmed_count,
				AVG(s.duration_minutes) AS avg_duration_minutes
			FROM wineries w
			JOIN itinerary_stops s ON s.winery_id = w.id
			JOIN itineraries i ON i.id = s.itinerary_id
			WHERE i.status != 'cancelled'
			GROUP BY w.id, w.name, w.city, w.region
			ORDER BY visit_count DESC
			LIMIT $1
		`

		var stats []WineryStats
		if err := db.Select(&stats, query, limit); err != nil {
			log.Printf("❌ Error fetching winery stats: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, stats)
	}
}

// GetBookingStats returns monthly booking counts, party totals and revenue
func GetBookingStats(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months := 12
		if monthsStr := r.URL.Query().Get("months"); monthsStr != "" {
			if parsed, err := strconv.Atoi(monthsStr); err == nil && parsed > 0 && parsed <= 36 {
				months = parsed
			}
		}

		type MonthlyStats struct {
			Month          string `json:"month" db:"month"`
			BookingCount   int    `json:"booking_count" db:"booking_count"`
			ConfirmedCount int    `json:"confirmed_count" db:"confirmed_count"`
			CancelledCount int    `json:"cancelled_count" db:"cancelled_count"`
			TotalGuests    int    `json:"total_guests" db:"total_guests"`
			RevenueCents   int64  `json:"revenue_cents" db:"revenue_cents"`
		}

		query := `
			SELECT
				TO_CHAR(TO_DATE(tour_date, 'YYYY-MM-DD'), 'YYYY-MM') AS month,
				COUNT(*) AS booking_count,
				COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed_count,
				COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_count,
				COALESCE(SUM(party_size) FILTER (WHERE status != 'cancelled'), 0) AS total_guests,
				COALESCE(SUM(total_price_cents) FILTER (WHERE status = 'confirmed'), 0) AS revenue_cents
			FROM bookings
			WHERE TO_DATE(tour_date, 'YYYY-MM-DD') >= NOW() - ($1 || ' months')::INTERVAL
			GROUP BY month
			ORDER BY month DESC
		`

		var stats []MonthlyStats
		if err := db.Select(&stats, query, months); err != nil {
			log.Printf("❌ Error fetching booking stats: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, stats)
	}
}

// GetDashboardSummary returns the headline numbers for the staff dashboard
func GetDashboardSummary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type Summary struct {
			PendingBookings  int `json:"pending_bookings" db:"pending_bookings"`
			UpcomingTours    int `json:"upcoming_tours" db:"upcoming_tours"`
			DraftItineraries int `json:"draft_itineraries" db:"draft_itineraries"`
			ActiveWineries   int `json:"active_wineries" db:"active_wineries"`
			UnconfirmedStops int `json:"unconfirmed_stops" db:"unconfirmed_stops"`
		}

		query := `
			SELECT
				(SELECT COUNT(*) FROM bookings WHERE status = 'pending') AS pending_bookings,
				(SELECT COUNT(*) FROM itineraries
				 WHERE status = 'confirmed' AND TO_DATE(tour_date, 'YYYY-MM-DD') >= CURRENT_DATE) AS upcoming_tours,
				(SELECT COUNT(*) FROM itineraries WHERE status = 'draft') AS draft_itineraries,
				(SELECT COUNT(*) FROM wineries WHERE active) AS active_wineries,
				(SELECT COUNT(*) FROM itinerary_stops s
				 JOIN itineraries i ON i.id = s.itinerary_id
				 WHERE NOT s.reservation_confirmed
				   AND i.status = 'confirmed'
				   AND TO_DATE(i.tour_date, 'YYYY-MM-DD') >= CURRENT_DATE) AS unconfirmed_stops
		`

		var summary Summary
		if err := db.Get(&summary, query); err != nil {
			log.Printf("❌ Error fetching dashboard summary: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, summary)
	}
}
