package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"winetour-backend/internal/models"
	"winetour-backend/internal/websocket"
	"winetour-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateBooking accepts a booking request from the public site. New bookings
// always start pending; staff confirms them after checking availability.
func CreateBooking(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.CustomerName == "" || req.CustomerEmail == "" || req.TourDate == "" {
			utils.RespondError(w, http.StatusBadRequest, "customer_name, customer_email and tour_date are required")
			return
		}
		if req.PartySize < 1 {
			utils.RespondError(w, http.StatusBadRequest, "party_size must be at least 1")
			return
		}

		if req.ItineraryID != nil {
			var exists bool
			if err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM itineraries WHERE id = $1)", *req.ItineraryID); err != nil || !exists {
				utils.RespondError(w, http.StatusBadRequest, "Unknown itinerary")
				return
			}
		}

		booking := models.Booking{
			ID:            uuid.New().String(),
			ItineraryID:   req.ItineraryID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			PartySize:     req.PartySize,
			TourDate:      req.TourDate,
			Status:        models.BookingStatusPending,
			Notes:         req.Notes,
		}

		_, err := db.Exec(`
			INSERT INTO bookings (id, itinerary_id, customer_name, customer_email, customer_phone, party_size, tour_date, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, booking.ID, booking.ItineraryID, booking.CustomerName, booking.CustomerEmail,
			booking.CustomerPhone, booking.PartySize, booking.TourDate, booking.Status, booking.Notes)
		if err != nil {
			log.Printf("❌ Error creating booking: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create booking")
			return
		}

		log.Printf("✅ New booking from %s for %s (party of %d)", booking.CustomerName, booking.TourDate, booking.PartySize)

		// Let staff dashboards know a booking arrived
		if hub != nil {
			hub.BroadcastToRole("admin", map[string]interface{}{
				"type": "booking_created",
				"data": booking,
			})
		}

		utils.RespondData(w, http.StatusCreated, booking)
	}
}

// GetBookings lists bookings for staff, optionally filtered by status or tour date
func GetBookings(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT * FROM bookings`
		var conditions []string
		var args []interface{}

		if status := r.URL.Query().Get("status"); status != "" {
			args = append(args, status)
			conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
		}
		if date := r.URL.Query().Get("tour_date"); date != "" {
			args = append(args, date)
			conditions = append(conditions, fmt.Sprintf("tour_date = $%d", len(args)))
		}

		if len(conditions) > 0 {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}
		query += " ORDER BY tour_date DESC, created_at DESC"

		bookings := []models.Booking{}
		if err := db.Select(&bookings, query, args...); err != nil {
			log.Printf("❌ Error fetching bookings: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, bookings)
	}
}

// GetBooking returns a single booking
func GetBooking(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var booking models.Booking
		err := db.Get(&booking, "SELECT * FROM bookings WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, booking)
	}
}

// UpdateBookingStatus moves a booking through its lifecycle; confirming may
// also set the quoted total
func UpdateBookingStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateBookingStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		switch req.Status {
		case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
		default:
			utils.RespondError(w, http.StatusBadRequest, "Invalid status")
			return
		}

		var result sql.Result
		var err error
		if req.TotalPriceCents != nil {
			result, err = db.Exec(`
				UPDATE bookings SET status = $1, total_price_cents = $2, updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT
				WHERE id = $3
			`, req.Status, *req.TotalPriceCents, id)
		} else {
			result, err = db.Exec(`
				UPDATE bookings SET status = $1, updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT
				WHERE id = $2
			`, req.Status, id)
		}
		if err != nil {
			log.Printf("❌ Error updating booking: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update booking")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Booking not found")
			return
		}

		var booking models.Booking
		if err := db.Get(&booking, "SELECT * FROM bookings WHERE id = $1", id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, booking)
	}
}
