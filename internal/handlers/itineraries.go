package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"winetour-backend/internal/database"
	"winetour-backend/internal/middleware"
	"winetour-backend/internal/models"
	"winetour-backend/internal/schedule"
	"winetour-backend/internal/websocket"
	"winetour-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetItineraries lists itineraries, optionally filtered by status or tour date
func GetItineraries(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT * FROM itineraries`
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

		itineraries := []models.Itinerary{}
		if err := db.Select(&itineraries, query, args...); err != nil {
			log.Printf("❌ Error fetching itineraries: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, itineraries)
	}
}

// GetItinerary returns an itinerary with its full stop list
func GetItinerary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var itinerary models.Itinerary
		err := db.Get(&itinerary, "SELECT * FROM itineraries WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Itinerary not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		stops, err := database.GetItineraryStopsDetailed(db, id)
		if err != nil {
			log.Printf("❌ Error fetching stops: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stops")
			return
		}

		utils.RespondData(w, http.StatusOK, models.ItineraryWithStops{
			Itinerary: itinerary,
			Stops:     stops,
		})
	}
}

// CreateItinerary creates an empty draft itinerary
func CreateItinerary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateItineraryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" || req.TourDate == "" || req.PickupTime == "" || req.PickupLocation == "" {
			utils.RespondError(w, http.StatusBadRequest, "name, tour_date, pickup_time and pickup_location are required")
			return
		}

		itinerary := models.Itinerary{
			ID:              uuid.New().String(),
			Name:            req.Name,
			TourDate:        req.TourDate,
			PickupTime:      req.PickupTime,
			PickupLocation:  req.PickupLocation,
			DropoffLocation: req.DropoffLocation,
			Status:          models.ItineraryStatusDraft,
		}

		if userClaims, ok := middleware.GetUserFromContext(r); ok {
			itinerary.CreatedByUserID = &userClaims.UserID
		}

		_, err := db.Exec(`
			INSERT INTO itineraries (id, name, tour_date, pickup_time, pickup_location, dropoff_location, status, created_by_user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, itinerary.ID, itinerary.Name, itinerary.TourDate, itinerary.PickupTime,
			itinerary.PickupLocation, itinerary.DropoffLocation, itinerary.Status, itinerary.CreatedByUserID)
		if err != nil {
			log.Printf("❌ Error creating itinerary: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create itinerary")
			return
		}

		log.Printf("✅ Created itinerary: %s (%s)", itinerary.Name, itinerary.ID)
		utils.RespondData(w, http.StatusCreated, itinerary)
	}
}

// UpdateItinerary patches itinerary fields. A pickup-time change re-derives
// the whole stop chain before saving.
func UpdateItinerary(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateItineraryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var sets []string
		var args []interface{}

		addSet := func(column string, value interface{}) {
			args = append(args, value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}

		if req.Name != nil {
			addSet("name", *req.Name)
		}
		if req.TourDate != nil {
			addSet("tour_date", *req.TourDate)
		}
		if req.PickupTime != nil {
			addSet("pickup_time", *req.PickupTime)
		}
		if req.PickupLocation != nil {
			addSet("pickup_location", *req.PickupLocation)
		}
		if req.DropoffLocation != nil {
			addSet("dropoff_location", *req.DropoffLocation)
		}
		if req.PickupDriveTimeMinutes != nil {
			addSet("pickup_drive_time_minutes", *req.PickupDriveTimeMinutes)
		}
		if req.Status != nil {
			addSet("status", *req.Status)
		}

		if len(sets) == 0 {
			utils.RespondError(w, http.StatusBadRequest, "No fields to update")
			return
		}

		addSet("updated_at", time.Now().Unix())
		args = append(args, id)

		query := fmt.Sprintf("UPDATE itineraries SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
		result, err := db.Exec(query, args...)
		if err != nil {
			log.Printf("❌ Error updating itinerary: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update itinerary")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Itinerary not found")
			return
		}

		// A new pickup time shifts every downstream arrival
		if req.PickupTime != nil {
			stops, err := database.GetItineraryStops(db, id)
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stops")
				return
			}
			if len(stops) > 0 {
				recomputed := schedule.Recompute(models.StopsToSchedule(stops), *req.PickupTime)
				if err := saveStops(db, hub, id, recomputed); err != nil {
					log.Printf("❌ Error saving recomputed stops: %v", err)
					utils.RespondError(w, http.StatusInternalServerError, "Failed to save stops")
					return
				}
			}
		}

		var itinerary models.Itinerary
		if err := db.Get(&itinerary, "SELECT * FROM itineraries WHERE id = $1", id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, itinerary)
	}
}

// DeleteItinerary removes an itinerary and (via FK cascade) its stops
func DeleteItinerary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM itineraries WHERE id = $1", id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete itinerary")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Itinerary not found")
			return
		}

		log.Printf("✅ Deleted itinerary %s", id)
		utils.RespondData(w, http.StatusOK, map[string]interface{}{"deleted": true})
	}
}

// DuplicateItinerary copies an itinerary and its stop list under a new name
// and tour date, resetting it to draft
func DuplicateItinerary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sourceID := chi.URLParam(r, "id")

		var req models.DuplicateItineraryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" || req.TourDate == "" {
			utils.RespondError(w, http.StatusBadRequest, "name and tour_date are required")
			return
		}

		var source models.Itinerary
		err := db.Get(&source, "SELECT * FROM itineraries WHERE id = $1", sourceID)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Source itinerary not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		stops, err := database.GetItineraryStops(db, sourceID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch source stops")
			return
		}

		newID := uuid.New().String()
		var createdBy *string
		if userClaims, ok := middleware.GetUserFromContext(r); ok {
			createdBy = &userClaims.UserID
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to start transaction")
			return
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO itineraries (id, name, tour_date, pickup_time, pickup_location, dropoff_location, pickup_drive_time_minutes, status, created_by_user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, newID, req.Name, req.TourDate, source.PickupTime, source.PickupLocation,
			source.DropoffLocation, source.PickupDriveTimeMinutes, models.ItineraryStatusDraft, createdBy)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to duplicate itinerary")
			return
		}

		for _, s := range stops {
			// Reservations don't carry over to the copied tour date
			_, err := tx.Exec(`
				INSERT INTO itinerary_stops (
					itinerary_id, winery_id, sequence_order,
					arrival_time, departure_time, duration_minutes,
					drive_time_to_next_minutes, is_lunch_stop,
					reservation_confirmed, special_notes, cascade_enabled
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10)
			`, newID, s.WineryID, s.SequenceOrder,
				s.ArrivalTime, s.DepartureTime, s.DurationMinutes,
				s.DriveTimeToNextMinutes, s.IsLunchStop, s.SpecialNotes, s.CascadeEnabled)
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Failed to duplicate stops")
				return
			}
		}

		if err := tx.Commit(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to commit duplicate")
			return
		}

		var created models.Itinerary
		if err := db.Get(&created, "SELECT * FROM itineraries WHERE id = $1", newID); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		log.Printf("✅ Duplicated itinerary %s -> %s (%d stops)", sourceID, newID, len(stops))
		utils.RespondData(w, http.StatusCreated, created)
	}
}
