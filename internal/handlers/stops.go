package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"winetour-backend/internal/database"
	"winetour-backend/internal/models"
	"winetour-backend/internal/schedule"
	"winetour-backend/internal/services"
	"winetour-backend/internal/websocket"
	"winetour-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// loadItineraryForEdit fetches the itinerary plus its stop list converted for
// the engine. Writes the HTTP error response itself on failure.
func loadItineraryForEdit(db *sqlx.DB, w http.ResponseWriter, itineraryID string) (*models.Itinerary, []schedule.Stop, bool) {
	var itinerary models.Itinerary
	err := db.Get(&itinerary, "SELECT * FROM itineraries WHERE id = $1", itineraryID)
	if err == sql.ErrNoRows {
		utils.RespondError(w, http.StatusNotFound, "Itinerary not found")
		return nil, nil, false
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return nil, nil, false
	}

	stops, err := database.GetItineraryStops(db, itineraryID)
	if err != nil {
		log.Printf("❌ Error fetching stops: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stops")
		return nil, nil, false
	}

	return &itinerary, models.StopsToSchedule(stops), true
}

// saveStops persists the engine's output wholesale and notifies watchers
func saveStops(db *sqlx.DB, hub *websocket.Hub, itineraryID string, stops []schedule.Stop) error {
	persisted := make([]models.ItineraryStop, 0, len(stops))
	for _, s := range stops {
		persisted = append(persisted, models.FromScheduleStop(itineraryID, s))
	}

	if err := database.ReplaceItineraryStops(db, itineraryID, persisted); err != nil {
		return err
	}

	if hub != nil {
		hub.BroadcastItineraryUpdate(itineraryID, map[string]interface{}{
			"type": "itinerary_updated",
			"data": map[string]interface{}{
				"itinerary_id": itineraryID,
				"stops":        persisted,
			},
		})
	}

	return nil
}

// respondWithStops writes the standard post-edit payload: the detailed stop
// list as it now stands
func respondWithStops(w http.ResponseWriter, db *sqlx.DB, itineraryID string) {
	stops, err := database.GetItineraryStopsDetailed(db, itineraryID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stops")
		return
	}
	utils.RespondData(w, http.StatusOK, stops)
}

// stopOrderParam parses the 1-based {order} URL parameter into a 0-based index
func stopOrderParam(r *http.Request, stopCount int) (int, bool) {
	order, err := strconv.Atoi(chi.URLParam(r, "order"))
	if err != nil || order < 1 || order > stopCount {
		return 0, false
	}
	return order - 1, true
}

// AddItineraryStop appends a winery to the itinerary and recomputes the chain
func AddItineraryStop(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itineraryID := chi.URLParam(r, "id")

		var req models.AddStopRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WineryID == "" {
			utils.RespondError(w, http.StatusBadRequest, "winery_id is required")
			return
		}

		var winery models.Winery
		err := db.Get(&winery, "SELECT * FROM wineries WHERE id = $1", req.WineryID)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Winery not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !winery.Active {
			utils.RespondError(w, http.StatusBadRequest, "Winery is no longer active")
			return
		}

		itinerary, stops, ok := loadItineraryForEdit(db, w, itineraryID)
		if !ok {
			return
		}

		updated := schedule.AddStop(stops, req.WineryID, itinerary.PickupTime)
		if err := saveStops(db, hub, itineraryID, updated); err != nil {
			log.Printf("❌ Error saving stops: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save stops")
			return
		}

		log.Printf("✅ Added %s to itinerary %s (%d stops)", winery.Name, itineraryID, len(updated))
		respondWithStops(w, db, itineraryID)
	}
}

// RemoveItineraryStop drops a stop by its 1-based order and recomputes
func RemoveItineraryStop(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itineraryID := chi.URLParam(r, "id")

		itinerary, stops, ok := loadItineraryForEdit(db, w, itineraryID)
		if !ok {
			return
		}

		index, ok := stopOrderParam(r, len(stops))
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid stop order")
			return
		}

		updated := schedule.RemoveStop(stops, index, itinerary.PickupTime)
		if err := saveStops(db, hub, itineraryID, updated); err != nil {
			log.Printf("❌ Error saving stops: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save stops")
			return
		}

		respondWithStops(w, db, itineraryID)
	}
}

// ReorderItineraryStops moves a stop between positions (drag-and-drop)
func ReorderItineraryStops(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itineraryID := chi.URLParam(r, "id")

		var req models.ReorderStopsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		itinerary, stops, ok := loadItineraryForEdit(db, w, itineraryID)
		if !ok {
			return
		}

		if req.FromOrder < 1 || req.FromOrder > len(stops) || req.ToOrder < 1 || req.ToOrder > len(stops) {
			utils.RespondError(w, http.StatusBadRequest, "Stop order out of range")
			return
		}

		updated := schedule.ReorderStop(stops, req.FromOrder-1, req.ToOrder-1, itinerary.PickupTime)
		if err := saveStops(db, hub, itineraryID, updated); err != nil {
			log.Printf("❌ Error saving stops: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save stops")
			return
		}

		respondWithStops(w, db, itineraryID)
	}
}

// EditItineraryStop applies a single per-stop edit (arrival, departure,
// duration, drive time, lunch toggle, cascade toggle)
func EditItineraryStop(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itineraryID := chi.URLParam(r, "id")

		var req models.EditStopRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		itinerary, stops, ok := loadItineraryForEdit(db, w, itineraryID)
		if !ok {
			return
		}

		index, ok := stopOrderParam(r, len(stops))
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid stop order")
			return
		}

		updated, err := schedule.Apply(stops, itinerary.PickupTime, schedule.Command{
			Kind:    schedule.CommandKind(req.Kind),
			Index:   index,
			Time:    req.Time,
			Minutes: req.Minutes,
		})
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := saveStops(db, hub, itineraryID, updated); err != nil {
			log.Printf("❌ Error saving stops: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save stops")
			return
		}

		respondWithStops(w, db, itineraryID)
	}
}

// UpdateStopDetails patches the non-schedule fields of a stop (reservation
// flag, notes) without touching the time chain
func UpdateStopDetails(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itineraryID := chi.URLParam(r, "id")

		var req struct {
			ReservationConfirmed *bool   `json:"reservation_confirmed,omitempty"`
			SpecialNotes         *string `json:"special_notes,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		order, err := strconv.Atoi(chi.URLParam(r, "order"))
		if err != nil || order < 1 {
			utils.RespondError(w, http.StatusBadRequest, "Invalid stop order")
			return
		}

		if req.ReservationConfirmed != nil {
			_, err := db.Exec(`
				UPDATE itinerary_stops SET reservation_confirmed = $1
				WHERE itinerary_id = $2 AND sequence_order = $3
			`, *req.ReservationConfirmed, itineraryID, order)
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Failed to update stop")
				return
			}
		}
		if req.SpecialNotes != nil {
			_, err := db.Exec(`
				UPDATE itinerary_stops SET special_notes = $1
				WHERE itinerary_id = $2 AND sequence_order = $3
			`, *req.SpecialNotes, itineraryID, order)
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Failed to update stop")
				return
			}
		}

		respondWithStops(w, db, itineraryID)
	}
}

// RefreshStopDriveTime fetches a fresh drive-time estimate for the leg from
// this stop to the next (or to the dropoff location for the final stop) and
// cascades the result. Estimator failure keeps the stored value and reports
// 502 without touching the schedule.
func RefreshStopDriveTime(db *sqlx.DB, hub *websocket.Hub, estimator *services.TravelTimeService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itineraryID := chi.URLParam(r, "id")

		if estimator == nil {
			utils.RespondError(w, http.StatusServiceUnavailable, "Travel time estimation is not configured")
			return
		}

		itinerary, stops, ok := loadItineraryForEdit(db, w, itineraryID)
		if !ok {
			return
		}

		index, ok := stopOrderParam(r, len(stops))
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid stop order")
			return
		}

		var origin models.Winery
		if err := db.Get(&origin, "SELECT * FROM wineries WHERE id = $1", stops[index].WineryID); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to resolve origin winery")
			return
		}

		var destAddress string
		if index+1 < len(stops) {
			var dest models.Winery
			if err := db.Get(&dest, "SELECT * FROM wineries WHERE id = $1", stops[index+1].WineryID); err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Failed to resolve destination winery")
				return
			}
			destAddress = dest.FullAddress()
		} else if itinerary.DropoffLocation != nil && *itinerary.DropoffLocation != "" {
			destAddress = *itinerary.DropoffLocation
		} else {
			destAddress = itinerary.PickupLocation
		}

		updated, err := schedule.RefreshDriveTime(r.Context(), stops, index, itinerary.PickupTime,
			estimator, origin.FullAddress(), destAddress)
		if err != nil {
			log.Printf("⚠️ Drive time refresh failed: %v", err)
			utils.RespondError(w, http.StatusBadGateway, "Travel time estimate unavailable, previous value kept")
			return
		}

		if err := saveStops(db, hub, itineraryID, updated); err != nil {
			log.Printf("❌ Error saving stops: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save stops")
			return
		}

		respondWithStops(w, db, itineraryID)
	}
}

// RecomputeItinerary re-derives the full time chain from the pickup time.
// Used by the builder's explicit "recompute" button.
func RecomputeItinerary(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itineraryID := chi.URLParam(r, "id")

		itinerary, stops, ok := loadItineraryForEdit(db, w, itineraryID)
		if !ok {
			return
		}

		updated := schedule.Recompute(stops, itinerary.PickupTime)
		if err := saveStops(db, hub, itineraryID, updated); err != nil {
			log.Printf("❌ Error saving stops: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save stops")
			return
		}

		respondWithStops(w, db, itineraryID)
	}
}
