package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"winetour-backend/internal/models"
	"winetour-backend/internal/services"
	"winetour-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetWineries returns the winery catalog, optionally filtered by region and
// active flag
func GetWineries(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `SELECT * FROM wineries`
		var conditions []string
		var args []interface{}

		if region := r.URL.Query().Get("region"); region != "" {
			args = append(args, region)
			conditions = append(conditions, fmt.Sprintf("region = $%d", len(args)))
		}
		if r.URL.Query().Get("include_inactive") != "true" {
			conditions = append(conditions, "active = TRUE")
		}

		if len(conditions) > 0 {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}
		query += " ORDER BY name ASC"

		wineries := []models.Winery{}
		if err := db.Select(&wineries, query, args...); err != nil {
			log.Printf("❌ Error fetching wineries: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, wineries)
	}
}

// GetWinery returns a single winery by id
func GetWinery(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var winery models.Winery
		err := db.Get(&winery, "SELECT * FROM wineries WHERE id = $1", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Winery not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, winery)
	}
}

// CreateWinery adds a winery to the catalog. The address is geocoded for map
// display; geocoding failure is non-fatal and leaves coordinates empty.
func CreateWinery(db *sqlx.DB, geocoder *services.GeocodingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateWineryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" || req.Address == "" || req.City == "" || req.Region == "" {
			utils.RespondError(w, http.StatusBadRequest, "name, address, city and region are required")
			return
		}

		winery := models.Winery{
			ID:              uuid.New().String(),
			Name:            req.Name,
			Address:         req.Address,
			City:            req.City,
			Region:          req.Region,
			Phone:           req.Phone,
			TastingFeeCents: req.TastingFeeCents,
			Notes:           req.Notes,
			Active:          true,
		}

		if geocoder != nil {
			coords, err := geocoder.Geocode(winery.FullAddress())
			if err != nil {
				log.Printf("⚠️  Geocoding failed for %q: %v (coordinates left empty)", winery.Name, err)
			} else {
				winery.Latitude = &coords.Lat
				winery.Longitude = &coords.Lng
			}
		}

		_, err := db.Exec(`
			INSERT INTO wineries (id, name, address, city, region, phone, tasting_fee_cents, latitude, longitude, notes, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		`, winery.ID, winery.Name, winery.Address, winery.City, winery.Region,
			winery.Phone, winery.TastingFeeCents, winery.Latitude, winery.Longitude, winery.Notes)
		if err != nil {
			log.Printf("❌ Error creating winery: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create winery")
			return
		}

		log.Printf("✅ Created winery: %s (%s)", winery.Name, winery.ID)
		utils.RespondData(w, http.StatusCreated, winery)
	}
}

// UpdateWinery patches winery fields
func UpdateWinery(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateWineryRequest
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
		if req.Address != nil {
			addSet("address", *req.Address)
		}
		if req.City != nil {
			addSet("city", *req.City)
		}
		if req.Region != nil {
			addSet("region", *req.Region)
		}
		if req.Phone != nil {
			addSet("phone", *req.Phone)
		}
		if req.TastingFeeCents != nil {
			addSet("tasting_fee_cents", *req.TastingFeeCents)
		}
		if req.Notes != nil {
			addSet("notes", *req.Notes)
		}
		if req.Active != nil {
			addSet("active", *req.Active)
		}

		if len(sets) == 0 {
			utils.RespondError(w, http.StatusBadRequest, "No fields to update")
			return
		}

		addSet("updated_at", time.Now().Unix())
		args = append(args, id)

		query := fmt.Sprintf("UPDATE wineries SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
		result, err := db.Exec(query, args...)
		if err != nil {
			log.Printf("❌ Error updating winery: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update winery")
			return
		}

		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Winery not found")
			return
		}

		var winery models.Winery
		if err := db.Get(&winery, "SELECT * FROM wineries WHERE id = $1", id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondData(w, http.StatusOK, winery)
	}
}

// DeleteWinery retires a winery. Wineries referenced by itinerary stops are
// deactivated instead of deleted so historical itineraries keep rendering.
func DeleteWinery(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var refs int
		if err := db.Get(&refs, "SELECT COUNT(*) FROM itinerary_stops WHERE winery_id = $1", id); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if refs > 0 {
			_, err := db.Exec("UPDATE wineries SET active = FALSE, updated_at = $1 WHERE id = $2", time.Now().Unix(), id)
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Failed to deactivate winery")
				return
			}
			log.Printf("✅ Deactivated winery %s (%d itinerary references)", id, refs)
			utils.RespondData(w, http.StatusOK, map[string]interface{}{"deactivated": true})
			return
		}

		result, err := db.Exec("DELETE FROM wineries WHERE id = $1", id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete winery")
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.RespondError(w, http.StatusNotFound, "Winery not found")
			return
		}

		log.Printf("✅ Deleted winery %s", id)
		utils.RespondData(w, http.StatusOK, map[string]interface{}{"deleted": true})
	}
}
