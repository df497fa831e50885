package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"winetour-backend/internal/models"
)

// GetItineraryStops retrieves all stops for an itinerary ordered by sequence
func GetItineraryStops(db *sqlx.DB, itineraryID string) ([]models.ItineraryStop, error) {
	var stops []models.ItineraryStop
	query := `SELECT * FROM itinerary_stops
	          WHERE itinerary_id = $1
	          ORDER BY sequence_order ASC`

	err := db.Select(&stops, query, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary stops: %w", err)
	}

	return stops, nil
}

// GetItineraryStopsDetailed retrieves stops with JOINed winery display fields
func GetItineraryStopsDetailed(db *sqlx.DB, itineraryID string) ([]models.StopWithWinery, error) {
	var stops []models.StopWithWinery
	query := `SELECT s.*,
	                 w.name AS winery_name,
	                 w.address AS winery_address,
	                 w.city AS winery_city,
	                 w.region AS winery_region
	          FROM itinerary_stops s
	          JOIN wineries w ON w.id = s.winery_id
	          WHERE s.itinerary_id = $1
	          ORDER BY s.sequence_order ASC`

	err := db.Select(&stops, query, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get detailed stops: %w", err)
	}

	return stops, nil
}

// ReplaceItineraryStops writes the whole stop list back in one transaction.
// The editing session always saves wholesale - the schedule is never
// partially persisted - so delete-and-reinsert keeps sequence numbering
// trivially consistent with the engine's output.
func ReplaceItineraryStops(db *sqlx.DB, itineraryID string, stops []models.ItineraryStop) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM itinerary_stops WHERE itinerary_id = $1`, itineraryID); err != nil {
		return fmt.Errorf("failed to clear stops: %w", err)
	}

	for _, s := range stops {
		_, err := tx.Exec(`
			INSERT INTO itinerary_stops (
				itinerary_id, winery_id, sequence_order,
				arrival_time, departure_time, duration_minutes,
				drive_time_to_next_minutes, is_lunch_stop,
				reservation_confirmed, special_notes, cascade_enabled
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, itineraryID, s.WineryID, s.SequenceOrder,
			s.ArrivalTime, s.DepartureTime, s.DurationMinutes,
			s.DriveTimeToNextMinutes, s.IsLunchStop,
			s.ReservationConfirmed, s.SpecialNotes, s.CascadeEnabled)
		if err != nil {
			return fmt.Errorf("failed to insert stop %d: %w", s.SequenceOrder, err)
		}
	}

	if _, err := tx.Exec(
		`UPDATE itineraries SET updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT WHERE id = $1`,
		itineraryID,
	); err != nil {
		return fmt.Errorf("failed to touch itinerary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stops: %w", err)
	}

	return nil
}
