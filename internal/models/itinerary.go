package models

import "winetour-backend/internal/schedule"

// ItineraryStatus represents the lifecycle state of an itinerary
type ItineraryStatus string

const (
	ItineraryStatusDraft     ItineraryStatus = "draft"     // Being edited by a planner
	ItineraryStatusConfirmed ItineraryStatus = "confirmed" // All reservations locked in
	ItineraryStatusCompleted ItineraryStatus = "completed" // Tour ran
	ItineraryStatusCancelled ItineraryStatus = "cancelled" // Cancelled before the tour date
)

// Itinerary owns the pickup time and the ordered stop list for one tour day.
// PickupDriveTimeMinutes is the pickup-location-to-first-stop leg, tracked as
// a scalar outside the per-stop chain: the first stop's recomputed arrival
// equals PickupTime directly.
type Itinerary struct {
	ID                     string          `json:"id" db:"id"`
	Name                   string          `json:"name" db:"name"`
	TourDate               string          `json:"tour_date" db:"tour_date"`     // "YYYY-MM-DD"
	PickupTime             string          `json:"pickup_time" db:"pickup_time"` // "HH:MM"
	PickupLocation         string          `json:"pickup_location" db:"pickup_location"`
	DropoffLocation        *string         `json:"dropoff_location,omitempty" db:"dropoff_location"`
	PickupDriveTimeMinutes int             `json:"pickup_drive_time_minutes" db:"pickup_drive_time_minutes"`
	Status                 ItineraryStatus `json:"status" db:"status"`
	CreatedByUserID        *string         `json:"created_by_user_id,omitempty" db:"created_by_user_id"`
	CreatedAt              int64           `json:"created_at" db:"created_at"` // Unix timestamp
	UpdatedAt              int64           `json:"updated_at" db:"updated_at"` // Unix timestamp
}

// ItineraryStop is the persisted form of a scheduled winery visit
type ItineraryStop struct {
	ID                     int     `json:"id" db:"id"`
	ItineraryID            string  `json:"itinerary_id" db:"itinerary_id"`
	WineryID               string  `json:"winery_id" db:"winery_id"`
	SequenceOrder          int     `json:"sequence_order" db:"sequence_order"`
	ArrivalTime            string  `json:"arrival_time" db:"arrival_time"`
	DepartureTime          string  `json:"departure_time" db:"departure_time"`
	DurationMinutes        int     `json:"duration_minutes" db:"duration_minutes"`
	DriveTimeToNextMinutes int     `json:"drive_time_to_next_minutes" db:"drive_time_to_next_minutes"`
	IsLunchStop            bool    `json:"is_lunch_stop" db:"is_lunch_stop"`
	ReservationConfirmed   bool    `json:"reservation_confirmed" db:"reservation_confirmed"`
	SpecialNotes           *string `json:"special_notes,omitempty" db:"special_notes"`
	CascadeEnabled         bool    `json:"cascade_enabled" db:"cascade_enabled"`
	CreatedAt              int64   `json:"created_at" db:"created_at"`
}

// StopWithWinery joins a stop with its winery's display fields
type StopWithWinery struct {
	ItineraryStop
	WineryName    string `json:"winery_name" db:"winery_name"`
	WineryAddress string `json:"winery_address" db:"winery_address"`
	WineryCity    string `json:"winery_city" db:"winery_city"`
	WineryRegion  string `json:"winery_region" db:"winery_region"`
}

// ItineraryWithStops is the full editing payload for the itinerary builder
type ItineraryWithStops struct {
	Itinerary
	Stops []StopWithWinery `json:"stops"`
}

// ToScheduleStop converts a persisted stop into the engine's representation
func (s *ItineraryStop) ToScheduleStop() schedule.Stop {
	notes := ""
	if s.SpecialNotes != nil {
		notes = *s.SpecialNotes
	}
	return schedule.Stop{
		WineryID:               s.WineryID,
		Order:                  s.SequenceOrder,
		ArrivalTime:            s.ArrivalTime,
		DepartureTime:          s.DepartureTime,
		DurationMinutes:        s.DurationMinutes,
		DriveTimeToNextMinutes: s.DriveTimeToNextMinutes,
		IsLunchStop:            s.IsLunchStop,
		ReservationConfirmed:   s.ReservationConfirmed,
		SpecialNotes:           notes,
		Cascade:                s.CascadeEnabled,
	}
}

// StopsToSchedule converts a persisted stop list for the engine
func StopsToSchedule(stops []ItineraryStop) []schedule.Stop {
	out := make([]schedule.Stop, 0, len(stops))
	for i := range stops {
		out = append(out, stops[i].ToScheduleStop())
	}
	return out
}

// FromScheduleStop converts an engine stop back to its persisted form
func FromScheduleStop(itineraryID string, s schedule.Stop) ItineraryStop {
	var notes *string
	if s.SpecialNotes != "" {
		n := s.SpecialNotes
		notes = &n
	}
	return ItineraryStop{
		ItineraryID:            itineraryID,
		WineryID:               s.WineryID,
		SequenceOrder:          s.Order,
		ArrivalTime:            s.ArrivalTime,
		DepartureTime:          s.DepartureTime,
		DurationMinutes:        s.DurationMinutes,
		DriveTimeToNextMinutes: s.DriveTimeToNextMinutes,
		IsLunchStop:            s.IsLunchStop,
		ReservationConfirmed:   s.ReservationConfirmed,
		SpecialNotes:           notes,
		CascadeEnabled:         s.Cascade,
	}
}

// CreateItineraryRequest is the request body for POST /api/itineraries
type CreateItineraryRequest struct {
	Name            string  `json:"name"`
	TourDate        string  `json:"tour_date"`
	PickupTime      string  `json:"pickup_time"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location,omitempty"`
}

// UpdateItineraryRequest is the request body for PATCH /api/itineraries/:id.
// Changing the pickup time triggers a full recompute of the stop chain.
type UpdateItineraryRequest struct {
	Name                   *string          `json:"name,omitempty"`
	TourDate               *string          `json:"tour_date,omitempty"`
	PickupTime             *string          `json:"pickup_time,omitempty"`
	PickupLocation         *string          `json:"pickup_location,omitempty"`
	DropoffLocation        *string          `json:"dropoff_location,omitempty"`
	PickupDriveTimeMinutes *int             `json:"pickup_drive_time_minutes,omitempty"`
	Status                 *ItineraryStatus `json:"status,omitempty"`
}

// DuplicateItineraryRequest is the request body for POST /api/itineraries/:id/duplicate
type DuplicateItineraryRequest struct {
	Name     string `json:"name"`
	TourDate string `json:"tour_date"`
}

// AddStopRequest is the request body for POST /api/itineraries/:id/stops
type AddStopRequest struct {
	WineryID string `json:"winery_id"`
}

// ReorderStopsRequest is the request body for POST /api/itineraries/:id/stops/reorder.
// Orders are 1-based, matching the sequence_order field.
type ReorderStopsRequest struct {
	FromOrder int `json:"from_order"`
	ToOrder   int `json:"to_order"`
}

// EditStopRequest is the request body for PATCH /api/itineraries/:id/stops/:order.
// Kind selects the edit; time carries "HH:MM" payloads, minutes the integer ones.
type EditStopRequest struct {
	Kind    string `json:"kind"`
	Time    string `json:"time,omitempty"`
	Minutes int    `json:"minutes,omitempty"`
}
