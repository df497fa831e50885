package models

// BookingStatus represents the current status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Awaiting confirmation
	BookingStatusConfirmed BookingStatus = "confirmed" // Deposit received
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a customer's reservation of a tour. Payment capture is handled
// by an external processor; only the resulting totals are stored here.
type Booking struct {
	ID              string        `json:"id" db:"id"`
	ItineraryID     *string       `json:"itinerary_id,omitempty" db:"itinerary_id"`
	CustomerName    string        `json:"customer_name" db:"customer_name"`
	CustomerEmail   string        `json:"customer_email" db:"customer_email"`
	CustomerPhone   *string       `json:"customer_phone,omitempty" db:"customer_phone"`
	PartySize       int           `json:"party_size" db:"party_size"`
	TourDate        string        `json:"tour_date" db:"tour_date"` // "YYYY-MM-DD"
	Status          BookingStatus `json:"status" db:"status"`
	TotalPriceCents *int          `json:"total_price_cents,omitempty" db:"total_price_cents"`
	Notes           *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt       int64         `json:"created_at" db:"created_at"` // Unix timestamp
	UpdatedAt       int64         `json:"updated_at" db:"updated_at"` // Unix timestamp
}

// CreateBookingRequest is the request body for POST /api/bookings
type CreateBookingRequest struct {
	ItineraryID   *string `json:"itinerary_id,omitempty"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	PartySize     int     `json:"party_size"`
	TourDate      string  `json:"tour_date"`
	Notes         *string `json:"notes,omitempty"`
}

// UpdateBookingStatusRequest is the request body for PATCH /api/bookings/:id/status
type UpdateBookingStatusRequest struct {
	Status          BookingStatus `json:"status"`
	TotalPriceCents *int          `json:"total_price_cents,omitempty"`
}
