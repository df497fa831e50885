package models

// Winery represents a visitable destination in the tour catalog
type Winery struct {
	ID              string   `json:"id" db:"id"`
	Name            string   `json:"name" db:"name"`
	Address         string   `json:"address" db:"address"`
	City            string   `json:"city" db:"city"`
	Region          string   `json:"region" db:"region"`
	Phone           *string  `json:"phone,omitempty" db:"phone"`
	TastingFeeCents *int     `json:"tasting_fee_cents,omitempty" db:"tasting_fee_cents"`
	Latitude        *float64 `json:"latitude" db:"latitude"`
	Longitude       *float64 `json:"longitude" db:"longitude"`
	Notes           *string  `json:"notes,omitempty" db:"notes"`
	Active          bool     `json:"active" db:"active"`
	CreatedAt       int64    `json:"created_at" db:"created_at"` // Unix timestamp
	UpdatedAt       int64    `json:"updated_at" db:"updated_at"` // Unix timestamp
}

// FullAddress returns the address formatted for the travel-time estimator
func (w *Winery) FullAddress() string {
	return w.Address + ", " + w.City + ", " + w.Region
}

// CreateWineryRequest is the request body for POST /api/wineries
type CreateWineryRequest struct {
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	Region          string  `json:"region"`
	Phone           *string `json:"phone,omitempty"`
	TastingFeeCents *int    `json:"tasting_fee_cents,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateWineryRequest is the request body for PATCH /api/wineries/:id
type UpdateWineryRequest struct {
	Name            *string `json:"name,omitempty"`
	Address         *string `json:"address,omitempty"`
	City            *string `json:"city,omitempty"`
	Region          *string `json:"region,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	TastingFeeCents *int    `json:"tasting_fee_cents,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}
