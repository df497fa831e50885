package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// TravelTimeService estimates drive times between addresses using the Google
// Distance Matrix API. Results are cached; the itinerary engine consumes this
// through its TravelTimeEstimator interface and treats failures as non-fatal.
type TravelTimeService struct {
	apiKey string
	client *http.Client
	cache  *EstimateCache
}

// distanceMatrixResponse represents the Google Distance Matrix API response
type distanceMatrixResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Seconds int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
	Status string `json:"status"`
}

// NewTravelTimeService creates a new travel time service
func NewTravelTimeService(cache *EstimateCache) (*TravelTimeService, error) {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY environment variable is required")
	}

	return &TravelTimeService{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  cache,
	}, nil
}

// EstimateTravelTime returns the estimated drive time in whole minutes
// between two addresses, rounding partial minutes up
func (s *TravelTimeService) EstimateTravelTime(ctx context.Context, origin, destination string) (int, error) {
	if minutes, ok := s.cache.Get(origin, destination); ok {
		return minutes, nil
	}

	baseURL := "https://maps.googleapis.com/maps/api/distancematrix/json"

	params := url.Values{}
	params.Add("origins", origin)
	params.Add("destinations", destination)
	params.Add("mode", "driving")
	params.Add("key", s.apiKey)

	fullURL := fmt.Sprintf("%s?%s", baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API returned status code %d", resp.StatusCode)
	}

	var result distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Status != "OK" {
		return 0, fmt.Errorf("distance matrix API returned status: %s", result.Status)
	}

	if len(result.Rows) == 0 || len(result.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("no results for %q -> %q", origin, destination)
	}

	element := result.Rows[0].Elements[0]
	if element.Status != "OK" {
		return 0, fmt.Errorf("no route found: element status %s", element.Status)
	}

	minutes := (element.Duration.Seconds + 59) / 60
	log.Printf("🚐 Drive time %q -> %q: %d min", origin, destination, minutes)

	s.cache.Set(origin, destination, minutes)
	return minutes, nil
}
