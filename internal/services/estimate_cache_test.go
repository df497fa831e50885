package services

import "testing"

func TestEstimateCacheRoundTrip(t *testing.T) {
	cache := NewEstimateCache()

	if _, ok := cache.Get("A", "B"); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Set("A", "B", 25)

	minutes, ok := cache.Get("A", "B")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if minutes != 25 {
		t.Fatalf("minutes = %d, want 25", minutes)
	}
}

func TestEstimateCacheIsDirectional(t *testing.T) {
	cache := NewEstimateCache()
	cache.Set("A", "B", 25)

	// the reverse leg can differ (one-way roads, traffic) so it must miss
	if _, ok := cache.Get("B", "A"); ok {
		t.Fatal("reverse pair should not hit")
	}
}

func TestEstimateCacheStats(t *testing.T) {
	cache := NewEstimateCache()
	cache.Set("A", "B", 25)
	cache.Get("A", "B")
	cache.Get("C", "D")

	stats := cache.GetStats()
	if stats["hits"].(int64) != 1 {
		t.Fatalf("hits = %v, want 1", stats["hits"])
	}
	if stats["misses"].(int64) != 1 {
		t.Fatalf("misses = %v, want 1", stats["misses"])
	}
}
