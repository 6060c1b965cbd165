package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecx/internal/domain"
)

func TestDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Zero(t, Distance(12.9716, 77.5946, 12.9716, 77.5946))
	})

	t.Run("known city pair is within tolerance", func(t *testing.T) {
		// Bengaluru to Mumbai, roughly 845 km great-circle.
		d := Distance(12.9716, 77.5946, 19.0760, 72.8777)
		assert.InDelta(t, 845_000, d, 10_000)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Distance(12.9716, 77.5946, 19.0760, 72.8777)
		b := Distance(19.0760, 72.8777, 12.9716, 77.5946)
		assert.InDelta(t, a, b, 1e-6)
	})
}

func TestNearestOpenStore(t *testing.T) {
	// User sits at the origin-ish point; far store is open longer.
	stores := []domain.Store{
		{ID: "store_001", Name: "Near", Lat: 12.9720, Lon: 77.5950, OpenHour: 9, CloseHour: 18},
		{ID: "store_002", Name: "Far", Lat: 12.9900, Lon: 77.6100, OpenHour: 7, CloseHour: 23},
	}
	userLat, userLon := 12.9716, 77.5946

	t.Run("prefers nearest open store", func(t *testing.T) {
		got := NearestOpenStore(stores, userLat, userLon, 10)
		require.NotNil(t, got)
		assert.Equal(t, "store_001", got.ID)
	})

	t.Run("skips closed stores when an open one exists", func(t *testing.T) {
		got := NearestOpenStore(stores, userLat, userLon, 22)
		require.NotNil(t, got)
		assert.Equal(t, "store_002", got.ID, "near store is closed at hour 22")
	})

	t.Run("falls back to nearest overall when all closed", func(t *testing.T) {
		got := NearestOpenStore(stores, userLat, userLon, 3)
		require.NotNil(t, got)
		assert.Equal(t, "store_001", got.ID)
	})

	t.Run("nil for empty store list", func(t *testing.T) {
		assert.Nil(t, NearestOpenStore(nil, userLat, userLon, 12))
	})

	t.Run("open boundary hours are inclusive", func(t *testing.T) {
		got := NearestOpenStore(stores, userLat, userLon, 9)
		require.NotNil(t, got)
		assert.Equal(t, "store_001", got.ID)

		got = NearestOpenStore(stores, userLat, userLon, 18)
		require.NotNil(t, got)
		assert.Equal(t, "store_001", got.ID)
	})

	t.Run("open subset minimality", func(t *testing.T) {
		got := NearestOpenStore(stores, userLat, userLon, 12)
		require.NotNil(t, got)
		for _, s := range stores {
			if s.OpenAt(12) {
				assert.LessOrEqual(t,
					Distance(userLat, userLon, got.Lat, got.Lon),
					Distance(userLat, userLon, s.Lat, s.Lon))
			}
		}
	})
}
