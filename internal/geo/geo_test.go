package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{48.8566, 2.3522, 45.7640, 4.8357},
		{48.8566, 2.3522, 48.8666, 2.3412},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 0, 0, 180},
	}
	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		require.Equal(t, ab, ba)
	}
}

func TestDistanceKm_Identity(t *testing.T) {
	require.Equal(t, 0.0, DistanceKm(48.8566, 2.3522, 48.8566, 2.3522))
	require.Equal(t, 0.0, DistanceKm(0, 0, 0, 0))
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	// Paris -> Lyon is ~392 km as the crow flies.
	d := DistanceKm(48.8566, 2.3522, 45.7640, 4.8357)
	require.InDelta(t, 392, d, 5)

	// Two points inside Paris, about 1.2 km apart, round to 1.
	d = DistanceKm(48.8566, 2.3522, 48.8666, 2.3412)
	require.Equal(t, 1.0, d)
}

func TestDistanceKm_RoundsToWholeKm(t *testing.T) {
	d := DistanceKm(48.8566, 2.3522, 45.7640, 4.8357)
	require.Equal(t, d, float64(int(d)))
}

func TestWithinRadius(t *testing.T) {
	require.True(t, WithinRadius(25, 25))
	require.True(t, WithinRadius(0, 5))
	require.False(t, WithinRadius(26, 25))
}
