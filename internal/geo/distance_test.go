package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiles(t *testing.T) {
	// Austin (30.2672, -97.7431) to Dallas (32.7767, -96.7970) ≈ 182 miles.
	austin := Coordinate{Lat: 30.2672, Lng: -97.7431}
	dallas := Coordinate{Lat: 32.7767, Lng: -96.7970}
	assert.InDelta(t, 182, Miles(austin, dallas), 6)

	// Same point should be 0.
	p := Coordinate{Lat: 30.0, Lng: -97.0}
	assert.InDelta(t, 0, Miles(p, p), 0.001)
}

func TestMiles_Symmetric(t *testing.T) {
	a := Coordinate{Lat: 40.0, Lng: -75.0}
	b := Coordinate{Lat: 40.0290, Lng: -75.0}
	assert.InDelta(t, Miles(a, b), Miles(b, a), 1e-9)

	// One degree of latitude is ~69 miles, so 0.029° ≈ 2 miles.
	assert.InDelta(t, 2.0, Miles(a, b), 0.01)
}
