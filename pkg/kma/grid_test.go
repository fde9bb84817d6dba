package kma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatLonToGrid(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		nx, ny   int
	}{
		{"seoul city hall", 37.5665, 126.9780, 60, 127},
		{"busan", 35.1796, 129.0756, 98, 76},
		{"grid origin", 38.0, 126.0, 43, 136},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nx, ny := LatLonToGrid(tt.lat, tt.lon)
			assert.Equal(t, tt.nx, nx)
			assert.Equal(t, tt.ny, ny)
		})
	}
}
