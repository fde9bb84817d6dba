// Package geo provides great-circle distance and score-scaling helpers.
package geo

import "math"

const earthRadiusKM = 6371.0

// DistanceKM returns the haversine great-circle distance in kilometers
// between two WGS84 coordinates in decimal degrees.
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	rLat1 := radians(lat1)
	rLat2 := radians(lat2)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(rLat1)*math.Cos(rLat2)*sinLon*sinLon
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKM * c
}

// LinearScale maps x onto [0,1] linearly over [min, max], clamping outside
// the range. With reverse=true larger x yields smaller scores.
func LinearScale(x, min, max float64, reverse bool) float64 {
	if min == max {
		return 0.0
	}
	v := (x - min) / (max - min)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if reverse {
		return 1.0 - v
	}
	return v
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
