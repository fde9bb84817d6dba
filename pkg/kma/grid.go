package kma

import "math"

// Lambert conformal conic projection parameters for the KMA forecast grid.
const (
	gridEarthRadiusKM = 6371.00877
	gridSpacingKM     = 5.0
	projLat1Deg       = 30.0
	projLat2Deg       = 60.0
	originLonDeg      = 126.0
	originLatDeg      = 38.0
	originX           = 43
	originY           = 136
)

// LatLonToGrid converts WGS84 coordinates to the KMA nx/ny grid cell.
func LatLonToGrid(lat, lon float64) (nx, ny int) {
	const degrad = math.Pi / 180.0

	re := gridEarthRadiusKM / gridSpacingKM
	slat1 := projLat1Deg * degrad
	slat2 := projLat2Deg * degrad
	olon := originLonDeg * degrad
	olat := originLatDeg * degrad

	sn := math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
	sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)
	sf := math.Tan(math.Pi*0.25 + slat1*0.5)
	sf = math.Pow(sf, sn) * math.Cos(slat1) / sn
	ro := math.Tan(math.Pi*0.25 + olat*0.5)
	ro = re * sf / math.Pow(ro, sn)

	ra := math.Tan(math.Pi*0.25 + lat*degrad*0.5)
	ra = re * sf / math.Pow(ra, sn)
	theta := lon*degrad - olon
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= sn

	nx = int(ra*math.Sin(theta) + originX + 0.5)
	ny = int(ro - ra*math.Cos(theta) + originY + 0.5)
	return nx, ny
}
