package model

// Precipitation-type codes as reported by the KMA nowcast (PTY category).
const (
	PrecipNone        = 0
	PrecipRain        = 1
	PrecipRainSnow    = 2
	PrecipSnow        = 3
	PrecipShower      = 4
	PrecipDrizzle     = 5
	PrecipDrizzleSnow = 6
	PrecipFlurry      = 7
)

// WeatherSnapshot is the already-resolved weather picture a request is
// evaluated against. Produced by the fetcher collaborator; the core never
// calls out itself.
type WeatherSnapshot struct {
	Temp       float64 `json:"temp"`        // °C
	RainProb   float64 `json:"rain_prob"`   // [0,1]
	PM10       float64 `json:"pm10"`        // µg/m³
	PrecipType int     `json:"precip_type"` // PTY code, 0 = none
	WindSpeed  float64 `json:"wind_speed"`  // m/s
	Daytime    bool    `json:"is_daytime"`
}

// NeutralSnapshot is the documented fallback used when no weather provider
// is configured or reachable: a mild, dry, clean-air day.
func NeutralSnapshot(daytime bool) WeatherSnapshot {
	return WeatherSnapshot{
		Temp:     20.0,
		RainProb: 0.0,
		PM10:     50.0,
		Daytime:  daytime,
	}
}
