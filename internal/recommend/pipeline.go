package recommend

import (
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/geo"
	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// Options configures a Pipeline.
type Options struct {
	Weights     Weights
	GoalTable   GoalTable
	TopK        int
	MaxRadiusKM float64
}

// Pipeline runs the full recommendation flow over an immutable candidate
// snapshot: distance annotation, health and weather filtering, radius
// expansion, scoring, and assembly. Safe for concurrent use; candidates are
// only ever filtered and copied, never mutated.
type Pipeline struct {
	weights     Weights
	goals       GoalTable
	topK        int
	maxRadiusKM float64
}

// New builds a Pipeline, filling unset options with defaults.
func New(opts Options) (*Pipeline, error) {
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	if opts.GoalTable == nil {
		opts.GoalTable = DefaultGoalTable()
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.MaxRadiusKM <= 0 {
		opts.MaxRadiusKM = 20.0
	}
	return &Pipeline{
		weights:     opts.Weights,
		goals:       opts.GoalTable,
		topK:        opts.TopK,
		maxRadiusKM: opts.MaxRadiusKM,
	}, nil
}

// Recommend produces up to topK ranked recommendations for the profile at
// the given location under the given weather. topK <= 0 uses the configured
// default. An empty candidate snapshot yields an empty list, not an error.
func (p *Pipeline) Recommend(profile model.UserProfile, loc model.Location, weather model.WeatherSnapshot, candidates []model.Candidate, topK int) []model.Recommendation {
	if topK <= 0 {
		topK = p.topK
	}
	log := zap.L().With(zap.Int("candidates", len(candidates)), zap.Int("top_k", topK))

	if len(candidates) == 0 {
		log.Debug("recommend: empty candidate snapshot")
		return []model.Recommendation{}
	}

	// Rule filters run before the radius search so health and weather
	// constraints narrow the pool first, in that order.
	filtered := FilterByHealth(candidates, profile)
	filtered = FilterByWeather(filtered, weather)
	if len(filtered) == 0 {
		log.Info("recommend: no candidates survived rule filters")
		return []model.Recommendation{}
	}

	located := make([]Located, 0, len(filtered))
	for _, c := range filtered {
		located = append(located, Located{
			Candidate:  c,
			DistanceKM: geo.DistanceKM(loc.Lat, loc.Lon, c.Location.Lat, c.Location.Lon),
		})
	}

	within, mode := ExpandRadius(located, topK, p.maxRadiusKM)
	log.Debug("recommend: radius search done",
		zap.String("mode", string(mode)),
		zap.Int("in_range", len(within)),
	)

	scored := make([]Scored, 0, len(within))
	for _, c := range within {
		scored = append(scored, Scored{
			Located:   c,
			Breakdown: computeScore(c, profile, weather, p.weights, p.goals),
		})
	}

	recs := Assemble(scored, profile, weather, topK)
	log.Info("recommend: assembled results", zap.Int("results", len(recs)))
	return recs
}
