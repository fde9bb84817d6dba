package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

var (
	recAge    string
	recIssues []string
	recGoals  []string
	recEnv    string
	recLat    float64
	recLon    float64
	recTopK   int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend nearby exercise programs for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		loc := queryLocation(recLat, recLon)
		snapshot := env.Fetcher.Fetch(ctx, loc)

		profile := model.UserProfile{
			AgeGroup:     model.AgeGroup(recAge),
			HealthIssues: recIssues,
			Goals:        recGoals,
			PreferredEnv: model.EnvPreference(recEnv),
		}

		results := env.Pipeline.Recommend(profile, loc, snapshot, env.Candidates, recTopK)

		zap.L().Info("recommendation complete",
			zap.Int("results", len(results)),
			zap.Float64("lat", loc.Lat),
			zap.Float64("lon", loc.Lon),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

// queryLocation falls back to the configured default location when the
// flags were left at zero.
func queryLocation(lat, lon float64) model.Location {
	if lat == 0 && lon == 0 {
		return model.Location{Lat: cfg.Location.Lat, Lon: cfg.Location.Lon}
	}
	return model.Location{Lat: lat, Lon: lon}
}

func init() {
	recommendCmd.Flags().StringVar(&recAge, "age", string(model.Age65to69), "age group (60-64, 65-69, 70-74, 75+)")
	recommendCmd.Flags().StringSliceVar(&recIssues, "issues", nil, "health issues (knee_pain, hypertension, heart_disease)")
	recommendCmd.Flags().StringSliceVar(&recGoals, "goals", nil, "exercise goals (blood_pressure, weight, strength, flexibility, social)")
	recommendCmd.Flags().StringVar(&recEnv, "env", string(model.EnvAny), "preferred environment (indoor, outdoor, any)")
	recommendCmd.Flags().Float64Var(&recLat, "lat", 0, "query latitude (default from config)")
	recommendCmd.Flags().Float64Var(&recLon, "lon", 0, "query longitude (default from config)")
	recommendCmd.Flags().IntVar(&recTopK, "top-k", 0, "number of results (default from config)")
	rootCmd.AddCommand(recommendCmd)
}
