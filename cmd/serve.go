package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/model"
	"github.com/silverbridge/seniorfit-cli/internal/risk"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/api/recommend", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				AgeGroup     string   `json:"age_group"`
				HealthIssues []string `json:"health_issues"`
				Goals        []string `json:"goals"`
				PreferredEnv string   `json:"preference_env"`
				Lat          float64  `json:"lat"`
				Lon          float64  `json:"lon"`
				TopK         int      `json:"top_k"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}

			loc := queryLocation(body.Lat, body.Lon)
			snapshot := env.Fetcher.Fetch(req.Context(), loc)

			profile := model.UserProfile{
				AgeGroup:     model.AgeGroup(body.AgeGroup),
				HealthIssues: body.HealthIssues,
				Goals:        body.Goals,
				PreferredEnv: model.EnvPreference(body.PreferredEnv),
			}
			results := env.Pipeline.Recommend(profile, loc, snapshot, env.Candidates, body.TopK)
			writeJSON(w, http.StatusOK, results)
		})

		r.Post("/api/notify", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				UserID            string  `json:"user_id"`
				Lat               float64 `json:"lat"`
				Lon               float64 `json:"lon"`
				HasChronicDisease bool    `json:"has_chronic_disease"`
				AirQualityRisky   bool    `json:"air_quality_risky"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if body.UserID == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
				return
			}

			loc := queryLocation(body.Lat, body.Lon)
			snapshot := env.Fetcher.Fetch(req.Context(), loc)

			out, err := env.Notifier.Notify(req.Context(), body.UserID, risk.Input{
				Snapshot:          snapshot,
				HasChronicDisease: body.HasChronicDisease,
				AirQualityRisky:   body.AirQualityRisky,
			}, env.Videos)
			if err != nil {
				zap.L().Error("notify request failed", zap.String("user_id", body.UserID), zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "notification failed"})
				return
			}
			writeJSON(w, http.StatusOK, out)
		})

		r.Post("/api/rotate", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				UserID string `json:"user_id"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.UserID == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
				return
			}

			entry, err := env.Selector.ChooseForToday(req.Context(), body.UserID, env.Videos)
			if err != nil {
				zap.L().Error("rotate request failed", zap.String("user_id", body.UserID), zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "rotation failed"})
				return
			}
			writeJSON(w, http.StatusOK, entry)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go gracefulShutdown(ctx, srv)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// gracefulShutdown blocks until ctx is canceled, then drains in-flight
// requests under a fresh timeout. The signal context is already canceled
// at that point, so it cannot serve as the drain deadline.
func gracefulShutdown(ctx context.Context, srv *http.Server) {
	<-ctx.Done()
	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
