package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/dataset"
	"github.com/silverbridge/seniorfit-cli/internal/model"
	"github.com/silverbridge/seniorfit-cli/internal/recommend"
	"github.com/silverbridge/seniorfit-cli/internal/rotation"
	"github.com/silverbridge/seniorfit-cli/internal/store"
	"github.com/silverbridge/seniorfit-cli/internal/weather"
	"github.com/silverbridge/seniorfit-cli/pkg/kma"
	"github.com/silverbridge/seniorfit-cli/pkg/openweather"
)

// appEnv holds the initialized store, datasets, and engines shared by the
// recommend/rotate/notify/serve commands.
type appEnv struct {
	Store      store.RotationStore
	Pipeline   *recommend.Pipeline
	Selector   *rotation.Selector
	Notifier   *rotation.Notifier
	Fetcher    *weather.Fetcher
	Candidates []model.Candidate
	Videos     []model.ExerciseVideo
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens the rotation-history backend named by config.
func initStore(ctx context.Context) (store.RotationStore, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.Path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "memory":
		return store.NewMemory(), nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initEnv sets up the store, loads the datasets, and builds the
// recommendation pipeline and rotation selector. Callers should defer
// env.Close().
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	candidates, err := dataset.LoadCandidates(cfg.Datasets.Facilities)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	videos, err := dataset.LoadVideos(cfg.Datasets.Videos)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	zap.L().Info("datasets loaded",
		zap.Int("candidates", len(candidates)),
		zap.Int("videos", len(videos)),
	)

	goalTable := recommend.DefaultGoalTable()
	if cfg.Recommend.GoalTablePath != "" {
		goalTable, err = recommend.LoadGoalTable(cfg.Recommend.GoalTablePath)
		if err != nil {
			zap.L().Warn("goal table not loaded, using defaults", zap.Error(err))
			goalTable = recommend.DefaultGoalTable()
		}
	}

	pipeline, err := recommend.New(recommend.Options{
		Weights:     cfg.Recommend.Weights,
		GoalTable:   goalTable,
		TopK:        cfg.Recommend.TopK,
		MaxRadiusKM: cfg.Recommend.MaxRadiusKM,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	// Weather providers are optional. Without keys the fetcher degrades to
	// a neutral snapshot.
	var kmaClient kma.Client
	if cfg.KMA.ServiceKey != "" {
		kmaClient = kma.NewClient(cfg.KMA.ServiceKey, kma.WithBaseURL(cfg.KMA.BaseURL))
	} else {
		zap.L().Debug("SENIORFIT_KMA_SERVICE_KEY not set, nowcast disabled")
	}
	var airClient openweather.Client
	if cfg.OpenWeather.Key != "" {
		airClient = openweather.NewClient(cfg.OpenWeather.Key, openweather.WithBaseURL(cfg.OpenWeather.BaseURL))
	} else {
		zap.L().Debug("SENIORFIT_OPENWEATHER_KEY not set, air quality disabled")
	}

	selector := rotation.NewSelector(st)

	return &appEnv{
		Store:      st,
		Pipeline:   pipeline,
		Selector:   selector,
		Notifier:   rotation.NewNotifier(selector),
		Fetcher:    weather.NewFetcher(kmaClient, airClient),
		Candidates: candidates,
		Videos:     videos,
	}, nil
}
