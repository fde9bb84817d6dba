package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/silverbridge/seniorfit-cli/internal/recommend"
)

// Config holds the full application configuration.
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	KMA         KMAConfig         `yaml:"kma" mapstructure:"kma"`
	OpenWeather OpenWeatherConfig `yaml:"openweather" mapstructure:"openweather"`
	Location    LocationConfig    `yaml:"location" mapstructure:"location"`
	Recommend   RecommendConfig   `yaml:"recommend" mapstructure:"recommend"`
	Datasets    DatasetConfig     `yaml:"datasets" mapstructure:"datasets"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the rotation-history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// KMAConfig holds the forecast API credentials.
type KMAConfig struct {
	ServiceKey string `yaml:"service_key" mapstructure:"service_key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
}

// OpenWeatherConfig holds the air-quality API credentials.
type OpenWeatherConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// LocationConfig is the default query location when none is given.
type LocationConfig struct {
	Lat float64 `yaml:"lat" mapstructure:"lat"`
	Lon float64 `yaml:"lon" mapstructure:"lon"`
}

// RecommendConfig configures the recommendation pipeline.
type RecommendConfig struct {
	TopK          int               `yaml:"top_k" mapstructure:"top_k"`
	MaxRadiusKM   float64           `yaml:"max_radius_km" mapstructure:"max_radius_km"`
	Weights       recommend.Weights `yaml:"weights" mapstructure:"weights"`
	GoalTablePath string            `yaml:"goal_table_path" mapstructure:"goal_table_path"`
}

// DatasetConfig points at the facility and video data files.
type DatasetConfig struct {
	Facilities string `yaml:"facilities" mapstructure:"facilities"`
	Videos     string `yaml:"videos" mapstructure:"videos"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SENIORFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "rotation.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("location.lat", 37.5665)
	v.SetDefault("location.lon", 126.9780)
	v.SetDefault("recommend.top_k", 5)
	v.SetDefault("recommend.max_radius_km", 20.0)
	v.SetDefault("recommend.weights.distance", 0.35)
	v.SetDefault("recommend.weights.goal_match", 0.25)
	v.SetDefault("recommend.weights.weather_suitability", 0.20)
	v.SetDefault("recommend.weights.senior_friendly", 0.10)
	v.SetDefault("recommend.weights.intensity_fit", 0.10)
	v.SetDefault("datasets.facilities", "data/facilities.json")
	v.SetDefault("datasets.videos", "data/videos.json")
	v.SetDefault("kma.base_url", "https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0")
	v.SetDefault("openweather.base_url", "https://api.openweathermap.org/data/2.5")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Recommend.Weights.Validate(); err != nil {
		return nil, eris.Wrap(err, "config: scoring weights")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
