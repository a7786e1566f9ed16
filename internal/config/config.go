package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/workouts-backend-go/internal/models"
	"github.com/jengzang/workouts-backend-go/internal/spatial"
	"github.com/jengzang/workouts-backend-go/pkg/logger"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Config 应用配置
type Config struct {
	Port              string
	DBPath            string
	StoreBackend      string // sqlite or badger
	BadgerPath        string
	StorageQuotaBytes int // 0 disables the quota
	LogLevel          string
	MapZoom           int
	Home              *models.Coordinates // nil when no fixed position is configured
	RateLimit         int                 // mutating requests per window per client
	RateWindow        time.Duration
}

// Load 加载配置
// Values come from the environment, optionally layered over the file named by CONFIG_FILE.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", ":8080")
	v.SetDefault("db_path", "./data/workouts/workouts.db")
	v.SetDefault("store_backend", BackendSQLite)
	v.SetDefault("badger_path", "./data/workouts/badger")
	v.SetDefault("storage_quota_bytes", 5*1024*1024)
	v.SetDefault("log_level", logger.LevelInfo)
	v.SetDefault("map_zoom", 13)
	v.SetDefault("rate_limit", 120)
	v.SetDefault("rate_window", time.Minute)

	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:              v.GetString("port"),
		DBPath:            v.GetString("db_path"),
		StoreBackend:      strings.ToLower(v.GetString("store_backend")),
		BadgerPath:        v.GetString("badger_path"),
		StorageQuotaBytes: v.GetInt("storage_quota_bytes"),
		LogLevel:          strings.ToUpper(v.GetString("log_level")),
		MapZoom:           v.GetInt("map_zoom"),
		RateLimit:         v.GetInt("rate_limit"),
		RateWindow:        v.GetDuration("rate_window"),
	}

	if v.GetString("home_lat") != "" || v.GetString("home_lng") != "" {
		home := models.Coordinates{v.GetFloat64("home_lat"), v.GetFloat64("home_lng")}
		if !spatial.Valid(home) {
			return nil, fmt.Errorf("invalid home position %v", home)
		}
		cfg.Home = &home
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if !logger.ValidateLogLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.StorageQuotaBytes < 0 {
		return fmt.Errorf("storage quota must not be negative")
	}
	if c.MapZoom < 0 || c.MapZoom > 19 {
		return fmt.Errorf("map zoom %d out of range", c.MapZoom)
	}
	if c.RateLimit < 1 || c.RateWindow <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}
