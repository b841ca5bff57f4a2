package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"deliveryplanner/internal/core/domain/services"
	"deliveryplanner/internal/jobs"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	RedisURL          string
	PlanningCron      string
	PlannerConfigPath string
	Planner           PlannerConfig
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// PlannerConfig is the optional YAML tuning file named by PLANNER_CONFIG.
type PlannerConfig struct {
	// OrderLimits overrides entries of the order limit table by route length.
	OrderLimits       map[int]int   `yaml:"order_limits"`
	LateOrderGrace    time.Duration `yaml:"late_order_grace"`
	LoopRoutes        bool          `yaml:"loop_routes"`
	PlanRatePerSecond float64       `yaml:"plan_rate_per_second"`
	PlanBurst         int           `yaml:"plan_burst"`
	GeoCacheTTL       time.Duration `yaml:"geo_cache_ttl"`
	LogLevel          string        `yaml:"log_level"`
}

// DefaultPlannerConfig is used when no file is given and fills keys a file omits.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		LateOrderGrace:    services.DefaultLateOrderGrace,
		PlanRatePerSecond: 0.2,
		PlanBurst:         1,
		GeoCacheTTL:       24 * time.Hour,
		LogLevel:          "info",
	}
}

// PlannerOptions validates the limit overrides and builds the orchestrator options.
func (p PlannerConfig) PlannerOptions() (services.PlannerOptions, error) {
	limits, err := services.NewOrderLimits(p.OrderLimits)
	if err != nil {
		return services.PlannerOptions{}, err
	}
	if p.LateOrderGrace < 0 {
		return services.PlannerOptions{}, fmt.Errorf("late_order_grace must not be negative, got %s", p.LateOrderGrace)
	}
	return services.PlannerOptions{
		Limits:         limits,
		LateOrderGrace: p.LateOrderGrace,
		Loop:           p.LoopRoutes,
	}, nil
}

// SlogLevel parses LogLevel: debug, info, warn or error.
func (p PlannerConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(p.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// LoadPlannerConfig reads path on top of the defaults. Unknown keys are an
// error. An empty path returns the defaults.
func LoadPlannerConfig(path string) (PlannerConfig, error) {
	cfg := DefaultPlannerConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return PlannerConfig{}, fmt.Errorf("open planner config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return PlannerConfig{}, fmt.Errorf("decode planner config %s: %w", path, err)
	}
	return cfg, nil
}

// ConfigFromEnv assembles the configuration from environment variables and the
// planner file they point to.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:          withDefault(getenv("HTTP_PORT"), "8080"),
		DBHost:            withDefault(getenv("DB_HOST"), "localhost"),
		DBPort:            withDefault(getenv("DB_PORT"), "5432"),
		DBUser:            getenv("DB_USER"),
		DBPassword:        getenv("DB_PASSWORD"),
		DBName:            getenv("DB_NAME"),
		DBSslMode:         withDefault(getenv("DB_SSLMODE"), "disable"),
		RedisURL:          getenv("REDIS_URL"),
		PlanningCron:      withDefault(getenv("PLANNING_CRON"), jobs.DefaultPlanningSchedule),
		PlannerConfigPath: getenv("PLANNER_CONFIG"),
	}

	planner, err := LoadPlannerConfig(cfg.PlannerConfigPath)
	if err != nil {
		return Config{}, err
	}
	cfg.Planner = planner
	return cfg, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
