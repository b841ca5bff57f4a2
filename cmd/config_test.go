package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"deliveryplanner/internal/core/domain/services"
	"deliveryplanner/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ConfigFromEnv(env(nil))

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, "disable", cfg.DBSslMode)
		assert.Equal(t, jobs.DefaultPlanningSchedule, cfg.PlanningCron)
		assert.Empty(t, cfg.RedisURL)
		assert.Equal(t, DefaultPlannerConfig(), cfg.Planner)
	})

	t.Run("environment and planner file", func(t *testing.T) {
		path := writeFile(t, "loop_routes: true\nplan_rate_per_second: 1.5\n")

		cfg, err := ConfigFromEnv(env(map[string]string{
			"HTTP_PORT":      "9090",
			"DB_HOST":        "db",
			"DB_PORT":        "6432",
			"DB_USER":        "planner",
			"DB_PASSWORD":    "secret",
			"DB_NAME":        "deliveries",
			"REDIS_URL":      "redis://cache:6379/0",
			"PLANNING_CRON":  "*/30 * * * * *",
			"PLANNER_CONFIG": path,
		}))

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
		assert.Equal(t, "*/30 * * * * *", cfg.PlanningCron)
		assert.Equal(t, "host=db port=6432 user=planner password=secret dbname=deliveries sslmode=disable", cfg.DSN())
		assert.True(t, cfg.Planner.LoopRoutes)
		assert.InDelta(t, 1.5, cfg.Planner.PlanRatePerSecond, 1e-9)
	})

	t.Run("missing planner file", func(t *testing.T) {
		_, err := ConfigFromEnv(env(map[string]string{"PLANNER_CONFIG": filepath.Join(t.TempDir(), "absent.yaml")}))

		require.Error(t, err)
	})
}

func TestLoadPlannerConfig(t *testing.T) {
	t.Run("keys override defaults", func(t *testing.T) {
		path := writeFile(t, `
order_limits:
  8: 12
  7: 15
late_order_grace: 90m
geo_cache_ttl: 1h
log_level: debug
`)

		cfg, err := LoadPlannerConfig(path)

		require.NoError(t, err)
		assert.Equal(t, map[int]int{8: 12, 7: 15}, cfg.OrderLimits)
		assert.Equal(t, 90*time.Minute, cfg.LateOrderGrace)
		assert.Equal(t, time.Hour, cfg.GeoCacheTTL)
		assert.Equal(t, 1, cfg.PlanBurst)

		opts, err := cfg.PlannerOptions()
		require.NoError(t, err)
		assert.Equal(t, 12, opts.Limits.Limit(8))
		assert.Equal(t, 15, opts.Limits.Limit(7))
		assert.Equal(t, 90*time.Minute, opts.LateOrderGrace)

		level, err := cfg.SlogLevel()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		cfg, err := LoadPlannerConfig(writeFile(t, ""))

		require.NoError(t, err)
		assert.Equal(t, DefaultPlannerConfig(), cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadPlannerConfig(writeFile(t, "loop: true\n"))

		require.Error(t, err)
	})

	t.Run("growing limits are rejected", func(t *testing.T) {
		cfg, err := LoadPlannerConfig(writeFile(t, "order_limits:\n  8: 500\n"))
		require.NoError(t, err)

		_, err = cfg.PlannerOptions()

		require.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := DefaultPlannerConfig()
		cfg.LogLevel = "loud"

		_, err := cfg.SlogLevel()

		require.Error(t, err)
	})

	t.Run("defaults match the planner", func(t *testing.T) {
		opts, err := DefaultPlannerConfig().PlannerOptions()

		require.NoError(t, err)
		assert.Equal(t, services.DefaultPlannerOptions(), opts)
	})
}
