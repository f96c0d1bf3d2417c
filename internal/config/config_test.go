package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Load Tests ---

func TestLoad_Defaults(t *testing.T) {
	v := New()
	v.Set(KeyDataset, "data.csv")

	cfg, err := Load(v, KeyDataset)
	require.NoError(t, err)

	assert.Equal(t, "data.csv", cfg.Dataset)
	assert.Equal(t, "ukiyo-e", cfg.Style)
	assert.Equal(t, "output", cfg.Output)
	assert.Equal(t, 3, cfg.Iterations)
	assert.Equal(t, 0, cfg.Parallel)
	assert.False(t, cfg.IsParallel())
	assert.Equal(t, "pipeline", cfg.Exclusive)
	assert.Equal(t, RuntimeInProc, cfg.Runtime)
	assert.Equal(t, 5*time.Minute, cfg.LockTTL)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MissingDataset(t *testing.T) {
	_, err := Load(New(), KeyDataset)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "--dataset is required")
}

func TestLoad_DatasetNotRequired(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Empty(t, cfg.Dataset)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("KANNON_DATASET", "env.csv")
	t.Setenv("KANNON_PARALLEL", "4")
	t.Setenv("KANNON_STYLE", "sumi-e")
	t.Setenv("KANNON_LOCK_TTL", "30s")

	cfg, err := Load(New(), KeyDataset)
	require.NoError(t, err)

	assert.Equal(t, "env.csv", cfg.Dataset)
	assert.Equal(t, 4, cfg.Parallel)
	assert.True(t, cfg.IsParallel())
	assert.Equal(t, "sumi-e", cfg.Style)
	assert.Equal(t, 30*time.Second, cfg.LockTTL)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("KANNON_PARALLEL", "4")

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.String(KeyDataset, "", "")
	fs.Int(KeyParallel, 0, "")
	require.NoError(t, fs.Parse([]string{"--dataset", "flag.csv", "--parallel", "2"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v, KeyDataset)
	require.NoError(t, err)
	assert.Equal(t, "flag.csv", cfg.Dataset)
	assert.Equal(t, 2, cfg.Parallel)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kannon.yaml")
	content := "dataset: file.csv\nstyle: minimalist\niterations: 5\nexclusive: persist\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := New()
	v.Set(KeyConfig, path)

	cfg, err := Load(v, KeyDataset)
	require.NoError(t, err)
	assert.Equal(t, "file.csv", cfg.Dataset)
	assert.Equal(t, "minimalist", cfg.Style)
	assert.Equal(t, 5, cfg.Iterations)
	assert.Equal(t, "persist", cfg.Exclusive)
}

func TestLoad_ConfigFileMissing(t *testing.T) {
	v := New()
	v.Set(KeyConfig, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

// --- Validate Tests ---

func validConfig() *Config {
	return &Config{
		Dataset:   "data.csv",
		Style:     "ukiyo-e",
		Output:    "output",
		Exclusive: "pipeline",
		Runtime:   RuntimeInProc,
		LockTTL:   time.Minute,
		LogLevel:  "INFO",
		LogFormat: "text",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown style", mutate: func(c *Config) { c.Style = "cubism" }, wantErr: "--style must be one of"},
		{name: "negative parallel", mutate: func(c *Config) { c.Parallel = -1 }, wantErr: "--parallel must be >= 0"},
		{name: "negative iterations", mutate: func(c *Config) { c.Iterations = -2 }, wantErr: "--iterations must be >= 0"},
		{name: "unknown exclusive", mutate: func(c *Config) { c.Exclusive = "all" }, wantErr: "--exclusive must be one of"},
		{name: "unknown runtime", mutate: func(c *Config) { c.Runtime = "k8s" }, wantErr: "--runtime must be one of"},
		{
			name:    "process without broker",
			mutate:  func(c *Config) { c.Runtime = RuntimeProcess; c.RedisAddr = "localhost:6379" },
			wantErr: "--broker-url is required",
		},
		{
			name:    "process without redis",
			mutate:  func(c *Config) { c.Runtime = RuntimeProcess; c.BrokerURL = "amqp://localhost:5672/" },
			wantErr: "--redis-addr is required",
		},
		{
			name: "process complete",
			mutate: func(c *Config) {
				c.Runtime = RuntimeProcess
				c.BrokerURL = "amqp://localhost:5672/"
				c.RedisAddr = "localhost:6379"
			},
		},
		{name: "zero lock ttl", mutate: func(c *Config) { c.LockTTL = 0 }, wantErr: "--lock-ttl must be > 0"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "--log-format must be one of"},
		{name: "valid cron", mutate: func(c *Config) { c.Cron = "*/5 * * * *" }},
		{name: "descriptor cron", mutate: func(c *Config) { c.Cron = "@hourly" }},
		{name: "bad cron", mutate: func(c *Config) { c.Cron = "every minute" }, wantErr: "--cron is not a valid cron"},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: "--timezone is not a valid timezone"},
		{name: "metrics addr", mutate: func(c *Config) { c.MetricsAddr = "localhost:9090" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RequiredCron(t *testing.T) {
	err := Validate(validConfig(), KeyCron)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "--cron is required")
}

func TestValidate_UnknownRequiredKey(t *testing.T) {
	err := Validate(validConfig(), "colour")
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "unknown required key")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Style = "cubism"
	cfg.Parallel = -3

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--style")
	assert.Contains(t, err.Error(), "--parallel")
}
