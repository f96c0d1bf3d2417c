package config

import "time"

// Ключи конфигурации (совпадают с именами флагов).
const (
	KeyConfig      = "config"
	KeyDataset     = "dataset"
	KeyStyle       = "style"
	KeyOutput      = "output"
	KeyIterations  = "iterations"
	KeyParallel    = "parallel"
	KeyExclusive   = "exclusive"
	KeyRuntime     = "runtime"
	KeyBrokerURL   = "broker-url"
	KeyRedisAddr   = "redis-addr"
	KeyLockTTL     = "lock-ttl"
	KeyDBURL       = "db-url"
	KeyMetricsAddr = "metrics-addr"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyCron        = "cron"
	KeyTimezone    = "timezone"
	KeyMaxRuns     = "max-runs"
)

// Среды выполнения воркеров.
const (
	RuntimeInProc  = "inproc"
	RuntimeProcess = "process"
)

// EnvPrefix: префикс переменных окружения.
const EnvPrefix = "KANNON"

// Config: конфигурация kannon.
type Config struct {
	// Dataset: путь к входному датасету.
	Dataset string `mapstructure:"dataset"`

	Style      string `mapstructure:"style" validate:"oneof=ukiyo-e sumi-e minimalist"`
	Output     string `mapstructure:"output" validate:"required"`
	Iterations int    `mapstructure:"iterations" validate:"gte=0"`

	// Parallel: число воркеров; 0 означает последовательный режим.
	Parallel int `mapstructure:"parallel" validate:"gte=0"`

	// Exclusive: что выполняется внутри эксклюзивной области.
	Exclusive string `mapstructure:"exclusive" validate:"oneof=pipeline persist"`

	// Runtime: воркеры-горутины (inproc) или процессы (process).
	Runtime   string        `mapstructure:"runtime" validate:"oneof=inproc process"`
	BrokerURL string        `mapstructure:"broker-url" validate:"required_if=Runtime process"`
	RedisAddr string        `mapstructure:"redis-addr" validate:"required_if=Runtime process"`
	LockTTL   time.Duration `mapstructure:"lock-ttl" validate:"gt=0"`

	// DBURL: журнал run'ов в PostgreSQL (опционально).
	DBURL string `mapstructure:"db-url"`

	// MetricsAddr: адрес сервера /healthz, /metrics, /status (опционально).
	MetricsAddr string `mapstructure:"metrics-addr" validate:"omitempty,hostname_port"`

	LogLevel  string `mapstructure:"log-level" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	LogFormat string `mapstructure:"log-format" validate:"oneof=text json"`

	// Расписание (kannon schedule).
	Cron     string `mapstructure:"cron" validate:"omitempty,cron"`
	Timezone string `mapstructure:"timezone" validate:"omitempty,timezone"`
	MaxRuns  int    `mapstructure:"max-runs" validate:"gte=0"`
}

// IsParallel возвращает true для параллельного режима.
func (c *Config) IsParallel() bool {
	return c.Parallel > 0
}

// defaults: значения по умолчанию.
var defaults = map[string]any{
	KeyStyle:      "ukiyo-e",
	KeyOutput:     "output",
	KeyIterations: 3,
	KeyParallel:   0,
	KeyExclusive:  "pipeline",
	KeyRuntime:    RuntimeInProc,
	KeyLockTTL:    5 * time.Minute,
	KeyLogLevel:   "INFO",
	KeyLogFormat:  "text",
	KeyMaxRuns:    0,
}
