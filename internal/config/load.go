package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shaiso/Kannon/internal/scheduler"
)

// ErrInvalidConfig: конфигурация не прошла проверку.
var ErrInvalidConfig = errors.New("invalid configuration")

// envKeys: ключи, которые читаются из окружения даже без флага.
var envKeys = []string{
	KeyDataset, KeyStyle, KeyOutput, KeyIterations, KeyParallel, KeyExclusive,
	KeyRuntime, KeyBrokerURL, KeyRedisAddr, KeyLockTTL, KeyDBURL, KeyMetricsAddr,
	KeyLogLevel, KeyLogFormat, KeyCron, KeyTimezone, KeyMaxRuns,
}

// New создаёт viper с умолчаниями и окружением KANNON_*.
func New() *viper.Viper {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range envKeys {
		// BindEnv с одним аргументом не возвращает ошибку.
		_ = v.BindEnv(key)
	}

	return v
}

// BindFlags привязывает флаги команды к ключам конфигурации.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}

// Load читает файл конфигурации (если задан --config), собирает Config
// и проверяет его. required перечисляет ключи, обязательные для команды.
func Load(v *viper.Viper, required ...string) (*Config, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg, required...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет cfg по тегам и наличие обязательных ключей.
func Validate(cfg *Config, required ...string) error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	var problems []string

	for _, key := range required {
		value, ok := requiredValue(cfg, key)
		if !ok {
			return fmt.Errorf("%w: unknown required key %q", ErrInvalidConfig, key)
		}
		if err := validate.Var(value, "required"); err != nil {
			problems = append(problems, fmt.Sprintf("--%s is required", key))
		}
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Сообщения об ошибках используют имена флагов.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" {
			return f.Name
		}
		return name
	})

	err := validate.RegisterValidation("cron", func(fl validator.FieldLevel) bool {
		return scheduler.ValidateCronExpr(fl.Field().String()) == nil
	})
	if err != nil {
		return nil, fmt.Errorf("register cron validation: %w", err)
	}
	return validate, nil
}

func requiredValue(cfg *Config, key string) (string, bool) {
	switch key {
	case KeyDataset:
		return cfg.Dataset, true
	case KeyCron:
		return cfg.Cron, true
	case KeyOutput:
		return cfg.Output, true
	case KeyDBURL:
		return cfg.DBURL, true
	default:
		return "", false
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("--%s must be one of [%s], got %q", fe.Field(), fe.Param(), fmt.Sprint(fe.Value()))
	case "required", "required_if":
		return fmt.Sprintf("--%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("--%s must be >= %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("--%s must be > %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("--%s is not a valid %s: %q", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value()))
	}
}
