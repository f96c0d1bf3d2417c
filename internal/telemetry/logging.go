package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ParseLevel разбирает уровень логирования.
// Возможные значения: DEBUG, INFO, WARN, ERROR (регистр не важен).
// По умолчанию: INFO
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerConfig: параметры логгера.
type LoggerConfig struct {
	Level  string
	Format string

	// Writer: куда писать (по умолчанию os.Stderr).
	Writer io.Writer
}

// SetupLogger инициализирует глобальный логгер.
//
// Формат:
//   - "text" (по умолчанию): человекочитаемый формат для CLI
//   - "json": для сбора логов воркеров-процессов
func SetupLogger(cfg LoggerConfig) *slog.Logger {
	logger := NewLogger(cfg)
	slog.SetDefault(logger)
	return logger
}

// NewLogger создаёт логгер, не трогая глобальный.
func NewLogger(cfg LoggerConfig) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

type ctxKey string

const (
	// CtxLogger: ключ для логгера в контексте.
	CtxLogger ctxKey = "logger"
)

// WithLogger добавляет логгер в контекст.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, CtxLogger, logger)
}

// FromContext извлекает логгер из контекста.
// Если логгер не найден, возвращает глобальный.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(CtxLogger).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithRunID возвращает логгер с добавленным run_id.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With("run_id", runID)
}

// WithWorkerID возвращает логгер с добавленным worker_id.
func WithWorkerID(logger *slog.Logger, workerID string) *slog.Logger {
	return logger.With("worker_id", workerID)
}

// WithTask возвращает логгер с добавленным task.
func WithTask(logger *slog.Logger, taskName string) *slog.Logger {
	return logger.With("task", taskName)
}
