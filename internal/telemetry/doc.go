// Package telemetry обеспечивает наблюдаемость Kannon.
//
// Включает:
//   - logging.go: structured logging через slog
//   - metrics.go: Prometheus метрики задач, воркеров и эксклюзивной области
//
// Воркеры-процессы наследуют формат логирования от родительского процесса
// через флаги --log-level и --log-format.
package telemetry
