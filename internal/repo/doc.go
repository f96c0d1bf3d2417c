// Package repo: журнал run'ов в PostgreSQL (pgx).
//
// Журнал необязателен: он включается флагом --db-url. Без него
// стратегии работают с worker.Recorder == nil.
//
// Таблицы:
//   - runs: один run пакетной генерации (статус, параметры, ошибка)
//   - task_attempts: одна обработка задачи воркером; (run_id, name) уникальны,
//     повторов нет
//
// Схема создаётся EnsureSchema (CREATE ... IF NOT EXISTS).
package repo
