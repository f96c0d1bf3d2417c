// Package cli реализует команды kannon.
//
// # Команды
//
//   - run: один пакет задач (последовательно или N воркерами)
//   - worker: воркер-процесс, запускается из run --runtime process
//   - schedule: пакеты по cron-расписанию
//   - status: снимок текущего run'а с сервера состояния
//   - history: журнал run'ов из PostgreSQL
//
// Каждая команда создаётся фабричной функцией (NewRunCmd и т.д.),
// принимающей outputFn: замыкание для ленивого создания Output после
// парсинга PersistentFlags. Конфигурация каждой команды собирается
// через internal/config из флагов, KANNON_* и файла --config.
//
// # Runtime
//
// Runtime держит подключения команды (PostgreSQL, RabbitMQ, Redis),
// метрики и Tracker сервера состояния, и выполняет один пакет
// (RunBatch) или один воркер (ServeWorker).
//
// # Output
//
// Данные выводятся в stdout (таблица или JSON с --json), сообщения в
// stderr. Воркер-процесс пишет в stdout только JSON-отчёт.
package cli
