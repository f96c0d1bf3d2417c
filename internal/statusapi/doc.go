// Package statusapi: HTTP-сервер состояния run'а.
//
// Маршруты (chi):
//
//	GET /healthz  "ok"
//	GET /metrics  Prometheus метрики
//	GET /status   снимок текущего run'а (JSON)
//
// Снимок ведёт Tracker, который подключается к воркерам как worker.Recorder.
// Воркеры-процессы пишут попытки в свой процесс, поэтому при
// --runtime process счётчики обновляются только в конце run'а (Tracker.End).
//
// Сервер запускается командой kannon run при заданном --metrics-addr.
package statusapi
