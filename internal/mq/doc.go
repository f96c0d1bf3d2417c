// Package mq: общая очередь задач поверх RabbitMQ.
//
// Используется, когда воркеры запускаются отдельными процессами
// (kannon run --runtime process): очередь внутри процесса им недоступна.
//
// Структура:
//   - connection.go: соединение с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go:   exchange, очередь run'а, DLQ
//   - publisher.go:  публикация элементов очереди
//   - receiver.go:   получение элементов с ручным ack
//   - queue.go:      RunQueue, реализация queue.Queue
//
// Типы сообщений:
//   - task.ready:      задача для обработки
//   - worker.shutdown: sentinel, получивший его воркер завершается
//
// На каждый run объявляется своя очередь kannon.tasks.<run_id>,
// привязанная к exchange kannon.tasks по ключу run_id.
// Драйвер удаляет очередь после завершения всех воркеров.
//
// Воркер получает сообщения с prefetch 1: неподтверждённым у него
// может быть не больше одного элемента. Всё, что брокер успел выдать
// завершившемуся воркеру сверх sentinel'а, возвращается в очередь
// при закрытии канала.
package mq
