// Package worker обрабатывает задачи из общей очереди.
//
// # Обзор
//
// Worker: потребитель общей очереди в параллельном режиме.
// Каждый воркер в цикле:
//
//  1. Получает элемент из очереди (блокирующе)
//  2. Sentinel: подтверждает и завершается
//  3. Задача: обрабатывает через Processor, подтверждает, продолжает
//
// Ошибка одной задачи не останавливает воркер: она попадает в Report,
// воркер переходит к следующему элементу. Так очередь всегда дочитывается
// до sentinel'ов и драйвер не зависает на ожидании.
//
// # Processor
//
// Processor выполняет тело одной задачи (pipeline.Body):
//
//   - входит в эксклюзивную область (lock.Gate), если она задана
//   - освобождает её через defer, в том числе при панике
//   - превращает панику тела в ErrTaskPanicked
//   - фиксирует попытку в Recorder и метриках
//
// Processor используется и воркерами, и последовательной стратегией
// (без Gate).
//
// # Эксклюзивная область
//
// Scope задаёт, что именно выполняется внутри области:
//
//   - ScopePipeline: всё тело задачи (по умолчанию)
//   - ScopePersist: только сохранение артефакта
//
// При ScopePipeline параллельный режим не ускоряет работу: тело задачи
// целиком сериализовано, параллельны только получение из очереди и логирование.
//
// # Пример
//
//	w := worker.New(worker.Config{
//	    ID:    1,
//	    Queue: q,
//	    Body:  p,
//	    Gate:  lock.NewLocalGate(),
//	})
//
//	report, err := w.Run(ctx)
package worker
