// Package strategy распределяет задачи run'а по исполнителям.
//
// # Sequential
//
// Задачи выполняются по одной в порядке списка в вызывающей горутине.
// Первая ошибка прерывает run: оставшиеся задачи не выполняются,
// ошибка возвращается с именем задачи.
//
// # Parallel
//
//  1. Launcher.Open создаёт общую очередь и эксклюзивную область
//  2. В очередь кладутся все задачи по порядку
//  3. Запускаются N воркеров (Launcher.Launch)
//  4. В очередь кладутся N sentinel'ов
//  5. Драйвер ждёт завершения всех воркеров
//
// Sentinel'ы кладутся после всех задач, поэтому при FIFO каждая задача
// будет получена раньше любого sentinel'а. Каждый воркер завершается,
// получив ровно один sentinel.
//
// Ошибки задач изолированы: run продолжается, а после завершения всех
// воркеров возвращается ErrTasksFailed вместе с ошибками задач.
//
// # Launchers
//
//   - GoroutineLauncher: воркеры-горутины, queue.Memory и lock.LocalGate
//   - ExecLauncher: воркеры-процессы "kannon worker", очередь в RabbitMQ
//     (mq.RunQueue) и область в Redis (lock.RedisGate)
package strategy
