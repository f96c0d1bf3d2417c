// Package lock реализует эксклюзивную область (exclusive region).
//
// Gate гарантирует, что в каждый момент времени внутри области находится
// не более одного держателя, во всех воркерах run'а.
//
// Реализации:
//
//   - LocalGate: для воркеров-горутин одного процесса (канал ёмкостью 1)
//   - RedisGate: для воркеров-процессов (SET NX PX + Lua compare-and-delete)
//
// Acquire блокируется до входа в область или отмены ctx.
// Release идемпотентен; воркер вызывает его через defer, поэтому
// область освобождается и при ошибке, и при панике тела задачи.
//
// Порядок входа в область не гарантируется (нет FIFO).
package lock
