package domain

// ItemKind различает элементы очереди задач.
type ItemKind string

const (
	// ItemTask: элемент несёт задачу.
	ItemTask ItemKind = "task"

	// ItemShutdown: sentinel, воркер должен завершиться.
	ItemShutdown ItemKind = "shutdown"
)

// QueueItem: элемент общей очереди, tagged union {Task, Shutdown}.
//
// Task заполнен только для ItemTask. На каждый запущенный воркер
// в очередь кладётся ровно один ItemShutdown.
type QueueItem struct {
	Kind ItemKind `json:"kind"`
	Task *Task    `json:"task,omitempty"`
}

// TaskItem оборачивает задачу в элемент очереди.
func TaskItem(t Task) QueueItem {
	return QueueItem{Kind: ItemTask, Task: &t}
}

// ShutdownItem возвращает sentinel.
func ShutdownItem() QueueItem {
	return QueueItem{Kind: ItemShutdown}
}

// IsShutdown возвращает true для sentinel.
func (i QueueItem) IsShutdown() bool {
	return i.Kind == ItemShutdown
}
