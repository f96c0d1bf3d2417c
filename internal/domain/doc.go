// Package domain содержит модели данных Kannon.
//
//   - Task: описатель одной задачи (датасет + имя story_N)
//   - QueueItem: элемент очереди, задача или sentinel завершения
//   - Style: художественный стиль (ukiyo-e, sumi-e, minimalist)
//   - Run и TaskAttempt: записи журнала выполнения
package domain
