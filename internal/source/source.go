// Package source строит фиксированный набор задач для run.
package source

import "github.com/shaiso/Kannon/internal/domain"

// BuildTasks возвращает ровно iterations задач с именами
// story_0 ... story_{iterations-1} в этом порядке.
//
// Побочных эффектов нет. Отрицательное значение трактуется как 0.
func BuildTasks(dataset string, iterations int) []domain.Task {
	if iterations < 0 {
		iterations = 0
	}

	tasks := make([]domain.Task, 0, iterations)
	for i := range iterations {
		tasks = append(tasks, domain.Task{
			Dataset: dataset,
			Name:    domain.TaskName(i),
		})
	}
	return tasks
}
