package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Kannon/internal/domain"
)

// Journal записывает ход run'а в БД.
//
// Реализует worker.Recorder для попыток задач.
type Journal struct {
	runs  *RunRepo
	tasks *TaskRepo
}

// NewJournal создаёт Journal поверх пула.
func NewJournal(pool *pgxpool.Pool) *Journal {
	return &Journal{
		runs:  NewRunRepo(pool),
		tasks: NewTaskRepo(pool),
	}
}

// RunCreated сохраняет новый run.
func (j *Journal) RunCreated(ctx context.Context, run *domain.Run) error {
	return j.runs.Create(ctx, run)
}

// RunUpdated сохраняет смену статуса run.
func (j *Journal) RunUpdated(ctx context.Context, run *domain.Run) error {
	return j.runs.Update(ctx, run)
}

// TaskStarted сохраняет начало обработки задачи.
func (j *Journal) TaskStarted(ctx context.Context, a *domain.TaskAttempt) error {
	return j.tasks.Start(ctx, a)
}

// TaskFinished сохраняет итог обработки задачи.
func (j *Journal) TaskFinished(ctx context.Context, a *domain.TaskAttempt) error {
	return j.tasks.Finish(ctx, a)
}
