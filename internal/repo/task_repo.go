package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Kannon/internal/domain"
)

// TaskRepo: репозиторий task_attempts.
type TaskRepo struct {
	pool *pgxpool.Pool
}

// NewTaskRepo создаёт TaskRepo.
func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

// Start сохраняет попытку в статусе RUNNING.
func (r *TaskRepo) Start(ctx context.Context, a *domain.TaskAttempt) error {
	query := `
		INSERT INTO task_attempts (run_id, name, worker_id, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (run_id, name) DO UPDATE
		SET worker_id = EXCLUDED.worker_id,
		    status = EXCLUDED.status,
		    started_at = EXCLUDED.started_at,
		    finished_at = NULL, path = NULL, error = NULL
	`
	_, err := r.pool.Exec(ctx, query, a.RunID, a.Name, a.WorkerID, a.Status, a.StartedAt)
	if err != nil {
		return fmt.Errorf("insert task attempt: %w", err)
	}
	return nil
}

// Finish сохраняет итог попытки.
func (r *TaskRepo) Finish(ctx context.Context, a *domain.TaskAttempt) error {
	query := `
		UPDATE task_attempts
		SET status = $3, path = $4, error = $5, finished_at = $6
		WHERE run_id = $1 AND name = $2
	`
	result, err := r.pool.Exec(ctx, query,
		a.RunID,
		a.Name,
		a.Status,
		nullString(a.Path),
		nullString(a.Error),
		a.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("update task attempt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByRunID возвращает попытки run'а в порядке начала.
func (r *TaskRepo) ListByRunID(ctx context.Context, runID uuid.UUID) ([]domain.TaskAttempt, error) {
	query := `
		SELECT run_id, name, worker_id, status, path, error, started_at, finished_at
		FROM task_attempts
		WHERE run_id = $1
		ORDER BY started_at ASC
	`
	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list task attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.TaskAttempt
	for rows.Next() {
		var a domain.TaskAttempt
		var path, attemptErr *string

		if err := rows.Scan(
			&a.RunID,
			&a.Name,
			&a.WorkerID,
			&a.Status,
			&path,
			&attemptErr,
			&a.StartedAt,
			&a.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task attempt: %w", err)
		}

		a.Path = derefString(path)
		a.Error = derefString(attemptErr)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
