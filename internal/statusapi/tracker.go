package statusapi

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/worker"
)

// InFlight: задача, обрабатываемая прямо сейчас.
type InFlight struct {
	Task      string    `json:"task"`
	WorkerID  int       `json:"worker_id"`
	StartedAt time.Time `json:"started_at"`
}

// Status: снимок run'а.
type Status struct {
	RunID      uuid.UUID        `json:"run_id"`
	Status     domain.RunStatus `json:"status"`
	Dataset    string           `json:"dataset"`
	Style      domain.Style     `json:"style"`
	Workers    int              `json:"workers"`
	Total      int              `json:"total"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	InFlight   []InFlight       `json:"in_flight"`
	StartedAt  *time.Time       `json:"started_at,omitempty"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// Tracker ведёт снимок текущего run'а. Реализует worker.Recorder.
type Tracker struct {
	mu        sync.RWMutex
	run       domain.Run
	active    bool
	succeeded int
	failed    int
	inFlight  map[string]InFlight
}

var _ worker.Recorder = (*Tracker)(nil)

// NewTracker создаёт пустой Tracker.
func NewTracker() *Tracker {
	return &Tracker{inFlight: make(map[string]InFlight)}
}

// Begin начинает отслеживание нового run'а.
func (t *Tracker) Begin(run *domain.Run) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.run = *run
	t.active = true
	t.succeeded, t.failed = 0, 0
	t.inFlight = make(map[string]InFlight)
}

// End фиксирует итог run'а. Если попытки не отслеживались вживую
// (воркеры-процессы), счётчики берутся из results.
func (t *Tracker) End(run *domain.Run, results []worker.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.run = *run
	if t.succeeded+t.failed == 0 {
		for _, r := range results {
			if r.Failed() {
				t.failed++
			} else {
				t.succeeded++
			}
		}
	}
	t.inFlight = make(map[string]InFlight)
}

// TaskStarted отмечает задачу как обрабатываемую.
func (t *Tracker) TaskStarted(_ context.Context, a *domain.TaskAttempt) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.inFlight[a.Name] = InFlight{Task: a.Name, WorkerID: a.WorkerID, StartedAt: a.StartedAt}
	return nil
}

// TaskFinished учитывает итог задачи.
func (t *Tracker) TaskFinished(_ context.Context, a *domain.TaskAttempt) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.inFlight, a.Name)
	if a.Status == domain.TaskStatusSucceeded {
		t.succeeded++
	} else {
		t.failed++
	}
	return nil
}

// Snapshot возвращает снимок; ok == false, если run ещё не начинался.
func (t *Tracker) Snapshot() (Status, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.active {
		return Status{}, false
	}

	s := Status{
		RunID:      t.run.ID,
		Status:     t.run.Status,
		Dataset:    t.run.Dataset,
		Style:      t.run.Style,
		Workers:    t.run.Workers,
		Total:      t.run.Iterations,
		Succeeded:  t.succeeded,
		Failed:     t.failed,
		InFlight:   make([]InFlight, 0, len(t.inFlight)),
		StartedAt:  t.run.StartedAt,
		FinishedAt: t.run.FinishedAt,
		Error:      t.run.Error,
	}
	for _, f := range t.inFlight {
		s.InFlight = append(s.InFlight, f)
	}
	sort.Slice(s.InFlight, func(i, j int) bool { return s.InFlight[i].Task < s.InFlight[j].Task })

	return s, true
}
