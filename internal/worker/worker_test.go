package worker

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/domain"
	"github.com/shaiso/Kannon/internal/lock"
	"github.com/shaiso/Kannon/internal/pipeline"
	"github.com/shaiso/Kannon/internal/queue"
	"github.com/shaiso/Kannon/internal/sink"
)

type blankArtifact struct{}

func (blankArtifact) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// fakeBody считает одновременные входы в тело задачи.
type fakeBody struct {
	inside    atomic.Int32
	maxInside atomic.Int32
	calls     atomic.Int32

	delay   time.Duration
	failOn  map[string]error
	panicOn string
}

func (b *fakeBody) enter() func() {
	n := b.inside.Add(1)
	for {
		m := b.maxInside.Load()
		if n <= m || b.maxInside.CompareAndSwap(m, n) {
			break
		}
	}
	return func() { b.inside.Add(-1) }
}

func (b *fakeBody) Produce(_ context.Context, task domain.Task) (sink.Artifact, error) {
	defer b.enter()()
	b.calls.Add(1)

	if task.Name == b.panicOn {
		panic("brush snapped")
	}
	if err, ok := b.failOn[task.Name]; ok {
		return nil, err
	}
	time.Sleep(b.delay)
	return blankArtifact{}, nil
}

func (b *fakeBody) Persist(_ sink.Artifact, task domain.Task) (string, error) {
	defer b.enter()()
	return task.Name + sink.FileSuffix, nil
}

type memoryRecorder struct {
	mu       sync.Mutex
	started  []string
	finished []*domain.TaskAttempt
}

func (r *memoryRecorder) TaskStarted(_ context.Context, a *domain.TaskAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, a.Name)
	return nil
}

func (r *memoryRecorder) TaskFinished(_ context.Context, a *domain.TaskAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, a)
	return nil
}

func fill(t *testing.T, q *queue.Memory, tasks, sentinels int) {
	t.Helper()
	for i := range tasks {
		if err := q.Put(context.Background(), domain.TaskItem(domain.Task{Dataset: "d.csv", Name: domain.TaskName(i)})); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	for range sentinels {
		q.Put(context.Background(), domain.ShutdownItem())
	}
}

// --- Scope Tests ---

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", ScopePipeline, false},
		{"pipeline", ScopePipeline, false},
		{"persist", ScopePersist, false},
		{"everything", "", true},
	}

	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownScope) {
				t.Errorf("ParseScope(%q): expected ErrUnknownScope, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseScope(%q) = %q, %v", tt.in, got, err)
		}
	}
}

// --- Processor Tests ---

func TestProcessor_Success(t *testing.T) {
	rec := &memoryRecorder{}
	p := NewProcessor(ProcessorConfig{
		WorkerID: 3,
		RunID:    uuid.New(),
		Body:     &fakeBody{},
		Recorder: rec,
	})

	res := p.Process(context.Background(), domain.Task{Name: "story_0"})
	if res.Failed() {
		t.Fatalf("unexpected failure: %v", res.Error)
	}
	if res.Path != "story_0_visual_story.png" {
		t.Errorf("unexpected path %q", res.Path)
	}
	if res.WorkerID != 3 {
		t.Errorf("expected worker 3, got %d", res.WorkerID)
	}

	if len(rec.started) != 1 || len(rec.finished) != 1 {
		t.Fatalf("expected one started and one finished record, got %d/%d", len(rec.started), len(rec.finished))
	}
	if rec.finished[0].Status != domain.TaskStatusSucceeded {
		t.Errorf("expected SUCCEEDED, got %s", rec.finished[0].Status)
	}
}

func TestProcessor_FailureKeepsCategory(t *testing.T) {
	body := &fakeBody{failOn: map[string]error{"story_1": pipeline.ErrDataLoad}}
	p := NewProcessor(ProcessorConfig{Body: body})

	res := p.Process(context.Background(), domain.Task{Name: "story_1"})
	if !res.Failed() {
		t.Fatal("expected failure")
	}
	if !errors.Is(res.Cause(), pipeline.ErrDataLoad) {
		t.Errorf("expected ErrDataLoad, got %v", res.Cause())
	}

	var te *TaskError
	if !errors.As(res.Cause(), &te) || te.Task != "story_1" {
		t.Errorf("expected TaskError for story_1, got %v", res.Cause())
	}
}

func TestProcessor_PanicReleasesGate(t *testing.T) {
	gate := lock.NewLocalGate()
	p := NewProcessor(ProcessorConfig{
		Body: &fakeBody{panicOn: "story_0"},
		Gate: gate,
	})

	res := p.Process(context.Background(), domain.Task{Name: "story_0"})
	if !errors.Is(res.Err, ErrTaskPanicked) {
		t.Errorf("expected ErrTaskPanicked, got %v", res.Err)
	}
	if gate.Held() {
		t.Error("gate must be released after panic")
	}
}

func TestProcessor_PersistScopeOnlyGuardsPersist(t *testing.T) {
	gate := lock.NewLocalGate()

	// Область занята: Produce должен выполниться, Persist ждать.
	hold, _ := gate.Acquire(context.Background())

	body := &fakeBody{}
	p := NewProcessor(ProcessorConfig{Body: body, Gate: gate, Scope: ScopePersist})

	done := make(chan Result, 1)
	go func() { done <- p.Process(context.Background(), domain.Task{Name: "story_0"}) }()

	deadline := time.Now().Add(time.Second)
	for body.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if body.calls.Load() != 1 {
		t.Fatal("produce should run outside the exclusive region")
	}

	select {
	case <-done:
		t.Fatal("persist must wait for the exclusive region")
	case <-time.After(20 * time.Millisecond):
	}

	hold()
	res := <-done
	if res.Failed() {
		t.Errorf("unexpected failure: %v", res.Error)
	}
}

func TestProcessor_GateCancelled(t *testing.T) {
	gate := lock.NewLocalGate()
	hold, _ := gate.Acquire(context.Background())
	defer hold()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	body := &fakeBody{}
	res := NewProcessor(ProcessorConfig{Body: body, Gate: gate}).Process(ctx, domain.Task{Name: "story_0"})
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", res.Err)
	}
	if body.calls.Load() != 0 {
		t.Error("body must not run without the exclusive region")
	}
}

// --- Worker Tests ---

func TestWorker_StopsOnSentinel(t *testing.T) {
	q := queue.NewMemory(8)
	fill(t, q, 3, 1)
	// Элемент после sentinel не должен быть прочитан этим воркером.
	q.Put(context.Background(), domain.TaskItem(domain.Task{Name: "late"}))

	w := New(Config{ID: 1, Queue: q, Body: &fakeBody{}})
	report, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Results) != 3 || report.Succeeded() != 3 {
		t.Errorf("expected 3 succeeded, got %+v", report.Results)
	}
	if q.Len() != 1 {
		t.Errorf("expected trailing item left in queue, got %d", q.Len())
	}
}

func TestWorker_ContinuesAfterFailure(t *testing.T) {
	q := queue.NewMemory(8)
	fill(t, q, 4, 1)

	body := &fakeBody{failOn: map[string]error{"story_1": pipeline.ErrDataQuality}}
	report, err := New(Config{ID: 1, Queue: q, Body: body}).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Succeeded() != 3 {
		t.Errorf("expected 3 succeeded, got %d", report.Succeeded())
	}
	if !errors.Is(report.Err(), pipeline.ErrDataQuality) {
		t.Errorf("expected ErrDataQuality in report, got %v", report.Err())
	}
}

func TestWorker_MutualExclusion(t *testing.T) {
	const workers = 4
	const tasks = 20

	q := queue.NewMemory(tasks + workers)
	fill(t, q, tasks, workers)

	body := &fakeBody{delay: time.Millisecond}
	gate := lock.NewLocalGate()

	var wg sync.WaitGroup
	var processed atomic.Int32
	for id := 1; id <= workers; id++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := New(Config{ID: id, Queue: q, Body: body, Gate: gate}).Run(context.Background())
			if err != nil {
				t.Error(err)
			}
			processed.Add(int32(len(report.Results)))
		}()
	}
	wg.Wait()

	if body.maxInside.Load() != 1 {
		t.Errorf("expected at most one task inside the region, got %d", body.maxInside.Load())
	}
	if processed.Load() != tasks {
		t.Errorf("expected %d processed, got %d", tasks, processed.Load())
	}
}

func TestWorker_NoQueue(t *testing.T) {
	_, err := New(Config{ID: 1, Body: &fakeBody{}}).Run(context.Background())
	if !errors.Is(err, ErrNoQueue) {
		t.Errorf("expected ErrNoQueue, got %v", err)
	}
}

func TestWorker_Interrupted(t *testing.T) {
	q := queue.NewMemory(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{ID: 1, Queue: q, Body: &fakeBody{}}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected Canceled, got %v", err)
	}
}

// --- Recorder Tests ---

type failingRecorder struct{}

func (failingRecorder) TaskStarted(context.Context, *domain.TaskAttempt) error {
	return errors.New("journal down")
}

func (failingRecorder) TaskFinished(context.Context, *domain.TaskAttempt) error {
	return errors.New("journal down")
}

func TestRecorders(t *testing.T) {
	if Recorders(nil, nil) != nil {
		t.Error("expected nil for no recorders")
	}

	single := &memoryRecorder{}
	if Recorders(nil, single) != Recorder(single) {
		t.Error("single recorder should be returned as is")
	}

	a, b := &memoryRecorder{}, &memoryRecorder{}
	rec := Recorders(a, failingRecorder{}, b)

	p := NewProcessor(ProcessorConfig{Body: &fakeBody{}, Recorder: rec})
	res := p.Process(context.Background(), domain.Task{Name: "story_0"})

	if res.Failed() {
		t.Errorf("journal errors must not fail the task: %v", res.Error)
	}
	if len(a.finished) != 1 || len(b.finished) != 1 {
		t.Errorf("every recorder should see the attempt, got %d/%d", len(a.finished), len(b.finished))
	}
}
