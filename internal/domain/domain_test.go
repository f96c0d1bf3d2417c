package domain

import (
	"errors"
	"testing"
)

func TestTaskName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "story_0"},
		{1, "story_1"},
		{42, "story_42"},
	}

	for _, tt := range tests {
		if got := TaskName(tt.index); got != tt.want {
			t.Errorf("TaskName(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestQueueItem(t *testing.T) {
	item := TaskItem(Task{Dataset: "data.csv", Name: "story_0"})
	if item.IsShutdown() {
		t.Error("task item should not be shutdown")
	}
	if item.Task == nil || item.Task.Name != "story_0" {
		t.Errorf("unexpected task: %+v", item.Task)
	}

	sentinel := ShutdownItem()
	if !sentinel.IsShutdown() {
		t.Error("sentinel should be shutdown")
	}
	if sentinel.Task != nil {
		t.Error("sentinel should not carry a task")
	}
}

func TestParseStyle(t *testing.T) {
	for _, st := range Styles() {
		got, err := ParseStyle(string(st))
		if err != nil {
			t.Fatalf("ParseStyle(%q): unexpected error: %v", st, err)
		}
		if got != st {
			t.Errorf("expected %s, got %s", st, got)
		}
	}

	// Пустая строка: стиль по умолчанию
	got, err := ParseStyle("")
	if err != nil || got != StyleUkiyoE {
		t.Errorf("expected default ukiyo-e, got %q (%v)", got, err)
	}

	_, err = ParseStyle("baroque")
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
}

func TestRunLifecycle(t *testing.T) {
	run := NewRun("data.csv", StyleSumiE, "output", 3, 2)

	if run.Status != RunStatusPending {
		t.Errorf("expected PENDING, got %s", run.Status)
	}
	if !run.IsParallel() {
		t.Error("run with workers should be parallel")
	}

	run.MarkRunning()
	if run.StartedAt == nil || run.IsFinished() {
		t.Error("running run should have StartedAt and not be finished")
	}

	run.MarkFailed(errors.New("boom"))
	if run.Status != RunStatusFailed || run.Error != "boom" {
		t.Errorf("unexpected failed state: %s %q", run.Status, run.Error)
	}
	if !run.IsFinished() {
		t.Error("failed run should be finished")
	}
}

func TestTaskAttempt(t *testing.T) {
	run := NewRun("data.csv", StyleUkiyoE, "output", 1, 0)
	attempt := NewTaskAttempt(run.ID, "story_0", 1)

	if attempt.Status != TaskStatusRunning {
		t.Errorf("expected RUNNING, got %s", attempt.Status)
	}
	if attempt.Duration() != 0 {
		t.Error("unfinished attempt should have zero duration")
	}

	attempt.MarkSucceeded("output/story_0_visual_story.png")
	if !attempt.Status.IsTerminal() {
		t.Error("succeeded attempt should be terminal")
	}
	if attempt.Path != "output/story_0_visual_story.png" {
		t.Errorf("unexpected path %q", attempt.Path)
	}
}
