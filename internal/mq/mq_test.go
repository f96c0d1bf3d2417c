package mq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/domain"
)

func TestRunQueueName(t *testing.T) {
	id := uuid.MustParse("7d8e7c3a-5b1f-4e3c-9a2d-1f0e6b4c8a90")

	if got := RunQueueName(id); got != "kannon.tasks.7d8e7c3a-5b1f-4e3c-9a2d-1f0e6b4c8a90" {
		t.Errorf("unexpected queue name %q", got)
	}
	if got := RoutingKey(id); got != id.String() {
		t.Errorf("unexpected routing key %q", got)
	}
}

func TestMessage_TaskItem(t *testing.T) {
	runID := uuid.New()
	item := domain.TaskItem(domain.Task{Dataset: "data.csv", Name: "story_4"})

	msg, err := NewMessage(runID, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != MessageTypeTaskReady {
		t.Errorf("expected task.ready, got %s", msg.Type)
	}

	// Сообщение проходит через брокер в виде JSON.
	body, _ := json.Marshal(msg)
	var decoded Message
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got, err := decoded.Item()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != domain.ItemTask || got.Task == nil || *got.Task != *item.Task {
		t.Errorf("expected %+v, got %+v", item, got)
	}
	if decoded.RunID != runID {
		t.Errorf("expected run id %s, got %s", runID, decoded.RunID)
	}
}

func TestMessage_Shutdown(t *testing.T) {
	msg, err := NewMessage(uuid.New(), domain.ShutdownItem())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != MessageTypeWorkerShutdown || msg.Payload != nil {
		t.Errorf("unexpected shutdown message %+v", msg)
	}

	item, err := msg.Item()
	if err != nil || !item.IsShutdown() {
		t.Errorf("expected shutdown item, got %+v, %v", item, err)
	}
}

func TestMessage_Malformed(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"unknown type", Message{Type: "task.exploded"}},
		{"bad payload", Message{Type: MessageTypeTaskReady, Payload: json.RawMessage(`"nope"`)}},
		{"nameless task", Message{Type: MessageTypeTaskReady, Payload: json.RawMessage(`{"task":{"dataset":"x"}}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.msg.Item()
			if !errors.Is(err, ErrMalformedMessage) {
				t.Errorf("expected ErrMalformedMessage, got %v", err)
			}
		})
	}

	if _, err := NewMessage(uuid.New(), domain.QueueItem{Kind: domain.ItemTask}); !errors.Is(err, ErrMalformedMessage) {
		t.Errorf("expected ErrMalformedMessage for empty task item, got %v", err)
	}
}
