package source

import (
	"fmt"
	"testing"
)

func TestBuildTasks(t *testing.T) {
	for _, n := range []int{0, 1, 3, 17} {
		tasks := BuildTasks("data/timeline.csv", n)

		if len(tasks) != n {
			t.Fatalf("iterations=%d: expected %d tasks, got %d", n, n, len(tasks))
		}

		for i, task := range tasks {
			want := fmt.Sprintf("story_%d", i)
			if task.Name != want {
				t.Errorf("iterations=%d: task %d named %q, want %q", n, i, task.Name, want)
			}
			if task.Dataset != "data/timeline.csv" {
				t.Errorf("unexpected dataset %q", task.Dataset)
			}
		}
	}
}

func TestBuildTasks_Negative(t *testing.T) {
	tasks := BuildTasks("data.csv", -2)
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", tasks)
	}
}

func TestBuildTasks_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, task := range BuildTasks("data.csv", 100) {
		if seen[task.Name] {
			t.Fatalf("duplicate task name %s", task.Name)
		}
		seen[task.Name] = true
	}
}
